// Package source holds the non-owning byte-range view ("Buffer") and the
// growable typed-sequence primitive that the rest of the compiler builds
// on.
package source

// Buffer is a borrowed, non-owning view into a backing byte slice: an
// offset and a length, never a copy. It never mutates its source.
//
// The zero value of Buffer is its own canonical "empty" representation:
// Off == 0, Len == 0. IsEmpty is the only emptiness test callers need, so
// no sentinel address ever leaks into comparisons.
type Buffer struct {
	src *[]byte
	Off uint32
	Len uint32
}

// Of returns a Buffer viewing src[off:off+length].
func Of(src *[]byte, off, length uint32) Buffer {
	return Buffer{src: src, Off: off, Len: length}
}

// IsEmpty reports whether the buffer carries zero bytes.
func (b Buffer) IsEmpty() bool { return b.Len == 0 }

// Bytes returns the viewed byte range. Callers must not mutate the result.
func (b Buffer) Bytes() []byte {
	if b.src == nil {
		return nil
	}
	return (*b.src)[b.Off : b.Off+b.Len]
}

// String copies the viewed range into a Go string.
func (b Buffer) String() string { return string(b.Bytes()) }

// Eq reports byte-wise equality between two buffers, regardless of which
// backing slice they were cut from.
func (b Buffer) Eq(o Buffer) bool {
	if b.Len != o.Len {
		return false
	}
	return string(b.Bytes()) == string(o.Bytes())
}

// EqString reports byte-wise equality against a plain Go string.
func (b Buffer) EqString(s string) bool {
	return int(b.Len) == len(s) && b.String() == s
}

// Slice returns the sub-view [from, to) of b, offsets relative to b.Off.
func (b Buffer) Slice(from, to uint32) Buffer {
	return Buffer{src: b.src, Off: b.Off + from, Len: to - from}
}

package source

// Seq is a growable typed sequence: append-only, backed by a slice,
// arena-lifetime (never individually freed).
type Seq[T any] struct {
	data []T
}

func (s *Seq[T]) Append(v T) int {
	s.data = append(s.data, v)
	return len(s.data) - 1
}

func (s *Seq[T]) Len() int       { return len(s.data) }
func (s *Seq[T]) At(i int) T     { return s.data[i] }
func (s *Seq[T]) Set(i int, v T) { s.data[i] = v }
func (s *Seq[T]) Slice() []T     { return s.data }

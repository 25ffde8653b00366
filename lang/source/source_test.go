package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ztoc/lang/source"
)

func TestBufferView(t *testing.T) {
	backing := []byte("pub fn main() void {}")
	b := source.Of(&backing, 7, 4)

	assert.Equal(t, "main", b.String())
	assert.Equal(t, []byte("main"), b.Bytes())
	assert.False(t, b.IsEmpty())

	// a buffer is a view, not a copy: mutating the backing store shows
	// through
	backing[7] = 'M'
	assert.Equal(t, "Main", b.String())
}

func TestBufferZeroValueIsEmpty(t *testing.T) {
	var b source.Buffer
	assert.True(t, b.IsEmpty())
	assert.Nil(t, b.Bytes())
	assert.Equal(t, "", b.String())
	assert.True(t, b.EqString(""))
}

func TestBufferEq(t *testing.T) {
	b1 := []byte("abc abc")
	b2 := []byte("xxabcxx")

	// byte-wise equality regardless of backing slice or offset
	assert.True(t, source.Of(&b1, 0, 3).Eq(source.Of(&b1, 4, 3)))
	assert.True(t, source.Of(&b1, 0, 3).Eq(source.Of(&b2, 2, 3)))
	assert.False(t, source.Of(&b1, 0, 3).Eq(source.Of(&b1, 1, 3)))
	assert.False(t, source.Of(&b1, 0, 3).Eq(source.Of(&b1, 0, 4)))

	assert.True(t, source.Of(&b1, 0, 3).EqString("abc"))
	assert.False(t, source.Of(&b1, 0, 3).EqString("ab"))
}

func TestBufferSlice(t *testing.T) {
	backing := []byte("hello world")
	b := source.Of(&backing, 6, 5) // "world"
	sub := b.Slice(1, 4)           // "orl"
	assert.Equal(t, "orl", sub.String())
	assert.Equal(t, "", b.Slice(2, 2).String())
}

func TestSeq(t *testing.T) {
	var s source.Seq[int]
	require.Equal(t, 0, s.Len())

	i0 := s.Append(10)
	i1 := s.Append(20)
	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, i1)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 20, s.At(1))

	s.Set(0, 11)
	assert.Equal(t, 11, s.At(0))
	assert.Equal(t, []int{11, 20}, s.Slice())
}

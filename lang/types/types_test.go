package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ztoc/lang/types"
)

func TestBuiltinIdempotent(t *testing.T) {
	p := types.NewPool()

	id := p.Builtin(types.U32)
	assert.Equal(t, id, p.Builtin(types.U32))
	assert.Equal(t, id, p.Put(types.Type{Tag: types.U32}))
	assert.NotEqual(t, id, p.Builtin(types.I32))

	got := p.Get(id)
	assert.Equal(t, types.U32, got.Tag)
}

func TestStructuralEquality(t *testing.T) {
	p := types.NewPool()

	u8 := p.Builtin(types.U8)
	ptr1 := p.PointerTo(u8, 0)
	ptr2 := p.PointerTo(u8, 0)
	assert.Equal(t, ptr1, ptr2, "pointers to a type dedup to a single id")

	// any structural field difference produces a distinct id
	assert.NotEqual(t, ptr1, p.PointerTo(u8, types.PtrConst))
	assert.NotEqual(t, ptr1, p.PointerTo(p.Builtin(types.U16), 0))
	assert.NotEqual(t, ptr1, p.DoublePointerTo(u8, 0))

	got := p.Get(ptr1)
	assert.Equal(t, types.PtrOne, got.Tag)
	assert.Equal(t, u8, got.Child)
}

func TestGenericInt(t *testing.T) {
	p := types.NewPool()

	i24 := p.GenericInt(24, true)
	assert.Equal(t, i24, p.GenericInt(24, true))
	assert.NotEqual(t, i24, p.GenericInt(24, false))
	assert.NotEqual(t, i24, p.GenericInt(25, true))

	class, bits := p.Info(i24)
	assert.Equal(t, types.ClassInt, class)
	assert.Equal(t, 24, bits)
}

func TestInfo(t *testing.T) {
	p := types.NewPool()

	cases := []struct {
		tag   types.Tag
		class types.Class
		bits  int
	}{
		{types.U8, types.ClassInt, 8},
		{types.I64, types.ClassInt, 64},
		{types.Usize, types.ClassInt, 64},
		{types.CInt, types.ClassInt, 32},
		{types.F32, types.ClassFloat, 32},
		{types.F128, types.ClassFloat, 128},
		{types.Bool, types.ClassOther, 0},
		{types.Anyopaque, types.ClassOther, 0},
	}
	for _, c := range cases {
		class, bits := p.Info(p.Builtin(c.tag))
		assert.Equal(t, c.class, class, "tag %d", c.tag)
		assert.Equal(t, c.bits, bits, "tag %d", c.tag)
	}
}

func TestLookupBuiltin(t *testing.T) {
	tag, ok := types.LookupBuiltin("u32")
	require.True(t, ok)
	assert.Equal(t, types.U32, tag)

	tag, ok = types.LookupBuiltin("anyopaque")
	require.True(t, ok)
	assert.Equal(t, types.Anyopaque, tag)

	_, ok = types.LookupBuiltin("MyStruct")
	assert.False(t, ok)
	_, ok = types.LookupBuiltin("void")
	assert.False(t, ok, "void is not an interned value type")
}

func TestCName(t *testing.T) {
	cases := map[types.Tag]string{
		types.U32:       "uint32_t",
		types.I8:        "int8_t",
		types.Usize:     "uintptr_t",
		types.CInt:      "int",
		types.CUlong:    "unsigned long",
		types.Bool:      "bool",
	}
	for tag, want := range cases {
		got, ok := types.CName(tag)
		require.True(t, ok, "tag %d", tag)
		assert.Equal(t, want, got)
	}

	_, ok := types.CName(types.PtrOne)
	assert.False(t, ok, "parameterised constructors have no direct C spelling")
}

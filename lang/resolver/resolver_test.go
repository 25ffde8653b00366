package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/resolver"
	"github.com/mna/ztoc/lang/types"
)

func identExpr(name string) *ast.Node {
	return &ast.Node{
		Tag:     ast.PrimaryTypeExpr,
		Payload: ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeIdentifier, Raw: name},
	}
}

func typeExpr(prefix []*ast.Node, name string) *ast.Node {
	return &ast.Node{
		Tag: ast.TypeExpr,
		Payload: ast.TypeExprData{
			PrefixTypeOps: prefix,
			TypeExpr:      identExpr(name),
		},
	}
}

func TestEvalSymbolName(t *testing.T) {
	n := typeExpr(nil, "my_fn")
	name, err := resolver.EvalSymbolName(n)
	require.NoError(t, err)
	assert.Equal(t, "my_fn", name)
}

func TestEvalTypeNameBuiltin(t *testing.T) {
	pool := types.NewPool()
	id, err := resolver.EvalTypeName(pool, typeExpr(nil, "u32"))
	require.NoError(t, err)
	assert.Equal(t, pool.Builtin(types.U32), id)
}

func TestEvalTypeNameUnknownIsFatal(t *testing.T) {
	pool := types.NewPool()
	_, err := resolver.EvalTypeName(pool, typeExpr(nil, "Foo"))
	require.Error(t, err)
}

func ptrOp(ptrType ast.PtrType, mods ast.PointerModifiers) *ast.Node {
	return &ast.Node{
		Tag: ast.PrefixTypeOpPtr,
		Payload: ast.PrefixTypePtrData{
			Modifiers: mods,
			Ptr: &ast.Node{
				Tag:     ast.PtrTypeStart,
				Payload: ast.PtrTypeStartData{Type: ptrType},
			},
		},
	}
}

func TestEvalTypeNameSinglePointer(t *testing.T) {
	pool := types.NewPool()
	n := typeExpr([]*ast.Node{ptrOp(ast.PtrTypeSingle, ast.PtrConst)}, "u8")
	id, err := resolver.EvalTypeName(pool, n)
	require.NoError(t, err)
	assert.Equal(t, pool.PointerTo(pool.Builtin(types.U8), types.PtrConst), id)
}

func TestEvalTypeNameDoublePointer(t *testing.T) {
	pool := types.NewPool()
	n := typeExpr([]*ast.Node{ptrOp(ast.PtrTypeDouble, 0)}, "u8")
	id, err := resolver.EvalTypeName(pool, n)
	require.NoError(t, err)
	assert.Equal(t, pool.DoublePointerTo(pool.Builtin(types.U8), 0), id)
}

func TestPeerResolveTypeIdentity(t *testing.T) {
	pool := types.NewPool()
	u32 := pool.Builtin(types.U32)
	id, err := resolver.PeerResolveType(pool, u32, u32)
	require.NoError(t, err)
	assert.Equal(t, u32, id)
}

func TestPeerResolveTypeWidensInt(t *testing.T) {
	pool := types.NewPool()
	u8, u64 := pool.Builtin(types.U8), pool.Builtin(types.U64)
	id, err := resolver.PeerResolveType(pool, u8, u64)
	require.NoError(t, err)
	assert.Equal(t, u64, id)

	id, err = resolver.PeerResolveType(pool, u64, u8)
	require.NoError(t, err)
	assert.Equal(t, u64, id)
}

func TestPeerResolveTypeMixedClassIsFatal(t *testing.T) {
	pool := types.NewPool()
	_, err := resolver.PeerResolveType(pool, pool.Builtin(types.U32), pool.Builtin(types.F32))
	require.Error(t, err)
}

package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/ir"
)

func TestOpString(t *testing.T) {
	assert.Equal(t, "call", ir.OpCall.String())
	assert.Equal(t, "load_num", ir.OpConstNum.String())
	assert.Equal(t, "load_char", ir.OpConstChar.String())
	assert.Equal(t, "load_bytes", ir.OpConstBytes.String())
	assert.Equal(t, "!invalid", ir.OpInvalid.String())
	assert.Equal(t, "!invalid", ir.Op(255).String())
}

func TestFromBinOpSupported(t *testing.T) {
	cases := map[ast.BinOp]ir.Op{
		ast.BinOpOr:    ir.OpOr,
		ast.BinOpAnd:   ir.OpAnd,
		ast.BinOpEq:    ir.OpEq,
		ast.BinOpNeq:   ir.OpNeq,
		ast.BinOpLt:    ir.OpLt,
		ast.BinOpGt:    ir.OpGt,
		ast.BinOpLtEq:  ir.OpLte,
		ast.BinOpGtEq:  ir.OpGte,
		ast.BinOpBitAnd: ir.OpBitAnd,
		ast.BinOpBitXor: ir.OpBitXor,
		ast.BinOpShl:   ir.OpShl,
		ast.BinOpShr:   ir.OpShr,
		ast.BinOpAdd:   ir.OpAdd,
		ast.BinOpSub:   ir.OpSub,
		ast.BinOpMul:   ir.OpMul,
		ast.BinOpDiv:   ir.OpDiv,
		ast.BinOpMod:   ir.OpMod,
	}
	for binop, want := range cases {
		assert.Equal(t, want, ir.FromBinOp(binop), "binop %s", binop)
	}
}

func TestFromBinOpUnsupported(t *testing.T) {
	for _, binop := range []ast.BinOp{
		ast.BinOpBitOr, ast.BinOpOrelse, ast.BinOpCatch, ast.BinOpShlSaturate,
		ast.BinOpAddWrap, ast.BinOpAddSaturate, ast.BinOpSubWrap, ast.BinOpSubSaturate,
		ast.BinOpArraySpread, ast.BinOpArrayConcat, ast.BinOpMulWrap, ast.BinOpMulSaturate,
		ast.BinOpErrorSetMerge, ast.BinOpInvalid,
	} {
		assert.Equal(t, ir.OpInvalid, ir.FromBinOp(binop), "binop %s", binop)
	}
}

package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/ir"
	"github.com/mna/ztoc/lang/lower"
	"github.com/mna/ztoc/lang/token"
)

func ident(name string) *ast.Node {
	return &ast.Node{Tag: ast.PrimaryTypeExpr, Payload: ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeIdentifier, Raw: name}}
}

func num(raw string) *ast.Node {
	return &ast.Node{Tag: ast.PrimaryTypeExpr, Payload: ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeNumberLiteral, Raw: raw}}
}

func unary(ops []token.Token, inner *ast.Node) *ast.Node {
	return &ast.Node{Tag: ast.UnaryExpr, Payload: ast.UnaryExprData{Ops: ops, Expr: inner}}
}

// ref wraps a primary-level node (identifier, literal, if_expr, return_expr,
// type_expr...) into the no-op unary_expr that every expression position in
// this AST bottoms out at.
func ref(inner *ast.Node) *ast.Node { return unary(nil, inner) }

func binary(op ast.BinOp, lhs, rhs *ast.Node) *ast.Node {
	return &ast.Node{Tag: ast.BinaryExpr, Payload: ast.BinaryExprData{Op: op, Lhs: lhs, Rhs: rhs}}
}

func typeExpr(name string) *ast.Node {
	return &ast.Node{Tag: ast.TypeExpr, Payload: ast.TypeExprData{TypeExpr: ident(name)}}
}

func ptrTypeExpr(base string) *ast.Node {
	ptr := &ast.Node{
		Tag: ast.PrefixTypeOpPtr,
		Payload: ast.PrefixTypePtrData{
			Ptr: &ast.Node{Tag: ast.PtrTypeStart, Payload: ast.PtrTypeStartData{Type: ast.PtrTypeSingle}},
		},
	}
	return &ast.Node{Tag: ast.TypeExpr, Payload: ast.TypeExprData{PrefixTypeOps: []*ast.Node{ptr}, TypeExpr: ident(base)}}
}

func paramDecl(name string, typ *ast.Node) *ast.Node {
	return &ast.Node{Tag: ast.ParamDecl, Payload: ast.ParamDeclData{Identifier: name, Type: typ}}
}

func paramList(params ...*ast.Node) *ast.Node {
	return &ast.Node{Tag: ast.ParamDeclList, Payload: ast.ParamDeclListData{Params: params}}
}

func block(stmts ...*ast.Node) *ast.Node {
	return &ast.Node{Tag: ast.Block, Payload: ast.BlockData{Statements: stmts}}
}

func returnExpr(inner *ast.Node) *ast.Node {
	return &ast.Node{Tag: ast.ReturnExpr, Payload: inner}
}

func fnDecl(name string, params, ret, body *ast.Node) *ast.Node {
	proto := &ast.Node{Tag: ast.FnProto, Payload: ast.FnProtoData{Name: name, Params: params, ReturnType: ret}}
	decl := &ast.Node{Tag: ast.DeclFn, Payload: ast.DeclFnData{FnProto: proto, Block: body}}
	return &ast.Node{Tag: ast.TopLevelDecl, Payload: ast.TopLevelDeclData{Decl: decl, IsPub: true}}
}

func program(decls ...*ast.Node) *ast.Node {
	return &ast.Node{Tag: ast.ContainerMembers, Payload: ast.ContainerMembersData{Decls: decls}}
}

func lowerOne(t *testing.T, root *ast.Node) *ir.Func {
	t.Helper()
	prog, err := lower.Lower(root)
	require.NoError(t, err)
	require.Len(t, prog.Funcs, 1)
	return prog.Funcs[0]
}

func TestLowerTrivialFunction(t *testing.T) {
	// the binary_expr is the return's payload directly: unary_expr only ever
	// wraps a primary-level node, never another binary_expr (see
	// TestLowerBinaryPrecedence).
	body := block(ref(returnExpr(binary(ast.BinOpAdd, ref(ident("a")), ref(ident("b"))))))
	root := program(fnDecl("add",
		paramList(paramDecl("a", typeExpr("u32")), paramDecl("b", typeExpr("u32"))),
		typeExpr("u32"), body))

	fn := lowerOne(t, root)
	assert.Equal(t, "add", fn.Name)
	// the return statement terminates the entry block and opens a fresh
	// (unreachable, here) block after it, which lowerFunc's fallthrough
	// handling then closes with an implicit return.
	require.Len(t, fn.Blocks, 2)

	insts := fn.Blocks[0].Insts
	// prologue: load_arg/store_var for a, then for b; body: load_var a,
	// load_var b, add.
	require.Len(t, insts, 7)
	assert.Equal(t, ir.OpLoadArg, insts[0].Op)
	assert.Equal(t, "a", insts[0].ArgName)
	assert.Equal(t, ir.OpStoreVar, insts[1].Op)
	assert.Equal(t, ir.OpLoadArg, insts[2].Op)
	assert.Equal(t, "b", insts[2].ArgName)
	assert.Equal(t, ir.OpStoreVar, insts[3].Op)
	assert.Equal(t, ir.OpLoadVar, insts[4].Op)
	assert.Equal(t, ir.OpLoadVar, insts[5].Op)
	assert.Equal(t, ir.OpAdd, insts[6].Op)

	assert.Equal(t, ir.TermRet, fn.Blocks[0].Term.Tag)
	assert.Equal(t, insts[6].Dst, fn.Blocks[0].Term.RetValue)
}

func TestLowerParamTypeCarriedThrough(t *testing.T) {
	ptr := ptrTypeExpr("u8")
	body := block(ref(returnExpr(ref(ident("p")))))
	root := program(fnDecl("at", paramList(paramDecl("p", ptr)), ptr, body))

	fn := lowerOne(t, root)
	require.Len(t, fn.CallArgs, 1)
	assert.Equal(t, "p", fn.CallArgs[0].Name)
	assert.Same(t, ptr, fn.CallArgs[0].Type)
	assert.Equal(t, ir.OpLoadArg, fn.Blocks[0].Insts[0].Op)
}

func TestLowerWhileLoop(t *testing.T) {
	whilePrefix := &ast.Node{Tag: ast.WhilePrefix, Payload: ast.WhilePrefixData{Condition: ref(ident("running"))}}
	whileStmt := &ast.Node{
		Tag: ast.WhileStatement,
		Payload: ast.WhileStatementData{
			Condition: whilePrefix,
			Block:     block(ref(ident("x"))),
		},
	}
	loopStmt := &ast.Node{Tag: ast.LoopStatement, Payload: ast.LoopStatementData{Statement: whileStmt}}
	labeled := &ast.Node{Tag: ast.LabeledStatement, Payload: ast.LabeledStatementData{Statement: loopStmt}}

	root := program(fnDecl("spin", paramList(), typeExpr("void"), block(labeled)))

	fn := lowerOne(t, root)
	// entry -> cond -> {body -> cont -> cond, next}
	require.Len(t, fn.Blocks, 5)
	assert.Equal(t, ir.TermJmp, fn.Blocks[0].Term.Tag, "entry jumps to the condition block")

	var condBlock *ir.Block
	for _, b := range fn.Blocks {
		if b.Term.Tag == ir.TermBr {
			condBlock = b
		}
	}
	require.NotNil(t, condBlock, "expected one block ending in a conditional branch")
}

func TestLowerIfExpr(t *testing.T) {
	ifExpr := &ast.Node{
		Tag: ast.IfExpr,
		Payload: ast.IfExprData{
			Condition:       ref(ident("cond")),
			Expr:            ref(ident("a")),
			ElsePayloadExpr: ref(ident("b")),
		},
	}
	body := block(ref(returnExpr(ref(ifExpr))))
	root := program(fnDecl("pick", paramList(paramDecl("cond", typeExpr("bool")),
		paramDecl("a", typeExpr("u32")), paramDecl("b", typeExpr("u32"))), typeExpr("u32"), body))

	fn := lowerOne(t, root)
	// entry (3 load_args + const_num 0 + br) -> bIf, bElse, bNext (terminated
	// by the return) -> one more unreachable block the return opens after
	// itself, closed by lowerFunc's implicit-return fallthrough handling.
	require.Len(t, fn.Blocks, 5)
	assert.Equal(t, ir.TermBr, fn.Blocks[0].Term.Tag)

	var copies int
	for _, b := range fn.Blocks {
		for _, inst := range b.Insts {
			if inst.Op == ir.OpCopy {
				copies++
			}
		}
	}
	assert.Equal(t, 2, copies, "both branches copy into the if_expr's result temp")
}

func TestLowerUnaryOpStack(t *testing.T) {
	expr := unary([]token.Token{token.Minus, token.Tilde}, ident("x"))
	root := program(fnDecl("f", paramList(paramDecl("x", typeExpr("i32"))), typeExpr("i32"), block(expr)))

	fn := lowerOne(t, root)
	insts := fn.Blocks[0].Insts
	// prologue: load_arg/store_var for x; body: load_var x, bw_not, negate.
	require.Len(t, insts, 5)
	assert.Equal(t, ir.OpLoadArg, insts[0].Op)
	assert.Equal(t, ir.OpStoreVar, insts[1].Op)
	assert.Equal(t, ir.OpLoadVar, insts[2].Op)
	assert.Equal(t, ir.OpBwNot, insts[3].Op)
	assert.Equal(t, ir.OpNegate, insts[4].Op)
	assert.Equal(t, insts[3].Dst, insts[4].Lhs, "negate consumes bw_not's result")
}

func TestLowerBinaryPrecedence(t *testing.T) {
	// a + b * c: the parser has already resolved precedence into nesting, so
	// lowering just walks the tree depth-first, lhs before rhs. The nested
	// binary_expr is passed through as-is: unary_expr only ever wraps a
	// primary-level node, never another binary_expr.
	mul := binary(ast.BinOpMul, ref(ident("b")), ref(ident("c")))
	add := binary(ast.BinOpAdd, ref(ident("a")), mul)
	root := program(fnDecl("f",
		paramList(paramDecl("a", typeExpr("i32")), paramDecl("b", typeExpr("i32")), paramDecl("c", typeExpr("i32"))),
		typeExpr("i32"), block(add)))

	fn := lowerOne(t, root)
	insts := fn.Blocks[0].Insts
	// prologue: (load_arg, store_var) * 3; body: load a, load b, load c, mul, add.
	require.Len(t, insts, 11)
	mulInst := insts[len(insts)-2]
	addInst := insts[len(insts)-1]
	assert.Equal(t, ir.OpMul, mulInst.Op)
	assert.Equal(t, ir.OpAdd, addInst.Op)
	assert.Equal(t, mulInst.Dst, addInst.Rhs, "mul must be computed before add combines it")
}

func TestLowerNumberLiteral(t *testing.T) {
	body := block(ref(returnExpr(ref(num("42")))))
	root := program(fnDecl("answer", paramList(), typeExpr("u32"), body))

	fn := lowerOne(t, root)
	insts := fn.Blocks[0].Insts
	require.Len(t, insts, 1)
	assert.Equal(t, ir.OpConstNum, insts[0].Op)
	assert.Equal(t, int64(42), insts[0].I64)
}

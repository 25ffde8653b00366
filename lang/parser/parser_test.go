package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/parser"
	"github.com/mna/ztoc/lang/token"
)

func parseSrc(t *testing.T, src string) *ast.Node {
	t.Helper()
	fset := token.NewFileSet()
	root, _, err := parser.Parse(fset, "test.zt", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

// fnAt returns the i-th top-level decl_fn's FnProtoData and its body Block
// (nil for a prototype-only declaration).
func fnAt(t *testing.T, root *ast.Node, i int) (ast.FnProtoData, *ast.Node) {
	t.Helper()
	members := root.Payload.(ast.ContainerMembersData)
	require.Greater(t, len(members.Decls), i)
	top := members.Decls[i].Payload.(ast.TopLevelDeclData)
	decl := top.Decl.Payload.(ast.DeclFnData)
	require.Equal(t, ast.FnProto, decl.FnProto.Tag)
	return decl.FnProto.Payload.(ast.FnProtoData), decl.Block
}

func TestParseTrivialFunction(t *testing.T) {
	root := parseSrc(t, `
pub fn add(a: u32, b: u32) u32 {
    return a + b;
}
`)
	proto, body := fnAt(t, root, 0)
	assert.Equal(t, "add", proto.Name)
	require.NotNil(t, proto.Params)
	params := proto.Params.Payload.(ast.ParamDeclListData).Params
	require.Len(t, params, 2)
	assert.Equal(t, "a", params[0].Payload.(ast.ParamDeclData).Identifier)
	assert.Equal(t, "b", params[1].Payload.(ast.ParamDeclData).Identifier)

	require.NotNil(t, body)
	stmts := body.Payload.(ast.BlockData).Statements
	require.Len(t, stmts, 1)
	require.Equal(t, ast.UnaryExpr, stmts[0].Tag)
	retExpr := stmts[0].Payload.(ast.UnaryExprData).Expr
	assert.Equal(t, ast.ReturnExpr, retExpr.Tag)

	ret := retExpr.Payload.(*ast.Node)
	require.Equal(t, ast.BinaryExpr, ret.Tag)
	bin := ret.Payload.(ast.BinaryExprData)
	assert.Equal(t, ast.BinOpAdd, bin.Op)
}

func TestParseExternDeclHasNoBody(t *testing.T) {
	root := parseSrc(t, `extern fn puts(s: [*:0]const u8) i32;`)
	_, body := fnAt(t, root, 0)
	assert.Nil(t, body)
}

func TestParseVarDeclAndIfElse(t *testing.T) {
	root := parseSrc(t, `
fn classify(x: i32) i32 {
    var result: i32 = 0;
    if (x > 0) {
        result = 1;
    } else {
        result = -1;
    }
    return result;
}
`)
	_, body := fnAt(t, root, 0)
	stmts := body.Payload.(ast.BlockData).Statements
	require.Len(t, stmts, 3)

	assert.Equal(t, ast.VarDeclStatement, stmts[0].Tag)
	vd := stmts[0].Payload.(ast.VarDeclStatementData)
	proto := vd.VarDecl.Payload.(ast.VarDeclProtoData)
	assert.Equal(t, "result", proto.Name)
	assert.False(t, proto.IsConst)

	require.Equal(t, ast.IfStatement, stmts[1].Tag)
	ifs := stmts[1].Payload.(ast.IfStatementData)
	require.Equal(t, ast.IfPrefix, ifs.Condition.Tag)
	require.NotNil(t, ifs.ElseStatement)
	require.Equal(t, ast.LabeledStatement, ifs.ElseStatement.Tag)
	assert.Equal(t, ast.Block, ifs.ElseStatement.Payload.(ast.LabeledStatementData).Statement.Tag)

	assign := ifs.Block.Payload.(ast.BlockData).Statements[0]
	require.Equal(t, ast.SingleAssignExpr, assign.Tag)
	sa := assign.Payload.(ast.SingleAssignExprData)
	assert.Equal(t, token.Equal, sa.AssignOp)
}

func TestParseWhileLoop(t *testing.T) {
	root := parseSrc(t, `
fn countdown(n: i32) void {
    while (n > 0) : (n = n - 1) {
        doSomething();
    }
}
`)
	_, body := fnAt(t, root, 0)
	stmts := body.Payload.(ast.BlockData).Statements
	require.Len(t, stmts, 1)
	require.Equal(t, ast.LoopStatement, stmts[0].Tag)

	loop := stmts[0].Payload.(ast.LoopStatementData)
	assert.False(t, loop.IsInline)
	require.Equal(t, ast.WhileStatement, loop.Statement.Tag)

	ws := loop.Statement.Payload.(ast.WhileStatementData)
	prefix := ws.Condition.Payload.(ast.WhilePrefixData)
	require.NotNil(t, prefix.WhileContinueExpr)
}

func TestParseForRangeLoop(t *testing.T) {
	root := parseSrc(t, `
fn sumTo(n: i32) i32 {
    var total: i32 = 0;
    for (0..n) |i| {
        total = total + i;
    }
    return total;
}
`)
	_, body := fnAt(t, root, 0)
	stmts := body.Payload.(ast.BlockData).Statements
	require.Len(t, stmts, 3)
	require.Equal(t, ast.LoopStatement, stmts[1].Tag)

	loop := stmts[1].Payload.(ast.LoopStatementData)
	require.Equal(t, ast.ForStatement, loop.Statement.Tag)
	fs := loop.Statement.Payload.(ast.ForStatementData)
	prefix := fs.Condition.Payload.(ast.ForPrefixData)

	args := prefix.ForArgs.Payload.(ast.ForArgsData).Args
	require.Len(t, args, 1)
	item := args[0].Payload.(ast.ForItemData)
	assert.True(t, item.IsRange)

	require.NotNil(t, prefix.PtrListPayload)
	payloads := prefix.PtrListPayload.Payload.(ast.PayloadListData).Payloads
	require.Len(t, payloads, 1)
	assert.Equal(t, "i", payloads[0].Payload.(ast.PayloadData).Name)
}

func TestParsePointerAndOptionalTypes(t *testing.T) {
	root := parseSrc(t, `fn at(p: *const u8, q: ?*u8) void {}`)
	proto, _ := fnAt(t, root, 0)
	params := proto.Params.Payload.(ast.ParamDeclListData).Params

	pType := params[0].Payload.(ast.ParamDeclData).Type
	te := pType.Payload.(ast.TypeExprData)
	require.Len(t, te.PrefixTypeOps, 1)
	require.Equal(t, ast.PrefixTypeOpPtr, te.PrefixTypeOps[0].Tag)
	ptr := te.PrefixTypeOps[0].Payload.(ast.PrefixTypePtrData)
	assert.Equal(t, ast.PtrConst, ptr.Modifiers&ast.PtrConst)

	qType := params[1].Payload.(ast.ParamDeclData).Type
	qte := qType.Payload.(ast.TypeExprData)
	require.Len(t, qte.PrefixTypeOps, 2)
	assert.Equal(t, ast.PrefixTypeOpOptional, qte.PrefixTypeOps[0].Tag)
	assert.Equal(t, ast.PrefixTypeOpPtr, qte.PrefixTypeOps[1].Tag)
}

func TestParseSliceAndArrayTypes(t *testing.T) {
	root := parseSrc(t, `fn f(xs: []const u8, ys: [4]i32) void {}`)
	proto, _ := fnAt(t, root, 0)
	params := proto.Params.Payload.(ast.ParamDeclListData).Params

	sliceType := params[0].Payload.(ast.ParamDeclData).Type.Payload.(ast.TypeExprData)
	require.Len(t, sliceType.PrefixTypeOps, 1)
	assert.Equal(t, ast.PrefixTypeOpSlice, sliceType.PrefixTypeOps[0].Tag)

	arrayType := params[1].Payload.(ast.ParamDeclData).Type.Payload.(ast.TypeExprData)
	require.Len(t, arrayType.PrefixTypeOps, 1)
	require.Equal(t, ast.PrefixTypeOpArray, arrayType.PrefixTypeOps[0].Tag)
	arr := arrayType.PrefixTypeOps[0].Payload.(ast.PrefixTypeArrayData)
	idx := arr.Array.Payload.(ast.ArrayTypeStartData).Index
	suf := unwrapUnary(t, idx)
	assert.Equal(t, ast.PrimaryTypeExpr, suf.Payload.(ast.SuffixExprData).Expr.Tag)
}

func TestParseFunctionCallAndFieldAccess(t *testing.T) {
	root := parseSrc(t, `
fn run() void {
    obj.method(1, 2);
}
`)
	_, body := fnAt(t, root, 0)
	stmt := body.Payload.(ast.BlockData).Statements[0]
	require.Equal(t, ast.SuffixExpr, unwrapUnary(t, stmt).Tag)

	suf := unwrapUnary(t, stmt).Payload.(ast.SuffixExprData)
	require.Len(t, suf.Suffixes, 2)
	assert.Equal(t, ast.SuffixTypeOpNamedAccess, suf.Suffixes[0].Tag)
	assert.Equal(t, "method", suf.Suffixes[0].Payload.(ast.SuffixTypeOpNamedAccessData).Name)
	assert.Equal(t, ast.FnCallArguments, suf.Suffixes[1].Tag)
	args := suf.Suffixes[1].Payload.(ast.FnCallArgumentsData).Exprs
	assert.Len(t, args, 2)
}

// unwrapUnary descends through the no-op unary_expr wrapper every
// statement-level expression bottoms out at, down to the underlying
// suffix/type expr.
func unwrapUnary(t *testing.T, n *ast.Node) *ast.Node {
	t.Helper()
	u := n.Payload.(ast.UnaryExprData)
	te := u.Expr.Payload.(ast.TypeExprData)
	eu := te.TypeExpr.Payload.(ast.ErrorUnionExprData)
	return eu.SuffixExpr
}

func TestParseSyntaxErrorReportsPosition(t *testing.T) {
	fset := token.NewFileSet()
	_, _, err := parser.Parse(fset, "bad.zt", []byte("fn broken( {}"))
	require.Error(t, err)

	perr, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, 1, perr.File.Position(perr.Pos).Line)
	assert.Contains(t, perr.Error(), "bad.zt")
}

func TestParseErrorUnionReturnType(t *testing.T) {
	root := parseSrc(t, `fn mayFail() Error!i32 { return 0; }`)
	proto, _ := fnAt(t, root, 0)
	assert.False(t, proto.IsReturnTypeError)

	te := proto.ReturnType.Payload.(ast.TypeExprData)
	eu := te.TypeExpr.Payload.(ast.ErrorUnionExprData)
	require.NotNil(t, eu.ErrorTypeExpr)
}

// Tier expectations mirror the operator table: or(2), and(3),
// comparisons(4), bitwise+orelse+catch(5), shifts(6), additive(7),
// multiplicative incl. array-spread and error-set-merge(8).
func TestParseBinaryPrecedenceTiers(t *testing.T) {
	cases := []struct {
		src string
		ops []ast.BinOp // pre-order over the statement's binary_expr nodes
	}{
		// bitwise and orelse share one tier, left-associative across it:
		// (a & b) orelse c
		{"_ = a & b orelse c;", []ast.BinOp{ast.BinOpOrelse, ast.BinOpBitAnd}},
		// array-spread is multiplicative: (a ** b) + c
		{"_ = a ** b + c;", []ast.BinOp{ast.BinOpAdd, ast.BinOpArraySpread}},
		// error-set-merge is multiplicative, above bitwise: a | (b || c)
		{"_ = a | b || c;", []ast.BinOp{ast.BinOpBitOr, ast.BinOpErrorSetMerge}},
		// shifts bind looser than additive: (a + b) << c
		{"_ = a + b << c;", []ast.BinOp{ast.BinOpShl, ast.BinOpAdd}},
		// comparisons bind looser than bitwise: a == (b & c)
		{"_ = a == b & c;", []ast.BinOp{ast.BinOpEq, ast.BinOpBitAnd}},
		// catch shares the bitwise tier, below multiplicative: a catch (b * c)
		{"_ = a catch b * c;", []ast.BinOp{ast.BinOpCatch, ast.BinOpMul}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			root := parseSrc(t, "pub fn f() void {\n    "+c.src+"\n}\n")
			bins := findAll(root, ast.BinaryExpr)
			require.Len(t, bins, len(c.ops))
			for i, op := range c.ops {
				assert.Equal(t, op, bins[i].Payload.(ast.BinaryExprData).Op, "op %d", i)
			}
		})
	}
}

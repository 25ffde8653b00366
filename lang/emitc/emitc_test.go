package emitc_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/emitc"
	"github.com/mna/ztoc/lang/ir"
	"github.com/mna/ztoc/lang/lower"
)

func ident(name string) *ast.Node {
	return &ast.Node{Tag: ast.PrimaryTypeExpr, Payload: ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeIdentifier, Raw: name}}
}

func num(raw string) *ast.Node {
	return &ast.Node{Tag: ast.PrimaryTypeExpr, Payload: ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeNumberLiteral, Raw: raw}}
}

func ref(inner *ast.Node) *ast.Node {
	return &ast.Node{Tag: ast.UnaryExpr, Payload: ast.UnaryExprData{Expr: inner}}
}

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

func emitOne(t *testing.T, root *ast.Node) string {
	t.Helper()
	prog, err := lower.Lower(root)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, emitc.New(&buf).Emit(prog))
	return buf.String()
}

func TestEmitPrologueAndForwardDecl(t *testing.T) {
	body := block(ref(returnExpr(binary(ast.BinOpAdd, ref(ident("a")), ref(ident("b"))))))
	root := program(fnDecl("add",
		paramList(paramDecl("a", typeExpr("u32")), paramDecl("b", typeExpr("u32"))),
		typeExpr("u32"), body))

	out := emitOne(t, root)
	assert.Contains(t, out, "#include <stdint.h>")
	assert.Contains(t, out, "uint32_t add(uint32_t a, uint32_t b);")
	assert.Contains(t, out, "uint32_t add(uint32_t a, uint32_t b)\n{")
}

func TestEmitVoidNoArgsFunction(t *testing.T) {
	root := program(fnDecl("spin", paramList(), typeExpr("void"), block()))

	out := emitOne(t, root)
	assert.Contains(t, out, "void spin(void);")
	assert.Contains(t, out, "void spin(void)\n{")
	assert.Contains(t, out, "return;")
}

func TestEmitPointerParamRoundtrips(t *testing.T) {
	ptr := ptrTypeExpr("u8")
	body := block(ref(returnExpr(ref(ident("p")))))
	root := program(fnDecl("at", paramList(paramDecl("p", ptr)), ptr, body))

	out := emitOne(t, root)
	assert.Contains(t, out, "uint8_t* at(uint8_t* p)")
	assert.Contains(t, out, "t0 = (intptr_t)p;")
	assert.Contains(t, out, "v_p = t0;")
	assert.Contains(t, out, "return (uint8_t*)t1;")
}

func TestEmitBinaryOperators(t *testing.T) {
	body := block(ref(returnExpr(binary(ast.BinOpLtEq, ref(ident("a")), ref(ident("b"))))))
	root := program(fnDecl("cmp",
		paramList(paramDecl("a", typeExpr("i32")), paramDecl("b", typeExpr("i32"))),
		typeExpr("bool"), body))

	out := emitOne(t, root)
	// lt_eq must map to "<=", never a swapped ">=".
	assert.Contains(t, out, "= (t2) <= (t3);")
}

func TestEmitWhileLoopUsesGotoLabels(t *testing.T) {
	whilePrefix := &ast.Node{Tag: ast.WhilePrefix, Payload: ast.WhilePrefixData{Condition: ref(ident("running"))}}
	whileStmt := &ast.Node{
		Tag: ast.WhileStatement,
		Payload: ast.WhileStatementData{
			Condition: whilePrefix,
			Block:     block(ref(ident("running"))),
		},
	}
	loopStmt := &ast.Node{Tag: ast.LoopStatement, Payload: ast.LoopStatementData{Statement: whileStmt}}
	labeled := &ast.Node{Tag: ast.LabeledStatement, Payload: ast.LabeledStatementData{Statement: loopStmt}}

	root := program(fnDecl("spin", paramList(), typeExpr("void"), block(labeled)))

	out := emitOne(t, root)
	assert.Contains(t, out, "goto b")
	assert.True(t, strings.Contains(out, "if (t") && strings.Contains(out, ") goto b"))
	assert.Contains(t, out, "b0:;")
}

func TestEmitUnreachable(t *testing.T) {
	body := block(ref(&ast.Node{Tag: ast.PrimaryTypeExpr, Payload: ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeUnreachable}}))
	root := program(fnDecl("never", paramList(), typeExpr("void"), body))

	out := emitOne(t, root)
	assert.Contains(t, out, "__builtin_unreachable();")
}

func TestCTypeNameRejectsErrorUnion(t *testing.T) {
	errUnion := &ast.Node{Tag: ast.ErrorUnionExpr, Payload: ast.ErrorUnionExprData{
		ErrorTypeExpr: ident("Error"),
		SuffixExpr:    ident("u8"),
	}}
	retType := &ast.Node{Tag: ast.TypeExpr, Payload: ast.TypeExprData{TypeExpr: errUnion}}
	root := program(fnDecl("f", paramList(), retType, block()))

	prog, err := lower.Lower(root)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = emitc.New(&buf).Emit(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error unions")
}

// ir.TermNext reaching the emitter means lowering left a block unterminated:
// a lowering bug, not a user error, so genTerm must still surface it.
func TestEmitUnterminatedBlockIsAnError(t *testing.T) {
	b := ir.NewBuilder()
	fn := &ir.Func{Name: "broken", RetType: typeExpr("void")}
	b.StartFunc(fn)
	b.SetBlock(b.NewBlock())
	b.FinishFunc()

	var buf bytes.Buffer
	err := emitc.New(&buf).Emit(b.Program)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated")
}

func TestEmitPreludeReplacesIncludes(t *testing.T) {
	root := program(fnDecl("noop", paramList(), typeExpr("void"), block()))
	prog, err := lower.Lower(root)
	require.NoError(t, err)

	var buf bytes.Buffer
	e := emitc.New(&buf)
	e.Prelude = []byte("typedef unsigned z_u32;\n")
	require.NoError(t, e.Emit(prog))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "/* Generated by ztoc */\n"))
	assert.Contains(t, out, "/* prelude.h begin */\ntypedef unsigned z_u32;\n/* prelude.h end */")
	assert.NotContains(t, out, "#include <stdint.h>")
}

func TestEmitDeclModifiers(t *testing.T) {
	proto := &ast.Node{Tag: ast.FnProto, Payload: ast.FnProtoData{Name: "fast", Params: paramList(), ReturnType: typeExpr("void")}}
	decl := &ast.Node{Tag: ast.DeclFn, Payload: ast.DeclFnData{FnProto: proto, Block: block(), Modifiers: ast.ModInline}}
	top := &ast.Node{Tag: ast.TopLevelDecl, Payload: ast.TopLevelDeclData{Decl: decl}}

	externProto := &ast.Node{Tag: ast.FnProto, Payload: ast.FnProtoData{Name: "puts", Params: paramList(paramDecl("s", ptrTypeExpr("u8"))), ReturnType: typeExpr("c_int")}}
	externDecl := &ast.Node{Tag: ast.DeclFn, Payload: ast.DeclFnData{FnProto: externProto, Modifiers: ast.ModExtern}}
	externTop := &ast.Node{Tag: ast.TopLevelDecl, Payload: ast.TopLevelDeclData{Decl: externDecl, IsPub: true}}

	out := emitOne(t, program(top, externTop))
	// non-pub, so static, plus the inline modifier
	assert.Contains(t, out, "static inline void fast(void);")
	// prototype-only extern declaration: forward decl, no body
	assert.Contains(t, out, "extern int puts(uint8_t* s);")
	assert.NotContains(t, out, "extern int puts(uint8_t* s)\n{")
}

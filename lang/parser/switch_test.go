package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ztoc/lang/ast"
)

// findAll collects every node with the given tag reachable from root.
func findAll(root *ast.Node, tag ast.Tag) []*ast.Node {
	var out []*ast.Node
	var v ast.VisitorFunc
	v = func(n *ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter && n.Tag == tag {
			out = append(out, n)
		}
		return v
	}
	ast.Walk(v, root)
	return out
}

func TestParseSwitchStatement(t *testing.T) {
	root := parseSrc(t, `
pub fn f(x: u32) u32 {
    switch (x) {
        0 => 1,
        1, 2 => 2,
        3...5 => |v| v,
        else => 0,
    };
    return 0;
}
`)
	switches := findAll(root, ast.SwitchExpr)
	require.Len(t, switches, 1)
	sw := switches[0].Payload.(ast.SwitchExprData)
	require.NotNil(t, sw.Expr)

	prongs := sw.SwitchProngList.Payload.(ast.SwitchProngListData).Prongs
	require.Len(t, prongs, 4)

	p0 := prongs[0].Payload.(ast.SwitchProngData)
	c0 := p0.SwitchCase.Payload.(ast.SwitchCaseData)
	assert.False(t, c0.IsElse)
	assert.Len(t, c0.Cases, 1)
	assert.Nil(t, p0.Payload)

	c1 := prongs[1].Payload.(ast.SwitchProngData).SwitchCase.Payload.(ast.SwitchCaseData)
	assert.Len(t, c1.Cases, 2)

	p2 := prongs[2].Payload.(ast.SwitchProngData)
	c2 := p2.SwitchCase.Payload.(ast.SwitchCaseData)
	require.Len(t, c2.Cases, 1)
	item := c2.Cases[0].Payload.(ast.SwitchItemData)
	assert.NotNil(t, item.End, "3...5 is a range item")
	require.NotNil(t, p2.Payload)
	assert.Equal(t, "v", p2.Payload.Payload.(ast.PayloadIndexData).Name)

	c3 := prongs[3].Payload.(ast.SwitchProngData).SwitchCase.Payload.(ast.SwitchCaseData)
	assert.True(t, c3.IsElse)
}

func TestParseLabeledSwitchStatement(t *testing.T) {
	root := parseSrc(t, `
pub fn f(x: u32) void {
    blk: switch (x) {
        else => 0,
    }
}
`)
	labeled := findAll(root, ast.LabeledStatement)
	require.Len(t, labeled, 1)
	d := labeled[0].Payload.(ast.LabeledStatementData)
	assert.Equal(t, "blk", d.Label)
	assert.Equal(t, ast.SwitchExpr, d.Statement.Tag)
}

func TestParseInlineSwitchProng(t *testing.T) {
	root := parseSrc(t, `
pub fn f(x: u32) void {
    switch (x) {
        inline 0 => 1,
        else => 0,
    };
}
`)
	switches := findAll(root, ast.SwitchExpr)
	require.Len(t, switches, 1)
	prongs := switches[0].Payload.(ast.SwitchExprData).SwitchProngList.Payload.(ast.SwitchProngListData).Prongs
	require.Len(t, prongs, 2)
	assert.True(t, prongs[0].Payload.(ast.SwitchProngData).IsInline)
}

func TestParseAsmExpr(t *testing.T) {
	root := parseSrc(t, `
pub fn g() void {
    asm volatile ("nop" : [ret] "=r" (-> u32) : [x] "r" (1) : "memory");
}
`)
	asms := findAll(root, ast.AsmExpr)
	require.Len(t, asms, 1)
	d := asms[0].Payload.(ast.AsmExprData)
	assert.True(t, d.IsVolatile)
	require.NotNil(t, d.Expr)
	require.NotNil(t, d.AsmOutput)

	out := d.AsmOutput.Payload.(ast.AsmOutputData)
	outs := out.AsmOutputList.Payload.(ast.AsmOutputListData).AsmOutputs
	require.Len(t, outs, 1)
	oi := outs[0].Payload.(ast.AsmOutputItemData)
	assert.Equal(t, "ret", oi.Name)
	assert.Equal(t, `"=r"`, oi.Lit)
	tn := oi.OutputExpr.Payload.(ast.TypeOrNameData)
	assert.True(t, tn.IsType)

	require.NotNil(t, out.AsmInput)
	in := out.AsmInput.Payload.(ast.AsmInputData)
	ins := in.AsmInputList.Payload.(ast.AsmInputListData).AsmInputs
	require.Len(t, ins, 1)
	ii := ins[0].Payload.(ast.AsmInputItemData)
	assert.Equal(t, "x", ii.Name)
	assert.Equal(t, `"r"`, ii.Lit)
	assert.NotNil(t, in.Clobbers)
}

func TestParseAsmExprNoOutputs(t *testing.T) {
	root := parseSrc(t, `
pub fn g() void {
    asm ("nop");
}
`)
	asms := findAll(root, ast.AsmExpr)
	require.Len(t, asms, 1)
	d := asms[0].Payload.(ast.AsmExprData)
	assert.False(t, d.IsVolatile)
	assert.Nil(t, d.AsmOutput)
}

func TestParseErrorSetDecl(t *testing.T) {
	root := parseSrc(t, `
const FileError = error { NotFound, AccessDenied };
`)
	lists := findAll(root, ast.IdentifierList)
	require.Len(t, lists, 1)
	assert.Equal(t, []string{"NotFound", "AccessDenied"}, lists[0].Payload.(ast.IdentifierListData).Idents)

	primaries := findAll(root, ast.PrimaryTypeExpr)
	var found bool
	for _, p := range primaries {
		if p.Payload.(ast.PrimaryTypeExprData).PrimaryTag == ast.PrimaryTypeErrorSetDecl {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseLabeledBlockExpr(t *testing.T) {
	root := parseSrc(t, `
const v: u32 = blk: {
    break :blk 1;
};
`)
	blocks := findAll(root, ast.LabeledBlock)
	require.Len(t, blocks, 1)
	d := blocks[0].Payload.(ast.LabeledTypeExprData)
	assert.Equal(t, "blk", d.Label)
	assert.Equal(t, ast.Block, d.Node.Tag)

	breaks := findAll(root, ast.BreakExpr)
	require.Len(t, breaks, 1)
	assert.Equal(t, "blk", breaks[0].Payload.(ast.BreakExprData).Label)
}

func TestParseWhileExprValue(t *testing.T) {
	root := parseSrc(t, `
pub fn f(x: u32) u32 {
    const r = while (x) 1 else 2;
    return r;
}
`)
	loops := findAll(root, ast.LoopExpr)
	require.Len(t, loops, 1)
	d := loops[0].Payload.(ast.LoopExprData)
	assert.Equal(t, "", d.Label)
	require.Equal(t, ast.WhileExpr, d.LoopExpr.Tag)
	wd := d.LoopExpr.Payload.(ast.WhileExprData)
	assert.Equal(t, ast.WhilePrefix, wd.Condition.Tag)
	assert.NotNil(t, wd.ElseExpr)
}

func TestParseIfTypeExpr(t *testing.T) {
	// if in a type annotation goes through the TypeExpr grammar, not the
	// expression-position IfExpr
	root := parseSrc(t, `
var x: if (cond) u32 else u64 = 0;
`)
	ifs := findAll(root, ast.IfTypeExpr)
	require.Len(t, ifs, 1)
	d := ifs[0].Payload.(ast.IfTypeExprData)
	assert.Equal(t, ast.IfPrefix, d.IfPrefix.Tag)
	require.NotNil(t, d.TypeExpr)
	require.NotNil(t, d.ElsePayloadTypeExpr)
}

func TestParseBareBlockStatement(t *testing.T) {
	root := parseSrc(t, `
pub fn f() void {
    {
        _ = 1;
    }
}
`)
	labeled := findAll(root, ast.LabeledStatement)
	require.Len(t, labeled, 1)
	d := labeled[0].Payload.(ast.LabeledStatementData)
	assert.Equal(t, "", d.Label)
	assert.Equal(t, ast.Block, d.Statement.Tag)
}

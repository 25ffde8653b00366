// Package debug implements the textual IR dump driven by the `-ir` CLI
// flag: stable, indentation-based output the golden-test suite relies on.
// One line per instruction/terminator, "b%d:" block labels, two levels of
// indent per instruction (inside a function, inside a block). The `-ast`
// dump lives on lang/ast.Printer instead, since it walks ast.Node
// directly; this package is the IR-side counterpart.
package debug

import (
	"fmt"
	"io"

	"github.com/mna/ztoc/lang/ir"
)

// IrPrinter renders an ir.Program as the stable textual dump.
type IrPrinter struct {
	Output io.Writer
}

func (p *IrPrinter) Print(prog *ir.Program) error {
	pp := &irDumper{w: p.Output}
	for _, fn := range prog.Funcs {
		pp.renderFunc(fn)
	}
	return pp.err
}

type irDumper struct {
	w   io.Writer
	err error
}

func (p *irDumper) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *irDumper) renderFunc(fn *ir.Func) {
	p.printf("%s:\n", fn.Name)
	for i, b := range fn.Blocks {
		p.renderBlock(ir.BlockID(i), b)
	}
	p.printf("\n")
}

func (p *irDumper) renderBlock(id ir.BlockID, b *ir.Block) {
	p.printf("  b%d:\n", id)
	for _, inst := range b.Insts {
		p.renderInst(inst)
	}
	p.renderTerm(b.Term)
}

// renderInst prints one instruction line. Per-temp static types aren't
// tracked by ir.Inst (see DESIGN.md's lang/emitc entry, "Per-temp
// typing"), so no type-tag annotation precedes the op name.
func (p *irDumper) renderInst(inst ir.Inst) {
	p.printf("    ")
	switch inst.Op {
	case ir.OpCall:
		p.printf("%s %d %s", inst.Op, inst.Dst, inst.CallFn.Sym)
		for _, a := range inst.CallArgs {
			p.printf(" %d", a)
		}
		p.printf("\n")

	case ir.OpUnreachable, ir.OpInvalid:
		p.printf("%s\n", inst.Op)

	case ir.OpNegate, ir.OpBwNot, ir.OpBwAnd, ir.OpNot, ir.OpCopy:
		p.printf("%s %d %d\n", inst.Op, inst.Dst, inst.Lhs)

	case ir.OpConstNum, ir.OpConstChar:
		p.printf("%s %d $%d\n", inst.Op, inst.Dst, inst.I64)

	case ir.OpConstBytes:
		p.printf("%s %d `%s`\n", inst.Op, inst.Dst, inst.Bytes)

	case ir.OpOr, ir.OpAnd, ir.OpEq, ir.OpNeq, ir.OpLt, ir.OpGt, ir.OpLte, ir.OpGte,
		ir.OpBitAnd, ir.OpBitXor, ir.OpShl, ir.OpShr, ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod:
		p.printf("%s %d %d %d\n", inst.Op, inst.Dst, inst.Lhs, inst.Rhs)

	case ir.OpStoreVar:
		p.printf("%s v%d %d\n", inst.Op, inst.Var, inst.VarValue)

	case ir.OpLoadVar:
		p.printf("%s %d v%d\n", inst.Op, inst.Dst, inst.Var)

	case ir.OpLoadArg:
		p.printf("%s %d %q\n", inst.Op, inst.Dst, inst.ArgName)

	default:
		p.printf("%s %d\n", inst.Op, inst.Dst)
	}
}

func (p *irDumper) renderTerm(t ir.Term) {
	p.printf("    ")
	switch t.Tag {
	case ir.TermBr:
		p.printf("br %d b%d b%d\n", t.BrCond, t.BrT, t.BrF)
	case ir.TermJmp:
		p.printf("jmp b%d\n", t.JmpTarget)
	case ir.TermRet:
		p.printf("ret %d\n", t.RetValue)
	case ir.TermNext:
		p.printf("next\n")
	}
}

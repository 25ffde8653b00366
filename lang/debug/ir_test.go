package debug

import (
	"strings"
	"testing"

	"github.com/mna/ztoc/lang/ir"
)

func TestIrPrinter(t *testing.T) {
	b := ir.NewBuilder()
	f := &ir.Func{Name: "main"}
	b.StartFunc(f)
	entry := b.NewBlock()
	b.SetBlock(entry)

	v := b.InternVar("i")
	c0 := b.AppendInst(ir.Inst{Op: ir.OpConstNum, Dst: b.NewTemp(), I64: 0})
	b.EmitStoreVar(v, c0)

	cond := b.NewBlock()
	body := b.NewBlock()
	next := b.NewBlock()
	b.TermJmp(cond)

	b.SetBlock(cond)
	loaded := b.EmitLoadVar(v)
	c10 := b.AppendInst(ir.Inst{Op: ir.OpConstNum, Dst: b.NewTemp(), I64: 10})
	cmp := b.AppendInst(ir.Inst{Op: ir.OpNeq, Dst: b.NewTemp(), Lhs: loaded, Rhs: c10})
	b.TermBr(cmp, body, next)

	b.SetBlock(body)
	b.TermRet(ir.InvalidID)

	b.SetBlock(next)
	b.TermRet(ir.InvalidID)

	b.FinishFunc()

	var buf strings.Builder
	p := &IrPrinter{Output: &buf}
	if err := p.Print(b.Program); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	for _, want := range []string{
		"main:\n",
		"  b0:\n",
		"    load_num 0 $0\n",
		"    store_var v0 0\n",
		"    jmp b1\n",
		"  b1:\n",
		"    load_var 1 v0\n",
		"    load_num 2 $10\n",
		"    neq 3 1 2\n",
		"    br 3 b2 b3\n",
		"  b2:\n",
		"    ret 4294967295\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dump missing %q; full dump:\n%s", want, got)
		}
	}
}

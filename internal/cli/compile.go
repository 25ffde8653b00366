package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/mna/mainer"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/debug"
	"github.com/mna/ztoc/lang/emitc"
	"github.com/mna/ztoc/lang/ir"
	"github.com/mna/ztoc/lang/lower"
	"github.com/mna/ztoc/lang/parser"
	"github.com/mna/ztoc/lang/scanner"
	"github.com/mna/ztoc/lang/token"
)

// preludeFile is the vendor header read from the -lib directory and inlined
// into the generated C in place of the standard includes.
const preludeFile = "prelude.h"

// compile runs the phase pipeline over c.input: tokenize, parse, lower,
// emit, stopping early at whichever dump flag is set. All diagnostics go to
// stdio.Stdout.
func (c *Cmd) compile(ctx context.Context, stdio mainer.Stdio) error {
	src, err := os.ReadFile(c.input)
	if err != nil {
		fmt.Fprintln(stdio.Stdout, err)
		return err
	}

	if c.Tokens {
		return c.printTokens(stdio, src)
	}

	fset := token.NewFileSet()
	root, _, err := parser.Parse(fset, c.input, src)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			fmt.Fprintf(stdio.Stdout, "%s\n%s\n", perr, perr.Snippet(src))
		} else {
			fmt.Fprintln(stdio.Stdout, err)
		}
		return err
	}

	if c.AST {
		p := ast.Printer{Output: stdio.Stdout}
		return p.Print(root)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	prog, err := lower.Lower(root)
	if err != nil {
		fmt.Fprintln(stdio.Stdout, err)
		return err
	}

	if c.IR {
		p := debug.IrPrinter{Output: stdio.Stdout}
		return p.Print(prog)
	}

	if c.Report {
		c.printReport(stdio, src, root, prog)
	}

	if c.NoEmitBin {
		return nil
	}
	return c.emitC(stdio, prog)
}

// printTokens implements -tokens: one line per token in the
// `|<index>: <tag-name>: <slice>` shape, stopping at the first eof or
// invalid token as every downstream consumer must.
func (c *Cmd) printTokens(stdio mainer.Stdio, src []byte) error {
	s := scanner.New(src)
	for i := 0; ; i++ {
		r := s.Next()
		fmt.Fprintf(stdio.Stdout, "|%d: %s: %s\n", i, r.Tok, src[r.Start:r.End])
		if r.Tok == token.EOF || r.Tok == token.Invalid {
			return nil
		}
	}
}

// printReport implements -report: approximate arena sizes and entry counts
// for the token stream, the AST and the IR.
func (c *Cmd) printReport(stdio mainer.Stdio, src []byte, root *ast.Node, prog *ir.Program) {
	fset := token.NewFileSet()
	file := fset.AddFile(c.input, len(src))
	toks := scanner.ScanAll(src, file)

	nodes := 0
	var count ast.VisitorFunc
	count = func(n *ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			nodes++
		}
		return count
	}
	ast.Walk(count, root)

	insts := 0
	for _, fn := range prog.Funcs {
		for _, blk := range fn.Blocks {
			insts += len(blk.Insts)
		}
	}

	kib := func(n int, size uintptr) float64 {
		return float64(n) * float64(size) / 1024
	}
	fmt.Fprintf(stdio.Stdout, "tokens: size=%.2fKiB, count=%d\n", kib(len(toks), unsafe.Sizeof(scanner.Result{})), len(toks))
	fmt.Fprintf(stdio.Stdout, " nodes: size=%.2fKiB, count=%d\n", kib(nodes, unsafe.Sizeof(ast.Node{})), nodes)
	fmt.Fprintf(stdio.Stdout, "    ir: size=%.2fKiB, count=%d\n", kib(insts, unsafe.Sizeof(ir.Inst{})), insts)
}

// emitC writes the generated C translation unit to c.Output, inlining the
// prelude read from the -lib directory. On a fatal emission error the
// partial output file is abandoned in place (callers may unlink).
func (c *Cmd) emitC(stdio mainer.Stdio, prog *ir.Program) error {
	prelude, err := os.ReadFile(filepath.Join(c.LibDir, preludeFile))
	if err != nil {
		fmt.Fprintln(stdio.Stdout, err)
		return err
	}

	f, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(stdio.Stdout, err)
		return err
	}
	e := emitc.New(f)
	e.Prelude = prelude
	if err := e.Emit(prog); err != nil {
		f.Close()
		fmt.Fprintln(stdio.Stdout, err)
		return err
	}
	return f.Close()
}

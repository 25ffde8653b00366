// Package emitc implements the C code generator: given a lowered
// ir.Program, it writes a single freestanding C translation unit —
// prologue (stdlib includes, or an inlined vendor prelude), forward
// declarations for every function, then one body at a time.
//
// Bodies are emitted from the lowered three-address CFG rather than the
// AST: each ir.Block becomes a C label and jmp/br/ret terminators become
// goto / if-goto / return, so structured control flow round-trips through
// the IR without being reconstructed.
package emitc

import (
	"fmt"
	"io"
	"strings"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/ir"
	"github.com/mna/ztoc/lang/types"
)

// Error is an emission failure: an IR shape the emitter doesn't know how to
// turn into C, always fatal.
type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

// Emitter writes one C translation unit to w, four-space indented per
// brace depth.
//
// Prelude, when non-empty, is a vendor header inlined verbatim in place
// of the three stdlib includes; internal/cli reads it from the -lib
// directory's prelude.h.
type Emitter struct {
	Prelude []byte

	w      io.Writer
	indent int
}

func New(w io.Writer) *Emitter { return &Emitter{w: w} }

func (e *Emitter) emit(format string, args ...any)  { fmt.Fprintf(e.w, format, args...) }
func (e *Emitter) emitl(format string, args ...any) { fmt.Fprintf(e.w, format+"\n", args...) }
func (e *Emitter) emitt()                           { fmt.Fprint(e.w, strings.Repeat("    ", e.indent)) }

// Emit writes prog in full: prologue, forward declarations (C, unlike this
// language, has no implicit forward reference across top-level decls), then
// every function body.
func (e *Emitter) Emit(prog *ir.Program) error {
	e.genPrologue()
	if err := e.genForwardDecls(prog); err != nil {
		return err
	}
	for _, fn := range prog.Funcs {
		if err := e.genFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) genPrologue() {
	e.emitl("/* Generated by ztoc */")
	if len(e.Prelude) > 0 {
		e.emitl("")
		e.emitl("/* prelude.h begin */")
		e.emit("%s", e.Prelude)
		e.emitl("/* prelude.h end */")
		e.emitl("")
		return
	}
	e.emitl("#include <stddef.h>")
	e.emitl("#include <stdbool.h>")
	e.emitl("#include <stdint.h>")
	e.emitl("")
}

func (e *Emitter) genForwardDecls(prog *ir.Program) error {
	for _, fn := range prog.Funcs {
		if err := e.genFunctionProto(fn); err != nil {
			return err
		}
		e.emitl(";")
	}
	e.emitl("")
	return nil
}

func (e *Emitter) genFunctionProto(fn *ir.Func) error {
	switch {
	case fn.Modifiers&ast.ModExtern != 0:
		e.emit("extern ")
	case fn.IsStatic && fn.Modifiers&ast.ModExport == 0:
		e.emit("static ")
	}
	if fn.Modifiers&ast.ModInline != 0 {
		e.emit("inline ")
	}
	ret, err := cTypeName(fn.RetType)
	if err != nil {
		return err
	}
	e.emit("%s %s", ret, fn.Name)

	if len(fn.CallArgs) == 0 {
		e.emit("(void)")
		return nil
	}
	e.emit("(")
	for i, p := range fn.CallArgs {
		if i > 0 {
			e.emit(", ")
		}
		if p.IsVarargs {
			e.emit("...")
			continue
		}
		typ, err := cTypeName(p.Type)
		if err != nil {
			return err
		}
		e.emit("%s %s", typ, p.Name)
	}
	e.emit(")")
	return nil
}

// genFunction emits one function's full definition. A fn with no blocks is
// a prototype-only (extern) declaration, already covered by the forward
// declaration pass, so it produces no body.
func (e *Emitter) genFunction(fn *ir.Func) error {
	if len(fn.Blocks) == 0 {
		return nil
	}
	if err := e.genFunctionProto(fn); err != nil {
		return err
	}
	e.emitl("")
	e.emitl("{")
	e.indent++

	// Every temp gets a single generic-width local: the IR carries values,
	// not static types, so there is no per-temp C type to recover here (see
	// DESIGN.md's lang/emitc entry, "Per-temp typing").
	for i := ir.TempID(0); i < fn.NextTemp; i++ {
		e.emitt()
		e.emitl("intptr_t t%d;", i)
	}
	for _, v := range fn.Vars {
		typ, err := cTypeName(v.Type)
		if err != nil {
			typ = "intptr_t" // var x = ...; with no type annotation to resolve
		}
		e.emitt()
		e.emitl("%s v_%s;", typ, v.Name)
	}

	for i, blk := range fn.Blocks {
		e.emitl("b%d:;", i)
		for _, inst := range blk.Insts {
			if err := e.genInst(fn, inst); err != nil {
				return err
			}
		}
		if err := e.genTerm(fn, blk.Term); err != nil {
			return err
		}
	}

	e.indent--
	e.emitl("}")
	e.emitl("")
	return nil
}

// binOpSymbols maps the lowered binary ops to their C operators; ops
// lang/lower rejects never reach here. lt/gt-or-equal map the
// straightforward way — see DESIGN.md for the note on this table.
var binOpSymbols = map[ir.Op]string{
	ir.OpOr: "||", ir.OpAnd: "&&", ir.OpEq: "==", ir.OpNeq: "!=",
	ir.OpLt: "<", ir.OpGt: ">", ir.OpLte: "<=", ir.OpGte: ">=",
	ir.OpBitAnd: "&", ir.OpBitXor: "^", ir.OpShl: "<<", ir.OpShr: ">>",
	ir.OpAdd: "+", ir.OpSub: "-", ir.OpMul: "*", ir.OpDiv: "/", ir.OpMod: "%",
}

func (e *Emitter) genInst(fn *ir.Func, inst ir.Inst) error {
	e.emitt()
	switch inst.Op {
	case ir.OpCall:
		e.emit("t%d = (intptr_t)%s(", inst.Dst, inst.CallFn.Sym)
		for i, a := range inst.CallArgs {
			if i > 0 {
				e.emit(", ")
			}
			e.emit("t%d", a)
		}
		e.emitl(");")

	case ir.OpConstNum:
		e.emitl("t%d = %d;", inst.Dst, inst.I64)

	case ir.OpConstChar:
		e.emitl("t%d = %d; /* char literal */", inst.Dst, inst.I64)

	case ir.OpConstBytes:
		e.emitl("t%d = (intptr_t)%s;", inst.Dst, inst.Bytes)

	case ir.OpLoadArg:
		e.emitl("t%d = (intptr_t)%s;", inst.Dst, inst.ArgName)

	case ir.OpCopy:
		e.emitl("t%d = t%d;", inst.Dst, inst.Lhs)

	case ir.OpLoadVar:
		e.emitl("t%d = v_%s;", inst.Dst, fn.Vars[inst.Var].Name)

	case ir.OpStoreVar:
		e.emitl("v_%s = t%d;", fn.Vars[inst.Var].Name, inst.VarValue)

	case ir.OpNegate:
		e.emitl("t%d = -t%d;", inst.Dst, inst.Lhs)

	case ir.OpBwNot:
		e.emitl("t%d = ~t%d;", inst.Dst, inst.Lhs)

	case ir.OpNot:
		e.emitl("t%d = !t%d;", inst.Dst, inst.Lhs)

	case ir.OpBwAnd:
		e.emitl("t%d = (intptr_t)&t%d;", inst.Dst, inst.Lhs)

	case ir.OpUnreachable:
		e.emitl("__builtin_unreachable();")

	default:
		sym, ok := binOpSymbols[inst.Op]
		if !ok {
			return &Error{Msg: "unsupported ir op " + inst.Op.String()}
		}
		e.emitl("t%d = (t%d) %s (t%d);", inst.Dst, inst.Lhs, sym, inst.Rhs)
	}
	return nil
}

func (e *Emitter) genTerm(fn *ir.Func, t ir.Term) error {
	e.emitt()
	switch t.Tag {
	case ir.TermJmp:
		e.emitl("goto b%d;", t.JmpTarget)

	case ir.TermBr:
		e.emitl("if (t%d) goto b%d; else goto b%d;", t.BrCond, t.BrT, t.BrF)

	case ir.TermRet:
		retType, err := cTypeName(fn.RetType)
		if err != nil {
			return err
		}
		if retType == "void" || t.RetValue == ir.InvalidID {
			e.emitl("return;")
		} else {
			e.emitl("return (%s)t%d;", retType, t.RetValue)
		}

	default:
		return &Error{Msg: "block left unterminated by lowering"}
	}
	return nil
}

// cTypeName resolves a type_expr node (or one of the wrappers that may
// stand in for one) to its C spelling: pointer prefix-type-ops append
// "*"/"**" (with a leading "const " for ast.PtrConst), everything else
// bottoms out at a builtin identifier resolved through lang/types.CName.
// "void" is handled directly since it never was one of the builtin names
// the type pool interns (it names no value, only an absence of one).
func cTypeName(n *ast.Node) (string, error) {
	if n == nil {
		return "intptr_t", nil
	}

	switch n.Tag {
	case ast.TypeExpr:
		d := n.Payload.(ast.TypeExprData)
		name, err := cTypeName(d.TypeExpr)
		if err != nil {
			return "", err
		}
		for _, op := range d.PrefixTypeOps {
			if op.Tag != ast.PrefixTypeOpPtr {
				return "", &Error{Msg: "unsupported type prefix op " + op.Tag.String()}
			}
			p := op.Payload.(ast.PrefixTypePtrData)
			if p.Ptr.Tag != ast.PtrTypeStart {
				return "", &Error{Msg: "unsupported pointer type " + p.Ptr.Tag.String()}
			}
			pts := p.Ptr.Payload.(ast.PtrTypeStartData)

			prefix := ""
			if p.Modifiers&ast.PtrConst != 0 {
				prefix = "const "
			}
			switch pts.Type {
			case ast.PtrTypeDouble:
				name = prefix + name + "**"
			default: // single/multi/c/sentinel all collapse to one star
				name = prefix + name + "*"
			}
		}
		return name, nil

	case ast.ErrorUnionExpr:
		d := n.Payload.(ast.ErrorUnionExprData)
		if d.ErrorTypeExpr != nil {
			return "", &Error{Msg: "error unions not supported"}
		}
		return cTypeName(d.SuffixExpr)

	case ast.SuffixExpr:
		d := n.Payload.(ast.SuffixExprData)
		return cTypeName(d.Expr)

	case ast.PrimaryTypeExpr:
		d := n.Payload.(ast.PrimaryTypeExprData)
		if d.PrimaryTag != ast.PrimaryTypeIdentifier {
			return "", &Error{Msg: "cannot evaluate type name for " + n.Tag.String()}
		}
		if d.Raw == "void" {
			return "void", nil
		}
		tag, ok := types.LookupBuiltin(d.Raw)
		if !ok {
			return "", &Error{Msg: "generic symbols not supported: '" + d.Raw + "'"}
		}
		cname, _ := types.CName(tag)
		return cname, nil

	default:
		return "", &Error{Msg: "cannot evaluate type name for " + n.Tag.String()}
	}
}

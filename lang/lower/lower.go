// Package lower implements AST-to-IR lowering: a CFG of three-address
// instructions is built directly as the AST is walked, never patched up
// afterward. An unsupported construct or type is a fatal error naming the
// offending AST tag; no partial IR is returned. The supported subset is
// deliberately small — this is a skeleton compiler that enumerates what it
// understands and refuses everything else.
package lower

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/ir"
	"github.com/mna/ztoc/lang/resolver"
	"github.com/mna/ztoc/lang/token"
)

// Error is a lowering failure, always fatal: no partial IR survives it.
type Error struct {
	Tag ast.Tag
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Tag, e.Msg) }

func unsupported(n *ast.Node) error {
	return &Error{Tag: n.Tag, Msg: "unsupported construct"}
}

func unimplemented(n *ast.Node) error {
	return &Error{Tag: n.Tag, Msg: "unimplemented"}
}

// parseNumberLiteral parses a number_literal token's raw spelling into its
// base-10 value, tolerating the '_' digit separators and 0x/0o/0b prefixes
// that lang/scanner accepts but the fraction/exponent parts this lowering
// stage does not: integer literals only, float constants never lower.
func parseNumberLiteral(raw string) (int64, error) {
	raw = strings.ReplaceAll(raw, "_", "")
	return strconv.ParseInt(raw, 0, 64)
}

// Lower lowers a parsed root (a container_members node),
// producing one ir.Func per top-level decl_fn.
func Lower(root *ast.Node) (*ir.Program, error) {
	if root.Tag != ast.ContainerMembers {
		return nil, unsupported(root)
	}
	b := ir.NewBuilder()
	d := root.Payload.(ast.ContainerMembersData)
	for _, decl := range d.Decls {
		// lowerDeclFn calls Builder.FinishFunc itself, which appends the
		// lowered function to b.Program.Funcs; a nil return just means decl
		// wasn't a decl_fn (e.g. a var decl or test_decl at top level).
		if _, err := lowerDeclFn(b, decl); err != nil {
			return nil, err
		}
	}
	return b.Program, nil
}

func lowerDeclFn(b *ir.Builder, decl *ast.Node) (*ir.Func, error) {
	if decl.Tag != ast.TopLevelDecl {
		return nil, nil
	}
	top := decl.Payload.(ast.TopLevelDeclData)
	if top.Decl.Tag != ast.DeclFn {
		return nil, nil
	}
	fn := top.Decl.Payload.(ast.DeclFnData)
	return lowerFunc(b, fn, !top.IsPub)
}

func lowerFunc(b *ir.Builder, fn ast.DeclFnData, isStatic bool) (*ir.Func, error) {
	if fn.FnProto.Tag != ast.FnProto {
		return nil, unsupported(fn.FnProto)
	}
	proto := fn.FnProto.Payload.(ast.FnProtoData)

	f := &ir.Func{
		Name:      proto.Name,
		IsStatic:  isStatic,
		Modifiers: fn.Modifiers,
		RetType:   proto.ReturnType,
	}

	if proto.Params != nil {
		if proto.Params.Tag != ast.ParamDeclList {
			return nil, unsupported(proto.Params)
		}
		list := proto.Params.Payload.(ast.ParamDeclListData)
		for _, p := range list.Params {
			if p.Tag != ast.ParamDecl {
				return nil, unsupported(p)
			}
			pd := p.Payload.(ast.ParamDeclData)
			if pd.IsVarargs {
				f.CallArgs = append(f.CallArgs, ir.NamedType{IsVarargs: true})
			} else {
				f.CallArgs = append(f.CallArgs, ir.NamedType{Name: pd.Identifier, Type: pd.Type})
			}
		}
	}

	b.StartFunc(f)

	if fn.Block != nil {
		if fn.Block.Tag != ast.Block {
			return nil, unsupported(fn.Block)
		}
		b.SetBlock(b.NewBlock())

		for _, arg := range f.CallArgs {
			if arg.IsVarargs {
				continue
			}
			id := b.AppendVar(ir.Var{Name: arg.Name, Type: arg.Type})
			value := b.AppendInst(ir.Inst{Op: ir.OpLoadArg, Dst: b.NewTemp(), ArgName: arg.Name})
			b.EmitStoreVar(id, value)
		}

		blockData := fn.Block.Payload.(ast.BlockData)
		if err := lowerBlock(b, blockData); err != nil {
			return nil, err
		}

		// Control fell off the end of the body with no explicit return: a
		// void function, implicitly returning.
		if b.Active() {
			b.TermRet(ir.InvalidID)
		}
	}

	b.FinishFunc()
	return f, nil
}

func lowerBlock(b *ir.Builder, block ast.BlockData) error {
	for _, stmt := range block.Statements {
		if err := lowerStatementExpr(b, stmt); err != nil {
			return err
		}
	}
	return nil
}

func lowerStatementExpr(b *ir.Builder, n *ast.Node) error {
	switch n.Tag {
	case ast.ComptimeStatement, ast.NosuspendStatement, ast.SuspendStatement,
		ast.DeferStatement, ast.ErrdeferStatement:
		return unimplemented(n)

	case ast.IfStatement:
		d := n.Payload.(ast.IfStatementData)
		if d.Condition.Tag != ast.IfPrefix {
			return unsupported(d.Condition)
		}
		prefix := d.Condition.Payload.(ast.IfPrefixData)
		if prefix.PtrPayload != nil {
			return unsupported(d.Condition)
		}

		bBody, bElse, bNext := b.NewBlock(), b.NewBlock(), b.NewBlock()

		cond, err := lowerExpr(b, prefix.Condition)
		if err != nil {
			return err
		}
		b.TermBr(cond, bBody, bElse)

		b.SetBlock(bBody)
		blockData := d.Block.Payload.(ast.BlockData)
		if err := lowerBlock(b, blockData); err != nil {
			return err
		}
		b.TermJmp(bNext)

		b.SetBlock(bElse)
		if d.ElseStatement != nil {
			if err := lowerStatementExpr(b, d.ElseStatement); err != nil {
				return err
			}
		}
		b.TermJmp(bNext)
		b.SetBlock(bNext)
		return nil

	case ast.LabeledStatement:
		d := n.Payload.(ast.LabeledStatementData)
		if d.Label != "" {
			return unsupported(n)
		}
		switch d.Statement.Tag {
		case ast.LoopStatement:
			return lowerLoop(b, d.Statement.Payload.(ast.LoopStatementData))
		case ast.Block:
			return lowerBlock(b, d.Statement.Payload.(ast.BlockData))
		default:
			return unsupported(d.Statement)
		}

	case ast.VarDeclStatement:
		return lowerVarDecl(b, n.Payload.(ast.VarDeclStatementData))

	case ast.SingleAssignExpr:
		return lowerAssignExpr(b, n.Payload.(ast.SingleAssignExprData))

	default:
		_, err := lowerExpr(b, n)
		return err
	}
}

func lowerLoop(b *ir.Builder, loop ast.LoopStatementData) error {
	if loop.IsInline {
		return unsupported(loop.Statement)
	}

	switch loop.Statement.Tag {
	case ast.WhileStatement:
		ws := loop.Statement.Payload.(ast.WhileStatementData)
		if ws.Condition.Tag != ast.WhilePrefix {
			return unsupported(ws.Condition)
		}
		prefix := ws.Condition.Payload.(ast.WhilePrefixData)
		if prefix.PtrPayload != nil || ws.ElseStatement != nil {
			return unsupported(ws.Condition)
		}

		blockCond, block, contExpr, next := b.NewBlock(), b.NewBlock(), b.NewBlock(), b.NewBlock()

		b.TermJmp(blockCond)
		b.SetBlock(blockCond)
		cond, err := lowerExpr(b, prefix.Condition)
		if err != nil {
			return err
		}
		b.TermBr(cond, block, next)

		b.SetBlock(block)
		if err := lowerBlock(b, ws.Block.Payload.(ast.BlockData)); err != nil {
			return err
		}
		b.TermJmp(contExpr)

		b.SetBlock(contExpr)
		if prefix.WhileContinueExpr != nil {
			if err := lowerStatementExpr(b, prefix.WhileContinueExpr); err != nil {
				return err
			}
		}
		b.TermJmp(blockCond)

		b.SetBlock(next)
		return nil

	case ast.ForStatement:
		fs := loop.Statement.Payload.(ast.ForStatementData)
		if fs.Condition.Tag != ast.ForPrefix {
			return unsupported(fs.Condition)
		}
		prefix := fs.Condition.Payload.(ast.ForPrefixData)
		if fs.ElseStatement != nil {
			return unsupported(fs.Condition)
		}
		forArgs := prefix.ForArgs.Payload.(ast.ForArgsData)
		if len(forArgs.Args) != 1 {
			return unsupported(prefix.ForArgs)
		}

		blockCond, block, contExpr, next := b.NewBlock(), b.NewBlock(), b.NewBlock(), b.NewBlock()

		var payloads ast.PayloadListData
		if prefix.PtrListPayload != nil {
			payloads = prefix.PtrListPayload.Payload.(ast.PayloadListData)
		}

		for i, argNode := range forArgs.Args {
			item := argNode.Payload.(ast.ForItemData)
			if !item.IsRange || item.End == nil {
				return unsupported(argNode)
			}

			if i >= len(payloads.Payloads) {
				b.TermJmp(block)
				b.SetBlock(block)
				if err := lowerBlock(b, fs.Block.Payload.(ast.BlockData)); err != nil {
					return err
				}
				b.TermJmp(block)
				continue
			}

			payload := payloads.Payloads[i].Payload.(ast.PayloadData)
			id := b.InternVar(payload.Name)
			start, err := lowerExpr(b, item.Start)
			if err != nil {
				return err
			}
			b.EmitStoreVar(id, start)

			b.TermJmp(blockCond)
			b.SetBlock(blockCond)
			end, err := lowerExpr(b, item.End)
			if err != nil {
				return err
			}
			cond := b.AppendInst(ir.Inst{Op: ir.OpLt, Dst: b.NewTemp(), Lhs: b.EmitLoadVar(id), Rhs: end})
			b.TermBr(cond, block, next)

			b.SetBlock(block)
			if err := lowerBlock(b, fs.Block.Payload.(ast.BlockData)); err != nil {
				return err
			}
			b.TermJmp(contExpr)

			b.SetBlock(contExpr)
			lhs := b.EmitLoadVar(id)
			one := b.AppendInst(ir.Inst{Op: ir.OpConstNum, Dst: b.NewTemp(), I64: 1})
			sum := b.AppendInst(ir.Inst{Op: ir.OpAdd, Dst: b.NewTemp(), Lhs: lhs, Rhs: one})
			b.EmitStoreVar(id, sum)
			b.TermJmp(blockCond)
		}

		b.SetBlock(next)
		return nil

	default:
		return unsupported(loop.Statement)
	}
}

func lowerAssignExpr(b *ir.Builder, e ast.SingleAssignExprData) error {
	name, err := resolver.EvalSymbolName(e.Lhs)
	if err != nil {
		return err
	}
	id := b.InternVar(name)

	switch e.AssignOp {
	case token.Equal:
		rhs, err := lowerExpr(b, e.Rhs)
		if err != nil {
			return err
		}
		b.EmitStoreVar(id, rhs)
		return nil

	case token.PlusEqual:
		lhs := b.EmitLoadVar(id)
		rhs, err := lowerExpr(b, e.Rhs)
		if err != nil {
			return err
		}
		sum := b.AppendInst(ir.Inst{Op: ir.OpAdd, Dst: b.NewTemp(), Lhs: lhs, Rhs: rhs})
		b.EmitStoreVar(id, sum)
		return nil

	default:
		return &Error{Tag: ast.SingleAssignExpr, Msg: "unsupported assignment operator " + e.AssignOp.String()}
	}
}

func lowerVarDecl(b *ir.Builder, vd ast.VarDeclStatementData) error {
	if vd.VarDecl.Tag != ast.VarDeclProto {
		return unsupported(vd.VarDecl)
	}
	if len(vd.VarDeclAdditional) != 0 {
		return unsupported(vd.VarDecl)
	}
	proto := vd.VarDecl.Payload.(ast.VarDeclProtoData)
	id := b.AppendVar(ir.Var{Name: proto.Name, Type: proto.Type})

	value, err := lowerExpr(b, vd.Expr)
	if err != nil {
		return err
	}
	b.EmitStoreVar(id, value)
	return nil
}

func lowerPrimaryTypeExpr(b *ir.Builder, p ast.PrimaryTypeExprData) (ir.TempID, error) {
	inst := ir.Inst{Dst: b.NewTemp()}

	switch p.PrimaryTag {
	case ast.PrimaryTypeNumberLiteral:
		v, err := parseNumberLiteral(p.Raw)
		if err != nil {
			return ir.InvalidID, err
		}
		inst.Op, inst.I64 = ir.OpConstNum, v

	case ast.PrimaryTypeIdentifier:
		inst.Op, inst.Var, inst.VarValue = ir.OpLoadVar, b.InternVar(p.Raw), ir.InvalidID

	case ast.PrimaryTypeCharLiteral:
		if len(p.Raw) == 0 {
			return ir.InvalidID, fmt.Errorf("empty char literal")
		}
		inst.Op, inst.I64 = ir.OpConstChar, int64(p.Raw[0])

	case ast.PrimaryTypeStringLiteral:
		inst.Op, inst.Bytes = ir.OpConstBytes, p.Raw

	case ast.PrimaryTypeUnreachable:
		inst.Op = ir.OpUnreachable

	default:
		return ir.InvalidID, &Error{Tag: ast.PrimaryTypeExpr, Msg: "unsupported primary type expr"}
	}

	return b.AppendInst(inst), nil
}

func lowerTypeExpr(b *ir.Builder, expr ast.TypeExprData) (ir.TempID, error) {
	if expr.TypeExpr.Tag != ast.ErrorUnionExpr {
		return ir.InvalidID, unsupported(expr.TypeExpr)
	}
	eu := expr.TypeExpr.Payload.(ast.ErrorUnionExprData)
	if eu.ErrorTypeExpr != nil {
		return ir.InvalidID, unsupported(expr.TypeExpr)
	}
	if eu.SuffixExpr.Tag != ast.SuffixExpr {
		return ir.InvalidID, unsupported(eu.SuffixExpr)
	}
	suffix := eu.SuffixExpr.Payload.(ast.SuffixExprData)
	if suffix.Expr.Tag != ast.PrimaryTypeExpr {
		return ir.InvalidID, unsupported(suffix.Expr)
	}
	primary := suffix.Expr.Payload.(ast.PrimaryTypeExprData)

	if len(suffix.Suffixes) == 0 {
		return lowerPrimaryTypeExpr(b, primary)
	}

	dst := b.NewTemp()
	for _, s := range suffix.Suffixes {
		if s.Tag != ast.FnCallArguments {
			return ir.InvalidID, unsupported(s)
		}
		args := s.Payload.(ast.FnCallArgumentsData)
		if len(args.Exprs) > 16 {
			return ir.InvalidID, fmt.Errorf("call supports 16 arguments max")
		}

		call := ir.Inst{
			Op:  ir.OpCall,
			Dst: dst,
			CallFn: ir.Value{Tag: ir.ValSym, Sym: primary.Raw},
		}
		for _, a := range args.Exprs {
			t, err := lowerExpr(b, a)
			if err != nil {
				return ir.InvalidID, err
			}
			call.CallArgs = append(call.CallArgs, t)
		}
		b.AppendInst(call)
	}
	return dst, nil
}

func lowerPrimaryExpr(b *ir.Builder, expr *ast.Node) (ir.TempID, error) {
	switch expr.Tag {
	case ast.PrimaryTypeExpr:
		return lowerPrimaryTypeExpr(b, expr.Payload.(ast.PrimaryTypeExprData))

	case ast.IfExpr:
		d := expr.Payload.(ast.IfExprData)
		if d.ElsePayloadName != "" {
			return ir.InvalidID, unsupported(expr)
		}

		bIf, bElse, bNext := b.NewBlock(), b.NewBlock(), b.NewBlock()

		dst := b.NewTemp()
		b.AppendInst(ir.Inst{Op: ir.OpConstNum, Dst: dst, I64: 0})

		// an if_prefix condition lowers its expression only; a capture
		// payload is not bound in the then-arm
		condNode := d.Condition
		if condNode.Tag == ast.IfPrefix {
			condNode = condNode.Payload.(ast.IfPrefixData).Condition
		}
		cond, err := lowerExpr(b, condNode)
		if err != nil {
			return ir.InvalidID, err
		}
		b.TermBr(cond, bIf, bElse)

		b.SetBlock(bIf)
		thenVal, err := lowerExpr(b, d.Expr)
		if err != nil {
			return ir.InvalidID, err
		}
		b.AppendInst(ir.Inst{Op: ir.OpCopy, Dst: dst, Lhs: thenVal})
		b.TermJmp(bNext)

		b.SetBlock(bElse)
		elseVal, err := lowerExpr(b, d.ElsePayloadExpr)
		if err != nil {
			return ir.InvalidID, err
		}
		b.AppendInst(ir.Inst{Op: ir.OpCopy, Dst: dst, Lhs: elseVal})
		b.TermJmp(bNext)

		b.SetBlock(bNext)
		return dst, nil

	case ast.ReturnExpr:
		inner, _ := expr.Payload.(*ast.Node)
		value := ir.InvalidID // bare "return;" returns no value
		if inner != nil {
			v, err := lowerExpr(b, inner)
			if err != nil {
				return ir.InvalidID, err
			}
			value = v
		}
		b.TermRet(value)
		b.SetBlock(b.NewBlock())
		return value, nil

	case ast.TypeExpr:
		return lowerTypeExpr(b, expr.Payload.(ast.TypeExprData))

	case ast.AsmExpr, ast.BreakExpr, ast.ComptimeExpr, ast.NosuspendExpr, ast.ContinueExpr, ast.ResumeExpr:
		return ir.InvalidID, unimplemented(expr)

	default:
		return ir.InvalidID, unsupported(expr)
	}
}

func unaryOp(tok token.Token) (ir.Op, error) {
	switch tok {
	case token.Minus:
		return ir.OpNegate, nil
	case token.Tilde:
		return ir.OpBwNot, nil
	case token.Bang:
		return ir.OpNot, nil
	case token.Ampersand:
		return ir.OpBwAnd, nil
	case token.MinusPercent, token.KeywordTry:
		return ir.OpInvalid, fmt.Errorf("unimplemented unary operator %s", tok)
	default:
		return ir.OpInvalid, fmt.Errorf("unsupported unary operator %s", tok)
	}
}

func lowerUnaryExpr(b *ir.Builder, u ast.UnaryExprData) (ir.TempID, error) {
	inner, err := lowerPrimaryExpr(b, u.Expr)
	if err != nil {
		return ir.InvalidID, err
	}
	if len(u.Ops) == 0 {
		return inner, nil
	}

	// u.Ops is collected outermost-first (source order, e.g. "-~!x" ->
	// [Minus, Tilde, Bang]); apply right-to-left so the op closest to the
	// operand runs first.
	for i := len(u.Ops) - 1; i >= 0; i-- {
		op, err := unaryOp(u.Ops[i])
		if err != nil {
			return ir.InvalidID, err
		}
		inner = b.AppendInst(ir.Inst{Op: op, Dst: b.NewTemp(), Lhs: inner})
	}
	return inner, nil
}

func lowerBinaryExpr(b *ir.Builder, e ast.BinaryExprData) (ir.TempID, error) {
	op := ir.FromBinOp(e.Op)
	if op == ir.OpInvalid {
		return ir.InvalidID, &Error{Tag: ast.BinaryExpr, Msg: "unsupported binary operator " + e.Op.String()}
	}

	lhs, err := lowerExpr(b, e.Lhs)
	if err != nil {
		return ir.InvalidID, err
	}
	rhs, err := lowerExpr(b, e.Rhs)
	if err != nil {
		return ir.InvalidID, err
	}
	return b.AppendInst(ir.Inst{Op: op, Dst: b.NewTemp(), Lhs: lhs, Rhs: rhs}), nil
}

func lowerExpr(b *ir.Builder, expr *ast.Node) (ir.TempID, error) {
	switch expr.Tag {
	case ast.UnaryExpr:
		return lowerUnaryExpr(b, expr.Payload.(ast.UnaryExprData))
	case ast.BinaryExpr:
		return lowerBinaryExpr(b, expr.Payload.(ast.BinaryExprData))
	default:
		return ir.InvalidID, unsupported(expr)
	}
}

package parser

import (
	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/token"
)

// binopLevel is the left-associative binary-operator priority table, keyed
// by BinOp (precedence is a property of the operator, not of the token
// spelling): seven tiers, 2 binds loosest, 8 tightest. Bitwise and
// orelse/catch share one tier, and array-spread/error-set-merge sit with
// the multiplicative operators.
var binopLevel = map[ast.BinOp]int{
	ast.BinOpOr: 2,

	ast.BinOpAnd: 3,

	ast.BinOpEq:   4,
	ast.BinOpNeq:  4,
	ast.BinOpLt:   4,
	ast.BinOpGt:   4,
	ast.BinOpLtEq: 4,
	ast.BinOpGtEq: 4,

	ast.BinOpBitAnd: 5,
	ast.BinOpBitOr:  5,
	ast.BinOpBitXor: 5,
	ast.BinOpOrelse: 5,
	ast.BinOpCatch:  5,

	ast.BinOpShl:         6,
	ast.BinOpShr:         6,
	ast.BinOpShlSaturate: 6,

	ast.BinOpAdd:         7,
	ast.BinOpAddWrap:     7,
	ast.BinOpAddSaturate: 7,
	ast.BinOpSub:         7,
	ast.BinOpSubWrap:     7,
	ast.BinOpSubSaturate: 7,
	ast.BinOpArrayConcat: 7,

	ast.BinOpMul:           8,
	ast.BinOpMulWrap:       8,
	ast.BinOpMulSaturate:   8,
	ast.BinOpDiv:           8,
	ast.BinOpMod:           8,
	ast.BinOpArraySpread:   8,
	ast.BinOpErrorSetMerge: 8,
}

// binopOf maps the operator token to its closed ast.BinOp value (see
// lang/ast.BinOp's doc comment and DESIGN.md Open Question #6).
func binopOf(tok token.Token) ast.BinOp {
	switch tok {
	case token.KeywordOr:
		return ast.BinOpOr
	case token.KeywordAnd:
		return ast.BinOpAnd
	case token.EqualEqual:
		return ast.BinOpEq
	case token.BangEqual:
		return ast.BinOpNeq
	case token.AngleBracketLeft:
		return ast.BinOpLt
	case token.AngleBracketRight:
		return ast.BinOpGt
	case token.AngleBracketLeftEqual:
		return ast.BinOpLtEq
	case token.AngleBracketRightEqual:
		return ast.BinOpGtEq
	case token.Ampersand:
		return ast.BinOpBitAnd
	case token.Pipe:
		return ast.BinOpBitOr
	case token.Caret:
		return ast.BinOpBitXor
	case token.PipePipe:
		return ast.BinOpErrorSetMerge
	case token.KeywordOrelse:
		return ast.BinOpOrelse
	case token.KeywordCatch:
		return ast.BinOpCatch
	case token.AngleBracketAngleBracketLeft:
		return ast.BinOpShl
	case token.AngleBracketAngleBracketRight:
		return ast.BinOpShr
	case token.AngleBracketAngleBracketLeftPipe:
		return ast.BinOpShlSaturate
	case token.Plus:
		return ast.BinOpAdd
	case token.PlusPercent:
		return ast.BinOpAddWrap
	case token.PlusPipe:
		return ast.BinOpAddSaturate
	case token.Minus:
		return ast.BinOpSub
	case token.MinusPercent:
		return ast.BinOpSubWrap
	case token.MinusPipe:
		return ast.BinOpSubSaturate
	case token.PlusPlus:
		return ast.BinOpArrayConcat
	case token.AsteriskAsterisk:
		return ast.BinOpArraySpread
	case token.Asterisk:
		return ast.BinOpMul
	case token.AsteriskPercent:
		return ast.BinOpMulWrap
	case token.AsteriskPipe:
		return ast.BinOpMulSaturate
	case token.Slash:
		return ast.BinOpDiv
	case token.Percent:
		return ast.BinOpMod
	default:
		return ast.BinOpInvalid
	}
}

// isUnaryOp reports the closed set of prefix operators UnaryExpr accepts,
// matching lang/lower's unaryOp switch (Minus, Tilde, Bang, Ampersand,
// MinusPercent, KeywordTry) so lowering never sees an operator it can't
// map to an ast.UnaryExprData.Ops entry.
func isUnaryOp(tok token.Token) bool {
	switch tok {
	case token.Minus, token.Tilde, token.Bang, token.Ampersand, token.MinusPercent, token.KeywordTry:
		return true
	default:
		return false
	}
}

// expectExpr parses a required expression, failing if none is present.
func (p *parser) expectExpr(where string) *ast.Node {
	e := p.parseExpr()
	if e == nil {
		p.fail(where, "expected expression, found "+p.found())
	}
	return e
}

// parseExpr implements "Expr <- BoolOrExpr" at the top of the precedence
// table, a Pratt/precedence-climbing loop over binopLevel.
func (p *parser) parseExpr() *ast.Node {
	return p.parseSubExpr(0)
}

func (p *parser) parseSubExpr(minLevel int) *ast.Node {
	lhs := p.parseUnaryExprWrapper()
	if lhs == nil {
		return nil
	}

	for i := 0; i < loopMax; i++ {
		op := binopOf(p.tok())
		if op == ast.BinOpInvalid {
			return lhs
		}
		level := binopLevel[op]
		if level <= minLevel {
			return lhs
		}
		pos := p.pos()
		p.advance()
		rhs := p.parseSubExpr(level)
		if rhs == nil {
			p.fail("parseSubExpr", "expected expression, found "+p.found())
		}
		lhs = p.newNode(pos, ast.BinaryExpr, ast.BinaryExprData{Op: op, Lhs: lhs, Rhs: rhs})
	}
	p.fail("parseSubExpr", "infinite loop")
	return nil
}

// parseUnaryExprWrapper implements "UnaryExpr <- PrefixOp* PrimaryExpr":
// it collects prefix operators
// outermost-first (source order) so lang/lower can apply them
// right-to-left, per the ast.UnaryExprData doc comment. Every expression
// position gets a UnaryExpr node, even with a nil Ops slice — lang/lower's
// lowerExpr dispatches only on ast.UnaryExpr/ast.BinaryExpr, so a bare
// primary-level expression (e.g. a function-call statement) must still
// arrive wrapped for lowering to recognize it.
func (p *parser) parseUnaryExprWrapper() *ast.Node {
	pos := p.pos()
	var ops []token.Token
	for isUnaryOp(p.tok()) {
		ops = append(ops, p.tok())
		p.advance()
	}

	inner := p.parsePrimaryExpr()
	if inner == nil {
		if len(ops) != 0 {
			p.fail("parseUnaryExpr", "expected expression, found "+p.found())
		}
		return nil
	}
	return p.newNode(pos, ast.UnaryExpr, ast.UnaryExprData{Ops: ops, Expr: inner})
}

// parsePrimaryExpr parses the handful of expression-position constructs
// that are not plain type_expr values (if/return as expressions) before
// falling back to the universal TypeExpr production — this language
// treats types and values with the same grammar, so most expressions
// bottom out there.
func (p *parser) parsePrimaryExpr() *ast.Node {
	switch p.tok() {
	case token.KeywordReturn:
		return p.parseReturnExpr()
	case token.KeywordBreak:
		return p.parseBreakExpr()
	case token.KeywordContinue:
		return p.parseContinueExpr()
	case token.KeywordIf:
		return p.parseIfExpr()
	case token.KeywordAsm:
		return p.parseAsmExpr()
	case token.KeywordWhile, token.KeywordFor:
		return p.parseLoopExprPrimary()
	default:
		// a label may still introduce an expression-position loop
		// ("outer: while (...) ...") before the universal fallback
		if n := p.parseLoopExprPrimary(); n != nil {
			return n
		}
		return p.parseTypeExpr()
	}
}

// parseReturnExpr implements "ReturnExpr <- KEYWORD_return Expr?".
func (p *parser) parseReturnExpr() *ast.Node {
	pos := p.expect("parseReturnExpr", token.KeywordReturn)
	inner := p.parseExpr()
	var payload any
	if inner != nil {
		payload = inner
	}
	return p.newNode(pos, ast.ReturnExpr, payload)
}

// parseBreakExpr implements "BreakLabel? Expr?" after KEYWORD_break.
// Break labels are spelled `:label`; kept minimal since lang/lower treats
// any label as unsupported.
func (p *parser) parseBreakExpr() *ast.Node {
	pos := p.expect("parseBreakExpr", token.KeywordBreak)
	label := p.parseBreakLabel()
	inner := p.parseExpr()
	return p.newNode(pos, ast.BreakExpr, ast.BreakExprData{Label: label, Expr: inner})
}

// parseContinueExpr implements "BreakLabel? Expr?" after
// KEYWORD_continue.
func (p *parser) parseContinueExpr() *ast.Node {
	pos := p.expect("parseContinueExpr", token.KeywordContinue)
	label := p.parseBreakLabel()
	inner := p.parseExpr()
	return p.newNode(pos, ast.ContinueExpr, ast.ContinueExprData{Label: label, Expr: inner})
}

// parseBreakLabel implements "BreakLabel <- COLON IDENTIFIER".
func (p *parser) parseBreakLabel() string {
	if !p.eat(token.Colon) {
		return ""
	}
	name := p.text()
	p.expect("parseBreakLabel", token.Identifier)
	return name
}

// parseIfExpr implements "IfExpr <- IfPrefix Expr (KEYWORD_else Payload?
// Expr)?".
func (p *parser) parseIfExpr() *ast.Node {
	pos := p.pos()
	prefix := p.expectIfPrefix()
	body := p.expectExpr("parseIfExpr")

	var elseName string
	var elseExpr *ast.Node
	if p.eat(token.KeywordElse) {
		elseName = p.parsePayload()
		elseExpr = p.expectExpr("parseIfExpr")
	}
	return p.newNode(pos, ast.IfExpr, ast.IfExprData{
		Condition: prefix, Expr: body, ElsePayloadName: elseName, ElsePayloadExpr: elseExpr,
	})
}

// expectIfPrefix implements "IfPrefix <- KEYWORD_if LPAREN Expr RPAREN
// PtrPayload?".
func (p *parser) expectIfPrefix() *ast.Node {
	pos := p.expect("expectIfPrefix", token.KeywordIf)
	p.expect("expectIfPrefix", token.LParen)
	cond := p.expectExpr("expectIfPrefix")
	p.expect("expectIfPrefix", token.RParen)
	payload := p.parsePtrPayload()
	return p.newNode(pos, ast.IfPrefix, ast.IfPrefixData{Condition: cond, PtrPayload: payload})
}

// parsePayload implements "Payload <- PIPE IDENTIFIER PIPE", returning
// just the bound name (used by else-branches, which never bind a
// pointer).
func (p *parser) parsePayload() string {
	if !p.eat(token.Pipe) {
		return ""
	}
	name := p.text()
	p.expect("parsePayload", token.Identifier)
	p.expect("parsePayload", token.Pipe)
	return name
}

// parsePtrPayload implements "PtrPayload <- PIPE ASTERISK? IDENTIFIER
// PIPE".
func (p *parser) parsePtrPayload() *ast.Node {
	if !p.peek(token.Pipe) {
		return nil
	}
	pos := p.pos()
	p.advance()
	isPtr := p.eat(token.Asterisk)
	name := p.text()
	p.expect("parsePtrPayload", token.Identifier)
	p.expect("parsePtrPayload", token.Pipe)
	return p.newNode(pos, ast.Payload, ast.PayloadData{Name: name, IsPointer: isPtr})
}

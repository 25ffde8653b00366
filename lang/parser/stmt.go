package parser

import (
	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/token"
)

// This file implements Block and the statement-level productions: the
// statement dispatch, if/while/for statements and their prefixes, and the
// var-decl/assign statement family.
//
// Only the brace-bodied form of if/while/for statements is implemented —
// the bare "if (x) stmt;" form a real implementation of this grammar also
// accepts is rejected here, matching lang/lower's lowerStatementExpr/
// lowerLoop, which only ever dereferences d.Block.Payload as a BlockData:
// an AssignExpr-bodied if/while/for would never reach lowering anyway.

// expectBlock implements "Block <- LBRACE Statement* RBRACE".
func (p *parser) expectBlock(where string) *ast.Node {
	pos := p.expect(where, token.LBrace)
	var stmts []*ast.Node
	for i := 0; i < loopMax && !p.peek(token.RBrace); i++ {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect("expectBlock", token.RBrace)
	return p.newNode(pos, ast.Block, ast.BlockData{Statements: stmts})
}

// assignOp reports the current token if it is one of the closed set of
// assignment operators, or token.Invalid otherwise (note AngleBracketLeftEqual/
// AngleBracketRightEqual are the <= / >= comparisons, not assignments).
func (p *parser) assignOp() token.Token {
	switch p.tok() {
	case token.Equal, token.PlusEqual, token.MinusEqual, token.AsteriskEqual, token.SlashEqual,
		token.PercentEqual, token.AmpersandEqual, token.PipeEqual, token.CaretEqual,
		token.PlusPercentEqual, token.PlusPipeEqual, token.MinusPercentEqual, token.MinusPipeEqual,
		token.AsteriskPercentEqual, token.AsteriskPipeEqual,
		token.AngleBracketAngleBracketLeftEqual, token.AngleBracketAngleBracketRightEqual,
		token.AngleBracketAngleBracketLeftPipeEqual:
		return p.tok()
	default:
		return token.Invalid
	}
}

// parseStatement implements "Statement <- KEYWORD_comptime?
// VarDeclExprStatement SEMICOLON / KEYWORD_comptime BlockExprStatement /
// KEYWORD_nosuspend BlockExprStatement / KEYWORD_suspend BlockExprStatement
// / KEYWORD_defer BlockExprStatement / KEYWORD_errdefer Payload?
// BlockExprStatement / IfStatement / LabeledStatement /
// VarDeclExprStatement SEMICOLON".
func (p *parser) parseStatement() *ast.Node {
	switch {
	case p.peek(token.KeywordComptime):
		return p.parseComptimeStatement()
	case p.peek(token.KeywordNosuspend):
		return p.parsePrefixBlockStatement(token.KeywordNosuspend, ast.NosuspendStatement)
	case p.peek(token.KeywordSuspend):
		return p.parsePrefixBlockStatement(token.KeywordSuspend, ast.SuspendStatement)
	case p.peek(token.KeywordDefer):
		return p.parsePrefixBlockStatement(token.KeywordDefer, ast.DeferStatement)
	case p.peek(token.KeywordErrdefer):
		return p.parseErrdeferStatement()
	case p.peek(token.KeywordIf):
		return p.parseIfStatement()
	case p.peek(token.KeywordWhile), p.peek(token.KeywordFor), p.peek(token.KeywordInline):
		return p.parseLoopStatement()
	case p.peek(token.LBrace):
		pos := p.pos()
		block := p.expectBlock("parseLabeledStatement")
		return p.newNode(pos, ast.LabeledStatement, ast.LabeledStatementData{Statement: block})
	default:
		if lbl := p.tryLabeledStatement(); lbl != nil {
			return lbl
		}
		return p.parseVarDeclExprStatement()
	}
}

// tryLabeledStatement implements "LabeledStatement <- BlockLabel? (Block /
// LoopStatement / SwitchExpr)". Returns nil (restoring the cursor) when
// the identifier isn't actually a label, so an ordinary expression
// statement starting with an identifier falls through to
// parseVarDeclExprStatement.
func (p *parser) tryLabeledStatement() *ast.Node {
	if !p.peek(token.Identifier) {
		return nil
	}
	mark := p.mark()
	pos := p.pos()
	name := p.text()
	p.advance()
	if !p.eat(token.Colon) {
		p.reset(mark)
		return nil
	}

	var stmt *ast.Node
	switch {
	case p.peek(token.LBrace):
		stmt = p.expectBlock("parseLabeledStatement")
	case p.peek(token.KeywordWhile), p.peek(token.KeywordFor), p.peek(token.KeywordInline):
		stmt = p.parseLoopStatement()
	case p.peek(token.KeywordSwitch):
		stmt = p.parseSwitchExpr()
	default:
		p.reset(mark)
		return nil
	}
	return p.newNode(pos, ast.LabeledStatement, ast.LabeledStatementData{Label: name, Statement: stmt})
}

// parseComptimeStatement implements the comptime-prefixed alternatives of
// Statement: a full VarDeclExprStatement, or a literal block, wrapped as
// SuffixExprData{Expr: body} with nil Suffixes — the statement-wrapper
// shape lang/ast's SuffixExprData doc comment gives comptime, nosuspend,
// suspend and defer statements.
func (p *parser) parseComptimeStatement() *ast.Node {
	pos := p.expect("parseComptimeStatement", token.KeywordComptime)
	var body *ast.Node
	if p.peek(token.LBrace) {
		body = p.expectBlock("parseComptimeStatement")
	} else {
		body = p.parseVarDeclExprStatement()
	}
	return p.newNode(pos, ast.ComptimeStatement, ast.SuffixExprData{Expr: body})
}

// parsePrefixBlockStatement implements the nosuspend/suspend/defer
// alternatives of Statement, all of which are "KEYWORD BlockExprStatement".
func (p *parser) parsePrefixBlockStatement(kw token.Token, tag ast.Tag) *ast.Node {
	pos := p.expect("parsePrefixBlockStatement", kw)
	body := p.parseBlockExprStatement()
	return p.newNode(pos, tag, ast.SuffixExprData{Expr: body})
}

// parseErrdeferStatement implements "KEYWORD_errdefer Payload?
// BlockExprStatement".
func (p *parser) parseErrdeferStatement() *ast.Node {
	pos := p.expect("parseErrdeferStatement", token.KeywordErrdefer)
	name := p.parsePayload()
	body := p.parseBlockExprStatement()
	return p.newNode(pos, ast.ErrdeferStatement, ast.ErrdeferStatementData{PayloadName: name, BlockExpr: body})
}

// parseBlockExprStatement implements "BlockExprStatement <- BlockExpr /
// AssignExpr SEMICOLON": a literal block needs no trailing semicolon,
// anything else is parsed as one assign/var-decl/expr statement.
func (p *parser) parseBlockExprStatement() *ast.Node {
	if p.peek(token.LBrace) {
		return p.expectBlock("parseBlockExprStatement")
	}
	return p.parseVarDeclExprStatement()
}

// parseVarDeclExprStatement implements "VarDeclExprStatement <-
// VarDeclProto (COMMA (VarDeclProto / Expr))* EQUAL Expr / Expr (AssignOp
// Expr / (COMMA (VarDeclProto / Expr))* EQUAL Expr)?", terminated by
// SEMICOLON.
func (p *parser) parseVarDeclExprStatement() *ast.Node {
	pos := p.pos()

	if proto := p.parseVarDeclProto(); proto != nil {
		additional := p.parseVarDeclOrExprList()
		p.expect("parseVarDeclExprStatement", token.Equal)
		rhs := p.expectExpr("parseVarDeclExprStatement")
		p.expect("parseVarDeclExprStatement", token.Semicolon)
		return p.newNode(pos, ast.VarDeclStatement, ast.VarDeclStatementData{
			VarDecl: proto, VarDeclAdditional: additional, Expr: rhs,
		})
	}

	lhs := p.expectExpr("parseVarDeclExprStatement")

	if op := p.assignOp(); op != token.Invalid {
		p.advance()
		rhs := p.expectExpr("parseVarDeclExprStatement")
		p.expect("parseVarDeclExprStatement", token.Semicolon)
		return p.newNode(pos, ast.SingleAssignExpr, ast.SingleAssignExprData{Lhs: lhs, AssignOp: op, Rhs: rhs})
	}

	if p.peek(token.Comma) {
		additional := p.parseVarDeclOrExprList()
		p.expect("parseVarDeclExprStatement", token.Equal)
		rhs := p.expectExpr("parseVarDeclExprStatement")
		p.expect("parseVarDeclExprStatement", token.Semicolon)
		return p.newNode(pos, ast.MultiAssignExpr, ast.MultiAssignExprData{Lhs: lhs, LhsAdditional: additional, Expr: rhs})
	}

	p.expect("parseVarDeclExprStatement", token.Semicolon)
	return lhs
}

// parseAssignExpr implements the bare "Expr (AssignOp Expr)?" shape used
// where an assignment is wanted without the statement-level trailing
// semicolon — namely WhileContinueExpr. lang/lower's
// lowerLoop feeds this straight into lowerStatementExpr, which only
// recognizes ast.SingleAssignExpr among assignment shapes, so the
// multi-assign/var-decl alternatives of the full statement grammar are not
// offered here.
func (p *parser) parseAssignExpr() *ast.Node {
	pos := p.pos()
	lhs := p.expectExpr("parseAssignExpr")
	op := p.assignOp()
	if op == token.Invalid {
		return lhs
	}
	p.advance()
	rhs := p.expectExpr("parseAssignExpr")
	return p.newNode(pos, ast.SingleAssignExpr, ast.SingleAssignExprData{Lhs: lhs, AssignOp: op, Rhs: rhs})
}

// parseVarDeclOrExprList implements "(COMMA (VarDeclProto / Expr))*",
// shared by the var-decl- and expr-led forms of VarDeclExprStatement.
func (p *parser) parseVarDeclOrExprList() []*ast.Node {
	var nodes []*ast.Node
	for i := 0; i < loopMax && p.eat(token.Comma); i++ {
		if v := p.parseVarDeclProto(); v != nil {
			nodes = append(nodes, v)
		} else {
			nodes = append(nodes, p.expectExpr("parseVarDeclExprStatement"))
		}
	}
	return nodes
}

// parseIfStatement implements "IfStatement <- IfPrefix Block (KEYWORD_else
// Payload? Statement)?", restricted to the Block-bodied form (see file
// doc comment).
func (p *parser) parseIfStatement() *ast.Node {
	pos := p.pos()
	prefix := p.expectIfPrefix()
	block := p.expectBlock("parseIfStatement")

	var elseName string
	var elseStmt *ast.Node
	if p.eat(token.KeywordElse) {
		elseName = p.parsePayload()
		elseStmt = p.parseStatement()
	}
	return p.newNode(pos, ast.IfStatement, ast.IfStatementData{
		Condition: prefix, Block: block, ElsePayloadName: elseName, ElseStatement: elseStmt,
	})
}

// parseLoopStatement implements "LoopStatement <- KEYWORD_inline?
// (ForStatement / WhileStatement)".
func (p *parser) parseLoopStatement() *ast.Node {
	pos := p.pos()
	isInline := p.eat(token.KeywordInline)

	var stmt *ast.Node
	switch {
	case p.peek(token.KeywordWhile):
		stmt = p.expectWhileStatement()
	case p.peek(token.KeywordFor):
		stmt = p.expectForStatement()
	default:
		p.fail("parseLoopStatement", "expected 'while' or 'for', found "+p.found())
	}
	return p.newNode(pos, ast.LoopStatement, ast.LoopStatementData{IsInline: isInline, Statement: stmt})
}

// expectWhileStatement implements "WhileStatement <- WhilePrefix Block
// (KEYWORD_else Payload? Statement)?", restricted to the Block-bodied
// form.
func (p *parser) expectWhileStatement() *ast.Node {
	pos := p.pos()
	prefix := p.expectWhilePrefix()
	block := p.expectBlock("expectWhileStatement")

	var elseName string
	var elseStmt *ast.Node
	if p.eat(token.KeywordElse) {
		elseName = p.parsePayload()
		elseStmt = p.parseStatement()
	}
	return p.newNode(pos, ast.WhileStatement, ast.WhileStatementData{
		Condition: prefix, Block: block, ElsePayloadName: elseName, ElseStatement: elseStmt,
	})
}

// expectWhilePrefix implements "WhilePrefix <- KEYWORD_while LPAREN Expr
// RPAREN PtrPayload? WhileContinueExpr?".
func (p *parser) expectWhilePrefix() *ast.Node {
	pos := p.expect("expectWhilePrefix", token.KeywordWhile)
	p.expect("expectWhilePrefix", token.LParen)
	cond := p.expectExpr("expectWhilePrefix")
	p.expect("expectWhilePrefix", token.RParen)
	payload := p.parsePtrPayload()

	var contExpr *ast.Node
	if p.eat(token.Colon) {
		p.expect("expectWhilePrefix", token.LParen)
		contExpr = p.parseAssignExpr()
		p.expect("expectWhilePrefix", token.RParen)
	}
	return p.newNode(pos, ast.WhilePrefix, ast.WhilePrefixData{
		Condition: cond, PtrPayload: payload, WhileContinueExpr: contExpr,
	})
}

// expectForStatement implements "ForStatement <- ForPrefix Block
// (KEYWORD_else Statement)?", restricted to the Block-bodied form.
func (p *parser) expectForStatement() *ast.Node {
	pos := p.pos()
	prefix := p.expectForPrefix()
	block := p.expectBlock("expectForStatement")

	var elseStmt *ast.Node
	if p.eat(token.KeywordElse) {
		elseStmt = p.parseStatement()
	}
	return p.newNode(pos, ast.ForStatement, ast.ForStatementData{
		Condition: prefix, Block: block, ElseStatement: elseStmt,
	})
}

// expectForPrefix implements "ForPrefix <- KEYWORD_for LPAREN ForArgs
// RPAREN PtrListPayload?".
func (p *parser) expectForPrefix() *ast.Node {
	pos := p.expect("expectForPrefix", token.KeywordFor)
	p.expect("expectForPrefix", token.LParen)
	args := p.expectForArgs()
	p.expect("expectForPrefix", token.RParen)
	payload := p.parsePtrListPayload()
	return p.newNode(pos, ast.ForPrefix, ast.ForPrefixData{ForArgs: args, PtrListPayload: payload})
}

// expectForArgs implements "ForArgs <- ForItem (COMMA ForItem)* COMMA?".
func (p *parser) expectForArgs() *ast.Node {
	pos := p.pos()
	var args []*ast.Node
	for i := 0; i < loopMax; i++ {
		args = append(args, p.expectForItem())
		if !p.eat(token.Comma) {
			break
		}
		if p.peek(token.RParen) {
			break
		}
	}
	return p.newNode(pos, ast.ForArgs, ast.ForArgsData{Args: args})
}

// expectForItem implements "ForItem <- Expr (DOT2 Expr?)?". Only a bounded
// range "a..b" ever lowers; an unbounded ".." or a bare non-range
// expression is accepted syntactically but rejected by lang/lower
// (ForStatement requires every ForItem.IsRange == true).
func (p *parser) expectForItem() *ast.Node {
	pos := p.pos()
	start := p.expectExpr("expectForItem")
	var end *ast.Node
	isRange := false
	if p.eat(token.Ellipsis2) {
		isRange = true
		end = p.parseExpr()
	}
	return p.newNode(pos, ast.ForItem, ast.ForItemData{Start: start, End: end, IsRange: isRange})
}

// parsePtrListPayload implements "PtrListPayload <- PIPE ASTERISK?
// IDENTIFIER (COMMA ASTERISK? IDENTIFIER)* PIPE".
func (p *parser) parsePtrListPayload() *ast.Node {
	if !p.peek(token.Pipe) {
		return nil
	}
	pos := p.pos()
	p.advance()

	var payloads []*ast.Node
	for i := 0; i < loopMax; i++ {
		itemPos := p.pos()
		isPtr := p.eat(token.Asterisk)
		name := p.text()
		p.expect("parsePtrListPayload", token.Identifier)
		payloads = append(payloads, p.newNode(itemPos, ast.Payload, ast.PayloadData{Name: name, IsPointer: isPtr}))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect("parsePtrListPayload", token.Pipe)
	return p.newNode(pos, ast.PayloadList, ast.PayloadListData{Payloads: payloads})
}

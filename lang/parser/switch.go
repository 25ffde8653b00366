package parser

import (
	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/token"
)

// This file implements the switch and asm productions plus the
// type-expression-position control-flow forms (labeled blocks, loop type
// exprs, if type exprs, error-set declarations). None of these constructs
// is lowered — lang/lower rejects their tags with an
// unsupported-construct diagnostic — but they parse so the AST covers the
// full grammar.

// parseSwitchExpr implements "SwitchExpr <- KEYWORD_switch LPAREN Expr
// RPAREN LBRACE SwitchProngList RBRACE".
func (p *parser) parseSwitchExpr() *ast.Node {
	pos := p.pos()
	if !p.eat(token.KeywordSwitch) {
		return nil
	}
	p.expect("parseSwitchExpr", token.LParen)
	cond := p.expectExpr("parseSwitchExpr")
	p.expect("parseSwitchExpr", token.RParen)
	p.expect("parseSwitchExpr", token.LBrace)
	prongs := p.expectSwitchProngList()
	p.expect("parseSwitchExpr", token.RBrace)
	return p.newNode(pos, ast.SwitchExpr, ast.SwitchExprData{Expr: cond, SwitchProngList: prongs})
}

// expectSwitchProngList implements "SwitchProngList <- (SwitchProng
// COMMA)* SwitchProng?".
func (p *parser) expectSwitchProngList() *ast.Node {
	pos := p.pos()
	var prongs []*ast.Node
	for i := 0; i < loopMax; i++ {
		prong := p.parseSwitchProng()
		if prong == nil {
			break
		}
		prongs = append(prongs, prong)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.newNode(pos, ast.SwitchProngList, ast.SwitchProngListData{Prongs: prongs})
}

// parseSwitchProng implements "SwitchProng <- KEYWORD_inline? SwitchCase
// EQUALRARROW PtrIndexPayload? SingleAssignExpr".
func (p *parser) parseSwitchProng() *ast.Node {
	mark := p.mark()
	pos := p.pos()

	isInline := p.eat(token.KeywordInline)
	sc := p.parseSwitchCase()
	if sc == nil || !p.eat(token.EqualAngleBracketRight) {
		p.reset(mark)
		return nil
	}
	payload := p.parsePtrIndexPayload()
	expr := p.parseAssignExpr()
	return p.newNode(pos, ast.SwitchProng, ast.SwitchProngData{
		IsInline: isInline, SwitchCase: sc, Payload: payload, Expr: expr,
	})
}

// parseSwitchCase implements "SwitchCase <- SwitchItem (COMMA SwitchItem)*
// COMMA? / KEYWORD_else".
func (p *parser) parseSwitchCase() *ast.Node {
	pos := p.pos()
	if p.eat(token.KeywordElse) {
		return p.newNode(pos, ast.SwitchCase, ast.SwitchCaseData{IsElse: true})
	}

	var items []*ast.Node
	for i := 0; i < loopMax && !p.peek(token.EqualAngleBracketRight); i++ {
		item := p.parseSwitchItem()
		if item == nil {
			break
		}
		items = append(items, item)
		p.eat(token.Comma)
	}
	if len(items) == 0 {
		return nil
	}
	return p.newNode(pos, ast.SwitchCase, ast.SwitchCaseData{Cases: items})
}

// parseSwitchItem implements "SwitchItem <- Expr (DOT3 Expr)?".
func (p *parser) parseSwitchItem() *ast.Node {
	pos := p.pos()
	start := p.parseExpr()
	if start == nil {
		return nil
	}
	var end *ast.Node
	if p.eat(token.Ellipsis3) {
		end = p.expectExpr("parseSwitchItem")
	}
	return p.newNode(pos, ast.SwitchItem, ast.SwitchItemData{Start: start, End: end})
}

// parsePtrIndexPayload implements "PtrIndexPayload <- PIPE ASTERISK?
// IDENTIFIER (COMMA IDENTIFIER)? PIPE".
func (p *parser) parsePtrIndexPayload() *ast.Node {
	if !p.peek(token.Pipe) {
		return nil
	}
	pos := p.pos()
	p.advance()
	isPtr := p.eat(token.Asterisk)
	name := p.text()
	p.expect("parsePtrIndexPayload", token.Identifier)
	var nameIndex string
	if p.eat(token.Comma) {
		nameIndex = p.text()
		p.expect("parsePtrIndexPayload", token.Identifier)
	}
	p.expect("parsePtrIndexPayload", token.Pipe)
	return p.newNode(pos, ast.PayloadIndex, ast.PayloadIndexData{
		Name: name, IsPointer: isPtr, NameIndex: nameIndex,
	})
}

// parseAsmExpr implements "AsmExpr <- KEYWORD_asm KEYWORD_volatile? LPAREN
// Expr AsmOutput? RPAREN".
func (p *parser) parseAsmExpr() *ast.Node {
	pos := p.pos()
	if !p.eat(token.KeywordAsm) {
		return nil
	}
	isVolatile := p.eat(token.KeywordVolatile)
	p.expect("parseAsmExpr", token.LParen)
	expr := p.expectExpr("parseAsmExpr")
	output := p.parseAsmOutput()
	p.expect("parseAsmExpr", token.RParen)
	return p.newNode(pos, ast.AsmExpr, ast.AsmExprData{
		IsVolatile: isVolatile, Expr: expr, AsmOutput: output,
	})
}

// parseAsmOutput implements "AsmOutput <- COLON AsmOutputList AsmInput?".
func (p *parser) parseAsmOutput() *ast.Node {
	if !p.peek(token.Colon) {
		return nil
	}
	pos := p.pos()
	p.advance()
	list := p.expectAsmOutputList()
	input := p.parseAsmInput()
	return p.newNode(pos, ast.AsmOutput, ast.AsmOutputData{AsmOutputList: list, AsmInput: input})
}

// expectAsmOutputList implements "AsmOutputList <- (AsmOutputItem COMMA)*
// AsmOutputItem?". The list may be
// empty (an asm expression with inputs only).
func (p *parser) expectAsmOutputList() *ast.Node {
	pos := p.pos()
	var items []*ast.Node
	for i := 0; i < loopMax; i++ {
		item := p.parseAsmOutputItem()
		if item == nil {
			break
		}
		items = append(items, item)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.newNode(pos, ast.AsmOutputList, ast.AsmOutputListData{AsmOutputs: items})
}

// parseAsmOutputItem implements "AsmOutputItem <- LBRACKET IDENTIFIER
// RBRACKET STRINGLITERAL LPAREN (MINUSRARROW TypeExpr / IDENTIFIER)
// RPAREN". The parenthesized
// operand becomes a type_or_name node.
func (p *parser) parseAsmOutputItem() *ast.Node {
	if !p.peek(token.LBracket) {
		return nil
	}
	pos := p.pos()
	p.advance()
	name := p.text()
	p.expect("parseAsmOutputItem", token.Identifier)
	p.expect("parseAsmOutputItem", token.RBracket)
	lit := p.text()
	if !p.eat(token.StringLiteral) {
		p.fail("parseAsmOutputItem", "expected string literal, found "+p.found())
	}
	p.expect("parseAsmOutputItem", token.LParen)

	tnPos := p.pos()
	var tn ast.TypeOrNameData
	if p.eat(token.Arrow) {
		tn.IsType = true
		tn.Type = p.expectTypeExpr("parseAsmOutputItem")
	} else {
		tn.Name = p.text()
		p.expect("parseAsmOutputItem", token.Identifier)
	}
	outputExpr := p.newNode(tnPos, ast.TypeOrName, tn)
	p.expect("parseAsmOutputItem", token.RParen)
	return p.newNode(pos, ast.AsmOutputItem, ast.AsmOutputItemData{
		Name: name, Lit: lit, OutputExpr: outputExpr,
	})
}

// parseAsmInput implements "AsmInput <- COLON AsmInputList AsmClobbers?".
func (p *parser) parseAsmInput() *ast.Node {
	if !p.peek(token.Colon) {
		return nil
	}
	pos := p.pos()
	p.advance()
	list := p.expectAsmInputList()
	clobbers := p.parseAsmClobbers()
	return p.newNode(pos, ast.AsmInput, ast.AsmInputData{AsmInputList: list, Clobbers: clobbers})
}

// expectAsmInputList implements "AsmInputList <- (AsmInputItem COMMA)*
// AsmInputItem?".
func (p *parser) expectAsmInputList() *ast.Node {
	pos := p.pos()
	var items []*ast.Node
	for i := 0; i < loopMax; i++ {
		item := p.parseAsmInputItem()
		if item == nil {
			break
		}
		items = append(items, item)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.newNode(pos, ast.AsmInputList, ast.AsmInputListData{AsmInputs: items})
}

// parseAsmInputItem implements "AsmInputItem <- LBRACKET IDENTIFIER
// RBRACKET STRINGLITERAL LPAREN Expr RPAREN".
func (p *parser) parseAsmInputItem() *ast.Node {
	if !p.peek(token.LBracket) {
		return nil
	}
	pos := p.pos()
	p.advance()
	name := p.text()
	p.expect("parseAsmInputItem", token.Identifier)
	p.expect("parseAsmInputItem", token.RBracket)
	lit := p.text()
	if !p.eat(token.StringLiteral) {
		p.fail("parseAsmInputItem", "expected string literal, found "+p.found())
	}
	p.expect("parseAsmInputItem", token.LParen)
	expr := p.expectExpr("parseAsmInputItem")
	p.expect("parseAsmInputItem", token.RParen)
	return p.newNode(pos, ast.AsmInputItem, ast.AsmInputItemData{
		Name: name, Lit: lit, InputExpr: expr,
	})
}

// parseAsmClobbers implements "AsmClobbers <- COLON Expr".
func (p *parser) parseAsmClobbers() *ast.Node {
	if !p.eat(token.Colon) {
		return nil
	}
	return p.expectExpr("parseAsmClobbers")
}

// parseBlockLabel implements "BlockLabel <- IDENTIFIER COLON" (the label
// that precedes a block, loop or switch, as opposed to parseBreakLabel's
// ":label" after break/continue). Returns "" without consuming anything
// when the next two tokens are not identifier-colon.
func (p *parser) parseBlockLabel() string {
	if !p.peek(token.Identifier) || p.toks[p.idx+1].Tok != token.Colon {
		return ""
	}
	name := p.text()
	p.advance()
	p.advance()
	return name
}

// parseLabeledTypeExpr implements "LabeledTypeExpr <- BlockLabel Block /
// BlockLabel? LoopTypeExpr / BlockLabel? SwitchExpr".
func (p *parser) parseLabeledTypeExpr() *ast.Node {
	mark := p.mark()
	pos := p.pos()
	label := p.parseBlockLabel()

	switch {
	case p.peek(token.LBrace):
		block := p.expectBlock("parseLabeledTypeExpr")
		return p.newNode(pos, ast.LabeledBlock, ast.LabeledTypeExprData{Label: label, Node: block})

	case p.peek(token.KeywordInline), p.peek(token.KeywordFor), p.peek(token.KeywordWhile):
		loop := p.parseLoopTypeExpr()
		if loop == nil {
			break
		}
		return p.newNode(pos, ast.LabeledLoopExpr, ast.LabeledTypeExprData{Label: label, Node: loop})

	case p.peek(token.KeywordSwitch):
		sw := p.parseSwitchExpr()
		return p.newNode(pos, ast.LabeledSwitchExpr, ast.LabeledTypeExprData{Label: label, Node: sw})
	}

	p.reset(mark)
	return nil
}

// parseLoopTypeExpr implements "LoopTypeExpr <- KEYWORD_inline?
// (ForTypeExpr / WhileTypeExpr)".
func (p *parser) parseLoopTypeExpr() *ast.Node {
	mark := p.mark()
	p.eat(token.KeywordInline)
	switch {
	case p.peek(token.KeywordFor):
		return p.parseForTypeExpr()
	case p.peek(token.KeywordWhile):
		return p.parseWhileTypeExpr()
	}
	p.reset(mark)
	return nil
}

// parseWhileTypeExpr implements "WhileTypeExpr <- WhilePrefix TypeExpr
// (KEYWORD_else Payload? TypeExpr)?".
func (p *parser) parseWhileTypeExpr() *ast.Node {
	pos := p.pos()
	prefix := p.expectWhilePrefix()
	typeExpr := p.expectTypeExpr("parseWhileTypeExpr")

	var elseName string
	var elseExpr *ast.Node
	if p.eat(token.KeywordElse) {
		elseName = p.parsePayload()
		elseExpr = p.expectTypeExpr("parseWhileTypeExpr")
	}
	return p.newNode(pos, ast.WhileTypeExpr, ast.WhileTypeExprData{
		WhilePrefix: prefix, TypeExpr: typeExpr, ElsePayloadName: elseName, ElsePayloadTypeExpr: elseExpr,
	})
}

// parseForTypeExpr implements "ForTypeExpr <- ForPrefix TypeExpr
// (KEYWORD_else TypeExpr)?".
func (p *parser) parseForTypeExpr() *ast.Node {
	pos := p.pos()
	prefix := p.expectForPrefix()
	expr := p.expectTypeExpr("parseForTypeExpr")

	var elseExpr *ast.Node
	if p.eat(token.KeywordElse) {
		elseExpr = p.expectTypeExpr("parseForTypeExpr")
	}
	return p.newNode(pos, ast.ForTypeExpr, ast.ForTypeExprData{
		ForPrefix: prefix, Expr: expr, ElseExpr: elseExpr,
	})
}

// parseIfTypeExpr implements "IfTypeExpr <- IfPrefix TypeExpr
// (KEYWORD_else Payload? TypeExpr)?".
func (p *parser) parseIfTypeExpr() *ast.Node {
	pos := p.pos()
	prefix := p.expectIfPrefix()
	typeExpr := p.expectTypeExpr("parseIfTypeExpr")

	var elseName string
	var elseExpr *ast.Node
	if p.eat(token.KeywordElse) {
		elseName = p.parsePayload()
		elseExpr = p.expectTypeExpr("parseIfTypeExpr")
	}
	return p.newNode(pos, ast.IfTypeExpr, ast.IfTypeExprData{
		IfPrefix: prefix, TypeExpr: typeExpr, ElsePayloadName: elseName, ElsePayloadTypeExpr: elseExpr,
	})
}

// parseLoopExprPrimary implements the "BlockLabel? LoopExpr" alternative
// of PrimaryExpr (expression-position loops, whose bodies are Exprs rather
// than TypeExprs).
func (p *parser) parseLoopExprPrimary() *ast.Node {
	mark := p.mark()
	pos := p.pos()
	label := p.parseBlockLabel()
	p.eat(token.KeywordInline)

	var inner *ast.Node
	switch {
	case p.peek(token.KeywordWhile):
		inner = p.parseWhileExpr()
	case p.peek(token.KeywordFor):
		inner = p.parseForExpr()
	}
	if inner == nil {
		p.reset(mark)
		return nil
	}
	return p.newNode(pos, ast.LoopExpr, ast.LoopExprData{Label: label, LoopExpr: inner})
}

// parseWhileExpr implements "WhileExpr <- WhilePrefix Expr (KEYWORD_else
// Payload? Expr)?".
func (p *parser) parseWhileExpr() *ast.Node {
	pos := p.pos()
	prefix := p.expectWhilePrefix()
	body := p.expectExpr("parseWhileExpr")

	var elseName string
	var elseExpr *ast.Node
	if p.eat(token.KeywordElse) {
		elseName = p.parsePayload()
		elseExpr = p.expectExpr("parseWhileExpr")
	}
	return p.newNode(pos, ast.WhileExpr, ast.WhileExprData{
		Condition: prefix, Expr: body, ElsePayloadName: elseName, ElseExpr: elseExpr,
	})
}

// parseForExpr implements "ForExpr <- ForPrefix Expr (KEYWORD_else
// Expr)?".
func (p *parser) parseForExpr() *ast.Node {
	pos := p.pos()
	prefix := p.expectForPrefix()
	body := p.expectExpr("parseForExpr")

	var elseExpr *ast.Node
	if p.eat(token.KeywordElse) {
		elseExpr = p.expectExpr("parseForExpr")
	}
	return p.newNode(pos, ast.ForExpr, ast.ForExprData{
		Condition: prefix, Expr: body, ElseExpr: elseExpr,
	})
}

// expectIdentifierList implements "ErrorSetDecl's LBRACE IdentifierList
// RBRACE" tail: "IdentifierList <- (IDENTIFIER COMMA)* IDENTIFIER?".
func (p *parser) expectIdentifierList() *ast.Node {
	pos := p.expect("parseIdentifierList", token.LBrace)
	var idents []string
	for i := 0; i < loopMax && p.peek(token.Identifier); i++ {
		idents = append(idents, p.text())
		p.advance()
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect("parseIdentifierList", token.RBrace)
	return p.newNode(pos, ast.IdentifierList, ast.IdentifierListData{Idents: idents})
}

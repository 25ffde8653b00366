package parser

import (
	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/token"
)

// This file implements the TypeExpr <- ErrorUnionExpr <- SuffixExpr <-
// PrimaryTypeExpr chain. Values and types share this one production in
// the source language, so this is also where plain value expressions
// bottom out once lang/parser/expr.go has stripped off the binary- and
// unary-operator layers.

// expectTypeExpr parses a required TypeExpr, failing if none is present.
func (p *parser) expectTypeExpr(where string) *ast.Node {
	t := p.parseTypeExpr()
	if t == nil {
		p.fail(where, "expected type expression, found "+p.found())
	}
	return t
}

// parseTypeExpr implements "TypeExpr <- PrefixTypeOp* ErrorUnionExpr".
func (p *parser) parseTypeExpr() *ast.Node {
	pos := p.pos()
	var prefixOps []*ast.Node
	for i := 0; i < loopMax; i++ {
		op := p.parsePrefixTypeOp()
		if op == nil {
			break
		}
		prefixOps = append(prefixOps, op)
	}

	eu := p.parseErrorUnionExpr()
	if eu == nil {
		if len(prefixOps) != 0 {
			p.fail("parseTypeExpr", "expected type expression, found "+p.found())
		}
		return nil
	}
	return p.newNode(pos, ast.TypeExpr, ast.TypeExprData{PrefixTypeOps: prefixOps, TypeExpr: eu})
}

// parsePrefixTypeOp implements "PrefixTypeOp <- QUESTIONMARK /
// KEYWORD_anyframe MINUSRARROW / SliceTypeStart (ByteAlign / AddrSpace /
// KEYWORD_const / KEYWORD_volatile / KEYWORD_allowzero)* / PtrTypeStart
// (...)* / ArrayTypeStart".
func (p *parser) parsePrefixTypeOp() *ast.Node {
	pos := p.pos()
	switch {
	case p.eat(token.QuestionMark):
		return p.newNode(pos, ast.PrefixTypeOpOptional, nil)

	case p.peek(token.KeywordAnyframe):
		mark := p.mark()
		p.advance()
		if p.eat(token.Arrow) {
			return p.newNode(pos, ast.PrefixTypeOpAnyframe, nil)
		}
		p.reset(mark)
		return nil

	case p.peek(token.Asterisk), p.peek(token.AsteriskAsterisk):
		return p.parsePtrPrefixBare(pos)

	case p.peek(token.LBracket):
		return p.parseBracketPrefixTypeOp(pos)

	default:
		return nil
	}
}

func (p *parser) parsePointerModifiers() ast.PointerModifiers {
	var m ast.PointerModifiers
	for {
		switch {
		case p.eat(token.KeywordConst):
			m |= ast.PtrConst
		case p.eat(token.KeywordVolatile):
			m |= ast.PtrVolatile
		case p.eat(token.KeywordAllowzero):
			m |= ast.PtrAllowzero
		default:
			return m
		}
	}
}

// finishPtrPrefix wraps an already-built PtrTypeStart node in its
// PrefixTypeOpPtr wrapper, consuming the modifiers/align/addrspace that
// may trail either pointer spelling.
func (p *parser) finishPtrPrefix(pos token.Pos, ptrStart *ast.Node) *ast.Node {
	modifiers := p.parsePointerModifiers()
	align := p.parseByteAlign()
	addrspace := p.parseAddrSpace()
	modifiers |= p.parsePointerModifiers()
	return p.newNode(pos, ast.PrefixTypeOpPtr, ast.PrefixTypePtrData{
		Ptr: ptrStart, Addrspace: addrspace, Align: align, Modifiers: modifiers,
	})
}

// parsePtrPrefixBare handles the bare "*T" / "**T" spellings of
// PtrTypeStart (PtrTypeSingle / PtrTypeDouble).
func (p *parser) parsePtrPrefixBare(pos token.Pos) *ast.Node {
	var ptrType ast.PtrType
	if p.eat(token.AsteriskAsterisk) {
		ptrType = ast.PtrTypeDouble
	} else {
		p.expect("parsePtrTypeStart", token.Asterisk)
		ptrType = ast.PtrTypeSingle
	}
	ptrStart := p.newNode(pos, ast.PtrTypeStart, ast.PtrTypeStartData{Type: ptrType})
	return p.finishPtrPrefix(pos, ptrStart)
}

// parseBracketPrefixTypeOp handles every "[...]"-introduced prefix type
// op: multi/C/sentinel pointers ("[*]T", "[*c]T", "[*:0]T"), slices
// ("[]T", "[:0]T") and arrays ("[N]T", "[N:0]T").
func (p *parser) parseBracketPrefixTypeOp(pos token.Pos) *ast.Node {
	p.expect("parsePrefixTypeOp", token.LBracket)

	if p.eat(token.Asterisk) {
		ptrType := ast.PtrTypeMulti
		var sentinel *ast.Node
		switch {
		case p.peek(token.Identifier) && p.text() == "c":
			p.advance()
			ptrType = ast.PtrTypeC
		case p.eat(token.Colon):
			sentinel = p.expectExpr("parsePtrTypeStart")
			ptrType = ast.PtrTypeSentinel
		}
		p.expect("parsePtrTypeStart", token.RBracket)
		ptrStart := p.newNode(pos, ast.PtrTypeStart, ast.PtrTypeStartData{Type: ptrType, SentinelExpr: sentinel})
		return p.finishPtrPrefix(pos, ptrStart)
	}

	if p.eat(token.RBracket) {
		sliceStart := p.newNode(pos, ast.SliceTypeStart, ast.SliceTypeStartData{})
		return p.finishSlicePrefix(pos, sliceStart)
	}
	if p.eat(token.Colon) {
		sentinel := p.expectExpr("parseSliceTypeStart")
		p.expect("parseSliceTypeStart", token.RBracket)
		sliceStart := p.newNode(pos, ast.SliceTypeStart, ast.SliceTypeStartData{SentinelExpr: sentinel})
		return p.finishSlicePrefix(pos, sliceStart)
	}

	index := p.expectExpr("parseArrayTypeStart")
	var sentinel *ast.Node
	if p.eat(token.Colon) {
		sentinel = p.expectExpr("parseArrayTypeStart")
	}
	p.expect("parseArrayTypeStart", token.RBracket)
	arrayStart := p.newNode(pos, ast.ArrayTypeStart, ast.ArrayTypeStartData{Index: index, SentinelExpr: sentinel})
	return p.newNode(pos, ast.PrefixTypeOpArray, ast.PrefixTypeArrayData{Array: arrayStart})
}

func (p *parser) finishSlicePrefix(pos token.Pos, sliceStart *ast.Node) *ast.Node {
	modifiers := p.parsePointerModifiers()
	align := p.parseByteAlign()
	addrspace := p.parseAddrSpace()
	return p.newNode(pos, ast.PrefixTypeOpSlice, ast.PrefixTypeSliceData{
		Slice: sliceStart, Bytealign: align, Addrspace: addrspace, Modifiers: modifiers,
	})
}

// parseErrorUnionExpr implements "ErrorUnionExpr <- SuffixExpr (BANG
// TypeExpr)?".
func (p *parser) parseErrorUnionExpr() *ast.Node {
	pos := p.pos()
	suffix := p.parseSuffixExpr()
	if suffix == nil {
		return nil
	}
	var errType *ast.Node
	if p.eat(token.Bang) {
		errType = p.expectTypeExpr("parseErrorUnionExpr")
	}
	return p.newNode(pos, ast.ErrorUnionExpr, ast.ErrorUnionExprData{SuffixExpr: suffix, ErrorTypeExpr: errType})
}

// parseSuffixExpr implements "SuffixExpr <- PrimaryTypeExpr SuffixOp*".
func (p *parser) parseSuffixExpr() *ast.Node {
	pos := p.pos()
	primary := p.parsePrimaryTypeExpr()
	if primary == nil {
		return nil
	}
	var suffixes []*ast.Node
	for i := 0; i < loopMax; i++ {
		s := p.parseSuffixOp()
		if s == nil {
			break
		}
		suffixes = append(suffixes, s)
	}
	return p.newNode(pos, ast.SuffixExpr, ast.SuffixExprData{Expr: primary, Suffixes: suffixes})
}

// parseSuffixOp implements "SuffixOp <- LBRACKET Expr (DOT2 Expr?
// (COLON Expr)?)? RBRACKET / DOT IDENTIFIER / DOTASTERISK /
// DOTQUESTIONMARK". The slice op is simplified to an optional end and an
// optional colon-introduced sentinel.
func (p *parser) parseSuffixOp() *ast.Node {
	pos := p.pos()
	switch {
	case p.eat(token.Period):
		switch {
		case p.eat(token.Asterisk):
			return p.newNode(pos, ast.SuffixTypeOpDeref, nil)
		case p.eat(token.QuestionMark):
			return p.newNode(pos, ast.SuffixTypeOpAssertMaybe, nil)
		default:
			name := p.text()
			p.expect("parseSuffixOp", token.Identifier)
			return p.newNode(pos, ast.SuffixTypeOpNamedAccess, ast.SuffixTypeOpNamedAccessData{Name: name})
		}

	case p.eat(token.LBracket):
		start := p.expectExpr("parseSuffixOp")
		var end, sentinel *ast.Node
		if p.eat(token.Ellipsis2) {
			end = p.parseExpr()
			if p.eat(token.Colon) {
				sentinel = p.expectExpr("parseSuffixOp")
			}
		}
		p.expect("parseSuffixOp", token.RBracket)
		return p.newNode(pos, ast.SuffixTypeOpSlice, ast.SuffixTypeOpSliceData{
			StartExpr: start, EndExpr: end, SentinelExpr: sentinel,
		})

	case p.peek(token.LParen):
		return p.parseFnCallArguments()

	default:
		return nil
	}
}

// parseFnCallArguments implements "FnCallArguments <- LPAREN ExprList
// RPAREN". The call-site argument
// count is capped by lang/lower to 16; parsing itself accepts any count
// and leaves that bound to lowering.
func (p *parser) parseFnCallArguments() *ast.Node {
	pos := p.expect("parseFnCallArguments", token.LParen)
	var exprs []*ast.Node
	for i := 0; i < loopMax && !p.peek(token.RParen); i++ {
		exprs = append(exprs, p.expectExpr("parseFnCallArguments"))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect("parseFnCallArguments", token.RParen)
	return p.newNode(pos, ast.FnCallArguments, ast.FnCallArgumentsData{Exprs: exprs})
}

// parsePrimaryTypeExpr implements "PrimaryTypeExpr <- BUILTINIDENTIFIER
// FnCallArguments / CHAR_LITERAL / ContainerDecl / DOT IDENTIFIER / DOT
// InitList / ErrorSetDecl / FnProto / GroupedExpr / LabeledTypeExpr /
// IDENTIFIER / IfTypeExpr / KEYWORD_comptime TypeExpr / KEYWORD_error DOT
// IDENTIFIER / KEYWORD_anyframe / KEYWORD_unreachable / NUMBER /
// STRINGLITERAL". Every case is gated on a distinct leading token, so the
// alternation becomes a single switch; only the LabeledTypeExpr attempt
// inside the identifier case ever backtracks.
func (p *parser) parsePrimaryTypeExpr() *ast.Node {
	pos := p.pos()
	switch {
	case p.peek(token.NumberLiteral):
		raw := p.text()
		p.advance()
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeNumberLiteral, Raw: raw})

	case p.peek(token.CharLiteral):
		raw := p.text()
		p.advance()
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeCharLiteral, Raw: raw})

	case p.peek(token.StringLiteral):
		raw := p.text()
		p.advance()
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeStringLiteral, Raw: raw})

	case p.peek(token.Builtin):
		name := p.text()
		p.advance()
		args := p.parseFnCallArguments()
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{
			PrimaryTag: ast.PrimaryTypeBuiltin, BuiltinName: name, BuiltinArgs: args,
		})

	case p.peek(token.Identifier):
		// "label: {...}" / "label: while ..." binds tighter than a plain
		// identifier reference
		if lte := p.parseLabeledTypeExpr(); lte != nil {
			return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeLabeledTypeExpr, Child: lte})
		}
		raw := p.text()
		p.advance()
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeIdentifier, Raw: raw})

	case p.peek(token.LBrace), p.peek(token.KeywordSwitch), p.peek(token.KeywordWhile),
		p.peek(token.KeywordFor), p.peek(token.KeywordInline):
		lte := p.parseLabeledTypeExpr()
		if lte == nil {
			return nil
		}
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeLabeledTypeExpr, Child: lte})

	case p.peek(token.KeywordIf):
		ifte := p.parseIfTypeExpr()
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeIfTypeExpr, Child: ifte})

	case p.eat(token.KeywordComptime):
		te := p.expectTypeExpr("parsePrimaryTypeExpr")
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeComptimeTypeExpr, Child: te})

	case p.eat(token.KeywordUnreachable):
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeUnreachable})

	case p.eat(token.KeywordAnytype):
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeAnytype})

	case p.peek(token.KeywordAnyframe):
		p.advance()
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeAnyframe})

	case p.eat(token.KeywordError):
		// "error { A, B }" declares an error set; "error.Name" references
		// one member
		if p.peek(token.LBrace) {
			idents := p.expectIdentifierList()
			return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeErrorSetDecl, Child: idents})
		}
		p.expect("parsePrimaryTypeExpr", token.Period)
		name := p.text()
		p.expect("parsePrimaryTypeExpr", token.Identifier)
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeError, Raw: name})

	case p.eat(token.LParen):
		inner := p.expectExpr("parseGroupedExpr")
		p.expect("parseGroupedExpr", token.RParen)
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeGroupedExpr, Child: inner})

	case p.peek(token.Period):
		return p.parseDotPrimaryTypeExpr(pos)

	case p.peek(token.KeywordStruct), p.peek(token.KeywordEnum), p.peek(token.KeywordUnion), p.peek(token.KeywordOpaque):
		return p.parseContainerDeclPrimary(pos)

	case p.peek(token.KeywordFn):
		proto := p.expectFnProto()
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeFnProto, Child: proto})

	default:
		return nil
	}
}

// parseDotPrimaryTypeExpr implements the "DOT IDENTIFIER / DOT InitList"
// half of PrimaryTypeExpr: ".name" enum-literal shorthand and ".{...}"
// anonymous composite literals.
func (p *parser) parseDotPrimaryTypeExpr(pos token.Pos) *ast.Node {
	p.expect("parsePrimaryTypeExpr", token.Period)

	if p.peek(token.Identifier) {
		name := p.text()
		p.advance()
		return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeDotIdentifier, Raw: name})
	}

	initList := p.expectInitList()
	return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeDotInitlist, Child: initList})
}

// expectInitList implements "InitList <- LBRACE FieldInit (COMMA
// FieldInit)* COMMA? RBRACE / LBRACE Expr (COMMA Expr)* COMMA? RBRACE /
// LBRACE RBRACE".
func (p *parser) expectInitList() *ast.Node {
	pos := p.expect("parseInitList", token.LBrace)
	if p.eat(token.RBrace) {
		return p.newNode(pos, ast.InitListEmpty, nil)
	}

	if p.peek(token.Period) {
		var fields []*ast.Node
		for i := 0; i < loopMax; i++ {
			fields = append(fields, p.expectFieldInit())
			if !p.eat(token.Comma) {
				break
			}
			if p.peek(token.RBrace) {
				break
			}
		}
		p.expect("parseInitList", token.RBrace)
		return p.newNode(pos, ast.InitListField, ast.InitListData{Nodes: fields})
	}

	var exprs []*ast.Node
	for i := 0; i < loopMax; i++ {
		exprs = append(exprs, p.expectExpr("parseInitList"))
		if !p.eat(token.Comma) {
			break
		}
		if p.peek(token.RBrace) {
			break
		}
	}
	p.expect("parseInitList", token.RBrace)
	return p.newNode(pos, ast.InitListExpr, ast.InitListData{Nodes: exprs})
}

// expectFieldInit implements "FieldInit <- DOT IDENTIFIER EQUAL Expr".
func (p *parser) expectFieldInit() *ast.Node {
	pos := p.expect("parseFieldInit", token.Period)
	name := p.text()
	p.expect("parseFieldInit", token.Identifier)
	p.expect("parseFieldInit", token.Equal)
	expr := p.expectExpr("parseFieldInit")
	return p.newNode(pos, ast.FieldInit, ast.FieldInitData{Name: name, Expr: expr})
}

// parseContainerDeclPrimary implements "ContainerDeclAuto <-
// ContainerDeclType LBRACE ContainerMembers RBRACE", wrapping the
// struct/enum/union/opaque
// keyword plus its optional parenthesized argument (a backing type for
// struct/enum/union, or "enum" for a tagged union) into a StructDecl/
// EnumDecl/UnionDecl/OpaqueDecl node before the body.
func (p *parser) parseContainerDeclPrimary(pos token.Pos) *ast.Node {
	var kind *ast.Node
	switch {
	case p.eat(token.KeywordStruct):
		var backing *ast.Node
		if p.eat(token.LParen) {
			backing = p.expectTypeExpr("parseContainerDeclType")
			p.expect("parseContainerDeclType", token.RParen)
		}
		kind = p.newNode(pos, ast.StructDecl, backing)

	case p.eat(token.KeywordEnum):
		var backing *ast.Node
		if p.eat(token.LParen) {
			backing = p.expectTypeExpr("parseContainerDeclType")
			p.expect("parseContainerDeclType", token.RParen)
		}
		kind = p.newNode(pos, ast.EnumDecl, backing)

	case p.eat(token.KeywordUnion):
		var expr *ast.Node
		isTagged := false
		if p.eat(token.LParen) {
			if p.eat(token.KeywordEnum) {
				isTagged = true
			} else {
				expr = p.expectTypeExpr("parseContainerDeclType")
			}
			p.expect("parseContainerDeclType", token.RParen)
		}
		kind = p.newNode(pos, ast.UnionDecl, ast.UnionDeclData{Expr: expr, IsTagged: isTagged})

	case p.eat(token.KeywordOpaque):
		kind = p.newNode(pos, ast.OpaqueDecl, nil)
	}

	p.expect("parseContainerDeclAuto", token.LBrace)
	members := p.expectContainerMembers()
	p.expect("parseContainerDeclAuto", token.RBrace)

	auto := p.newNode(pos, ast.ContainerDeclAuto, ast.ContainerDeclAutoData{Type: kind, Members: members})
	return p.newNode(pos, ast.PrimaryTypeExpr, ast.PrimaryTypeExprData{PrimaryTag: ast.PrimaryTypeContainerDecl, Child: auto})
}

package parser

import (
	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/token"
)

// expectRoot implements "Root <- skip ContainerMembers eof": the top-level
// entry point.
func (p *parser) expectRoot() *ast.Node {
	root := p.expectContainerMembers()
	p.expect("root", token.EOF)
	return root
}

// expectContainerMembers implements "ContainerMembers <-
// container_doc_comment? ContainerDeclaration* (ContainerField COMMA)*
// (ContainerField / ContainerDeclaration*)".
func (p *parser) expectContainerMembers() *ast.Node {
	pos := p.pos()
	for p.eat(token.ContainerDocComment) {
	}

	var decls, fields []*ast.Node

	for i := 0; i < loopMax && !p.peek(token.EOF); i++ {
		n := p.parseContainerDeclaration()
		if n == nil {
			break
		}
		decls = append(decls, n)
	}

	for i := 0; i < loopMax && !p.peek(token.EOF); i++ {
		n := p.parseContainerField()
		if n == nil {
			break
		}
		fields = append(fields, n)
		if !p.eat(token.Comma) {
			break
		}
	}

	for i := 0; i < loopMax && !p.peek(token.EOF); i++ {
		n := p.parseContainerDeclaration()
		if n == nil {
			break
		}
		decls = append(decls, n)
	}

	return p.newNode(pos, ast.ContainerMembers, ast.ContainerMembersData{Decls: decls, Fields: fields})
}

// parseContainerDeclaration implements "ContainerDeclaration <- TestDecl /
// ComptimeDecl / doc_comment? KEYWORD_pub? Decl".
func (p *parser) parseContainerDeclaration() *ast.Node {
	mark := p.mark()

	switch {
	case p.peek(token.KeywordTest):
		return p.expectTestDecl()
	case p.peek(token.KeywordComptime):
		return p.expectComptimeDecl()
	}

	pos := p.pos()
	for p.eat(token.DocComment) {
	}
	isPub := p.eat(token.KeywordPub)
	decl := p.parseDecl()
	if decl == nil {
		p.reset(mark)
		return nil
	}
	return p.newNode(pos, ast.TopLevelDecl, ast.TopLevelDeclData{Decl: decl, IsPub: isPub})
}

// expectTestDecl implements "TestDecl <- KEYWORD_test (STRINGLITERALSINGLE /
// IDENTIFIER)? Block".
func (p *parser) expectTestDecl() *ast.Node {
	pos := p.expect("expectTestDecl", token.KeywordTest)

	var name string
	isIdent := false
	if p.peek(token.StringLiteral) || p.peek(token.Identifier) {
		name = p.text()
		isIdent = p.tok() == token.Identifier
		p.advance()
	}

	block := p.expectBlock("expectTestDecl")
	return p.newNode(pos, ast.TestDecl, ast.TestDeclData{Name: name, Block: block, IsIdent: isIdent})
}

// expectComptimeDecl implements "ComptimeDecl <- KEYWORD_comptime Block";
// the body is the only payload.
func (p *parser) expectComptimeDecl() *ast.Node {
	pos := p.expect("expectComptimeDecl", token.KeywordComptime)
	block := p.expectBlock("expectComptimeDecl")
	return p.newNode(pos, ast.ComptimeDecl, ast.ComptimeDeclData{Block: block})
}

// parseContainerField implements "ContainerField <- doc_comment?
// KEYWORD_comptime? IDENTIFIER COLON TypeExpr ByteAlign? (EQUAL Expr)?";
// the optional comptime prefix applies to the whole field.
func (p *parser) parseContainerField() *ast.Node {
	mark := p.mark()
	pos := p.pos()
	for p.eat(token.DocComment) {
	}
	isComptime := p.eat(token.KeywordComptime)

	if !p.peek(token.Identifier) {
		p.reset(mark)
		return nil
	}
	name := p.text()
	p.advance()
	if !p.eat(token.Colon) {
		p.reset(mark)
		return nil
	}
	typeExpr := p.expectTypeExpr("parseContainerField")
	bytealign := p.parseByteAlign()
	var expr *ast.Node
	if p.eat(token.Equal) {
		expr = p.expectExpr("parseContainerField")
	}
	return p.newNode(pos, ast.ContainerField, ast.ContainerFieldData{
		Name: name, TypeExpr: typeExpr, Bytealign: bytealign, Expr: expr, IsComptime: isComptime,
	})
}

// parseByteAlign implements "ByteAlign <- KEYWORD_align LPAREN Expr RPAREN".
func (p *parser) parseByteAlign() *ast.Node {
	if !p.eat(token.KeywordAlign) {
		return nil
	}
	p.expect("parseByteAlign", token.LParen)
	e := p.expectExpr("parseByteAlign")
	p.expect("parseByteAlign", token.RParen)
	return e
}

// parseAddrSpace implements "AddrSpace <- KEYWORD_addrspace LPAREN Expr
// RPAREN".
func (p *parser) parseAddrSpace() *ast.Node {
	if !p.eat(token.KeywordAddrspace) {
		return nil
	}
	p.expect("parseAddrSpace", token.LParen)
	e := p.expectExpr("parseAddrSpace")
	p.expect("parseAddrSpace", token.RParen)
	return e
}

// parseLinkSection implements "LinkSection <- KEYWORD_linksection LPAREN
// Expr RPAREN".
func (p *parser) parseLinkSection() *ast.Node {
	if !p.eat(token.KeywordLinksection) {
		return nil
	}
	p.expect("parseLinkSection", token.LParen)
	e := p.expectExpr("parseLinkSection")
	p.expect("parseLinkSection", token.RParen)
	return e
}

// parseCallconv implements "CallConv <- KEYWORD_callconv LPAREN Expr
// RPAREN".
func (p *parser) parseCallconv() *ast.Node {
	if !p.eat(token.KeywordCallconv) {
		return nil
	}
	p.expect("parseCallconv", token.LParen)
	e := p.expectExpr("parseCallconv")
	p.expect("parseCallconv", token.RParen)
	return e
}

// parseDecl implements "Decl <- (KEYWORD_export / KEYWORD_extern
// STRINGLITERALSINGLE? / KEYWORD_inline / KEYWORD_noinline)? FnProto (SEMICOLON
// / Block) / KEYWORD_threadlocal? GlobalVarDecl".
func (p *parser) parseDecl() *ast.Node {
	mark := p.mark()
	pos := p.pos()

	var modifiers ast.DeclModifiers
	var externName string

	switch p.tok() {
	case token.KeywordExport:
		p.advance()
		modifiers |= ast.ModExport
	case token.KeywordExtern:
		p.advance()
		modifiers |= ast.ModExtern
		if p.peek(token.StringLiteral) {
			externName = p.text()
			p.advance()
		}
	case token.KeywordInline:
		p.advance()
		modifiers |= ast.ModInline
	case token.KeywordNoinline:
		p.advance()
		modifiers |= ast.ModNoinline
	}
	if p.eat(token.KeywordThreadlocal) {
		modifiers |= ast.ModThreadlocal
	}

	if p.peek(token.KeywordFn) {
		fnProto := p.expectFnProto()
		var block *ast.Node
		if !p.eat(token.Semicolon) {
			block = p.expectBlock("parseDecl")
		}
		return p.newNode(pos, ast.DeclFn, ast.DeclFnData{
			FnProto: fnProto, Block: block, Modifiers: modifiers, ExternName: externName,
		})
	}

	global := p.parseGlobalVarDecl()
	if global == nil {
		p.reset(mark)
		return nil
	}
	return p.newNode(pos, ast.DeclGlobalVarDecl, ast.DeclGlobalVarDeclData{
		GlobalVarDecl: global, Modifiers: modifiers, ExternName: externName,
	})
}

// parseVarDeclProto implements "VarDeclProto <- (KEYWORD_const /
// KEYWORD_var) IDENTIFIER (COLON TypeExpr)? ByteAlign? AddrSpace?
// LinkSection?".
func (p *parser) parseVarDeclProto() *ast.Node {
	mark := p.mark()
	pos := p.pos()

	isConst := p.tok() == token.KeywordConst
	if !p.eat(token.KeywordConst) && !p.eat(token.KeywordVar) {
		p.reset(mark)
		return nil
	}
	if !p.peek(token.Identifier) {
		p.reset(mark)
		return nil
	}
	name := p.text()
	p.advance()

	var typ *ast.Node
	if p.eat(token.Colon) {
		typ = p.expectTypeExpr("parseVarDeclProto")
	}
	bytealign := p.parseByteAlign()
	addrspace := p.parseAddrSpace()
	linksection := p.parseLinkSection()

	return p.newNode(pos, ast.VarDeclProto, ast.VarDeclProtoData{
		Name: name, Type: typ, Bytealign: bytealign, Addrspace: addrspace,
		Linksection: linksection, IsConst: isConst,
	})
}

// parseGlobalVarDecl implements "GlobalVarDecl <- VarDeclProto (EQUAL Expr)?
// SEMICOLON".
func (p *parser) parseGlobalVarDecl() *ast.Node {
	mark := p.mark()
	pos := p.pos()

	proto := p.parseVarDeclProto()
	if proto == nil {
		p.reset(mark)
		return nil
	}
	var expr *ast.Node
	if p.eat(token.Equal) {
		expr = p.expectExpr("parseGlobalVarDecl")
	}
	p.expect("parseGlobalVarDecl", token.Semicolon)
	return p.newNode(pos, ast.GlobalVarDecl, ast.GlobalVarDeclData{VarDeclProto: proto, Expr: expr})
}

// expectFnProto implements "FnProto <- KEYWORD_fn IDENTIFIER? LPAREN
// ParamDeclList RPAREN ByteAlign? AddrSpace? LinkSection? CallConv? EXCLAMATIONMARK?
// TypeExpr".
func (p *parser) expectFnProto() *ast.Node {
	pos := p.expect("expectFnProto", token.KeywordFn)

	var name string
	if p.peek(token.Identifier) {
		name = p.text()
		p.advance()
	}

	p.expect("expectFnProto", token.LParen)
	params := p.parseParamDeclList()
	p.expect("expectFnProto", token.RParen)

	bytealign := p.parseByteAlign()
	addrspace := p.parseAddrSpace()
	linksection := p.parseLinkSection()
	callconv := p.parseCallconv()

	var extra *ast.Node
	if bytealign != nil || addrspace != nil || linksection != nil || callconv != nil {
		extra = p.newNode(pos, ast.FnProtoExtra, ast.FnProtoExtraData{
			Bytealign: bytealign, Addrspace: addrspace, Linksection: linksection, Callconv: callconv,
		})
	}

	isErr := p.eat(token.Bang)
	retType := p.expectTypeExpr("expectFnProto")

	return p.newNode(pos, ast.FnProto, ast.FnProtoData{
		Name: name, Params: params, ReturnType: retType, ExtraData: extra, IsReturnTypeError: isErr,
	})
}

// parseParamDeclList implements "ParamDeclList <- (ParamDecl COMMA)*
// ParamDecl?".
func (p *parser) parseParamDeclList() *ast.Node {
	pos := p.pos()
	var params []*ast.Node
	for i := 0; i < loopMax; i++ {
		n := p.parseParamDecl()
		if n == nil {
			break
		}
		params = append(params, n)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.newNode(pos, ast.ParamDeclList, ast.ParamDeclListData{Params: params})
}

// parseParamDecl implements "ParamDecl <- doc_comment? (KEYWORD_noalias /
// KEYWORD_comptime)? (IDENTIFIER COLON)? ParamType / DOT3".
func (p *parser) parseParamDecl() *ast.Node {
	mark := p.mark()
	pos := p.pos()
	for p.eat(token.DocComment) {
	}

	if p.eat(token.Ellipsis3) {
		return p.newNode(pos, ast.ParamDecl, ast.ParamDeclData{IsVarargs: true})
	}

	modifier := token.Invalid
	if p.eatOneOf(token.KeywordNoalias, token.KeywordComptime) != token.Invalid {
		modifier = p.toks[p.idx-1].Tok
	}

	var ident string
	if p.peek(token.Identifier) {
		identMark := p.mark()
		ident = p.text()
		p.advance()
		if !p.eat(token.Colon) {
			p.reset(identMark)
			ident = ""
		}
	}

	typ := p.parseTypeExpr()
	if typ == nil && ident == "" && modifier == token.Invalid {
		p.reset(mark)
		return nil
	}
	return p.newNode(pos, ast.ParamDecl, ast.ParamDeclData{Modifier: modifier, Type: typ, Identifier: ident})
}

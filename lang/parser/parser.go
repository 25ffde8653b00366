// Package parser implements the recursive-descent parser: it turns a token
// stream from lang/scanner into the lang/ast tagged-union tree, aborting
// with a single located diagnostic on the first syntax error (no error
// recovery).
//
// Two flavours of production function: parse* (tentative, returns nil on
// no match and restores the cursor) and expect* (mandatory, fails the
// whole parse). A loop-guard counter bounds every parse*-until-nil loop.
// Failures panic with errPanic, recovered exactly once at the top of
// Parse and turned into a fatal *Error instead of a partial AST.
package parser

import (
	"fmt"
	"strings"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/intern"
	"github.com/mna/ztoc/lang/scanner"
	"github.com/mna/ztoc/lang/source"
	"github.com/mna/ztoc/lang/token"
)

// loopMax bounds every backtracking `for` loop in this package: a loop
// that still hasn't terminated after this many iterations is almost
// certainly not consuming tokens, and is reported as a parser bug rather
// than spinning forever.
const loopMax = 3000

// Error is a fatal parse failure: the first (and only, since this parser
// never recovers) syntax error encountered, located in the source.
type Error struct {
	File  *token.File
	Pos   token.Pos
	Where string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.File.Position(e.Pos), e.Where, e.Msg)
}

// Snippet renders the offending source line with a caret under the error
// column, the tail of the diagnostic printed before exiting.
func (e *Error) Snippet(src []byte) string {
	p := e.File.Position(e.Pos)
	off := int(e.Pos) - int(e.File.Base())
	lineStart, lineEnd := off, off
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}
	for lineEnd < len(src) && src[lineEnd] != '\n' {
		lineEnd++
	}
	line := string(src[lineStart:lineEnd])
	caret := strings.Repeat(" ", p.Column-1) + "^"
	return line + "\n" + caret
}

// errPanic is the sentinel recovered in Parse; any other panic value
// propagates, since it represents a genuine bug rather than a diagnosed
// syntax error.
type errPanic struct{ err *Error }

// parser holds the full pre-scanned token stream, addressed by a plain
// integer index, so that tentative parse* functions can save/restore p.idx
// with no cost beyond an int copy.
type parser struct {
	src  source.Buffer
	strs *intern.Strings
	file *token.File
	toks []scanner.Result
	idx  int
}

func newParser(file *token.File, src []byte) *parser {
	return &parser{
		src:  source.Of(&src, 0, uint32(len(src))),
		strs: intern.NewStrings(),
		file: file,
		toks: scanner.ScanAll(src, file),
	}
}

// Parse parses the full contents of src (named filename for diagnostics)
// as a Root ("Root <- skip ContainerMembers eof"), returning the
// container_members node.
func Parse(fset *token.FileSet, filename string, src []byte) (root *ast.Node, file *token.File, err error) {
	file = fset.AddFile(filename, len(src))
	p := newParser(file, src)

	defer func() {
		if r := recover(); r != nil {
			ep, ok := r.(errPanic)
			if !ok {
				panic(r)
			}
			err = ep.err
		}
	}()

	root = p.expectRoot()
	return root, file, nil
}

func (p *parser) cur() scanner.Result  { return p.toks[p.idx] }
func (p *parser) tok() token.Token     { return p.cur().Tok }
func (p *parser) pos() token.Pos       { return scanner.PosOf(p.file, p.cur().Start) }
// text returns the current token's source spelling, deduplicated through
// the string pool so repeated identifiers share one canonical string.
func (p *parser) text() string {
	r := p.cur()
	return p.strs.Get(p.strs.Put(p.src.Slice(r.Start, r.End).String()))
}
func (p *parser) mark() int            { return p.idx }
func (p *parser) reset(mark int)       { p.idx = mark }

func (p *parser) advance() {
	if p.tok() != token.EOF {
		p.idx++
	}
}

// peek reports whether the current token is tok, without consuming it.
func (p *parser) peek(tok token.Token) bool { return p.tok() == tok }

// eat consumes and returns true if the current token is tok, otherwise
// leaves the cursor untouched and returns false.
func (p *parser) eat(tok token.Token) bool {
	if p.tok() != tok {
		return false
	}
	p.advance()
	return true
}

// eatOneOf consumes and returns the matching token, or token.Invalid if
// none of toks matched.
func (p *parser) eatOneOf(toks ...token.Token) token.Token {
	for _, t := range toks {
		if p.eat(t) {
			return t
		}
	}
	return token.Invalid
}

// found describes the current token for a diagnostic: the literal
// spelling for identifiers/literals, the token kind name otherwise.
func (p *parser) found() string {
	switch p.tok() {
	case token.Identifier, token.Builtin, token.NumberLiteral, token.StringLiteral, token.CharLiteral:
		return p.text()
	default:
		return p.tok().String()
	}
}

// fail reports a fatal diagnostic naming the production (where) that
// detected the error and panics with errPanic, unwound only at Parse.
func (p *parser) fail(where, msg string) {
	panic(errPanic{&Error{File: p.file, Pos: p.pos(), Where: where, Msg: msg}})
}

// expect consumes tok or fails, naming where (the calling production) and
// what was found instead — the mandatory counterpart of eat.
func (p *parser) expect(where string, tok token.Token) token.Pos {
	if p.tok() != tok {
		p.fail(where, fmt.Sprintf("expected %s, found %s", tok, p.found()))
	}
	pos := p.pos()
	p.advance()
	return pos
}

// newNode is the single node constructor every parse*/expect* function
// funnels through, keeping Tag/Payload construction in one place.
func (p *parser) newNode(pos token.Pos, tag ast.Tag, payload any) *ast.Node {
	return &ast.Node{Tag: tag, Pos: pos, Payload: payload}
}

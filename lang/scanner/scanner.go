// Package scanner implements the tokenizer: a deterministic finite-state
// machine, one byte per step, that never aborts — invalid input surfaces
// as token.Invalid and the caller decides what to do.
package scanner

import "github.com/mna/ztoc/lang/token"

// Result is one scanned token: its kind and its [Start, End) byte range.
type Result struct {
	Tok   token.Token
	Start uint32
	End   uint32
}

type state int

const (
	stateStart state = iota
	stateExpectNewline
	stateIdentifier
	stateBuiltin
	stateStringLiteral
	stateStringLiteralBackslash
	stateMultilineStringLiteralLine
	stateCharLiteral
	stateCharLiteralBackslash
	stateBackslash
	stateEqual
	stateBang
	statePipe
	stateMinus
	stateMinusPercent
	stateMinusPipe
	stateAsterisk
	stateAsteriskPercent
	stateAsteriskPipe
	stateSlash
	stateLineCommentStart
	stateLineComment
	stateDocCommentStart
	stateDocComment
	stateInt
	stateIntExponent
	stateIntPeriod
	stateFloat
	stateFloatExponent
	stateAmpersand
	stateCaret
	statePercent
	statePlus
	statePlusPercent
	statePlusPipe
	stateAngleBracketLeft
	stateAngleBracketAngleBracketLeft
	stateAngleBracketAngleBracketLeftPipe
	stateAngleBracketRight
	stateAngleBracketAngleBracketRight
	statePeriod
	statePeriod2
	statePeriodAsterisk
	stateSawAtSign
	stateInvalid
)

// Scanner tokenizes a byte slice. Zero value is not usable; use New.
type Scanner struct {
	src   []byte
	index uint32
}

// New creates a Scanner over src, skipping a leading UTF-8 BOM if present.
func New(src []byte) *Scanner {
	s := &Scanner{src: src}
	if len(src) >= 3 && src[0] == 0xef && src[1] == 0xbb && src[2] == 0xbf {
		s.index = 3
	}
	return s
}

// at returns the byte at index i, or 0 past the end, so every state can
// treat the source as NUL-terminated.
func (s *Scanner) at(i uint32) byte {
	if int(i) >= len(s.src) {
		return 0
	}
	return s.src[i]
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentCont(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
func isNumCont(c byte) bool {
	switch {
	case c == '_':
		return true
	case c >= 'a' && c <= 'd', c >= 'f' && c <= 'o', c >= 'q' && c <= 'z':
		return true
	case c >= 'A' && c <= 'D', c >= 'F' && c <= 'O', c >= 'Q' && c <= 'Z':
		return true
	case isDigit(c):
		return true
	}
	return false
}
func isControlInvalidInString(c byte) bool {
	return (c >= 0x01 && c <= 0x09) || (c >= 0x0b && c <= 0x1f) || c == 0x7f
}
func isControlInvalidInComment(c byte) bool {
	return (c >= 0x01 && c <= 0x09) || (c >= 0x0b && c <= 0x0c) || (c >= 0x0e && c <= 0x1f) || c == 0x7f
}

// Next scans and returns the next token. It never returns an error: bad
// input yields token.Invalid / token.InvalidPeriodAsterisks.
func (s *Scanner) Next() Result {
	start := s.index
	st := stateStart
	tok := token.Invalid

	for {
		switch st {
		case stateStart:
			c := s.at(s.index)
			switch {
			case c == 0 && s.index == uint32(len(s.src)):
				return Result{Tok: token.EOF, Start: s.index, End: s.index}
			case c == ' ', c == '\n', c == '\t', c == '\r':
				s.index++
				start = s.index
				continue
			case c == '"':
				tok = token.StringLiteral
				st = stateStringLiteral
				continue
			case c == '\'':
				tok = token.CharLiteral
				st = stateCharLiteral
				continue
			case isAlpha(c):
				tok = token.Identifier
				st = stateIdentifier
				continue
			case c == '@':
				st = stateSawAtSign
				continue
			case c == '=':
				st = stateEqual
				continue
			case c == '!':
				st = stateBang
				continue
			case c == '|':
				st = statePipe
				continue
			case c == '(':
				tok, s.index = token.LParen, s.index+1
			case c == ')':
				tok, s.index = token.RParen, s.index+1
			case c == '[':
				tok, s.index = token.LBracket, s.index+1
			case c == ']':
				tok, s.index = token.RBracket, s.index+1
			case c == ';':
				tok, s.index = token.Semicolon, s.index+1
			case c == ',':
				tok, s.index = token.Comma, s.index+1
			case c == '?':
				tok, s.index = token.QuestionMark, s.index+1
			case c == ':':
				tok, s.index = token.Colon, s.index+1
			case c == '%':
				st = statePercent
				continue
			case c == '*':
				st = stateAsterisk
				continue
			case c == '+':
				st = statePlus
				continue
			case c == '<':
				st = stateAngleBracketLeft
				continue
			case c == '>':
				st = stateAngleBracketRight
				continue
			case c == '^':
				st = stateCaret
				continue
			case c == '\\':
				tok = token.MultilineStringLiteralLine
				st = stateBackslash
				continue
			case c == '{':
				tok, s.index = token.LBrace, s.index+1
			case c == '}':
				tok, s.index = token.RBrace, s.index+1
			case c == '~':
				tok, s.index = token.Tilde, s.index+1
			case c == '.':
				st = statePeriod
				continue
			case c == '-':
				st = stateMinus
				continue
			case c == '/':
				st = stateSlash
				continue
			case c == '&':
				st = stateAmpersand
				continue
			case isDigit(c):
				tok = token.NumberLiteral
				s.index++
				st = stateInt
				continue
			default:
				st = stateInvalid
				continue
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateExpectNewline:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0 && s.index != uint32(len(s.src)):
				st = stateInvalid
				continue
			case c == 0:
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			case c == '\n':
				s.index++
				start = s.index
				st = stateStart
				continue
			default:
				st = stateInvalid
				continue
			}

		case stateInvalid:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0 && s.index != uint32(len(s.src)):
				continue
			case c == 0, c == '\n':
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			default:
				continue
			}

		case stateSawAtSign:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0, c == '\n':
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			case c == '"':
				tok = token.Identifier
				st = stateStringLiteral
				continue
			case isAlpha(c):
				tok = token.Builtin
				st = stateBuiltin
				continue
			default:
				st = stateInvalid
				continue
			}

		case stateAmpersand:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.AmpersandEqual, s.index+1
			} else {
				tok = token.Ampersand
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateAsterisk:
			s.index++
			switch s.at(s.index) {
			case '=':
				tok, s.index = token.AsteriskEqual, s.index+1
			case '*':
				tok, s.index = token.AsteriskAsterisk, s.index+1
			case '%':
				st = stateAsteriskPercent
				continue
			case '|':
				st = stateAsteriskPipe
				continue
			default:
				tok = token.Asterisk
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateAsteriskPercent:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.AsteriskPercentEqual, s.index+1
			} else {
				tok = token.AsteriskPercent
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateAsteriskPipe:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.AsteriskPipeEqual, s.index+1
			} else {
				tok = token.AsteriskPipe
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case statePercent:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.PercentEqual, s.index+1
			} else {
				tok = token.Percent
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case statePlus:
			s.index++
			switch s.at(s.index) {
			case '=':
				tok, s.index = token.PlusEqual, s.index+1
			case '+':
				tok, s.index = token.PlusPlus, s.index+1
			case '%':
				st = statePlusPercent
				continue
			case '|':
				st = statePlusPipe
				continue
			default:
				tok = token.Plus
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case statePlusPercent:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.PlusPercentEqual, s.index+1
			} else {
				tok = token.PlusPercent
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case statePlusPipe:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.PlusPipeEqual, s.index+1
			} else {
				tok = token.PlusPipe
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateCaret:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.CaretEqual, s.index+1
			} else {
				tok = token.Caret
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateIdentifier:
			s.index++
			if isIdentCont(s.at(s.index)) {
				continue
			}
			ident := string(s.src[start:s.index])
			if kw, ok := token.Lookup(ident); ok {
				tok = kw
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateBuiltin:
			s.index++
			if isIdentCont(s.at(s.index)) {
				continue
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateBackslash:
			s.index++
			switch s.at(s.index) {
			case 0, '\n':
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			case '\\':
				st = stateMultilineStringLiteralLine
				continue
			default:
				st = stateInvalid
				continue
			}

		case stateStringLiteral:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0 && s.index != uint32(len(s.src)):
				st = stateInvalid
				continue
			case c == 0:
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			case c == '\n':
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			case c == '\\':
				st = stateStringLiteralBackslash
				continue
			case c == '"':
				s.index++
				return Result{Tok: tok, Start: start, End: s.index}
			case isControlInvalidInString(c):
				st = stateInvalid
				continue
			default:
				continue
			}

		case stateStringLiteralBackslash:
			s.index++
			switch s.at(s.index) {
			case 0, '\n':
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			default:
				st = stateStringLiteral
				continue
			}

		case stateCharLiteral:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0 && s.index != uint32(len(s.src)):
				st = stateInvalid
				continue
			case c == 0:
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			case c == '\n':
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			case c == '\\':
				st = stateCharLiteralBackslash
				continue
			case c == '\'':
				s.index++
				return Result{Tok: tok, Start: start, End: s.index}
			case isControlInvalidInString(c):
				st = stateInvalid
				continue
			default:
				continue
			}

		case stateCharLiteralBackslash:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0 && s.index != uint32(len(s.src)):
				st = stateInvalid
				continue
			case c == 0:
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			case c == '\n':
				return Result{Tok: token.Invalid, Start: start, End: s.index}
			case isControlInvalidInString(c):
				st = stateInvalid
				continue
			default:
				st = stateCharLiteral
				continue
			}

		case stateMultilineStringLiteralLine:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0 && s.index != uint32(len(s.src)):
				st = stateInvalid
				continue
			case c == 0:
				return Result{Tok: tok, Start: start, End: s.index}
			case c == '\n':
				return Result{Tok: tok, Start: start, End: s.index}
			case c == '\r':
				if s.at(s.index+1) != '\n' {
					st = stateInvalid
					continue
				}
				return Result{Tok: tok, Start: start, End: s.index}
			case isControlInvalidInComment(c):
				st = stateInvalid
				continue
			default:
				continue
			}

		case stateBang:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.BangEqual, s.index+1
			} else {
				tok = token.Bang
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case statePipe:
			s.index++
			switch s.at(s.index) {
			case '=':
				tok, s.index = token.PipeEqual, s.index+1
			case '|':
				tok, s.index = token.PipePipe, s.index+1
			default:
				tok = token.Pipe
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateEqual:
			s.index++
			switch s.at(s.index) {
			case '=':
				tok, s.index = token.EqualEqual, s.index+1
			case '>':
				tok, s.index = token.EqualAngleBracketRight, s.index+1
			default:
				tok = token.Equal
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateMinus:
			s.index++
			switch s.at(s.index) {
			case '>':
				tok, s.index = token.Arrow, s.index+1
			case '=':
				tok, s.index = token.MinusEqual, s.index+1
			case '%':
				st = stateMinusPercent
				continue
			case '|':
				st = stateMinusPipe
				continue
			default:
				tok = token.Minus
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateMinusPercent:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.MinusPercentEqual, s.index+1
			} else {
				tok = token.MinusPercent
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateMinusPipe:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.MinusPipeEqual, s.index+1
			} else {
				tok = token.MinusPipe
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateAngleBracketLeft:
			s.index++
			switch s.at(s.index) {
			case '<':
				st = stateAngleBracketAngleBracketLeft
				continue
			case '=':
				tok, s.index = token.AngleBracketLeftEqual, s.index+1
			default:
				tok = token.AngleBracketLeft
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateAngleBracketAngleBracketLeft:
			s.index++
			switch s.at(s.index) {
			case '=':
				tok, s.index = token.AngleBracketAngleBracketLeftEqual, s.index+1
			case '|':
				st = stateAngleBracketAngleBracketLeftPipe
				continue
			default:
				tok = token.AngleBracketAngleBracketLeft
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateAngleBracketAngleBracketLeftPipe:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.AngleBracketAngleBracketLeftPipeEqual, s.index+1
			} else {
				tok = token.AngleBracketAngleBracketLeftPipe
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateAngleBracketRight:
			s.index++
			switch s.at(s.index) {
			case '>':
				st = stateAngleBracketAngleBracketRight
				continue
			case '=':
				tok, s.index = token.AngleBracketRightEqual, s.index+1
			default:
				tok = token.AngleBracketRight
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateAngleBracketAngleBracketRight:
			s.index++
			if s.at(s.index) == '=' {
				tok, s.index = token.AngleBracketAngleBracketRightEqual, s.index+1
			} else {
				tok = token.AngleBracketAngleBracketRight
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case statePeriod:
			s.index++
			switch s.at(s.index) {
			case '.':
				st = statePeriod2
				continue
			case '*':
				st = statePeriodAsterisk
				continue
			default:
				tok = token.Period
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case statePeriod2:
			s.index++
			if s.at(s.index) == '.' {
				tok, s.index = token.Ellipsis3, s.index+1
			} else {
				tok = token.Ellipsis2
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case statePeriodAsterisk:
			s.index++
			if s.at(s.index) == '*' {
				tok = token.InvalidPeriodAsterisks
			} else {
				tok = token.PeriodAsterisk
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateSlash:
			s.index++
			switch s.at(s.index) {
			case '/':
				st = stateLineCommentStart
				continue
			case '=':
				tok, s.index = token.SlashEqual, s.index+1
			default:
				tok = token.Slash
			}
			return Result{Tok: tok, Start: start, End: s.index}

		case stateLineCommentStart:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0 && s.index != uint32(len(s.src)):
				st = stateInvalid
				continue
			case c == 0:
				return Result{Tok: token.EOF, Start: s.index, End: s.index}
			case c == '!':
				tok = token.ContainerDocComment
				st = stateDocComment
				continue
			case c == '\n':
				s.index++
				start = s.index
				st = stateStart
				continue
			case c == '/':
				st = stateDocCommentStart
				continue
			case c == '\r':
				st = stateExpectNewline
				continue
			case isControlInvalidInComment(c):
				st = stateInvalid
				continue
			default:
				st = stateLineComment
				continue
			}

		case stateDocCommentStart:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0, c == '\n':
				tok = token.DocComment
				return Result{Tok: tok, Start: start, End: s.index}
			case c == '\r':
				if s.at(s.index+1) != '\n' {
					tok = token.DocComment
					return Result{Tok: tok, Start: start, End: s.index}
				}
				st = stateInvalid
				continue
			case c == '/':
				st = stateLineComment
				continue
			case isControlInvalidInComment(c):
				st = stateInvalid
				continue
			default:
				tok = token.DocComment
				st = stateDocComment
				continue
			}

		case stateLineComment:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0 && s.index != uint32(len(s.src)):
				st = stateInvalid
				continue
			case c == 0:
				return Result{Tok: token.EOF, Start: s.index, End: s.index}
			case c == '\n':
				s.index++
				start = s.index
				st = stateStart
				continue
			case c == '\r':
				st = stateExpectNewline
				continue
			case isControlInvalidInComment(c):
				st = stateInvalid
				continue
			default:
				continue
			}

		case stateDocComment:
			s.index++
			c := s.at(s.index)
			switch {
			case c == 0, c == '\n':
				return Result{Tok: tok, Start: start, End: s.index}
			case c == '\r':
				if s.at(s.index+1) != '\n' {
					st = stateInvalid
					continue
				}
				return Result{Tok: tok, Start: start, End: s.index}
			case isControlInvalidInComment(c):
				st = stateInvalid
				continue
			default:
				continue
			}

		case stateInt:
			c := s.at(s.index) // no increment
			switch {
			case c == '.':
				st = stateIntPeriod
				continue
			case isNumCont(c):
				s.index++
				continue
			case c == 'e', c == 'E', c == 'p', c == 'P':
				st = stateIntExponent
				continue
			default:
				return Result{Tok: tok, Start: start, End: s.index}
			}

		case stateIntExponent:
			s.index++
			switch s.at(s.index) {
			case '-', '+':
				s.index++
				st = stateFloat
				continue
			default:
				st = stateInt
				continue
			}

		case stateIntPeriod:
			s.index++
			c := s.at(s.index)
			switch {
			case isNumCont(c):
				s.index++
				st = stateFloat
				continue
			case c == 'e', c == 'E', c == 'p', c == 'P':
				st = stateFloatExponent
				continue
			default:
				s.index--
				return Result{Tok: tok, Start: start, End: s.index}
			}

		case stateFloat:
			c := s.at(s.index) // no increment
			switch {
			case isNumCont(c):
				s.index++
				continue
			case c == 'e', c == 'E', c == 'p', c == 'P':
				st = stateFloatExponent
				continue
			default:
				return Result{Tok: tok, Start: start, End: s.index}
			}

		case stateFloatExponent:
			s.index++
			switch s.at(s.index) {
			case '-', '+':
				s.index++
				st = stateFloat
				continue
			default:
				st = stateFloat
				continue
			}
		}
	}
}

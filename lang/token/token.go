// Package token defines the closed set of lexical token kinds produced by
// lang/scanner, plus the position bookkeeping (Pos, Position, File, FileSet)
// shared by every later compiler phase for locating diagnostics.
package token

// Token is a closed lexical category. The zero value, Invalid, is never a
// token the scanner intentionally emits for well-formed input.
type Token int

const (
	Invalid Token = iota
	InvalidPeriodAsterisks
	Identifier
	StringLiteral
	MultilineStringLiteralLine
	CharLiteral
	EOF
	Builtin

	Bang
	Pipe
	PipePipe
	PipeEqual
	Equal
	EqualEqual
	EqualAngleBracketRight
	BangEqual
	LParen
	RParen
	Semicolon
	Percent
	PercentEqual
	LBrace
	RBrace
	LBracket
	RBracket
	Period
	PeriodAsterisk
	Ellipsis2
	Ellipsis3
	Caret
	CaretEqual
	Plus
	PlusPlus
	PlusEqual
	PlusPercent
	PlusPercentEqual
	PlusPipe
	PlusPipeEqual
	Minus
	MinusEqual
	MinusPercent
	MinusPercentEqual
	MinusPipe
	MinusPipeEqual
	Asterisk
	AsteriskEqual
	AsteriskAsterisk
	AsteriskPercent
	AsteriskPercentEqual
	AsteriskPipe
	AsteriskPipeEqual
	Arrow
	Colon
	Slash
	SlashEqual
	Comma
	Ampersand
	AmpersandEqual
	QuestionMark
	AngleBracketLeft
	AngleBracketLeftEqual
	AngleBracketAngleBracketLeft
	AngleBracketAngleBracketLeftEqual
	AngleBracketAngleBracketLeftPipe
	AngleBracketAngleBracketLeftPipeEqual
	AngleBracketRight
	AngleBracketRightEqual
	AngleBracketAngleBracketRight
	AngleBracketAngleBracketRightEqual
	Tilde
	NumberLiteral
	DocComment
	ContainerDocComment

	KeywordAddrspace
	KeywordAlign
	KeywordAllowzero
	KeywordAnd
	KeywordAnyframe
	KeywordAnytype
	KeywordAsm
	KeywordBreak
	KeywordCallconv
	KeywordCatch
	KeywordComptime
	KeywordConst
	KeywordContinue
	KeywordDefer
	KeywordElse
	KeywordEnum
	KeywordErrdefer
	KeywordError
	KeywordExport
	KeywordExtern
	KeywordFn
	KeywordFor
	KeywordIf
	KeywordInline
	KeywordNoalias
	KeywordNoinline
	KeywordNosuspend
	KeywordOpaque
	KeywordOr
	KeywordOrelse
	KeywordPacked
	KeywordPub
	KeywordResume
	KeywordReturn
	KeywordLinksection
	KeywordStruct
	KeywordSuspend
	KeywordSwitch
	KeywordTest
	KeywordThreadlocal
	KeywordTry
	KeywordUnion
	KeywordUnreachable
	KeywordVar
	KeywordVolatile
	KeywordWhile

	tokenCount
)

var names = [...]string{
	Invalid:                    "invalid",
	InvalidPeriodAsterisks:     "invalid_periodasterisks",
	Identifier:                 "identifier",
	StringLiteral:              "string_literal",
	MultilineStringLiteralLine: "multiline_string_literal_line",
	CharLiteral:                "char_literal",
	EOF:                        "eof",
	Builtin:                    "builtin",

	Bang:                   "bang",
	Pipe:                   "pipe",
	PipePipe:               "pipe_pipe",
	PipeEqual:              "pipe_equal",
	Equal:                  "equal",
	EqualEqual:             "equal_equal",
	EqualAngleBracketRight: "equal_angle_bracket_right",
	BangEqual:              "bang_equal",
	LParen:                 "l_paren",
	RParen:                 "r_paren",
	Semicolon:              "semicolon",
	Percent:                "percent",
	PercentEqual:           "percent_equal",
	LBrace:                 "l_brace",
	RBrace:                 "r_brace",
	LBracket:               "l_bracket",
	RBracket:               "r_bracket",
	Period:                 "period",
	PeriodAsterisk:         "period_asterisk",
	Ellipsis2:              "ellipsis2",
	Ellipsis3:              "ellipsis3",
	Caret:                  "caret",
	CaretEqual:             "caret_equal",
	Plus:                   "plus",
	PlusPlus:               "plus_plus",
	PlusEqual:              "plus_equal",
	PlusPercent:            "plus_percent",
	PlusPercentEqual:       "plus_percent_equal",
	PlusPipe:               "plus_pipe",
	PlusPipeEqual:          "plus_pipe_equal",
	Minus:                  "minus",
	MinusEqual:             "minus_equal",
	MinusPercent:           "minus_percent",
	MinusPercentEqual:      "minus_percent_equal",
	MinusPipe:              "minus_pipe",
	MinusPipeEqual:         "minus_pipe_equal",
	Asterisk:               "asterisk",
	AsteriskEqual:          "asterisk_equal",
	AsteriskAsterisk:       "asterisk_asterisk",
	AsteriskPercent:        "asterisk_percent",
	AsteriskPercentEqual:   "asterisk_percent_equal",
	AsteriskPipe:           "asterisk_pipe",
	AsteriskPipeEqual:      "asterisk_pipe_equal",
	Arrow:                  "arrow",
	Colon:                  "colon",
	Slash:                  "slash",
	SlashEqual:             "slash_equal",
	Comma:                  "comma",
	Ampersand:              "ampersand",
	AmpersandEqual:         "ampersand_equal",
	QuestionMark:           "question_mark",
	AngleBracketLeft:       "angle_bracket_left",
	AngleBracketLeftEqual:  "angle_bracket_left_equal",
	AngleBracketAngleBracketLeft:          "angle_bracket_angle_bracket_left",
	AngleBracketAngleBracketLeftEqual:     "angle_bracket_angle_bracket_left_equal",
	AngleBracketAngleBracketLeftPipe:      "angle_bracket_angle_bracket_left_pipe",
	AngleBracketAngleBracketLeftPipeEqual: "angle_bracket_angle_bracket_left_pipe_equal",
	AngleBracketRight:                     "angle_bracket_right",
	AngleBracketRightEqual:                "angle_bracket_right_equal",
	AngleBracketAngleBracketRight:         "angle_bracket_angle_bracket_right",
	AngleBracketAngleBracketRightEqual:    "angle_bracket_angle_bracket_right_equal",
	Tilde:               "tilde",
	NumberLiteral:       "number_literal",
	DocComment:          "doc_comment",
	ContainerDocComment: "container_doc_comment",

	KeywordAddrspace:   "keyword_addrspace",
	KeywordAlign:       "keyword_align",
	KeywordAllowzero:   "keyword_allowzero",
	KeywordAnd:         "keyword_and",
	KeywordAnyframe:    "keyword_anyframe",
	KeywordAnytype:     "keyword_anytype",
	KeywordAsm:         "keyword_asm",
	KeywordBreak:       "keyword_break",
	KeywordCallconv:    "keyword_callconv",
	KeywordCatch:       "keyword_catch",
	KeywordComptime:    "keyword_comptime",
	KeywordConst:       "keyword_const",
	KeywordContinue:    "keyword_continue",
	KeywordDefer:       "keyword_defer",
	KeywordElse:        "keyword_else",
	KeywordEnum:        "keyword_enum",
	KeywordErrdefer:    "keyword_errdefer",
	KeywordError:       "keyword_error",
	KeywordExport:      "keyword_export",
	KeywordExtern:      "keyword_extern",
	KeywordFn:          "keyword_fn",
	KeywordFor:         "keyword_for",
	KeywordIf:          "keyword_if",
	KeywordInline:      "keyword_inline",
	KeywordNoalias:     "keyword_noalias",
	KeywordNoinline:    "keyword_noinline",
	KeywordNosuspend:   "keyword_nosuspend",
	KeywordOpaque:      "keyword_opaque",
	KeywordOr:          "keyword_or",
	KeywordOrelse:      "keyword_orelse",
	KeywordPacked:      "keyword_packed",
	KeywordPub:         "keyword_pub",
	KeywordResume:      "keyword_resume",
	KeywordReturn:      "keyword_return",
	KeywordLinksection: "keyword_linksection",
	KeywordStruct:      "keyword_struct",
	KeywordSuspend:     "keyword_suspend",
	KeywordSwitch:      "keyword_switch",
	KeywordTest:        "keyword_test",
	KeywordThreadlocal: "keyword_threadlocal",
	KeywordTry:         "keyword_try",
	KeywordUnion:       "keyword_union",
	KeywordUnreachable: "keyword_unreachable",
	KeywordVar:         "keyword_var",
	KeywordVolatile:    "keyword_volatile",
	KeywordWhile:       "keyword_while",
}

// String returns the dump-stable name of the token, e.g. "keyword_const".
func (t Token) String() string {
	if t < 0 || int(t) >= len(names) || names[t] == "" {
		return "invalid"
	}
	return names[t]
}

// Keywords maps the literal spelling of a keyword to its token kind: the
// closed 46-entry reserved-word table.
var Keywords = map[string]Token{
	"addrspace":   KeywordAddrspace,
	"align":       KeywordAlign,
	"allowzero":   KeywordAllowzero,
	"and":         KeywordAnd,
	"anyframe":    KeywordAnyframe,
	"anytype":     KeywordAnytype,
	"asm":         KeywordAsm,
	"break":       KeywordBreak,
	"callconv":    KeywordCallconv,
	"catch":       KeywordCatch,
	"comptime":    KeywordComptime,
	"const":       KeywordConst,
	"continue":    KeywordContinue,
	"defer":       KeywordDefer,
	"else":        KeywordElse,
	"enum":        KeywordEnum,
	"errdefer":    KeywordErrdefer,
	"error":       KeywordError,
	"export":      KeywordExport,
	"extern":      KeywordExtern,
	"fn":          KeywordFn,
	"for":         KeywordFor,
	"if":          KeywordIf,
	"inline":      KeywordInline,
	"noalias":     KeywordNoalias,
	"noinline":    KeywordNoinline,
	"nosuspend":   KeywordNosuspend,
	"opaque":      KeywordOpaque,
	"or":          KeywordOr,
	"orelse":      KeywordOrelse,
	"packed":      KeywordPacked,
	"pub":         KeywordPub,
	"resume":      KeywordResume,
	"return":      KeywordReturn,
	"linksection": KeywordLinksection,
	"struct":      KeywordStruct,
	"suspend":     KeywordSuspend,
	"switch":      KeywordSwitch,
	"test":        KeywordTest,
	"threadlocal": KeywordThreadlocal,
	"try":         KeywordTry,
	"union":       KeywordUnion,
	"unreachable": KeywordUnreachable,
	"var":         KeywordVar,
	"volatile":    KeywordVolatile,
	"while":       KeywordWhile,
}

// Lookup returns the keyword token for ident, or (Identifier, false) if
// ident is not one of the reserved words.
func Lookup(ident string) (Token, bool) {
	tok, ok := Keywords[ident]
	return tok, ok
}

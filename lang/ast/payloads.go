package ast

import "github.com/mna/ztoc/lang/token"

// Each type below is the payload for the identically-named Tag. Children
// are held as *Node or []*Node; raw source spellings arrive as string,
// already resolved out of the source buffer by the parser.

type ContainerMembersData struct {
	Decls  []*Node
	Fields []*Node
}

type ContainerFieldData struct {
	Name       string
	TypeExpr   *Node
	Bytealign  *Node
	Expr       *Node
	IsComptime bool
}

type TestDeclData struct {
	Name    string
	Block   *Node
	IsIdent bool
}

type ComptimeDeclData struct{ Block *Node }

type VarDeclProtoData struct {
	Name        string
	Type        *Node
	Bytealign   *Node
	Addrspace   *Node
	Linksection *Node
	IsConst     bool
}

type GlobalVarDeclData struct {
	VarDeclProto *Node
	Expr         *Node
}

type DeclFnData struct {
	FnProto    *Node
	Block      *Node // nil for a prototype-only declaration (extern fn)
	Modifiers  DeclModifiers
	ExternName string
}

type DeclGlobalVarDeclData struct {
	GlobalVarDecl *Node
	Modifiers     DeclModifiers
	ExternName    string
}

type BlockData struct {
	Statements []*Node
}

type FnProtoData struct {
	Name                string
	Params              *Node // ParamDeclList
	ReturnType          *Node
	ExtraData           *Node // FnProtoExtra, may be nil
	IsReturnTypeError   bool
}

type FnProtoExtraData struct {
	Bytealign   *Node
	Addrspace   *Node
	Linksection *Node
	Callconv    *Node
}

type ParamDeclListData struct{ Params []*Node }

type ParamDeclData struct {
	IsVarargs  bool
	Modifier   token.Token
	Type       *Node
	Identifier string
}

type TypeExprData struct {
	PrefixTypeOps []*Node
	TypeExpr      *Node
}

type ErrorUnionExprData struct {
	SuffixExpr    *Node
	ErrorTypeExpr *Node
}

// SuffixExprData covers both the "expr" wrapper shared by several simple
// statement tags (comptime/nosuspend/suspend/defer) and the true
// suffix_expr production (primary expr plus a chain of suffix nodes).
type SuffixExprData struct {
	Expr      *Node
	Suffixes  []*Node
}

type ErrdeferStatementData struct {
	PayloadName string
	BlockExpr   *Node
}

type UnaryExprData struct {
	Ops  []token.Token
	Expr *Node
}

type BinaryExprData struct {
	Op  BinOp
	Lhs *Node
	Rhs *Node
}

type CurlySuffixExprData struct {
	Type     *Node
	Initlist *Node
}

type PrimaryTypeExprData struct {
	PrimaryTag PrimaryTypeTag
	Raw        string // number/char/string literal spelling, dot-identifier name
	Child      *Node  // container/fn_proto/grouped/labeled/if/comptime type exprs
	// Builtin-call payload, valid when PrimaryTag == PrimaryTypeBuiltin.
	BuiltinName string
	BuiltinArgs *Node
}

type TopLevelDeclData struct {
	Decl  *Node
	IsPub bool
}

type ForItemData struct {
	Start   *Node
	End     *Node
	IsRange bool
}

type ForArgsData struct{ Args []*Node }

type FieldInitData struct {
	Name string
	Expr *Node
}

type UnionDeclData struct {
	Expr     *Node
	IsTagged bool
}

type SwitchItemData struct {
	Start *Node
	End   *Node
}

type SwitchCaseData struct {
	Cases  []*Node
	IsElse bool
}

type LabeledStatementData struct {
	Label     string
	Statement *Node
}

type WhileStatementData struct {
	Condition       *Node
	Block           *Node
	ElsePayloadName string
	ElseStatement   *Node
}

type ForStatementData struct {
	Condition     *Node
	Block         *Node
	ElseStatement *Node
}

type IfStatementData struct {
	Condition       *Node
	Block           *Node
	ElsePayloadName string
	ElseStatement   *Node
}

type IfExprData struct {
	Condition       *Node
	Expr            *Node
	ElsePayloadName string
	ElsePayloadExpr *Node
}

type VarDeclStatementData struct {
	VarDecl           *Node
	VarDeclAdditional []*Node
	Expr              *Node
}

type SingleAssignExprData struct {
	Lhs      *Node
	AssignOp token.Token
	Rhs      *Node
}

type MultiAssignExprData struct {
	Lhs           *Node
	LhsAdditional []*Node
	Expr          *Node
}

type LoopExprData struct {
	Label    string
	LoopExpr *Node
}

// LabeledTypeExprData backs LabeledBlock, LabeledLoopExpr and
// LabeledSwitchExpr: an optional block label attached to a block, a loop
// type expr, or a switch expr.
type LabeledTypeExprData struct {
	Label string
	Node  *Node
}

type ContinueExprData struct {
	Label string
	Expr  *Node
}

type BreakExprData struct {
	Label string
	Expr  *Node
}

type WhileExprData struct {
	Condition       *Node
	Expr            *Node
	ElsePayloadName string
	ElseExpr        *Node
}

type ForExprData struct {
	Condition *Node
	Expr      *Node
	ElseExpr  *Node
}

type LoopStatementData struct {
	IsInline  bool
	Statement *Node
}

type ContainerDeclAutoData struct {
	Type    *Node
	Members *Node
}

type PtrAlignExprData struct {
	ByteAlign             *Node
	BitOffset             *Node
	BitBackingIntegerSize *Node
}

type PrefixTypeSliceData struct {
	Slice     *Node
	Bytealign *Node
	Addrspace *Node
	Modifiers PointerModifiers
}

type PrefixTypePtrData struct {
	Ptr       *Node
	Addrspace *Node
	Align     *Node
	Modifiers PointerModifiers
}

type PrefixTypeArrayData struct{ Array *Node }

type ArrayTypeStartData struct {
	Index        *Node
	SentinelExpr *Node
}

type SliceTypeStartData struct{ SentinelExpr *Node }

type PtrTypeStartData struct {
	Type         PtrType
	SentinelExpr *Node
}

type SuffixTypeOpSliceData struct {
	StartExpr    *Node
	EndExpr      *Node
	SentinelExpr *Node
}

type SuffixTypeOpNamedAccessData struct{ Name string }

type FnCallArgumentsData struct{ Exprs []*Node }

type ForPrefixData struct {
	ForArgs        *Node
	PtrListPayload *Node
}

type WhilePrefixData struct {
	Condition         *Node
	PtrPayload        *Node
	WhileContinueExpr *Node
}

type IfPrefixData struct {
	Condition  *Node
	PtrPayload *Node
}

type PayloadData struct {
	Name      string
	IsPointer bool
}

type PayloadIndexData struct {
	Name      string
	IsPointer bool
	NameIndex string
}

type PayloadListData struct{ Payloads []*Node }

type SwitchProngData struct {
	IsInline   bool
	SwitchCase *Node
	Payload    *Node
	Expr       *Node
}

type ForTypeExprData struct {
	ForPrefix *Node
	Condition *Node
	Expr      *Node
	ElseExpr  *Node
}

type SwitchProngListData struct{ Prongs []*Node }

type ContainerDeclData struct {
	IsExtern      bool
	IsPacked      bool
	ContainerDecl *Node
}

type IfTypeExprData struct {
	IfPrefix             *Node
	TypeExpr             *Node
	ElsePayloadName      string
	ElsePayloadTypeExpr  *Node
}

type WhileTypeExprData struct {
	WhilePrefix         *Node
	TypeExpr            *Node
	ElsePayloadName     string
	ElsePayloadTypeExpr *Node
}

type IdentifierListData struct{ Idents []string }

type SwitchExprData struct {
	Expr           *Node
	SwitchProngList *Node
}

type InitListData struct{ Nodes []*Node }

type AsmInputListData struct{ AsmInputs []*Node }

type AsmInputItemData struct {
	Name      string
	Lit       string
	InputExpr *Node
}

type AsmOutputListData struct{ AsmOutputs []*Node }

type AsmOutputItemData struct {
	Name       string
	Lit        string
	OutputExpr *Node
}

type AsmOutputData struct {
	AsmOutputList *Node
	AsmInput      *Node
}

type AsmInputData struct {
	AsmInputList *Node
	Clobbers     *Node
}

type AsmExprData struct {
	IsVolatile bool
	Expr       *Node
	AsmOutput  *Node
}

type TypeOrNameData struct {
	Type   *Node
	Name   string
	IsType bool
}

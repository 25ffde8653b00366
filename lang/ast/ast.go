// Package ast defines the tagged-union abstract syntax tree: every node is
// a (tag, payload) pair, tag drawn from a closed set, payload shape fixed
// by tag.
//
// Node is deliberately a single struct carrying a Tag and an opaque
// Payload rather than one Go type plus interface per production: the tag
// set is closed, dump names must be stable, and the discriminated-union
// design matches lang/types.Type and lang/intern. See DESIGN.md.
package ast

import "github.com/mna/ztoc/lang/token"

// Tag discriminates a Node's payload shape. The names are the stable dump
// spellings (see tagNames), spelled here in Go's exported-identifier case.
type Tag uint8

const (
	Invalid Tag = iota

	ContainerMembers
	ContainerField
	TestDecl
	ComptimeDecl
	VarDeclProto
	GlobalVarDecl
	DeclFn
	DeclGlobalVarDecl
	Block
	FnProto
	FnProtoExtra
	ParamDeclList
	ParamDecl
	TypeExpr
	ErrorUnionExpr
	SuffixExpr
	ComptimeStatement
	NosuspendStatement
	SuspendStatement
	DeferStatement
	ErrdeferStatement
	UnaryExpr
	BinaryExpr
	ComptimeExpr
	NosuspendExpr
	ResumeExpr
	ReturnExpr
	CurlySuffixExpr
	PrimaryTypeExpr
	TopLevelDecl
	ForItem
	ForArgs
	FieldInit
	StructDecl
	OpaqueDecl
	EnumDecl
	UnionDecl
	SwitchItem
	SwitchCase
	LabeledBlock
	LabeledLoopExpr
	LabeledSwitchExpr
	WhileStatement
	ForStatement
	IfStatement
	LabeledStatement
	IfExpr
	VarDeclStatement
	SingleAssignExpr
	MultiAssignExpr
	LoopExpr
	ContinueExpr
	BreakExpr
	WhileExpr
	ForExpr
	LoopStatement
	ContainerDeclAuto
	PrefixTypeOpOptional
	PrefixTypeOpAnyframe
	PrefixTypeOpSlice
	PrefixTypeOpPtr
	PrefixTypeOpArray
	PtrAlignExpr
	ArrayTypeStart
	PtrTypeStart
	SliceTypeStart
	SuffixTypeOpSlice
	SuffixTypeOpNamedAccess
	SuffixTypeOpDeref
	SuffixTypeOpAssertMaybe
	FnCallArguments
	ForPrefix
	WhilePrefix
	IfPrefix
	Payload
	PayloadIndex
	PayloadList
	SwitchProng
	ForTypeExpr
	SwitchProngList
	ContainerDecl
	IfTypeExpr
	WhileTypeExpr
	IdentifierList
	SwitchExpr
	InitListField
	InitListExpr
	InitListEmpty
	AsmInputList
	AsmOutputList
	AsmInputItem
	AsmOutputItem
	AsmInput
	AsmOutput
	AsmExpr
	TypeOrName

	tagCount
)

var tagNames = [...]string{
	Invalid:                 "invalid",
	ContainerMembers:        "container_members",
	ContainerField:          "container_field",
	TestDecl:                "test_decl",
	ComptimeDecl:            "comptime_decl",
	VarDeclProto:            "var_decl_proto",
	GlobalVarDecl:           "global_var_decl",
	DeclFn:                  "decl_fn",
	DeclGlobalVarDecl:       "decl_global_var_decl",
	Block:                   "block",
	FnProto:                 "fn_proto",
	FnProtoExtra:            "fn_proto_extra",
	ParamDeclList:           "param_decl_list",
	ParamDecl:               "param_decl",
	TypeExpr:                "type_expr",
	ErrorUnionExpr:          "error_union_expr",
	SuffixExpr:              "suffix_expr",
	ComptimeStatement:       "comptime_statement",
	NosuspendStatement:      "nosuspend_statement",
	SuspendStatement:        "suspend_statement",
	DeferStatement:          "defer_statement",
	ErrdeferStatement:       "errdefer_statement",
	UnaryExpr:               "unary_expr",
	BinaryExpr:              "binary_expr",
	ComptimeExpr:            "comptime_expr",
	NosuspendExpr:           "nosuspend_expr",
	ResumeExpr:              "resume_expr",
	ReturnExpr:              "return_expr",
	CurlySuffixExpr:         "curly_suffix_expr",
	PrimaryTypeExpr:         "primary_type_expr",
	TopLevelDecl:            "top_level_decl",
	ForItem:                 "for_item",
	ForArgs:                 "for_args",
	FieldInit:               "field_init",
	StructDecl:              "struct_decl",
	OpaqueDecl:              "opaque_decl",
	EnumDecl:                "enum_decl",
	UnionDecl:               "union_decl",
	SwitchItem:              "switch_item",
	SwitchCase:              "switch_case",
	LabeledBlock:            "labeled_block",
	LabeledLoopExpr:         "labeled_loop_expr",
	LabeledSwitchExpr:       "labeled_switch_expr",
	WhileStatement:          "while_statement",
	ForStatement:            "for_statement",
	IfStatement:             "if_statement",
	LabeledStatement:        "labeled_statement",
	IfExpr:                  "if_expr",
	VarDeclStatement:        "var_decl_statement",
	SingleAssignExpr:        "single_assign_expr",
	MultiAssignExpr:         "multi_assign_expr",
	LoopExpr:                "loop_expr",
	ContinueExpr:            "continue_expr",
	BreakExpr:               "break_expr",
	WhileExpr:               "while_expr",
	ForExpr:                 "for_expr",
	LoopStatement:           "loop_statement",
	ContainerDeclAuto:       "container_decl_auto",
	PrefixTypeOpOptional:    "prefix_type_op_optional",
	PrefixTypeOpAnyframe:    "prefix_type_op_anyframe",
	PrefixTypeOpSlice:       "prefix_type_op_slice",
	PrefixTypeOpPtr:         "prefix_type_op_ptr",
	PrefixTypeOpArray:       "prefix_type_op_array",
	PtrAlignExpr:            "ptr_align_expr",
	ArrayTypeStart:          "array_type_start",
	PtrTypeStart:            "ptr_type_start",
	SliceTypeStart:          "slice_type_start",
	SuffixTypeOpSlice:       "suffix_type_op_slice",
	SuffixTypeOpNamedAccess: "suffix_type_op_named_access",
	SuffixTypeOpDeref:       "suffix_type_op_deref",
	SuffixTypeOpAssertMaybe: "suffix_type_op_assert_maybe",
	FnCallArguments:         "fn_call_arguments",
	ForPrefix:               "for_prefix",
	WhilePrefix:             "while_prefix",
	IfPrefix:                "if_prefix",
	Payload:                 "payload",
	PayloadIndex:            "payload_index",
	PayloadList:             "payload_list",
	SwitchProng:             "switch_prong",
	ForTypeExpr:             "for_type_expr",
	SwitchProngList:         "switch_prong_list",
	ContainerDecl:           "container_decl",
	IfTypeExpr:              "if_type_expr",
	WhileTypeExpr:           "while_type_expr",
	IdentifierList:          "identifier_list",
	SwitchExpr:              "switch_expr",
	InitListField:           "init_list_field",
	InitListExpr:            "init_list_expr",
	InitListEmpty:           "init_list_empty",
	AsmInputList:            "asm_input_list",
	AsmOutputList:           "asm_output_list",
	AsmInputItem:            "asm_input_item",
	AsmOutputItem:           "asm_output_item",
	AsmInput:                "asm_input",
	AsmOutput:               "asm_output",
	AsmExpr:                 "asm_expr",
	TypeOrName:              "type_or_name",
}

// String returns the dump-stable node-tag name, e.g. "if_expr".
func (t Tag) String() string {
	if int(t) >= len(tagNames) || tagNames[t] == "" {
		return "invalid"
	}
	return tagNames[t]
}

// Node is one AST node: a tag plus its source position and tag-specific
// payload. Payload holds one of the Node* payload types declared below,
// chosen by Tag; lang/parser never constructs a Node with a payload that
// disagrees with its Tag.
type Node struct {
	Tag     Tag
	Pos     token.Pos
	Payload any
}

// DeclModifiers is the declaration-modifier bitmask
// (export/extern/inline/noinline/threadlocal).
type DeclModifiers uint8

const (
	ModExport DeclModifiers = 1 << iota
	ModExtern
	ModInline
	ModNoinline
	ModThreadlocal
)

// PointerModifiers is the const/volatile/allowzero pointer-qualifier
// bitmask (also re-exposed on lang/types.Pool.PointerTo).
type PointerModifiers uint8

const (
	PtrConst PointerModifiers = 1 << iota
	PtrVolatile
	PtrAllowzero
)

// PtrType classifies a pointer spelling: single, double, multi, C, or
// sentinel-terminated.
type PtrType uint8

const (
	PtrTypeSingle PtrType = iota
	PtrTypeDouble
	PtrTypeMulti
	PtrTypeC
	PtrTypeSentinel
)

// BinOp is the closed set of binary operators, excluding assignment forms
// (those are SingleAssignExpr/MultiAssignExpr): 30 named operators plus
// BinOpInvalid. See DESIGN.md Open Question #6 for the count.
type BinOp uint8

const (
	BinOpOr BinOp = iota
	BinOpAnd
	BinOpEq
	BinOpNeq
	BinOpLt
	BinOpGt
	BinOpLtEq
	BinOpGtEq
	BinOpBitAnd
	BinOpBitOr
	BinOpBitXor
	BinOpOrelse
	BinOpCatch
	BinOpShl
	BinOpShr
	BinOpShlSaturate
	BinOpAdd
	BinOpAddWrap
	BinOpAddSaturate
	BinOpSub
	BinOpSubWrap
	BinOpSubSaturate
	BinOpArraySpread
	BinOpArrayConcat
	BinOpMul
	BinOpMulWrap
	BinOpMulSaturate
	BinOpDiv
	BinOpMod
	BinOpErrorSetMerge
	BinOpInvalid
)

var binOpNames = [...]string{
	BinOpOr: "or", BinOpAnd: "and", BinOpEq: "eq", BinOpNeq: "neq",
	BinOpLt: "lt", BinOpGt: "gt", BinOpLtEq: "lt_eq", BinOpGtEq: "gt_eq",
	BinOpBitAnd: "bit_and", BinOpBitOr: "bit_or", BinOpBitXor: "bit_xor",
	BinOpOrelse: "orelse", BinOpCatch: "catch", BinOpShl: "shl", BinOpShr: "shr",
	BinOpShlSaturate: "shl_saturate", BinOpAdd: "add", BinOpAddWrap: "add_wrap",
	BinOpAddSaturate: "add_saturate", BinOpSub: "sub", BinOpSubWrap: "sub_wrap",
	BinOpSubSaturate: "sub_saturate", BinOpArraySpread: "array_spread",
	BinOpArrayConcat: "array_concat", BinOpMul: "mul", BinOpMulWrap: "mul_wrap",
	BinOpMulSaturate: "mul_saturate", BinOpDiv: "div", BinOpMod: "mod",
	BinOpErrorSetMerge: "error_set_merge", BinOpInvalid: "invalid",
}

func (b BinOp) String() string {
	if int(b) >= len(binOpNames) || binOpNames[b] == "" {
		return "invalid"
	}
	return binOpNames[b]
}

// PrimaryTypeTag discriminates PrimaryTypeExprData's payload.
type PrimaryTypeTag uint8

const (
	PrimaryTypeNumberLiteral PrimaryTypeTag = iota
	PrimaryTypeIdentifier
	PrimaryTypeBuiltin
	PrimaryTypeCharLiteral
	PrimaryTypeContainerDecl
	PrimaryTypeDotIdentifier
	PrimaryTypeDotInitlist
	PrimaryTypeErrorSetDecl
	PrimaryTypeFnProto
	PrimaryTypeGroupedExpr
	PrimaryTypeLabeledTypeExpr
	PrimaryTypeIfTypeExpr
	PrimaryTypeComptimeTypeExpr
	PrimaryTypeError
	PrimaryTypeAnyframe
	PrimaryTypeUnreachable
	PrimaryTypeStringLiteral
	PrimaryTypeAnytype
)

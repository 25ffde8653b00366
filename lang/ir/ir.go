// Package ir implements the three-address intermediate representation: a
// CFG of blocks, each a straight-line instruction list ended by one
// terminator (jmp / br / ret / the "not yet terminated" sentinel `next`).
//
// Inst is a flat struct rather than a tagged union of per-op types: every
// instruction fits in a few machine words and the Op discriminates which
// fields are live.
package ir

import "github.com/mna/ztoc/lang/ast"

type (
	BlockID = uint32
	TempID  = uint32
	VarID   = uint32
)

// InvalidID is the no-value sentinel for temps, vars and ret values (all
// bits set).
const InvalidID = ^uint32(0)

// Op is the closed instruction opcode set. The name table is slightly
// irregular: const_num/const_bytes/const_char surface as
// "load_num"/"load_bytes"/"load_char" in dumps.
type Op uint8

const (
	OpCall Op = iota
	OpConstNum
	OpConstChar
	OpConstBytes
	OpLoadArg
	OpCopy
	OpLoadVar
	OpStoreVar
	OpNegate
	OpBwNot
	OpBwAnd
	OpNot
	OpOr
	OpAnd
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
	OpBitAnd
	OpBitXor
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpUnreachable
	OpInvalid
)

var opNames = [...]string{
	OpCall: "call", OpConstNum: "load_num", OpConstChar: "load_char",
	OpConstBytes: "load_bytes", OpLoadArg: "load_arg", OpCopy: "copy",
	OpLoadVar: "load_var", OpStoreVar: "store_var", OpNegate: "negate",
	OpBwNot: "bw_not", OpBwAnd: "bw_and", OpNot: "not",
	OpOr: "or", OpAnd: "and", OpEq: "eq", OpNeq: "neq", OpLt: "lt", OpGt: "gt",
	OpLte: "lte", OpGte: "gte", OpBitAnd: "bit_and", OpBitXor: "bit_xor",
	OpShl: "shl", OpShr: "shr", OpAdd: "add", OpSub: "sub", OpMul: "mul",
	OpDiv: "div", OpMod: "mod", OpUnreachable: "unreachable", OpInvalid: "!invalid",
}

func (o Op) String() string {
	if int(o) >= len(opNames) || opNames[o] == "" {
		return "!invalid"
	}
	return opNames[o]
}

// FromBinOp maps a surface BinOp to its IR opcode. Every BinOp not
// explicitly listed — bitwise-or, orelse, catch, the saturating and
// wrapping variants, array-spread, array-concat, error-set-merge —
// returns OpInvalid, meaning lowering must fail fast rather than silently
// miscompile (see DESIGN.md Open Question #7).
func FromBinOp(op ast.BinOp) Op {
	switch op {
	case ast.BinOpOr:
		return OpOr
	case ast.BinOpAnd:
		return OpAnd
	case ast.BinOpEq:
		return OpEq
	case ast.BinOpNeq:
		return OpNeq
	case ast.BinOpLt:
		return OpLt
	case ast.BinOpGt:
		return OpGt
	case ast.BinOpLtEq:
		return OpLte
	case ast.BinOpGtEq:
		return OpGte
	case ast.BinOpBitAnd:
		return OpBitAnd
	case ast.BinOpBitXor:
		return OpBitXor
	case ast.BinOpShl:
		return OpShl
	case ast.BinOpShr:
		return OpShr
	case ast.BinOpAdd:
		return OpAdd
	case ast.BinOpSub:
		return OpSub
	case ast.BinOpMul:
		return OpMul
	case ast.BinOpDiv:
		return OpDiv
	case ast.BinOpMod:
		return OpMod
	default:
		return OpInvalid
	}
}

// Value is the call instruction's callee operand: a temp, an immediate,
// or a bare symbol name. Only Sym is produced by lang/lower today; the
// others exist for completeness of the model.
type ValueTag uint8

const (
	ValTemp ValueTag = iota
	ValImm64
	ValSym
)

type Value struct {
	Tag  ValueTag
	Temp TempID
	Imm  uint64
	Sym  string
}

// Inst is one three-address instruction. Which fields are meaningful is
// determined by Op; Dst is InvalidID for instructions with no result
// (store_var only — load_arg produces a temp like any other instruction,
// immediately consumed by a store_var binding it to the parameter's var).
type Inst struct {
	Dst TempID
	Op  Op

	// call
	CallFn   Value
	CallArgs []TempID

	// binary / unary
	Lhs TempID
	Rhs TempID

	// var (load_var/store_var)
	Var      VarID
	VarValue TempID // store_var's source temp; InvalidID for load_var

	// load_arg
	ArgName string

	// const_num / const_char
	I64 int64

	// const_bytes
	Bytes string
}

// TermTag discriminates a Block's terminator.
type TermTag uint8

const (
	TermNext TermTag = iota // not yet terminated; a bug if it survives lowering
	TermJmp
	TermBr
	TermRet
)

type Term struct {
	Tag TermTag

	JmpTarget BlockID

	BrCond TempID
	BrT    BlockID
	BrF    BlockID

	RetValue TempID
}

type Block struct {
	Insts []Inst
	Term  Term // Term.Tag == TermNext until Builder.Term* sets it
}

// Var is a declared or parameter local, named for load_var/store_var and
// for the C emitter's declaration pass. Type stays a deferred type
// expression until lang/resolver (or the emitter) resolves it.
type Var struct {
	Name string
	Type *ast.Node
}

// NamedType is one formal parameter, or the varargs marker.
type NamedType struct {
	Name      string
	Type      *ast.Node
	IsVarargs bool
}

type Func struct {
	Name      string
	IsStatic  bool
	Modifiers ast.DeclModifiers
	RetType   *ast.Node
	Blocks    []*Block
	CallArgs  []NamedType
	Vars      []Var
	NextTemp  TempID
}

type Program struct {
	Funcs []*Func
}

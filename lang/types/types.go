// Package types implements the structural type interner: a hash-keyed
// deduplication pool over primitives and the two parameterised
// constructors (pointer-to, generic-width integer), returning stable
// 32-bit ids. Two types get the same id iff they are structurally equal.
package types

import "github.com/dolthub/swiss"

// Tag discriminates a Type's structural shape.
type Tag uint8

const (
	Invalid Tag = iota

	Bool
	U8
	U16
	U32
	U64
	U128
	I8
	I16
	I32
	I64
	I128
	Isize
	Usize
	CChar
	CShort
	CUshort
	CInt
	CUint
	CLong
	CUlong
	CLonglong
	CUlonglong
	CLongdouble
	F16
	F32
	F64
	F80
	F128
	Anyopaque

	PtrOne // single/multi/c/sentinel pointer indirection, collapsed to one tag
	PtrTwo // double pointer indirection
	Int    // generic bit-width + signedness, never constructed by the parser (see DESIGN.md)
)

// PointerModifiers is the const/volatile/allowzero pointer-qualifier bitmask.
type PointerModifiers uint8

const (
	PtrConst PointerModifiers = 1 << iota
	PtrVolatile
	PtrAllowzero
)

// ID is a stable 32-bit identifier for an interned type.
type ID uint32

const InvalidID ID = 0

// Type is the structural payload behind an ID.
type Type struct {
	Tag       Tag
	Modifiers PointerModifiers
	Child     ID   // valid for PtrOne/PtrTwo
	Bits      int  // valid for Int
	Signed    bool // valid for Int
}

// builtinNames is the closed primitive-name table: the single source of
// truth for both resolver lookups and emitter output names.
var builtinNames = map[string]Tag{
	"u8": U8, "u16": U16, "u32": U32, "u64": U64, "u128": U128,
	"i8": I8, "i16": I16, "i32": I32, "i64": I64, "i128": I128,
	"isize": Isize, "usize": Usize,

	"c_char": CChar, "c_short": CShort, "c_ushort": CUshort,
	"c_int": CInt, "c_uint": CUint, "c_long": CLong, "c_ulong": CUlong,
	"c_longlong": CLonglong, "c_ulonglong": CUlonglong, "c_longdouble": CLongdouble,

	"f16": F16, "f32": F32, "f64": F64, "f80": F80, "f128": F128,

	"bool": Bool, "anyopaque": Anyopaque,
}

// LookupBuiltin resolves a primitive type name to its Tag. ok is false for
// any identifier outside the closed builtin table; symbol-level type
// resolution is out of scope.
func LookupBuiltin(name string) (Tag, bool) {
	tag, ok := builtinNames[name]
	return tag, ok
}

func structHash(t Type) uint64 {
	h := uint64(t.Tag)
	h = h*31 + uint64(t.Modifiers)
	h = h*31 + uint64(t.Child)
	h = h*31 + uint64(t.Bits)
	if t.Signed {
		h = h*31 + 1
	}
	return h
}

// Pool is the structural type interner: put(x) is idempotent, get(put(x))
// == x, and ids are never re-assigned.
type Pool struct {
	entries  []Type
	buckets  *swiss.Map[uint64, []ID]
	builtins map[Tag]ID // cache: primitive tags need no modifiers/child
}

func NewPool() *Pool {
	p := &Pool{
		entries:  make([]Type, 1, 64),
		buckets:  swiss.NewMap[uint64, []ID](64),
		builtins: make(map[Tag]ID, 32),
	}
	p.entries[0] = Type{Tag: Invalid}
	return p
}

// Put interns t, returning its stable id.
func (p *Pool) Put(t Type) ID {
	h := structHash(t)
	if bucket, ok := p.buckets.Get(h); ok {
		for _, id := range bucket {
			if p.entries[id] == t {
				return id
			}
		}
	}
	id := ID(len(p.entries))
	p.entries = append(p.entries, t)
	bucket, _ := p.buckets.Get(h)
	bucket = append(bucket, id)
	p.buckets.Put(h, bucket)
	return id
}

// Get resolves an id back to its structural Type.
func (p *Pool) Get(id ID) Type { return p.entries[id] }

// Builtin interns (or returns the cached id for) a bare primitive tag.
func (p *Pool) Builtin(tag Tag) ID {
	if id, ok := p.builtins[tag]; ok {
		return id
	}
	id := p.Put(Type{Tag: tag})
	p.builtins[tag] = id
	return id
}

// PointerTo interns a pointer-of-one-indirection type; single, multi, C
// and sentinel pointer node kinds all collapse into PtrOne.
func (p *Pool) PointerTo(child ID, mods PointerModifiers) ID {
	return p.Put(Type{Tag: PtrOne, Child: child, Modifiers: mods})
}

// DoublePointerTo interns a ty_ptr_two (double indirection) type.
func (p *Pool) DoublePointerTo(child ID, mods PointerModifiers) ID {
	return p.Put(Type{Tag: PtrTwo, Child: child, Modifiers: mods})
}

// GenericInt interns a ty_int of the given bit width and signedness.
func (p *Pool) GenericInt(bits int, signed bool) ID {
	return p.Put(Type{Tag: Int, Bits: bits, Signed: signed})
}

// Class describes the peer-resolution family of a type.
type Class uint8

const (
	ClassOther Class = iota
	ClassInt
	ClassFloat
)

// Info reports the peer-resolution class and bit width of a type, used by
// the resolver's PeerResolveType.
func (p *Pool) Info(id ID) (class Class, bits int) {
	t := p.Get(id)
	switch t.Tag {
	case U8, I8, CChar:
		return ClassInt, 8
	case U16, I16, CShort, CUshort:
		return ClassInt, 16
	case U32, I32, CInt, CUint:
		return ClassInt, 32
	case U64, I64, CLong, CUlong, CLonglong, CUlonglong, Isize, Usize:
		return ClassInt, 64
	case U128, I128:
		return ClassInt, 128
	case Int:
		return ClassInt, t.Bits
	case F16:
		return ClassFloat, 16
	case F32:
		return ClassFloat, 32
	case F64, CLongdouble:
		return ClassFloat, 64
	case F80:
		return ClassFloat, 80
	case F128:
		return ClassFloat, 128
	default:
		return ClassOther, 0
	}
}

// CName returns the C type-name mapping for a builtin primitive, used by
// lang/emitc for the tags LookupBuiltin returns. The mapping is total over
// the supported primitives; parameterised constructors return ok == false.
func CName(tag Tag) (string, bool) {
	switch tag {
	case Bool:
		return "bool", true
	case U8:
		return "uint8_t", true
	case U16:
		return "uint16_t", true
	case U32:
		return "uint32_t", true
	case U64:
		return "uint64_t", true
	case U128:
		return "unsigned __int128", true
	case I8:
		return "int8_t", true
	case I16:
		return "int16_t", true
	case I32:
		return "int32_t", true
	case I64:
		return "int64_t", true
	case I128:
		return "__int128", true
	case Isize:
		return "intptr_t", true
	case Usize:
		return "uintptr_t", true
	case CChar:
		return "char", true
	case CShort:
		return "short", true
	case CUshort:
		return "unsigned short", true
	case CInt:
		return "int", true
	case CUint:
		return "unsigned int", true
	case CLong:
		return "long", true
	case CUlong:
		return "unsigned long", true
	case CLonglong:
		return "long long", true
	case CUlonglong:
		return "unsigned long long", true
	case CLongdouble:
		return "long double", true
	case F16:
		return "_Float16", true
	case F32:
		return "float", true
	case F64:
		return "double", true
	case F80:
		return "long double", true
	case F128:
		return "_Float128", true
	case Anyopaque:
		return "void", true
	default:
		return "", false
	}
}

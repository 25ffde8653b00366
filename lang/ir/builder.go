package ir

// Builder accumulates one function's blocks/instructions/vars as
// lang/lower walks the AST, exposing the block/terminator/instruction
// free functions as methods on a stateful cursor (active func, active
// block) instead of a global ir->func/ir->block pair.
type Builder struct {
	Program *Program
	fn      *Func
	block   *Block
}

func NewBuilder() *Builder {
	return &Builder{Program: &Program{}}
}

// StartFunc begins a new function and makes it the active one.
func (b *Builder) StartFunc(fn *Func) {
	b.fn = fn
	b.block = nil
}

// FinishFunc appends the active function to the program.
func (b *Builder) FinishFunc() {
	b.Program.Funcs = append(b.Program.Funcs, b.fn)
	b.fn = nil
	b.block = nil
}

func (b *Builder) NewTemp() TempID {
	id := b.fn.NextTemp
	b.fn.NextTemp++
	return id
}

// NewBlock allocates a new, not-yet-active block in the active function and
// returns its id.
func (b *Builder) NewBlock() BlockID {
	id := BlockID(len(b.fn.Blocks))
	b.fn.Blocks = append(b.fn.Blocks, &Block{Term: Term{Tag: TermNext}})
	return id
}

// SetBlock makes the block with the given id the active one.
func (b *Builder) SetBlock(id BlockID) {
	b.block = b.fn.Blocks[id]
}

func (b *Builder) terminate(t Term) {
	b.block.Term = t
	b.block = nil
}

func (b *Builder) TermJmp(to BlockID) { b.terminate(Term{Tag: TermJmp, JmpTarget: to}) }

func (b *Builder) TermRet(value TempID) { b.terminate(Term{Tag: TermRet, RetValue: value}) }

func (b *Builder) TermBr(cond TempID, t, f BlockID) {
	b.terminate(Term{Tag: TermBr, BrCond: cond, BrT: t, BrF: f})
}

// AppendInst appends inst to the active block, returning its Dst (or
// InvalidID for instructions with no result).
func (b *Builder) AppendInst(inst Inst) TempID {
	b.block.Insts = append(b.block.Insts, inst)
	return inst.Dst
}

func (b *Builder) AppendVar(v Var) VarID {
	b.fn.Vars = append(b.fn.Vars, v)
	return VarID(len(b.fn.Vars) - 1)
}

func (b *Builder) EmitStoreVar(v VarID, value TempID) {
	b.AppendInst(Inst{Op: OpStoreVar, Dst: InvalidID, Var: v, VarValue: value})
}

func (b *Builder) EmitLoadVar(v VarID) TempID {
	return b.AppendInst(Inst{Op: OpLoadVar, Dst: b.NewTemp(), Var: v, VarValue: InvalidID})
}

// Active reports whether the current block is still open for appending
// (true), or was already terminated and control has moved elsewhere
// (false). lowerFunc uses this to insert the implicit `return;` a void
// function gets when control simply falls off the end of its body.
func (b *Builder) Active() bool { return b.block != nil }

// LookupVar returns the id of the first var named name, or InvalidID if
// none exists yet.
func (b *Builder) LookupVar(name string) VarID {
	for i, v := range b.fn.Vars {
		if v.Name == name {
			return VarID(i)
		}
	}
	return InvalidID
}

// InternVar returns the existing var id for name, or creates one.
func (b *Builder) InternVar(name string) VarID {
	if id := b.LookupVar(name); id != InvalidID {
		return id
	}
	return b.AppendVar(Var{Name: name})
}

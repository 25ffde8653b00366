package ast

// VisitDirection indicates whether a call to Visit enters or exits a node.
// Walk is driven by a type switch over Node.Payload rather than per-type
// Walk methods, since there are no per-tag Go types to hang a method off
// of.
type VisitDirection int

const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor defines the method to implement for a Visitor, called for every
// node reachable from the one passed to Walk. Returning nil from Visit
// skips that node's children.
type Visitor interface {
	Visit(n *Node, dir VisitDirection) (w Visitor)
}

type VisitorFunc func(n *Node, dir VisitDirection) Visitor

func (f VisitorFunc) Visit(n *Node, dir VisitDirection) Visitor { return f(n, dir) }

// Walk recursively visits node and its children in source order.
func Walk(v Visitor, node *Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	walkChildren(v, node)
	v.Visit(node, VisitExit)
}

func walkList(v Visitor, nodes []*Node) {
	for _, n := range nodes {
		Walk(v, n)
	}
}

// walkChildren dispatches on the concrete payload type to visit exactly the
// *Node/[]*Node fields of that tag's payload, in declaration order.
func walkChildren(v Visitor, n *Node) {
	switch d := n.Payload.(type) {
	case ContainerMembersData:
		walkList(v, d.Decls)
		walkList(v, d.Fields)
	case ContainerFieldData:
		Walk(v, d.TypeExpr)
		Walk(v, d.Bytealign)
		Walk(v, d.Expr)
	case TestDeclData:
		Walk(v, d.Block)
	case ComptimeDeclData:
		Walk(v, d.Block)
	case VarDeclProtoData:
		Walk(v, d.Type)
		Walk(v, d.Bytealign)
		Walk(v, d.Addrspace)
		Walk(v, d.Linksection)
	case GlobalVarDeclData:
		Walk(v, d.VarDeclProto)
		Walk(v, d.Expr)
	case DeclFnData:
		Walk(v, d.FnProto)
		Walk(v, d.Block)
	case DeclGlobalVarDeclData:
		Walk(v, d.GlobalVarDecl)
	case BlockData:
		walkList(v, d.Statements)
	case FnProtoData:
		Walk(v, d.Params)
		Walk(v, d.ReturnType)
		Walk(v, d.ExtraData)
	case FnProtoExtraData:
		Walk(v, d.Bytealign)
		Walk(v, d.Addrspace)
		Walk(v, d.Linksection)
		Walk(v, d.Callconv)
	case ParamDeclListData:
		walkList(v, d.Params)
	case ParamDeclData:
		Walk(v, d.Type)
	case TypeExprData:
		walkList(v, d.PrefixTypeOps)
		Walk(v, d.TypeExpr)
	case ErrorUnionExprData:
		Walk(v, d.SuffixExpr)
		Walk(v, d.ErrorTypeExpr)
	case SuffixExprData:
		Walk(v, d.Expr)
		walkList(v, d.Suffixes)
	case ErrdeferStatementData:
		Walk(v, d.BlockExpr)
	case UnaryExprData:
		Walk(v, d.Expr)
	case BinaryExprData:
		Walk(v, d.Lhs)
		Walk(v, d.Rhs)
	case CurlySuffixExprData:
		Walk(v, d.Type)
		Walk(v, d.Initlist)
	case PrimaryTypeExprData:
		Walk(v, d.Child)
		Walk(v, d.BuiltinArgs)
	case TopLevelDeclData:
		Walk(v, d.Decl)
	case ForItemData:
		Walk(v, d.Start)
		Walk(v, d.End)
	case ForArgsData:
		walkList(v, d.Args)
	case FieldInitData:
		Walk(v, d.Expr)
	case UnionDeclData:
		Walk(v, d.Expr)
	case SwitchItemData:
		Walk(v, d.Start)
		Walk(v, d.End)
	case SwitchCaseData:
		walkList(v, d.Cases)
	case LabeledStatementData:
		Walk(v, d.Statement)
	case WhileStatementData:
		Walk(v, d.Condition)
		Walk(v, d.Block)
		Walk(v, d.ElseStatement)
	case ForStatementData:
		Walk(v, d.Condition)
		Walk(v, d.Block)
		Walk(v, d.ElseStatement)
	case IfStatementData:
		Walk(v, d.Condition)
		Walk(v, d.Block)
		Walk(v, d.ElseStatement)
	case IfExprData:
		Walk(v, d.Condition)
		Walk(v, d.Expr)
		Walk(v, d.ElsePayloadExpr)
	case VarDeclStatementData:
		Walk(v, d.VarDecl)
		walkList(v, d.VarDeclAdditional)
		Walk(v, d.Expr)
	case SingleAssignExprData:
		Walk(v, d.Lhs)
		Walk(v, d.Rhs)
	case MultiAssignExprData:
		Walk(v, d.Lhs)
		walkList(v, d.LhsAdditional)
		Walk(v, d.Expr)
	case LoopExprData:
		Walk(v, d.LoopExpr)
	case LabeledTypeExprData:
		Walk(v, d.Node)
	case ContinueExprData:
		Walk(v, d.Expr)
	case BreakExprData:
		Walk(v, d.Expr)
	case WhileExprData:
		Walk(v, d.Condition)
		Walk(v, d.Expr)
		Walk(v, d.ElseExpr)
	case ForExprData:
		Walk(v, d.Condition)
		Walk(v, d.Expr)
		Walk(v, d.ElseExpr)
	case LoopStatementData:
		Walk(v, d.Statement)
	case ContainerDeclAutoData:
		Walk(v, d.Type)
		Walk(v, d.Members)
	case PtrAlignExprData:
		Walk(v, d.ByteAlign)
		Walk(v, d.BitOffset)
		Walk(v, d.BitBackingIntegerSize)
	case PrefixTypeSliceData:
		Walk(v, d.Slice)
		Walk(v, d.Bytealign)
		Walk(v, d.Addrspace)
	case PrefixTypePtrData:
		Walk(v, d.Ptr)
		Walk(v, d.Addrspace)
		Walk(v, d.Align)
	case PrefixTypeArrayData:
		Walk(v, d.Array)
	case ArrayTypeStartData:
		Walk(v, d.Index)
		Walk(v, d.SentinelExpr)
	case SliceTypeStartData:
		Walk(v, d.SentinelExpr)
	case PtrTypeStartData:
		Walk(v, d.SentinelExpr)
	case SuffixTypeOpSliceData:
		Walk(v, d.StartExpr)
		Walk(v, d.EndExpr)
		Walk(v, d.SentinelExpr)
	case FnCallArgumentsData:
		walkList(v, d.Exprs)
	case ForPrefixData:
		Walk(v, d.ForArgs)
		Walk(v, d.PtrListPayload)
	case WhilePrefixData:
		Walk(v, d.Condition)
		Walk(v, d.PtrPayload)
		Walk(v, d.WhileContinueExpr)
	case IfPrefixData:
		Walk(v, d.Condition)
		Walk(v, d.PtrPayload)
	case PayloadListData:
		walkList(v, d.Payloads)
	case SwitchProngData:
		Walk(v, d.SwitchCase)
		Walk(v, d.Payload)
		Walk(v, d.Expr)
	case ForTypeExprData:
		Walk(v, d.ForPrefix)
		Walk(v, d.Condition)
		Walk(v, d.Expr)
		Walk(v, d.ElseExpr)
	case SwitchProngListData:
		walkList(v, d.Prongs)
	case ContainerDeclData:
		Walk(v, d.ContainerDecl)
	case IfTypeExprData:
		Walk(v, d.IfPrefix)
		Walk(v, d.TypeExpr)
		Walk(v, d.ElsePayloadTypeExpr)
	case WhileTypeExprData:
		Walk(v, d.WhilePrefix)
		Walk(v, d.TypeExpr)
		Walk(v, d.ElsePayloadTypeExpr)
	case SwitchExprData:
		Walk(v, d.Expr)
		Walk(v, d.SwitchProngList)
	case InitListData:
		walkList(v, d.Nodes)
	case AsmInputListData:
		walkList(v, d.AsmInputs)
	case AsmInputItemData:
		Walk(v, d.InputExpr)
	case AsmOutputListData:
		walkList(v, d.AsmOutputs)
	case AsmOutputItemData:
		Walk(v, d.OutputExpr)
	case AsmOutputData:
		Walk(v, d.AsmOutputList)
		Walk(v, d.AsmInput)
	case AsmInputData:
		Walk(v, d.AsmInputList)
		Walk(v, d.Clobbers)
	case AsmExprData:
		Walk(v, d.Expr)
		Walk(v, d.AsmOutput)
	case TypeOrNameData:
		Walk(v, d.Type)
	case *Node: // ComptimeExpr/NosuspendExpr/ResumeExpr/ReturnExpr/StructDecl/EnumDecl
		Walk(v, d)
	default:
		// Invalid, payload-less markers (OpaqueDecl, InitListEmpty,
		// PrefixTypeOpOptional/Anyframe, SuffixTypeOpDeref/AssertMaybe,
		// Payload, PayloadIndex): no children.
	}
}

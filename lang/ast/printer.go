package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders the nested indented AST dump required by the `-ast` CLI
// flag: one line per node, two-space indent per depth, node kind names
// exactly matching the closed tag set.
type Printer struct {
	Output io.Writer
}

// Print walks root, writing one indented line per node.
func (p *Printer) Print(root *Node) error {
	pp := &printer{w: p.Output}
	Walk(pp, root)
	return pp.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Visit(n *Node, dir VisitDirection) Visitor {
	if p.err != nil {
		return nil
	}
	if dir == VisitExit {
		p.depth--
		return p
	}
	indent := strings.Repeat("  ", p.depth)
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", indent, describe(n))
	p.depth++
	return p
}

// describe renders the one-line summary for a node: its tag name, plus any
// scalar (non-child) fields useful to a reader of the dump.
func describe(n *Node) string {
	switch d := n.Payload.(type) {
	case ContainerFieldData:
		return n.Tag.String() + " " + d.Name
	case VarDeclProtoData:
		return n.Tag.String() + " " + d.Name
	case FnProtoData:
		return n.Tag.String() + " " + d.Name
	case ParamDeclData:
		return n.Tag.String() + " " + d.Identifier
	case PrimaryTypeExprData:
		switch d.PrimaryTag {
		case PrimaryTypeIdentifier, PrimaryTypeNumberLiteral, PrimaryTypeCharLiteral,
			PrimaryTypeStringLiteral, PrimaryTypeDotIdentifier:
			return n.Tag.String() + " " + d.Raw
		case PrimaryTypeBuiltin:
			return n.Tag.String() + " " + d.BuiltinName
		}
		return n.Tag.String()
	case BinaryExprData:
		return n.Tag.String() + " " + d.Op.String()
	case SuffixTypeOpNamedAccessData:
		return n.Tag.String() + " " + d.Name
	case FieldInitData:
		return n.Tag.String() + " " + d.Name
	case LabeledStatementData:
		return n.Tag.String() + " " + d.Label
	case LabeledTypeExprData:
		if d.Label == "" {
			return n.Tag.String()
		}
		return n.Tag.String() + " " + d.Label
	case SingleAssignExprData:
		return n.Tag.String()
	default:
		return n.Tag.String()
	}
}

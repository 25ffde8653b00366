// Package resolver implements the semantic resolver: resolving a declared
// symbol's name, resolving a type_expr to a lang/types.ID, and
// peer-resolving the types of two operands of a binary expression. Only
// the builtin primitive table and pointer prefixes resolve; anything else
// is a fatal error naming the offending AST tag.
package resolver

import (
	"fmt"

	"github.com/mna/ztoc/lang/ast"
	"github.com/mna/ztoc/lang/types"
)

// Error is a semantic-resolution failure, always fatal.
type Error struct {
	Tag ast.Tag
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Tag, e.Msg) }

func unsupported(n *ast.Node) error {
	return &Error{Tag: n.Tag, Msg: "unsupported construct"}
}

// EvalSymbolName extracts the plain identifier name out of the handful of
// expression wrappers that can carry one (type_expr, error_union_expr,
// suffix_expr, a no-op unary_expr, and finally a primary_type_expr
// identifier).
func EvalSymbolName(n *ast.Node) (string, error) {
	switch n.Tag {
	case ast.TypeExpr:
		d := n.Payload.(ast.TypeExprData)
		return EvalSymbolName(d.TypeExpr)
	case ast.PrimaryTypeExpr:
		d := n.Payload.(ast.PrimaryTypeExprData)
		if d.PrimaryTag == ast.PrimaryTypeIdentifier {
			return d.Raw, nil
		}
		return "", unsupported(n)
	case ast.ErrorUnionExpr:
		d := n.Payload.(ast.ErrorUnionExprData)
		return EvalSymbolName(d.SuffixExpr)
	case ast.SuffixExpr:
		d := n.Payload.(ast.SuffixExprData)
		return EvalSymbolName(d.Expr)
	case ast.UnaryExpr:
		d := n.Payload.(ast.UnaryExprData)
		if len(d.Ops) != 0 {
			return "", unsupported(n)
		}
		return EvalSymbolName(d.Expr)
	default:
		return "", unsupported(n)
	}
}

// EvalTypeName resolves a type_expr node (or one of the wrappers that may
// stand in for one) to an interned lang/types.ID, collapsing pointer
// prefix-type-ops into the one- and two-indirection pointer tags
// types.PtrOne and types.PtrTwo (every pointer flavor but double-pointer
// collapses to PtrOne; see lang/types.Pool.PointerTo).
func EvalTypeName(pool *types.Pool, n *ast.Node) (types.ID, error) {
	switch n.Tag {
	case ast.TypeExpr:
		d := n.Payload.(ast.TypeExprData)
		id, err := EvalTypeName(pool, d.TypeExpr)
		if err != nil {
			return types.InvalidID, err
		}
		for _, op := range d.PrefixTypeOps {
			switch op.Tag {
			case ast.PrefixTypeOpPtr:
				p := op.Payload.(ast.PrefixTypePtrData)
				if p.Ptr.Tag != ast.PtrTypeStart {
					return types.InvalidID, unsupported(op)
				}
				pts := p.Ptr.Payload.(ast.PtrTypeStartData)
				switch pts.Type {
				case ast.PtrTypeC, ast.PtrTypeSingle, ast.PtrTypeMulti, ast.PtrTypeSentinel:
					id = pool.PointerTo(id, types.PointerModifiers(p.Modifiers))
				case ast.PtrTypeDouble:
					id = pool.DoublePointerTo(id, types.PointerModifiers(p.Modifiers))
				}
			default:
				return types.InvalidID, unsupported(op)
			}
		}
		return id, nil

	case ast.ErrorUnionExpr:
		d := n.Payload.(ast.ErrorUnionExprData)
		return EvalTypeName(pool, d.SuffixExpr)

	case ast.SuffixExpr:
		d := n.Payload.(ast.SuffixExprData)
		return EvalTypeName(pool, d.Expr)

	case ast.PrimaryTypeExpr:
		d := n.Payload.(ast.PrimaryTypeExprData)
		if d.PrimaryTag != ast.PrimaryTypeIdentifier {
			return types.InvalidID, unsupported(n)
		}
		tag, ok := types.LookupBuiltin(d.Raw)
		if !ok {
			return types.InvalidID, &Error{Tag: n.Tag, Msg: "generic symbols not supported: '" + d.Raw + "'"}
		}
		return pool.Builtin(tag), nil

	case ast.UnaryExpr:
		d := n.Payload.(ast.UnaryExprData)
		if len(d.Ops) != 0 {
			return types.InvalidID, unsupported(n)
		}
		return EvalTypeName(pool, d.Expr)

	default:
		return types.InvalidID, unsupported(n)
	}
}

// PeerResolveType picks the wider of two same-class (int/int or
// float/float) types. Identity short-circuits. Mixed classes (or either
// operand outside int/float) are a fatal semantic error — cross-class
// arithmetic has no defined common type in this language.
func PeerResolveType(pool *types.Pool, a, b types.ID) (types.ID, error) {
	if a == b {
		return a, nil
	}
	aClass, aBits := pool.Info(a)
	bClass, bBits := pool.Info(b)

	if aClass == types.ClassInt && bClass == types.ClassInt {
		if aBits > bBits {
			return a, nil
		}
		return b, nil
	}
	if aClass == types.ClassFloat && bClass == types.ClassFloat {
		if aBits > bBits {
			return a, nil
		}
		return b, nil
	}
	return types.InvalidID, fmt.Errorf("peer resolution failed: class %d <-> class %d", aClass, bClass)
}

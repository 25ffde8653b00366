package ast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ztoc/lang/ast"
)

func ident(name string) *ast.Node {
	return &ast.Node{
		Tag: ast.PrimaryTypeExpr,
		Payload: ast.PrimaryTypeExprData{
			PrimaryTag: ast.PrimaryTypeIdentifier,
			Raw:        name,
		},
	}
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "if_expr", ast.IfExpr.String())
	assert.Equal(t, "invalid", ast.Invalid.String())
	assert.Equal(t, "invalid", ast.Tag(255).String())
}

func TestBinOpString(t *testing.T) {
	assert.Equal(t, "add", ast.BinOpAdd.String())
	assert.Equal(t, "invalid", ast.BinOpInvalid.String())
}

func TestWalkVisitsChildrenInOrder(t *testing.T) {
	lhs, rhs := ident("x"), ident("y")
	bin := &ast.Node{
		Tag:     ast.BinaryExpr,
		Payload: ast.BinaryExprData{Op: ast.BinOpAdd, Lhs: lhs, Rhs: rhs},
	}

	var seen []*ast.Node
	ast.Walk(ast.VisitorFunc(func(n *ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			seen = append(seen, n)
		}
		return ast.VisitorFunc(func(n *ast.Node, dir ast.VisitDirection) ast.Visitor {
			if dir == ast.VisitEnter {
				seen = append(seen, n)
			}
			return nil
		})
	}), bin)

	require.Len(t, seen, 3)
	assert.Same(t, bin, seen[0])
	assert.Same(t, lhs, seen[1])
	assert.Same(t, rhs, seen[2])
}

func TestPrinterNestedIndent(t *testing.T) {
	block := &ast.Node{
		Tag: ast.Block,
		Payload: ast.BlockData{
			Statements: []*ast.Node{
				{Tag: ast.ReturnExpr, Payload: ident("x")},
			},
		},
	}

	var buf strings.Builder
	require.NoError(t, (&ast.Printer{Output: &buf}).Print(block))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "block", lines[0])
	assert.Equal(t, "  return_expr", lines[1])
	assert.Equal(t, "    primary_type_expr x", lines[2])
}

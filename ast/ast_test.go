package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
)

func TestLiteralNodeKinds(t *testing.T) {
	cases := []struct {
		node ast.Node
		want ast.Kind
	}{
		{ast.IntegerLiteral{Value: 5}, ast.KindIntegerLiteral},
		{ast.FractionLiteral{Num: 3, Den: 2}, ast.KindFractionLiteral},
		{ast.CentsLiteral{Value: 100}, ast.KindCentsLiteral},
		{ast.Identifier{Name: "x"}, ast.KindIdentifier},
		{ast.BinaryExpression{Op: "+"}, ast.KindBinaryExpression},
		{ast.HarmonicSegment{}, ast.KindHarmonicSegment},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.node.Kind())
	}
}

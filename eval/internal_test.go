package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

func newTestVisitor(t *testing.T) *Visitor {
	t.Helper()
	root, err := rootctx.New()
	require.NoError(t, err)
	return NewVisitor(root)
}

// TestDeferRunsLIFO exercises package eval's unexported evalStatement
// directly so the test can inspect the scope afterward: x accumulates
// "a then b" textually, but a block's defers must run in reverse
// registration order (spec §4.5), so the later-registered "+b" append
// happens before the earlier-registered "+a" one.
func TestDeferRunsLIFO(t *testing.T) {
	v := newTestVisitor(t)
	v.Global.Declare("a", value.Str("a"), true)
	v.Global.Declare("b", value.Str("b"), true)

	top := v.Global.Child()

	// x starts at "" via a direct Declare rather than through an ast literal,
	// since ast has no string-literal node (no grammar/parser stage exists
	// to ever produce one, see DESIGN.md).
	top.Declare("x", value.Str(""), false)

	inner := ast.BlockStatement{
		Body: []ast.Node{
			ast.DeferStatement{Argument: ast.AssignmentExpression{
				Target: ast.Identifier{Name: "x"},
				Op:     "=",
				Value: ast.BinaryExpression{
					Op:   "+",
					Left: ast.Identifier{Name: "x"}, Right: ast.Identifier{Name: "a"},
				},
			}},
			ast.DeferStatement{Argument: ast.AssignmentExpression{
				Target: ast.Identifier{Name: "x"},
				Op:     "=",
				Value: ast.BinaryExpression{
					Op:   "+",
					Left: ast.Identifier{Name: "x"}, Right: ast.Identifier{Name: "b"},
				},
			}},
		},
	}

	_, err := v.evalStatement(top, inner)
	require.NoError(t, err)

	got, ok := top.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, value.Str("ba"), got)
}

func TestScopeAssignFindsEnclosingBinding(t *testing.T) {
	parent := NewScope()
	parent.Declare("x", value.Bool(true), false)
	child := parent.Child()
	require.NoError(t, child.Assign("x", value.Bool(false)))
	v, ok := parent.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, value.Bool(false), v)
}

func TestScopeAssignRejectsConst(t *testing.T) {
	s := NewScope()
	s.Declare("x", value.Bool(true), true)
	err := s.Assign("x", value.Bool(false))
	assert.Error(t, err)
}

func TestScopePushColorsUncoloredIntervals(t *testing.T) {
	s := NewScope()
	iv := value.Interval{}
	s.scale = append(s.scale, iv)
	s.Push(value.Color("red"))
	colored, ok := s.scale[0].(value.Interval)
	require.True(t, ok)
	assert.Equal(t, value.Color("red"), colored.TheColor)
}

package eval_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
	"github.com/xenharmonic-devs/sonic-weave-sub001/eval"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

func newRoot(t *testing.T, opts ...rootctx.Option) *rootctx.RootContext {
	t.Helper()
	root, err := rootctx.New(opts...)
	require.NoError(t, err)
	return root
}

func intervalAt(t *testing.T, scale value.Array, i int) value.Interval {
	t.Helper()
	require.Greater(t, len(scale), i)
	iv, ok := scale[i].(value.Interval)
	require.True(t, ok)
	return iv
}

// TestHarmonicSegment checks the harmonics 5/4, 6/4, 7/4, 8/4 produced by
// `4::8` (spec §6.1), via the sizes they print as in cents.
func TestHarmonicSegment(t *testing.T) {
	root := newRoot(t)
	v := eval.NewVisitor(root)

	program := ast.BlockStatement{Body: []ast.Node{
		ast.HarmonicSegment{Start: ast.IntegerLiteral{Value: 4}, End: ast.IntegerLiteral{Value: 8}},
	}}

	scale, err := v.Run(program)
	require.NoError(t, err)
	require.Len(t, scale, 4)

	want := []float64{386.3137, 701.9550, 968.8259, 1200.0}
	for i, w := range want {
		iv := intervalAt(t, scale, i)
		assert.InDelta(t, w, iv.Number.TotalCents(), 0.001)
	}
}

// TestWhileTrueExhaustsGas confirms an unconditional loop is stopped by the
// gas budget rather than running forever (spec §5).
func TestWhileTrueExhaustsGas(t *testing.T) {
	root := newRoot(t, rootctx.WithGas(5))
	v := eval.NewVisitor(root)
	v.Global.Declare("true", value.Bool(true), true)

	program := ast.WhileStatement{
		Test: ast.Identifier{Name: "true"},
		Body: ast.BlockStatement{},
	}

	_, err := v.Run(program)
	require.Error(t, err)
	assert.True(t, sweerr.IsOutOfGas(err))
}

// TestArrayComprehensionDoubles builds [i*2 for i of [1..3]] and expects
// [2, 4, 6] (spec §4.5 "Comprehensions").
func TestArrayComprehensionDoubles(t *testing.T) {
	root := newRoot(t)
	v := eval.NewVisitor(root)

	program := ast.BlockStatement{Body: []ast.Node{
		ast.ArrayExpression{
			ComprehensionVar:  "i",
			ComprehensionIter: ast.RangeExpression{Start: ast.IntegerLiteral{Value: 1}, End: ast.IntegerLiteral{Value: 3}},
			ComprehensionExpr: ast.BinaryExpression{
				Op:   "*",
				Left: ast.Identifier{Name: "i"}, Right: ast.FractionLiteral{Num: 2, Den: 1},
			},
		},
	}}

	// An array-valued expression statement is spread into the scale.
	scale, err := v.Run(program)
	require.NoError(t, err)
	require.Len(t, scale, 3)

	want := []int64{2, 4, 6}
	for i, w := range want {
		iv, ok := scale[i].(value.Interval)
		require.True(t, ok)
		assert.InDelta(t, 1200*math.Log2(float64(w)), iv.Number.TotalCents(), 0.01)
	}
}

// TestFunctionCallBindsArgsAndReturns declares `fn inc(x) { return x + 1 }`
// and checks `inc(5)` evaluates to 6 (spec §4.5 function declarations).
func TestFunctionCallBindsArgsAndReturns(t *testing.T) {
	root := newRoot(t)
	v := eval.NewVisitor(root)

	program := ast.BlockStatement{Body: []ast.Node{
		ast.FunctionDeclaration{
			Name:   "inc",
			Params: []ast.Param{{Name: "x"}},
			Body: ast.BlockStatement{Body: []ast.Node{
				ast.ReturnStatement{Argument: ast.BinaryExpression{
					Op: "+", Left: ast.Identifier{Name: "x"}, Right: ast.FractionLiteral{Num: 1, Den: 1},
				}},
			}},
		},
		ast.CallExpression{Callee: ast.Identifier{Name: "inc"}, Args: []ast.Node{ast.IntegerLiteral{Value: 5}}},
	}}

	scale, err := v.Run(program)
	require.NoError(t, err)
	iv := intervalAt(t, scale, 0)
	assert.InDelta(t, 1200*math.Log2(6), iv.Number.TotalCents(), 0.01)
}

// TestRiffDefaultReturnIsItsOwnScale checks that a `riff` without an
// explicit return yields the scale it built internally (spec §4.5 "Three
// declarations share one internal representation").
func TestRiffDefaultReturnIsItsOwnScale(t *testing.T) {
	root := newRoot(t)
	v := eval.NewVisitor(root)

	program := ast.BlockStatement{Body: []ast.Node{
		ast.FunctionDeclaration{
			Name: "triad",
			Riff: true,
			Body: ast.BlockStatement{Body: []ast.Node{
				ast.FractionLiteral{Num: 5, Den: 4},
				ast.FractionLiteral{Num: 3, Den: 2},
			}},
		},
		ast.CallExpression{Callee: ast.Identifier{Name: "triad"}},
	}}

	scale, err := v.Run(program)
	require.NoError(t, err)
	// triad()'s own scale is pushed via Scope.Push, which spreads an Array
	// value into its caller's scope rather than nesting it (spec §4.5), so
	// the two intervals land directly in scale rather than inside one
	// nested array element.
	require.Len(t, scale, 2)
	for _, elem := range scale {
		_, ok := elem.(value.Interval)
		assert.True(t, ok)
	}
}

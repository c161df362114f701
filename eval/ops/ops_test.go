package ops_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenharmonic-devs/sonic-weave-sub001/eval/ops"
	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

func newRoot(t *testing.T) *rootctx.RootContext {
	t.Helper()
	root, err := rootctx.New()
	require.NoError(t, err)
	return root
}

func fractionInterval(num, den int64) value.Interval {
	m, _ := monzo.FromBigRat(big.NewInt(num), big.NewInt(den), monzo.DefaultPrimes, 1000, rational.Zero)
	return value.FromMonzo(m)
}

func TestBinaryAddMultipliesInLogDomain(t *testing.T) {
	root := newRoot(t)
	fifth := fractionInterval(3, 2)
	fifth.Domain = value.Logarithmic

	got, err := ops.Binary(root, "+", fifth, fifth)
	require.NoError(t, err)
	iv, ok := got.(value.Interval)
	require.True(t, ok)

	want := fractionInterval(9, 4)
	cmp, err := value.Compare(iv, want)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestBinaryPowRaisesExponent(t *testing.T) {
	root := newRoot(t)
	fifth := fractionInterval(3, 2)

	got, err := ops.Binary(root, "^", fifth, fractionInterval(2, 1))
	require.NoError(t, err)
	iv, ok := got.(value.Interval)
	require.True(t, ok)

	want := fractionInterval(9, 4)
	cmp, err := value.Compare(iv, want)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestBinaryComparisonOperators(t *testing.T) {
	root := newRoot(t)
	a := fractionInterval(3, 2)
	b := fractionInterval(5, 4)

	got, err := ops.Binary(root, ">", a, b)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), got)

	got, err = ops.Binary(root, "==", a, a)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), got)

	got, err = ops.Binary(root, "!=", a, b)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), got)
}

func TestBinaryTildeCoercesDomainBeforeAdding(t *testing.T) {
	root := newRoot(t)
	a := fractionInterval(3, 2)
	logB := fractionInterval(3, 2)
	logB.Domain = value.Logarithmic

	got, err := ops.Binary(root, "~+", a, logB)
	require.NoError(t, err)
	iv, ok := got.(value.Interval)
	require.True(t, ok)
	assert.Equal(t, value.Linear, iv.Domain)
}

func TestBinaryMixedDomainWithoutCoercionErrors(t *testing.T) {
	root := newRoot(t)
	a := fractionInterval(3, 2)
	logB := fractionInterval(3, 2)
	logB.Domain = value.Logarithmic

	_, err := ops.Binary(root, "+", a, logB)
	assert.Error(t, err)
}

func TestBinaryBroadcastsOverArrays(t *testing.T) {
	root := newRoot(t)
	arr := value.Array{fractionInterval(5, 4), fractionInterval(3, 2)}

	got, err := ops.Binary(root, "*", arr, fractionInterval(2, 1))
	require.NoError(t, err)
	out, ok := got.(value.Array)
	require.True(t, ok)
	require.Len(t, out, 2)

	want := []value.Interval{fractionInterval(5, 2), fractionInterval(3, 1)}
	for i, w := range want {
		iv, ok := out[i].(value.Interval)
		require.True(t, ok)
		cmp, err := value.Compare(iv, w)
		require.NoError(t, err)
		assert.Equal(t, 0, cmp)
	}
}

func TestBinaryTempersIntervalAgainstVal(t *testing.T) {
	root := newRoot(t)
	basis := value.PrimeLimitBasis(3)
	v := value.PatentVal(12, fractionInterval(2, 1).Number.(monzo.TimeMonzo), basis)
	fifth := fractionInterval(3, 2)

	got, err := ops.Binary(root, "*", v, fifth)
	require.NoError(t, err)
	iv, ok := got.(value.Interval)
	require.True(t, ok)
	assert.Equal(t, int64(7), iv.Steps)
}

func TestBinaryStringConcatenation(t *testing.T) {
	root := newRoot(t)
	got, err := ops.Binary(root, "+", value.Str("hello "), value.Str("world"))
	require.NoError(t, err)
	assert.Equal(t, value.Str("hello world"), got)
}

func TestBinaryUnsupportedKindsError(t *testing.T) {
	root := newRoot(t)
	_, err := ops.Binary(root, "+", value.Str("x"), fractionInterval(1, 1))
	assert.Error(t, err)
}

func TestTensorProductIsOuterProduct(t *testing.T) {
	root := newRoot(t)
	a := value.Array{fractionInterval(3, 2), fractionInterval(5, 4)}
	b := value.Array{fractionInterval(2, 1)}

	got, err := ops.TensorProduct(root, a, b)
	require.NoError(t, err)
	out, ok := got.(value.Array)
	require.True(t, ok)
	require.Len(t, out, 2)

	want := []value.Interval{fractionInterval(3, 1), fractionInterval(5, 2)}
	for i, w := range want {
		iv, ok := out[i].(value.Interval)
		require.True(t, ok)
		cmp, err := value.Compare(iv, w)
		require.NoError(t, err)
		assert.Equal(t, 0, cmp)
	}
}

func TestTensorProductOfTwoScalarsIsScalar(t *testing.T) {
	root := newRoot(t)
	got, err := ops.TensorProduct(root, fractionInterval(3, 2), fractionInterval(2, 1))
	require.NoError(t, err)
	_, ok := got.(value.Interval)
	assert.True(t, ok)
}

func TestUnaryNegation(t *testing.T) {
	root := newRoot(t)
	a := fractionInterval(3, 2)
	got, err := ops.Unary(root, "-", a)
	require.NoError(t, err)
	iv, ok := got.(value.Interval)
	require.True(t, ok)
	assert.Less(t, iv.Number.Float64(), 0.0)
}

func TestUnaryReciprocal(t *testing.T) {
	root := newRoot(t)
	a := fractionInterval(3, 2)
	got, err := ops.Unary(root, "%", a)
	require.NoError(t, err)
	iv, ok := got.(value.Interval)
	require.True(t, ok)

	want := fractionInterval(2, 3)
	cmp, err := value.Compare(iv, want)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestUnaryNot(t *testing.T) {
	root := newRoot(t)
	got, err := ops.Unary(root, "not", value.Bool(true))
	require.NoError(t, err)
	assert.Equal(t, value.Bool(false), got)
}

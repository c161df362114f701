package value_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

var primes = monzo.DefaultPrimes

type testBudget struct{ gas int64 }

func (b *testBudget) Primes() []int64   { return primes }
func (b *testBudget) Remaining() int64  { return b.gas }
func (b *testBudget) Spend(n int64) error {
	b.gas -= n
	return nil
}

func fractionInterval(num, den int64) value.Interval {
	m, _ := monzo.FromBigRat(big.NewInt(num), big.NewInt(den), primes, 1000, rational.Zero)
	return value.FromMonzo(m)
}

func TestExactnessClosureMulDiv(t *testing.T) {
	a := fractionInterval(5, 4)
	b := fractionInterval(3, 2)
	prod, err := value.Mul(a, b)
	require.NoError(t, err)
	back, err := value.Div(prod, b)
	require.NoError(t, err)
	cmp, err := value.Compare(a, back)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestDomainMismatchErrors(t *testing.T) {
	a := fractionInterval(5, 4)
	logA := a
	logA.Domain = value.Logarithmic
	_, err := value.Add(&testBudget{gas: 1000}, a, logA)
	assert.Error(t, err)
}

func TestLogarithmicAddStacksRatios(t *testing.T) {
	fifth := fractionInterval(3, 2)
	fifth.Domain = value.Logarithmic
	stacked, err := value.Add(&testBudget{gas: 1000}, fifth, fifth)
	require.NoError(t, err)
	// 3/2 * 3/2 = 9/4
	expect := fractionInterval(9, 4)
	cmp, err := value.Compare(stacked, expect)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestEchelonMulTransposesAbsolute(t *testing.T) {
	abs := fractionInterval(440, 1)
	abs.Echelon = value.Absolute
	rel := fractionInterval(3, 2)
	out, err := value.Mul(abs, rel)
	require.NoError(t, err)
	assert.Equal(t, value.Absolute, out.Echelon)
}

func TestDivAbsoluteByAbsoluteIsRelative(t *testing.T) {
	a := fractionInterval(440, 1)
	a.Echelon = value.Absolute
	b := fractionInterval(220, 1)
	b.Echelon = value.Absolute
	out, err := value.Div(a, b)
	require.NoError(t, err)
	assert.Equal(t, value.Relative, out.Echelon)
}

func TestMulTwoAbsolutesIsAnError(t *testing.T) {
	a := fractionInterval(440, 1)
	a.Echelon = value.Absolute
	b := fractionInterval(220, 1)
	b.Echelon = value.Absolute
	_, err := value.Mul(a, b)
	assert.Error(t, err)
}

func TestValTempering(t *testing.T) {
	basis := value.PrimeLimitBasis(3) // 2.3.5
	v := value.PatentVal(12, fractionInterval(2, 1).Number.(monzo.TimeMonzo), basis)
	fifth := fractionInterval(3, 2)
	out, err := value.Temper(v, fifth)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Steps)
}

func TestBroadcastArrayLengthMismatch(t *testing.T) {
	a := value.Array{fractionInterval(1, 1)}
	b := value.Array{fractionInterval(1, 1), fractionInterval(2, 1)}
	_, err := value.Broadcast(a, b, func() error { return nil }, func(x, y value.Value) (value.Value, error) {
		return x, nil
	})
	assert.Error(t, err)
}

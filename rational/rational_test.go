package rational_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
)

func TestArithmetic(t *testing.T) {
	cases := []struct {
		name string
		a, b rational.Rational
		want rational.Rational
		op   func(a, b rational.Rational) rational.Rational
	}{
		{"add", rational.New(1, 2), rational.New(1, 3), rational.New(5, 6), rational.Rational.Add},
		{"sub", rational.New(1, 2), rational.New(1, 3), rational.New(1, 6), rational.Rational.Sub},
		{"mul", rational.New(2, 3), rational.New(3, 4), rational.New(1, 2), rational.Rational.Mul},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.op(c.a, c.b)
			assert.True(t, got.Equal(c.want), "got %s want %s", got, c.want)
		})
	}
}

func TestQuoByZero(t *testing.T) {
	_, err := rational.One.Quo(rational.Zero)
	assert.Error(t, err)
}

func TestPowInt(t *testing.T) {
	threeOverTwo := rational.New(3, 2)
	p, err := threeOverTwo.PowInt(3)
	assert.NoError(t, err)
	assert.True(t, p.Equal(rational.New(27, 8)))

	inv, err := threeOverTwo.PowInt(-1)
	assert.NoError(t, err)
	assert.True(t, inv.Equal(rational.New(2, 3)))

	_, err = rational.Zero.PowInt(-1)
	assert.Error(t, err)
}

func TestGCDLCM(t *testing.T) {
	a, b := rational.FromInt(12), rational.FromInt(18)
	assert.True(t, a.GCD(b).Equal(rational.FromInt(6)))
	assert.True(t, a.LCM(b).Equal(rational.FromInt(36)))
}

func TestFactorize(t *testing.T) {
	primes := rational.Primes(3) // 2, 3, 5
	exps, rem, trials := rational.Factorize(big.NewInt(60), primes, 100)
	assert.Equal(t, []int64{2, 1, 1}, exps)
	assert.Equal(t, 0, rem.Cmp(big.NewInt(1)))
	assert.Greater(t, trials, 0)
}

func TestFactorizeBudgetExhausted(t *testing.T) {
	primes := rational.Primes(1) // just 2
	_, rem, trials := rational.Factorize(big.NewInt(2*3*3*3), primes, 1)
	assert.Equal(t, 1, trials)
	assert.Equal(t, 0, rem.Cmp(big.NewInt(27)))
}

func TestRoundTrip(t *testing.T) {
	a := rational.New(355, 113)
	b, err := a.Inv()
	assert.NoError(t, err)
	c := a.Mul(b)
	assert.True(t, c.Equal(rational.One))
}

package monzo_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
)

var primes = monzo.DefaultPrimes

func fraction(num, den int64) monzo.TimeMonzo {
	m, _ := monzo.FromBigRat(big.NewInt(num), big.NewInt(den), primes, 1000, rational.Zero)
	return m
}

func TestExactnessClosure(t *testing.T) {
	a := fraction(5, 4)
	b := fraction(6, 4)
	prod := monzo.Mul(a, b)
	back, err := monzo.Div(prod, b)
	require.NoError(t, err)
	af, err := a.AsFraction(primes)
	require.NoError(t, err)
	bf, err := back.AsFraction(primes)
	require.NoError(t, err)
	assert.True(t, af.Equal(bf))
}

func TestAsFractionRoundTrip(t *testing.T) {
	m := fraction(81, 64)
	f, err := m.AsFraction(primes)
	require.NoError(t, err)
	assert.Equal(t, "81/64", f.String())
}

func TestPowRationalInteger(t *testing.T) {
	m := fraction(3, 2)
	cubed, err := monzo.PowRational(m, rational.FromInt(3))
	require.NoError(t, err)
	f, err := cubed.AsFraction(primes)
	require.NoError(t, err)
	assert.True(t, f.Equal(rational.New(27, 8)))
}

func TestGCDLCM(t *testing.T) {
	a := fraction(4, 3)
	b := fraction(3, 2)
	g := monzo.GCD(a, b)
	l := monzo.LCM(a, b)
	gf, err := g.AsFraction(primes)
	require.NoError(t, err)
	lf, err := l.AsFraction(primes)
	require.NoError(t, err)
	// gcd(4/3, 3/2) takes the elementwise minimum exponent per prime.
	// 4/3 = [2, -1>, 3/2 = [-1, 1>: gcd = [-1, -1> = 1/6, lcm = [2, 1> = 12.
	assert.True(t, gf.Equal(rational.New(1, 6)))
	assert.True(t, lf.Equal(rational.FromInt(12)))
}

func TestAsEqualTemperament(t *testing.T) {
	m := fraction(2, 1)
	twelfth, err := monzo.PowRational(m, rational.New(7, 12))
	require.NoError(t, err)
	equave, frac, err := twelfth.AsEqualTemperament(primes)
	require.NoError(t, err)
	assert.True(t, equave.Equal(rational.FromInt(2)))
	assert.True(t, frac.Equal(rational.New(7, 12)))
}

func TestWithComponentsShrinkFoldsResidual(t *testing.T) {
	m := fraction(15, 1) // 3 * 5
	small := m.WithComponents(1, primes)
	// only the "2" component remains addressable; the 3*5 tail folds into residual.
	f, err := small.AsFraction(primes)
	require.NoError(t, err)
	assert.True(t, f.Equal(rational.FromInt(15)))
}

func TestDotTemperament(t *testing.T) {
	// 12-EDO patent val on 2.3.5: [12, 19, 28]
	coeffs := []rational.Rational{rational.FromInt(12), rational.FromInt(19), rational.FromInt(28)}
	fifth := fraction(3, 2)
	steps := fifth.Dot(coeffs)
	assert.True(t, steps.Equal(rational.FromInt(7)))
}

func TestTotalCentsOctave(t *testing.T) {
	octave := fraction(2, 1)
	assert.InDelta(t, 1200.0, octave.TotalCents(), 1e-9)
}

package monzo

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
)

// Number is implemented by both TimeMonzo and TimeReal: the two alternative
// representations of a SonicWeave numeric quantity. Higher layers (the
// value package's Interval) hold a Number rather than committing to one
// representation, since any exact operation may need to demote to TimeReal.
type Number interface {
	// IsReal reports whether this Number is a lossy TimeReal.
	IsReal() bool
	// TotalCents returns 1200*log2(value), the quantity's size measured in
	// cents, regardless of representation.
	TotalCents() float64
	numberMarker()
}

// TimeMonzo is the exact representation: value = residual * prod(prime[i]^exponent[i]),
// tagged with a time dimension exponent (0 = dimensionless/relative, -1 =
// frequency, +1 = duration).
type TimeMonzo struct {
	TimeExponent   rational.Rational
	PrimeExponents []rational.Rational // indexed by prime: [0]=2, [1]=3, [2]=5, ...
	Residual       rational.Rational   // unfactored remainder, defaults to 1/1
}

func (TimeMonzo) numberMarker() {}

// IsReal always reports false for TimeMonzo.
func (TimeMonzo) IsReal() bool { return false }

// DefaultPrimes is the prime basis used when none is supplied explicitly;
// its length is the default "numComponents" (spec §4.1).
var DefaultPrimes = rational.Primes(23)

// Unity returns the multiplicative identity (1/1) with n prime components,
// time exponent 0 (relative).
func Unity(n int) TimeMonzo {
	return TimeMonzo{
		TimeExponent:   rational.Zero,
		PrimeExponents: make([]rational.Rational, n),
		Residual:       rational.One,
	}
}

func zeroedRationals(n int) []rational.Rational {
	v := make([]rational.Rational, n)
	for i := range v {
		v[i] = rational.Zero
	}
	return v
}

// FromBigRat builds an exact TimeMonzo for the rational number num/den,
// factoring it over primes (in increasing order) up to budget trial
// divisions. Anything left unfactored when the budget runs out survives in
// Residual rather than being dropped, so the returned monzo is always exact
// even if not fully decomposed into primes; the caller decides (based on
// trials spent) whether to keep going, accept a partial factorization, or
// promote to TimeReal. timeExponent tags the dimension (0 for a relative
// interval).
func FromBigRat(num, den *big.Int, primes []int64, budget int, timeExponent rational.Rational) (TimeMonzo, int) {
	numExp, numRem, t1 := rational.Factorize(num, primes, budget)
	denExp, denRem, t2 := rational.Factorize(den, primes, budget-t1)
	exps := make([]rational.Rational, len(primes))
	for i := range exps {
		exps[i] = rational.FromInt(numExp[i] - denExp[i])
	}
	residual := new(big.Rat).SetFrac(numRem, denRem)
	if num.Sign() < 0 {
		residual.Neg(residual)
	}
	return TimeMonzo{
		TimeExponent:   timeExponent,
		PrimeExponents: exps,
		Residual:       ratFromBig(residual),
	}, t1 + t2
}

// ratFromBig converts a math/big.Rat into a rational.Rational. The
// denominator of a big.Rat is always normalized to a positive non-zero
// value, so the division below cannot fail.
func ratFromBig(r *big.Rat) rational.Rational {
	q, err := rational.FromBigInt(r.Num()).Quo(rational.FromBigInt(r.Denom()))
	if err != nil {
		panic("monzo: unreachable: big.Rat denominator is never zero")
	}
	return q
}

// WithComponents resizes the prime-exponent vector to n components,
// left-padding with zero exponents when growing and folding any non-zero
// tail into Residual (by multiplying it back in as primes) when shrinking,
// per spec §4.1's "Configurable N" policy: changing numComponents must never
// invalidate existing monzos.
func (m TimeMonzo) WithComponents(n int, primes []int64) TimeMonzo {
	out := TimeMonzo{TimeExponent: m.TimeExponent, Residual: m.Residual}
	if n <= len(m.PrimeExponents) {
		out.PrimeExponents = append([]rational.Rational(nil), m.PrimeExponents[:n]...)
		// fold any truncated tail back into the residual, prime by prime.
		res := out.Residual
		for i := n; i < len(m.PrimeExponents); i++ {
			if i >= len(primes) {
				break
			}
			e := m.PrimeExponents[i]
			if e.IsZero() {
				continue
			}
			p := rational.FromInt(primes[i])
			pe, err := p.PowInt(e.Num().Int64())
			if err == nil {
				res = res.Mul(pe)
			}
		}
		out.Residual = res
		return out
	}
	out.PrimeExponents = append(append([]rational.Rational(nil), m.PrimeExponents...), zeroedRationals(n-len(m.PrimeExponents))...)
	return out
}

func (m TimeMonzo) pad(n int) TimeMonzo {
	if len(m.PrimeExponents) >= n {
		return m
	}
	return m.WithComponents(n, nil)
}

func maxLen(a, b []rational.Rational) int {
	if len(a) > len(b) {
		return len(a)
	}
	return len(b)
}

// Mul returns the exact product a*b: prime exponents add, residuals
// multiply, time exponents add.
func Mul(a, b TimeMonzo) TimeMonzo {
	n := maxLen(a.PrimeExponents, b.PrimeExponents)
	a, b = a.pad(n), b.pad(n)
	exps := make([]rational.Rational, n)
	for i := range exps {
		exps[i] = a.PrimeExponents[i].Add(b.PrimeExponents[i])
	}
	return TimeMonzo{
		TimeExponent:   a.TimeExponent.Add(b.TimeExponent),
		PrimeExponents: exps,
		Residual:       a.Residual.Mul(b.Residual),
	}
}

// Div returns the exact quotient a/b.
func Div(a, b TimeMonzo) (TimeMonzo, error) {
	n := maxLen(a.PrimeExponents, b.PrimeExponents)
	a, b = a.pad(n), b.pad(n)
	exps := make([]rational.Rational, n)
	for i := range exps {
		exps[i] = a.PrimeExponents[i].Sub(b.PrimeExponents[i])
	}
	residual, err := a.Residual.Quo(b.Residual)
	if err != nil {
		return TimeMonzo{}, errors.Wrap(err, "monzo: division by zero")
	}
	return TimeMonzo{
		TimeExponent:   a.TimeExponent.Sub(b.TimeExponent),
		PrimeExponents: exps,
		Residual:       residual,
	}, nil
}

// Inv returns 1/a.
func Inv(a TimeMonzo) (TimeMonzo, error) {
	return Div(Unity(len(a.PrimeExponents)), a)
}

// PowRational raises m to the rational power e. If e is an integer, or m's
// residual is 1 (i.e. m is already fully factored over its prime basis), the
// result stays an exact TimeMonzo. Otherwise the caller must attempt to
// factor the residual first (see FromBigRat) and, failing that, promote to
// TimeReal; PowRational itself never silently loses exactness; it returns an
// error when it cannot stay exact with the residual as given.
func PowRational(m TimeMonzo, e rational.Rational) (TimeMonzo, error) {
	if e.IsInt() {
		exps := make([]rational.Rational, len(m.PrimeExponents))
		n := e.Num().Int64()
		for i, x := range m.PrimeExponents {
			exps[i] = x.Mul(rational.FromInt(n))
		}
		residual, err := m.Residual.PowInt(n)
		if err != nil {
			return TimeMonzo{}, err
		}
		return TimeMonzo{
			TimeExponent:   m.TimeExponent.Mul(e),
			PrimeExponents: exps,
			Residual:       residual,
		}, nil
	}
	if !m.Residual.Equal(rational.One) {
		return TimeMonzo{}, errors.New("monzo: non-integer power of an unfactored residual requires factoring first")
	}
	exps := make([]rational.Rational, len(m.PrimeExponents))
	for i, x := range m.PrimeExponents {
		exps[i] = x.Mul(e)
	}
	return TimeMonzo{
		TimeExponent:   m.TimeExponent.Mul(e),
		PrimeExponents: exps,
		Residual:       rational.One,
	}, nil
}

// GCD returns the elementwise minimum of the two monzos' prime exponents
// (fractional exponents are allowed) and the integer gcd of their residuals.
func GCD(a, b TimeMonzo) TimeMonzo {
	n := maxLen(a.PrimeExponents, b.PrimeExponents)
	a, b = a.pad(n), b.pad(n)
	exps := make([]rational.Rational, n)
	for i := range exps {
		exps[i] = rational.Min(a.PrimeExponents[i], b.PrimeExponents[i])
	}
	return TimeMonzo{
		TimeExponent:   rational.Min(a.TimeExponent, b.TimeExponent),
		PrimeExponents: exps,
		Residual:       a.Residual.GCD(b.Residual),
	}
}

// LCM returns the elementwise maximum of the two monzos' prime exponents and
// the integer lcm of their residuals.
func LCM(a, b TimeMonzo) TimeMonzo {
	n := maxLen(a.PrimeExponents, b.PrimeExponents)
	a, b = a.pad(n), b.pad(n)
	exps := make([]rational.Rational, n)
	for i := range exps {
		exps[i] = rational.Max(a.PrimeExponents[i], b.PrimeExponents[i])
	}
	return TimeMonzo{
		TimeExponent:   rational.Max(a.TimeExponent, b.TimeExponent),
		PrimeExponents: exps,
		Residual:       a.Residual.LCM(b.Residual),
	}
}

// AsFraction returns the exact rational value of m, ignoring TimeExponent,
// provided every prime exponent is an integer; otherwise it returns an
// error (the quantity is not expressible as a plain fraction).
func (m TimeMonzo) AsFraction(primes []int64) (rational.Rational, error) {
	v := m.Residual
	for i, e := range m.PrimeExponents {
		if !e.IsInt() {
			return rational.Rational{}, errors.Errorf("monzo: prime exponent %d is not an integer", i)
		}
		if e.IsZero() || i >= len(primes) {
			continue
		}
		p := rational.FromInt(primes[i])
		pe, err := p.PowInt(e.Num().Int64())
		if err != nil {
			return rational.Rational{}, err
		}
		v = v.Mul(pe)
	}
	return v, nil
}

// TenneyHeight returns log(num*den) of m reduced to a fraction; it is a
// float approximation by definition (spec §4.1), computed even for monzos
// that are otherwise exact.
func (m TimeMonzo) TenneyHeight(primes []int64) float64 {
	f, err := m.AsFraction(primes)
	if err != nil {
		// Fall back to total cents based complexity measure when m isn't a
		// plain fraction; still informative, just less precise.
		return m.TotalCents()
	}
	num, _ := new(big.Float).SetInt(f.Num()).Float64()
	den, _ := new(big.Float).SetInt(f.Denom()).Float64()
	return math.Log(abs64(num) * abs64(den))
}

// TotalCents returns 1200*log2(value) for m.
func (m TimeMonzo) TotalCents() float64 {
	v := m.Float64()
	return 1200 * math.Log2(v)
}

// Float64 returns the float64 approximation of m's linear value (ignoring
// the time dimension).
func (m TimeMonzo) Float64() float64 {
	v, _ := m.Residual.Float64()
	for i, e := range m.PrimeExponents {
		if e.IsZero() {
			continue
		}
		ef, _ := e.Float64()
		v *= math.Pow(float64(primeAt(i)), ef)
	}
	return v
}

func primeAt(i int) int64 {
	if i < len(DefaultPrimes) {
		return DefaultPrimes[i]
	}
	return rational.Primes(i + 1)[i]
}

// Dot computes the dot product of m's prime exponents with the supplied
// coefficient vector (a Val's step-mapping coefficients), returning the
// tempered step count. coeffs shorter than m's basis are treated as
// zero-padded; any of m's components beyond len(coeffs) contribute nothing
// (they are the "tail components outside the val's basis" that survive as
// untempered residual cents at the Interval layer).
func (m TimeMonzo) Dot(coeffs []rational.Rational) rational.Rational {
	sum := rational.Zero
	for i, e := range m.PrimeExponents {
		if i >= len(coeffs) || e.IsZero() {
			continue
		}
		sum = sum.Add(e.Mul(coeffs[i]))
	}
	return sum
}

// AsEqualTemperament expresses m as a fraction of its equave, returning
// (equave, fractionOfEquave) such that m == equave^fractionOfEquave. It
// fails (returns an error) unless m has exactly one non-zero prime
// component (an NEDJI/EDO-shaped monzo).
func (m TimeMonzo) AsEqualTemperament(primes []int64) (equave rational.Rational, fraction rational.Rational, err error) {
	nonZero := -1
	for i, e := range m.PrimeExponents {
		if e.IsZero() {
			continue
		}
		if nonZero != -1 {
			return rational.Rational{}, rational.Rational{}, errors.New("monzo: not expressible as a single equal division")
		}
		nonZero = i
	}
	if nonZero == -1 || !m.Residual.Equal(rational.One) {
		return rational.Rational{}, rational.Rational{}, errors.New("monzo: not expressible as an equal temperament step")
	}
	if nonZero >= len(primes) {
		return rational.Rational{}, rational.Rational{}, errors.New("monzo: prime index out of basis")
	}
	return rational.FromInt(primes[nonZero]), m.PrimeExponents[nonZero], nil
}

func abs64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

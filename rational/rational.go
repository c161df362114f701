package rational

import (
	"math/big"

	"github.com/pkg/errors"
)

// Rational is an exact, arbitrary-precision fraction. The zero value is not
// meaningful; use Zero, One or a constructor.
type Rational struct {
	r *big.Rat
}

// New returns the exact fraction num/den. It panics if den is zero, matching
// big.Rat's own contract; callers that might divide by a runtime-computed
// zero should check with IsZero first.
func New(num, den int64) Rational {
	return Rational{r: big.NewRat(num, den)}
}

// FromInt returns the exact integer n as a Rational.
func FromInt(n int64) Rational {
	return Rational{r: big.NewRat(n, 1)}
}

// FromBigInt returns the exact integer n as a Rational.
func FromBigInt(n *big.Int) Rational {
	return Rational{r: new(big.Rat).SetInt(n)}
}

// FromFloat returns the closest Rational to f. Most callers that need
// exactness should prefer New/FromBigInt; this exists for the boundary where
// a TimeReal is demoted back to an exact approximation.
func FromFloat(f float64) (Rational, bool) {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return Rational{}, false
	}
	return Rational{r: r}, true
}

// Zero is the exact rational 0/1.
var Zero = FromInt(0)

// One is the exact rational 1/1.
var One = FromInt(1)

func (a Rational) bigRat() *big.Rat {
	if a.r == nil {
		return big.NewRat(0, 1)
	}
	return a.r
}

// Num returns the numerator in lowest terms.
func (a Rational) Num() *big.Int { return new(big.Int).Set(a.bigRat().Num()) }

// Denom returns the denominator in lowest terms (always positive).
func (a Rational) Denom() *big.Int { return new(big.Int).Set(a.bigRat().Denom()) }

// Add returns a + b.
func (a Rational) Add(b Rational) Rational {
	return Rational{r: new(big.Rat).Add(a.bigRat(), b.bigRat())}
}

// Sub returns a - b.
func (a Rational) Sub(b Rational) Rational {
	return Rational{r: new(big.Rat).Sub(a.bigRat(), b.bigRat())}
}

// Mul returns a * b.
func (a Rational) Mul(b Rational) Rational {
	return Rational{r: new(big.Rat).Mul(a.bigRat(), b.bigRat())}
}

// Quo returns a / b. Returns a plain "rational: division by zero" error if b
// is zero.
func (a Rational) Quo(b Rational) (Rational, error) {
	if b.IsZero() {
		return Rational{}, errors.New("rational: division by zero")
	}
	return Rational{r: new(big.Rat).Quo(a.bigRat(), b.bigRat())}, nil
}

// Neg returns -a.
func (a Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(a.bigRat())}
}

// Inv returns 1/a. Returns an error if a is zero.
func (a Rational) Inv() (Rational, error) {
	if a.IsZero() {
		return Rational{}, errors.New("rational: inverse of zero")
	}
	return Rational{r: new(big.Rat).Inv(a.bigRat())}, nil
}

// IsZero reports whether a is exactly 0.
func (a Rational) IsZero() bool { return a.bigRat().Sign() == 0 }

// Sign returns -1, 0 or 1 depending on the sign of a.
func (a Rational) Sign() int { return a.bigRat().Sign() }

// Cmp compares a and b, returning -1, 0 or +1.
func (a Rational) Cmp(b Rational) int { return a.bigRat().Cmp(b.bigRat()) }

// Equal reports whether a and b denote the same exact value.
func (a Rational) Equal(b Rational) bool { return a.Cmp(b) == 0 }

// IsInt reports whether a has denominator 1.
func (a Rational) IsInt() bool { return a.bigRat().IsInt() }

// Float64 returns the nearest float64 approximation of a and whether it is
// exact.
func (a Rational) Float64() (float64, bool) { return a.bigRat().Float64() }

// String renders a in "num/den" form, or "num" when the denominator is 1.
func (a Rational) String() string {
	if a.bigRat().IsInt() {
		return a.bigRat().Num().String()
	}
	return a.bigRat().RatString()
}

// PowInt raises a to the integer power n (n may be negative or zero).
// Returns an error if n < 0 and a is zero.
func (a Rational) PowInt(n int64) (Rational, error) {
	if n == 0 {
		return One, nil
	}
	neg := n < 0
	if neg {
		n = -n
	}
	if a.IsZero() && neg {
		return Rational{}, errors.New("rational: zero cannot be raised to a negative power")
	}
	numPow := new(big.Int).Exp(a.bigRat().Num(), big.NewInt(n), nil)
	denPow := new(big.Int).Exp(a.bigRat().Denom(), big.NewInt(n), nil)
	r := new(big.Rat).SetFrac(numPow, denPow)
	if neg {
		r.Inv(r)
	}
	return Rational{r: r}, nil
}

// GCD returns the elementwise-style gcd used by the numeric tower: for two
// non-negative integers it is the usual gcd; it is generalised to rationals
// by taking gcd(a.Num*b.Den, b.Num*a.Den) / (a.Den*b.Den), which agrees with
// the integer gcd when both operands are integers.
func (a Rational) GCD(b Rational) Rational {
	an, ad := a.bigRat().Num(), a.bigRat().Denom()
	bn, bd := b.bigRat().Num(), b.bigRat().Denom()
	crossA := new(big.Int).Mul(an, bd)
	crossB := new(big.Int).Mul(bn, ad)
	g := new(big.Int).GCD(nil, nil, abs(crossA), abs(crossB))
	den := new(big.Int).Mul(ad, bd)
	return Rational{r: new(big.Rat).SetFrac(g, den)}
}

// LCM returns a value l such that l = a*b/gcd(a,b), generalised to
// rationals the same way GCD is.
func (a Rational) LCM(b Rational) Rational {
	if a.IsZero() || b.IsZero() {
		return Zero
	}
	g := a.GCD(b)
	prod := a.Mul(b)
	// prod / g, g guaranteed non-zero here.
	res, _ := prod.Quo(g)
	return res
}

func abs(n *big.Int) *big.Int {
	if n.Sign() < 0 {
		return new(big.Int).Neg(n)
	}
	return n
}

// Min returns the smaller of a and b.
func Min(a, b Rational) Rational {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Rational) Rational {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

package value

import (
	"math"

	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
)

// Val is the covector dual to a monzo: it maps an interval to an integer
// number of equal-temperament steps (spec §3.1, §4.3).
type Val struct {
	Basis   ValBasis
	Coeffs  []rational.Rational // one coefficient per basis generator
	Equave  monzo.TimeMonzo     // the val's equave, usually 2/1
	Edivs   rational.Rational   // divisions of the equave (e.g. 12 for 12edo)
}

// Kind implements Value.
func (Val) Kind() Kind { return KindVal }

// PatentVal returns the patent (best rational rounding) val of edivs
// divisions of equave over basis.
func PatentVal(edivs int64, equave monzo.TimeMonzo, basis ValBasis) Val {
	coeffs := make([]rational.Rational, len(basis.Generators))
	equaveCents := equave.TotalCents()
	for i, g := range basis.Generators {
		steps := math.Round(float64(edivs) * g.TotalCents() / equaveCents)
		coeffs[i] = rational.FromInt(int64(steps))
	}
	return Val{Basis: basis, Coeffs: coeffs, Equave: equave, Edivs: rational.FromInt(edivs)}
}

// Dot computes v's mapping of interval iv: the dot product of iv's prime
// exponents with v's coefficients (spec §4.1 "dot").
func (v Val) Dot(iv monzo.TimeMonzo) rational.Rational {
	return iv.Dot(v.Coeffs)
}

// Temper maps iv through v, producing a logarithmic-domain Interval equal
// to (v·iv) steps, i.e. (v·iv) * (equave/edivs) in log-cents terms. Any
// part of iv outside v's basis survives untempered, folded in as residual
// cents added on top of the tempered steps (spec §4.3).
func Temper(v Val, iv Interval) (Interval, error) {
	m, ok := asMonzo(iv.Number)
	if !ok {
		return Interval{}, ErrIncompatibleBasis("(real-valued)")
	}
	steps := v.Dot(m)
	edivsF, _ := v.Edivs.Float64()
	stepsF, _ := steps.Float64()
	equaveCents := v.Equave.TotalCents()
	temperedCents := stepsF * equaveCents / edivsF

	// residual: the part of iv's value not spanned by v's basis.
	residualCents := 0.0
	for i, e := range m.PrimeExponents {
		if i >= len(v.Basis.Generators) && !e.IsZero() {
			ef, _ := e.Float64()
			residualCents += ef * primeCents(i)
		}
	}
	totalCents := temperedCents + residualCents
	out := Interval{
		Number:  monzo.TimeReal{TimeExponent: 0, Value: math.Pow(2, totalCents/1200)},
		Domain:  Logarithmic,
		Echelon: iv.Echelon,
		Steps:   int64(stepsF),
	}
	return out, nil
}

func primeCents(i int) float64 {
	return 1200 * math.Log2(float64(monzo.DefaultPrimes[i]))
}

// PrimeMapping returns a closure that re-maps any interval's prime
// factorization through the supplied replacement cent values for a prefix
// of primes, leaving primes beyond the prefix untouched (spec §4.3). This
// is how tempering edits (e.g. "use this many cents for the 5th harmonic
// instead of its just value") are expressed without rebuilding a full Val.
func PrimeMapping(replacementCents []float64) func(Interval) Interval {
	repl := append([]float64(nil), replacementCents...)
	return func(iv Interval) Interval {
		m, ok := asMonzo(iv.Number)
		if !ok {
			return iv
		}
		cents := 0.0
		for i, e := range m.PrimeExponents {
			if e.IsZero() {
				continue
			}
			ef, _ := e.Float64()
			if i < len(repl) {
				cents += ef * repl[i]
			} else {
				cents += ef * primeCents(i)
			}
		}
		numF, _ := m.Residual.Float64()
		if numF != 1 {
			cents += 1200 * math.Log2(numF)
		}
		return Interval{
			Number:  monzo.TimeReal{TimeExponent: 0, Value: math.Pow(2, cents/1200)},
			Domain:  Logarithmic,
			Echelon: iv.Echelon,
			Steps:   iv.Steps,
		}
	}
}

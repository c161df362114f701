package value

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
)

// ValBasis is an ordered, independent set of TimeMonzos spanning a subgroup
// of Just Intonation (spec §3.1), e.g. the prime-limit basis 2.3.5 or an
// arbitrary subgroup like 2.3.7/5.
type ValBasis struct {
	Generators []monzo.TimeMonzo
}

// Kind implements Value.
func (ValBasis) Kind() Kind { return KindValBasis }

// PrimeLimitBasis returns the basis 2.3.5...p(n) using the first n primes.
func PrimeLimitBasis(n int) ValBasis {
	gens := make([]monzo.TimeMonzo, n)
	for i := 0; i < n; i++ {
		gens[i] = primeMonzo(i, n)
	}
	return ValBasis{Generators: gens}
}

// primeMonzo returns the monzo for the i-th prime within an n-component
// basis (exponent 1 at position i, 0 elsewhere).
func primeMonzo(i, n int) monzo.TimeMonzo {
	u := monzo.Unity(n)
	u.PrimeExponents[i] = rational.One
	return u
}

// Contains reports whether m's non-zero prime components all lie within
// the span covered by the first len(b.Generators) primes; used to check
// Val/Interval compatibility (spec §3.2).
func (b ValBasis) Contains(m monzo.TimeMonzo) bool {
	for i, e := range m.PrimeExponents {
		if i >= len(b.Generators) && !e.IsZero() {
			return false
		}
	}
	return true
}

// Size returns the number of generators (the subgroup's rank).
func (b ValBasis) Size() int { return len(b.Generators) }

// ErrIncompatibleBasis is returned when an Interval's prime basis is not
// contained in a Val's basis.
func ErrIncompatibleBasis(intervalDesc string) error {
	return sweerr.NewTypeError("interval %s uses primes outside this val's basis", intervalDesc)
}

package monzo

import "math"

// TimeReal is the lossy float64 fallback used whenever an exact TimeMonzo
// cannot represent a value: irrational roots, transcendental functions, or
// a residual too large to factor within budget (spec §4.1 "Promotion to
// TimeReal"). Once a quantity is a TimeReal, every further operation on it
// stays a TimeReal — there is no promotion back to TimeMonzo.
type TimeReal struct {
	TimeExponent float64
	Value        float64
}

func (TimeReal) numberMarker() {}

// IsReal always reports true for TimeReal.
func (TimeReal) IsReal() bool { return true }

// TotalCents returns 1200*log2(value).
func (r TimeReal) TotalCents() float64 { return 1200 * math.Log2(r.Value) }

// FromMonzo demotes an exact TimeMonzo to its lossy float64 equivalent.
func FromMonzo(m TimeMonzo) TimeReal {
	te, _ := m.TimeExponent.Float64()
	return TimeReal{TimeExponent: te, Value: m.Float64()}
}

// MulReal returns a*b for two TimeReals.
func MulReal(a, b TimeReal) TimeReal {
	return TimeReal{TimeExponent: a.TimeExponent + b.TimeExponent, Value: a.Value * b.Value}
}

// DivReal returns a/b for two TimeReals.
func DivReal(a, b TimeReal) TimeReal {
	return TimeReal{TimeExponent: a.TimeExponent - b.TimeExponent, Value: a.Value / b.Value}
}

// PowReal raises a to the (possibly irrational) power e.
func PowReal(a TimeReal, e float64) TimeReal {
	return TimeReal{TimeExponent: a.TimeExponent * e, Value: math.Pow(a.Value, e)}
}

// AddLinear returns a+b interpreted as a linear-domain addition (valid only
// when both sides have compatible dimensions; dimension compatibility is
// enforced by the value package, which owns domain/echelon tagging).
func AddLinear(a, b TimeReal) TimeReal {
	return TimeReal{TimeExponent: a.TimeExponent, Value: a.Value + b.Value}
}

// SubLinear returns a-b interpreted as a linear-domain subtraction.
func SubLinear(a, b TimeReal) TimeReal {
	return TimeReal{TimeExponent: a.TimeExponent, Value: a.Value - b.Value}
}

package value

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
)

// Domain selects which arithmetic laws apply to an Interval's + and -
// operators: in the logarithmic domain they stack/unstack ratios
// (multiply/divide the underlying value); in the linear domain they add
// and subtract it as a plain real quantity (spec §4.2, glossary).
type Domain int

const (
	Linear Domain = iota
	Logarithmic
)

func (d Domain) String() string {
	if d == Logarithmic {
		return "logarithmic"
	}
	return "linear"
}

// Echelon distinguishes a dimensionless ratio (Relative) from a concrete
// pitch or duration (Absolute).
type Echelon int

const (
	Relative Echelon = iota
	Absolute
)

func (e Echelon) String() string {
	if e == Absolute {
		return "absolute"
	}
	return "relative"
}

// Budget is the minimal interface Interval arithmetic needs from its
// caller: a prime basis to factor residuals against, and a gas meter to
// charge for the trial divisions spent doing so. rootctx.RootContext
// satisfies this structurally; the value package does not import rootctx.
type Budget interface {
	Primes() []int64
	Spend(n int64) error
	Remaining() int64
}

// Interval is a tagged musical quantity: a monzo.Number together with its
// domain, echelon, edostep count, formatting hint and metadata (spec §3.1).
type Interval struct {
	Number      monzo.Number
	Domain      Domain
	Echelon     Echelon
	Steps       int64
	Node        Node
	TheColor    Color
	Label       string
	TrackingIDs []string
}

// Kind implements Value.
func (Interval) Kind() Kind { return KindInterval }

// FromMonzo builds a relative, linear-domain Interval from an exact
// TimeMonzo.
func FromMonzo(m monzo.TimeMonzo) Interval {
	return Interval{Number: m, Domain: Linear, Echelon: Relative}
}

// FromReal builds a relative, linear-domain Interval from a TimeReal.
func FromReal(r monzo.TimeReal) Interval {
	return Interval{Number: r, Domain: Linear, Echelon: Relative}
}

// Clone returns a shallow copy of iv; per spec §3.3, intervals are
// immutable except for tracking-ids and the formatting node, both of which
// a clone is free to mutate independently of the original.
func (iv Interval) Clone() Interval {
	cp := iv
	cp.TrackingIDs = append([]string(nil), iv.TrackingIDs...)
	return cp
}

// WithTrackingID returns a clone of iv with id appended to its tracking-ids
// (spec §4.4 track()).
func (iv Interval) WithTrackingID(id string) Interval {
	cp := iv.Clone()
	cp.TrackingIDs = append(cp.TrackingIDs, id)
	return cp
}

func asMonzo(n monzo.Number) (monzo.TimeMonzo, bool) {
	m, ok := n.(monzo.TimeMonzo)
	return m, ok
}

func asReal(n monzo.Number) monzo.TimeReal {
	if r, ok := n.(monzo.TimeReal); ok {
		return r
	}
	return monzo.FromMonzo(n.(monzo.TimeMonzo))
}

// sameDomain checks that a and b agree on domain, returning a
// DomainError naming op if they don't. Tilde ("coercing") variants are
// implemented by the eval layer: it retags one operand's Domain to match
// the other before calling these functions, rather than duplicating the
// arithmetic here.
func sameDomain(op string, a, b Interval) error {
	if a.Domain != b.Domain {
		return sweerr.NewDomainError("cannot %s a %s interval with a %s interval without coercion (use a tilde operator)", op, a.Domain, b.Domain)
	}
	return nil
}

// mulNumbers multiplies two Numbers, staying exact when both are TimeMonzo.
func mulNumbers(a, b monzo.Number) monzo.Number {
	am, aok := asMonzo(a)
	bm, bok := asMonzo(b)
	if aok && bok {
		return monzo.Mul(am, bm)
	}
	return monzo.MulReal(asReal(a), asReal(b))
}

// divNumbers divides two Numbers, staying exact when both are TimeMonzo.
func divNumbers(a, b monzo.Number) (monzo.Number, error) {
	am, aok := asMonzo(a)
	bm, bok := asMonzo(b)
	if aok && bok {
		m, err := monzo.Div(am, bm)
		if err != nil {
			return nil, sweerr.NewValueError("%s", err)
		}
		return m, nil
	}
	rb := asReal(b)
	if rb.Value == 0 {
		return nil, sweerr.NewValueError("division by zero")
	}
	return monzo.DivReal(asReal(a), rb), nil
}

// mulEchelon computes the echelon of a*b or a/b: Relative composed with
// anything returns the other side's echelon (a relative interval
// transposes an absolute pitch); Absolute*Absolute is rejected outright
// (only division of two absolutes collapses back to Relative, handled by
// the caller); op names the operator for the error message.
func mulEchelon(op string, a, b Interval) (Echelon, error) {
	switch {
	case a.Echelon == Relative && b.Echelon == Relative:
		return Relative, nil
	case a.Echelon == Absolute && b.Echelon == Relative:
		return Absolute, nil
	case a.Echelon == Relative && b.Echelon == Absolute:
		return Absolute, nil
	default:
		return 0, sweerr.NewEchelonError("cannot %s two absolute quantities", op)
	}
}

// Mul implements linear *, which is domain-invariant: ratios always
// compose by multiplying their underlying value regardless of the Domain
// tag, so Mul does not require the operands to share a domain.
func Mul(a, b Interval) (Interval, error) {
	echelon, err := mulEchelon("multiply", a, b)
	if err != nil {
		return Interval{}, err
	}
	out := Interval{
		Number:  mulNumbers(a.Number, b.Number),
		Domain:  a.Domain,
		Echelon: echelon,
		Steps:   a.Steps + b.Steps,
	}
	out.TrackingIDs = mergeTrackingIDs(a, b)
	return out, nil
}

// Div implements linear /, domain-invariant like Mul. Dividing two
// absolute quantities (frequency / frequency) collapses to Relative,
// matching "a frequency divided by a frequency is relative" (spec §4.2).
func Div(a, b Interval) (Interval, error) {
	var echelon Echelon
	switch {
	case a.Echelon == Relative && b.Echelon == Relative:
		echelon = Relative
	case a.Echelon == Absolute && b.Echelon == Relative:
		echelon = Absolute
	case a.Echelon == Absolute && b.Echelon == Absolute:
		echelon = Relative
	default:
		return Interval{}, sweerr.NewEchelonError("cannot divide a relative quantity by an absolute one")
	}
	n, err := divNumbers(a.Number, b.Number)
	if err != nil {
		return Interval{}, err
	}
	out := Interval{
		Number:  n,
		Domain:  a.Domain,
		Echelon: echelon,
		Steps:   a.Steps - b.Steps,
	}
	out.TrackingIDs = mergeTrackingIDs(a, b)
	return out, nil
}

// Add implements +. In the logarithmic domain it stacks intervals
// (multiplies the underlying value, adds step counts); in the linear
// domain it adds the underlying value as a plain real/rational quantity.
// Both operands must share a domain; use the eval layer's tilde-coercing
// wrapper to mix them.
func Add(b Budget, a, x Interval) (Interval, error) {
	if err := sameDomain("add", a, x); err != nil {
		return Interval{}, err
	}
	if a.Echelon == Absolute && x.Echelon == Absolute && a.Domain == Linear {
		// frequency + frequency is dimensionally fine; keep Absolute.
	} else if a.Echelon != x.Echelon {
		return Interval{}, sweerr.NewEchelonError("cannot add a relative quantity to an absolute one")
	}
	if a.Domain == Logarithmic {
		out := Interval{Number: mulNumbers(a.Number, x.Number), Domain: Logarithmic, Echelon: a.Echelon, Steps: a.Steps + x.Steps}
		out.TrackingIDs = mergeTrackingIDs(a, x)
		return out, nil
	}
	n, err := addLinear(b, a.Number, x.Number)
	if err != nil {
		return Interval{}, err
	}
	out := Interval{Number: n, Domain: Linear, Echelon: a.Echelon}
	out.TrackingIDs = mergeTrackingIDs(a, x)
	return out, nil
}

// Sub implements - symmetrically to Add: log domain divides, linear domain
// subtracts.
func Sub(b Budget, a, x Interval) (Interval, error) {
	if err := sameDomain("subtract", a, x); err != nil {
		return Interval{}, err
	}
	if a.Domain == Logarithmic {
		n, err := divNumbers(a.Number, x.Number)
		if err != nil {
			return Interval{}, err
		}
		echelon := Relative
		if a.Echelon == Absolute && x.Echelon == Relative {
			echelon = Absolute
		} else if a.Echelon != x.Echelon && !(a.Echelon == Absolute && x.Echelon == Absolute) {
			return Interval{}, sweerr.NewEchelonError("cannot subtract an absolute quantity from a relative one")
		}
		out := Interval{Number: n, Domain: Logarithmic, Echelon: echelon, Steps: a.Steps - x.Steps}
		out.TrackingIDs = mergeTrackingIDs(a, x)
		return out, nil
	}
	if a.Echelon != x.Echelon && !(a.Echelon == Absolute && x.Echelon == Absolute) {
		return Interval{}, sweerr.NewEchelonError("cannot subtract a relative quantity from an absolute one, or vice versa")
	}
	echelon := a.Echelon
	if a.Echelon == Absolute && x.Echelon == Absolute {
		echelon = Relative
	}
	n, err := subLinear(b, a.Number, x.Number)
	if err != nil {
		return Interval{}, err
	}
	out := Interval{Number: n, Domain: Linear, Echelon: echelon}
	out.TrackingIDs = mergeTrackingIDs(a, x)
	return out, nil
}

// addLinear adds two Numbers as plain quantities, staying exact (via exact
// fraction reduction and re-factoring against budget's primes) when both
// operands are TimeMonzo and budget allows it; otherwise it demotes to
// TimeReal.
func addLinear(b Budget, x, y monzo.Number) (monzo.Number, error) {
	xm, xok := asMonzo(x)
	ym, yok := asMonzo(y)
	if xok && yok {
		if n, ok, err := exactAdd(b, xm, ym, false); err != nil {
			return nil, err
		} else if ok {
			return n, nil
		}
	}
	return monzo.AddLinear(asReal(x), asReal(y)), nil
}

func subLinear(b Budget, x, y monzo.Number) (monzo.Number, error) {
	xm, xok := asMonzo(x)
	ym, yok := asMonzo(y)
	if xok && yok {
		if n, ok, err := exactAdd(b, xm, ym, true); err != nil {
			return nil, err
		} else if ok {
			return n, nil
		}
	}
	return monzo.SubLinear(asReal(x), asReal(y)), nil
}

// exactAdd attempts an exact rational sum (or difference) of two monzos by
// reducing both to fractions and re-factoring the result against the
// budget's prime basis. ok is false (with no error) when either operand
// isn't a plain fraction, signalling the caller to fall back to TimeReal.
func exactAdd(b Budget, x, y monzo.TimeMonzo, negate bool) (monzo.Number, bool, error) {
	xf, err := x.AsFraction(b.Primes())
	if err != nil {
		return nil, false, nil
	}
	yf, err := y.AsFraction(b.Primes())
	if err != nil {
		return nil, false, nil
	}
	if negate {
		yf = yf.Neg()
	}
	sum := xf.Add(yf)
	if err := b.Spend(1); err != nil {
		return nil, false, err
	}
	m, trials := monzo.FromBigRat(sum.Num(), sum.Denom(), b.Primes(), int(b.Remaining()), x.TimeExponent)
	if err := b.Spend(int64(trials)); err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// Pow raises a to the rational power e. In the logarithmic domain this is
// the usual "stack n copies of the interval" operation — note that for a
// logarithmic-domain Interval, Pow and (linear-domain) Mul-by-scalar
// coincide numerically, since scaling a stacked interval by n is the same
// operation as raising its underlying ratio to the n-th power.
func Pow(b Budget, a Interval, e rational.Rational) (Interval, error) {
	m, ok := asMonzo(a.Number)
	if !ok {
		r := asReal(a.Number)
		ef, _ := e.Float64()
		return Interval{Number: monzo.PowReal(r, ef), Domain: a.Domain, Echelon: a.Echelon}, nil
	}
	p, err := monzo.PowRational(m, e)
	if err != nil {
		// try factoring the residual first against the remaining budget.
		f, ferr := m.AsFraction(b.Primes())
		if ferr == nil {
			if err := b.Spend(1); err != nil {
				return Interval{}, err
			}
			refactored, trials := monzo.FromBigRat(f.Num(), f.Denom(), b.Primes(), int(b.Remaining()), m.TimeExponent)
			if err := b.Spend(int64(trials)); err != nil {
				return Interval{}, err
			}
			p, err = monzo.PowRational(refactored, e)
		}
		if err != nil {
			ef, _ := e.Float64()
			p2 := monzo.PowReal(monzo.FromMonzo(m), ef)
			return Interval{Number: p2, Domain: a.Domain, Echelon: a.Echelon}, nil
		}
	}
	stepsF, _ := e.Float64()
	out := Interval{Number: p, Domain: a.Domain, Echelon: a.Echelon, Steps: int64(float64(a.Steps) * stepsF)}
	out.TrackingIDs = append([]string(nil), a.TrackingIDs...)
	return out, nil
}

// Neg returns -a in the linear sense (additive inverse); it is only
// meaningful for the linear domain; callers in the logarithmic domain
// should use reciprocal (1/a, i.e. Div) instead.
func Neg(a Interval) Interval {
	m, ok := asMonzo(a.Number)
	if ok {
		neg := m
		neg.Residual = m.Residual.Neg()
		return Interval{Number: neg, Domain: a.Domain, Echelon: a.Echelon, Steps: a.Steps}
	}
	r := asReal(a.Number)
	return Interval{Number: monzo.TimeReal{TimeExponent: r.TimeExponent, Value: -r.Value}, Domain: a.Domain, Echelon: a.Echelon}
}

// Compare orders two same-echelon intervals by underlying linear value:
// -1, 0, +1. Comparing across echelons is the eval layer's job (it must
// relative-ise both sides first using the RootContext's unison frequency,
// spec §4.2 "Comparison is always done after relative-ising both operands").
func Compare(a, x Interval) (int, error) {
	if a.Echelon != x.Echelon {
		return 0, sweerr.NewEchelonError("cannot compare a relative interval with an absolute one directly")
	}
	am, aok := asMonzo(a.Number)
	xm, xok := asMonzo(x.Number)
	if aok && xok {
		af, aerr := am.AsFraction(monzo.DefaultPrimes)
		xf, xerr := xm.AsFraction(monzo.DefaultPrimes)
		if aerr == nil && xerr == nil {
			return af.Cmp(xf), nil
		}
	}
	av, xv := asReal(a.Number).Value, asReal(x.Number).Value
	switch {
	case av < xv:
		return -1, nil
	case av > xv:
		return 1, nil
	default:
		return 0, nil
	}
}

func mergeTrackingIDs(a, x Interval) []string {
	if len(a.TrackingIDs) == 0 && len(x.TrackingIDs) == 0 {
		return nil
	}
	ids := append([]string(nil), a.TrackingIDs...)
	return append(ids, x.TrackingIDs...)
}

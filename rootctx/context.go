package rootctx

import (
	"github.com/pkg/errors"

	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

// defaultNumComponents is the length of the prime-exponent vector new
// TimeMonzos are built with unless WithNumComponents overrides it (spec
// §4.1 "Configurable N").
const defaultNumComponents = 23

// RootContext holds the process-wide-per-evaluation state shared by every
// Scope created during a single evaluation (spec §3.1, §4.4).
type RootContext struct {
	Title string

	c4              monzo.TimeMonzo
	unisonFrequency *monzo.TimeMonzo // nil until set

	up, lift     value.Interval
	inflectionGen int

	gas int64

	tracker Tracker

	mos MOSConfig

	numComponents int
	primes        []int64

	warn func(string)
}

// Option configures a RootContext at construction time, mirroring
// vm.Option's functional-options pattern.
type Option func(*RootContext) error

// New creates a RootContext with C4 = 1/1 (a relative unison, until
// WithUnisonFrequency or a pitch declaration sets an absolute reference),
// unlimited gas, and the default prime-component count.
func New(opts ...Option) (*RootContext, error) {
	c := &RootContext{
		numComponents: defaultNumComponents,
		gas:           unlimitedGas,
	}
	c.primes = monzo.DefaultPrimes[:min(defaultNumComponents, len(monzo.DefaultPrimes))]
	c.c4 = monzo.Unity(c.numComponents)
	c.up = value.Interval{Number: monzo.Unity(c.numComponents), Domain: value.Logarithmic, Echelon: value.Relative}
	c.lift = value.Interval{Number: monzo.Unity(c.numComponents), Domain: value.Logarithmic, Echelon: value.Relative}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithGas sets the initial gas budget. A negative value means unlimited.
func WithGas(n int64) Option {
	return func(c *RootContext) error { c.SetGas(n); return nil }
}

// WithNumComponents sets the prime-exponent vector length new TimeMonzos
// are constructed with.
func WithNumComponents(n int) Option {
	return func(c *RootContext) error {
		if n <= 0 {
			return errors.New("rootctx: numComponents must be positive")
		}
		c.numComponents = n
		if n <= len(monzo.DefaultPrimes) {
			c.primes = monzo.DefaultPrimes[:n]
		} else {
			c.primes = rational.Primes(n)
		}
		c.c4 = c.c4.WithComponents(n, c.primes)
		return nil
	}
}

// WithUnisonFrequency sets the absolute frequency corresponding to the
// relative unison 1/1.
func WithUnisonFrequency(freq monzo.TimeMonzo) Option {
	return func(c *RootContext) error { c.unisonFrequency = &freq; return nil }
}

// WithWarn installs the host's warn() hook, the re-hookable builtin that
// PRELUDE_VOLATILES exposes (spec §4.7).
func WithWarn(fn func(string)) Option {
	return func(c *RootContext) error { c.warn = fn; return nil }
}

// Warn calls the host-installed warn hook, if any.
func (c *RootContext) Warn(msg string) {
	if c.warn != nil {
		c.warn(msg)
	}
}

// Primes returns the prime basis new TimeMonzos are factored against.
// Implements value.Budget.
func (c *RootContext) Primes() []int64 { return c.primes }

// NumComponents returns the configured prime-exponent vector length.
func (c *RootContext) NumComponents() int { return c.numComponents }

// C4 returns the reference absolute pitch.
func (c *RootContext) C4() monzo.TimeMonzo { return c.c4 }

// SetC4 redefines the reference absolute pitch (a `C4 = ...` pitch
// declaration).
func (c *RootContext) SetC4(m monzo.TimeMonzo) { c.c4 = m }

// UnisonFrequency returns the absolute frequency of the relative unison and
// whether it has been set.
func (c *RootContext) UnisonFrequency() (monzo.TimeMonzo, bool) {
	if c.unisonFrequency == nil {
		return monzo.TimeMonzo{}, false
	}
	return *c.unisonFrequency, true
}

// Relative converts an absolute Interval to a relative one by dividing out
// the unison frequency. Fails with an EchelonError if no unison frequency
// has been set (spec §3.2).
func (c *RootContext) Relative(iv value.Interval) (value.Interval, error) {
	if iv.Echelon == value.Relative {
		return iv, nil
	}
	uf, ok := c.UnisonFrequency()
	if !ok {
		return value.Interval{}, sweerr.NewEchelonError("cannot convert to relative: unison frequency is not set")
	}
	out, err := value.Div(iv, value.FromMonzo(uf))
	if err != nil {
		return value.Interval{}, err
	}
	out.Echelon = value.Relative
	out.Domain = iv.Domain
	out.Node = iv.Node
	return out, nil
}

// Absolute converts a relative Interval to an absolute one by multiplying
// in the unison frequency. Fails with an EchelonError if no unison
// frequency has been set.
func (c *RootContext) Absolute(iv value.Interval) (value.Interval, error) {
	if iv.Echelon == value.Absolute {
		return iv, nil
	}
	uf, ok := c.UnisonFrequency()
	if !ok {
		return value.Interval{}, sweerr.NewEchelonError("cannot convert to absolute: unison frequency is not set")
	}
	out, err := value.Mul(iv, value.FromMonzo(uf))
	if err != nil {
		return value.Interval{}, err
	}
	out.Echelon = value.Absolute
	out.Domain = iv.Domain
	out.Node = iv.Node
	return out, nil
}

// Compare orders two Intervals, relative-ising both first when their
// echelons differ (spec §4.2 "Comparison is always done after
// relative-ising both operands").
func (c *RootContext) Compare(a, b value.Interval) (int, error) {
	if a.Echelon != b.Echelon {
		ra, err := c.Relative(a)
		if err != nil {
			return 0, err
		}
		rb, err := c.Relative(b)
		if err != nil {
			return 0, err
		}
		return value.Compare(ra, rb)
	}
	return value.Compare(a, b)
}

// Up returns the current `^` inflection definition.
func (c *RootContext) Up() value.Interval { return c.up }

// Lift returns the current `/` inflection definition.
func (c *RootContext) Lift() value.Interval { return c.lift }

// RedefineUp redefines the `^` inflection (an `^ = ...` statement) and bumps
// the inflection generation counter. Per spec §9's recommended cleaner
// design, already-constructed intervals are not touched in place; each
// Interval's Node instead carries the generation it was built under
// (InflectionGeneration), so a downstream formatter can tell whether an
// interval's printed form should follow the current or a frozen inflection
// definition just by comparing that stamp to Generation().
func (c *RootContext) RedefineUp(iv value.Interval) {
	c.up = iv
	c.inflectionGen++
}

// RedefineLift redefines the `/` inflection, symmetric to RedefineUp.
func (c *RootContext) RedefineLift(iv value.Interval) {
	c.lift = iv
	c.inflectionGen++
}

// Generation returns the current inflection-redefinition generation,
// bumped every time Up or Lift is redefined.
func (c *RootContext) Generation() int { return c.inflectionGen }

// MOS returns the current Moment-Of-Symmetry scale configuration.
func (c *RootContext) MOS() MOSConfig { return c.mos }

// SetMOS installs a new MOS configuration.
func (c *RootContext) SetMOS(m MOSConfig) { c.mos = m }

// Track stamps a new tracking id onto a clone of iv (the `track(x)`
// builtin, spec §4.4).
func (c *RootContext) Track(iv value.Interval) value.Interval {
	return iv.WithTrackingID(c.tracker.Next())
}

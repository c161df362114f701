package rootctx

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
)

// MOSConfig describes the Moment-Of-Symmetry scale pattern a MOSLiteral
// (e.g. `P5ms`) resolves its nominal against: a generator and period
// monzo, and the large/small step counts of the two-step pattern (spec
// glossary "MOS").
type MOSConfig struct {
	Period       monzo.TimeMonzo
	Generator    monzo.TimeMonzo
	CountLarge   int
	CountSmall   int
	LargeSize    monzo.TimeMonzo
	SmallSize    monzo.TimeMonzo
	hasGenerator bool
}

// DefaultMOSConfig is the zero-value configuration: an empty pattern, used
// until a `mosConfig` is installed. Resolving a nominal against it always
// fails with a ValueError.
var DefaultMOSConfig = MOSConfig{}

// Resolve computes the interval above the period's identity that the
// degree-th large/small step pattern position corresponds to, by stacking
// large steps first then small steps up to degree (a straightforward MOS
// generator-chain approximation — spec leaves the exact nominal-to-step
// mapping to "MOS nominal resolution" without pinning an algorithm).
func (m MOSConfig) Resolve(degree int) (monzo.TimeMonzo, error) {
	if !m.hasGenerator && m.CountLarge == 0 && m.CountSmall == 0 {
		return monzo.TimeMonzo{}, sweerr.NewValueError("no MOS configuration installed: cannot resolve nominal")
	}
	total := m.CountLarge + m.CountSmall
	if total == 0 {
		return monzo.TimeMonzo{}, sweerr.NewValueError("MOS configuration has no steps")
	}
	pos := ((degree % total) + total) % total
	acc := monzo.Unity(len(m.Period.PrimeExponents))
	for i := 0; i < pos; i++ {
		if i%total < m.CountLarge {
			acc = monzo.Mul(acc, m.LargeSize)
		} else {
			acc = monzo.Mul(acc, m.SmallSize)
		}
	}
	periods := degree / total
	if periods != 0 {
		p, err := monzo.PowRational(m.Period, rational.FromInt(int64(periods)))
		if err != nil {
			return monzo.TimeMonzo{}, err
		}
		acc = monzo.Mul(acc, p)
	}
	return acc, nil
}

// WithMOSGenerator reports a generator-bearing configuration (used by
// callers distinguishing "no config" from "config without an explicit
// generator").
func (m MOSConfig) WithMOSGenerator(gen monzo.TimeMonzo) MOSConfig {
	m.Generator = gen
	m.hasGenerator = true
	return m
}

package rootctx

import (
	"math"
	"math/big"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// snapshot is the on-the-wire shape of a RootContext (spec §6.4): every
// pitch-valued field is stored as a fraction (or, failing exactness, a
// cents float) rather than as a raw PrimeExponents vector, so a persisted
// context survives a change to numComponents.
type snapshot struct {
	Title           string          `json:"title,omitempty"`
	UnisonFrequency *pitchDTO       `json:"unisonFrequency,omitempty"`
	C4              pitchDTO        `json:"C4"`
	Up              pitchDTO        `json:"up"`
	Lift            pitchDTO        `json:"lift"`
	Gas             *int64          `json:"gas,omitempty"`
	TrackingIndex   int64           `json:"trackingIndex"`
	MOSConfig       *mosConfigDTO   `json:"mosConfig,omitempty"`
}

type pitchDTO struct {
	Num   int64   `json:"num,omitempty"`
	Den   int64   `json:"den,omitempty"`
	Cents float64 `json:"cents,omitempty"`
	Exact bool    `json:"exact"`
}

type mosConfigDTO struct {
	CountLarge int      `json:"countLarge"`
	CountSmall int      `json:"countSmall"`
	Large      pitchDTO `json:"large"`
	Small      pitchDTO `json:"small"`
	Period     pitchDTO `json:"period"`
}

func toPitchDTO(m monzo.TimeMonzo) pitchDTO {
	if f, err := m.AsFraction(monzo.DefaultPrimes); err == nil && f.Denom().IsInt64() && f.Num().IsInt64() {
		return pitchDTO{Num: f.Num().Int64(), Den: f.Denom().Int64(), Exact: true}
	}
	return pitchDTO{Cents: m.TotalCents()}
}

func fromPitchDTO(d pitchDTO, numComponents int, primes []int64) (monzo.TimeMonzo, error) {
	if d.Exact {
		den := d.Den
		if den == 0 {
			den = 1
		}
		m, _ := monzo.FromBigRat(big.NewInt(d.Num), big.NewInt(den), primes, 1<<20, rational.Zero)
		return m.WithComponents(numComponents, primes), nil
	}
	// cents-only fallback: reconstruct an approximate rational from the
	// ratio 2^(cents/1200) and factor that, since a persisted context never
	// stores a lossy TimeReal directly.
	ratio := math.Pow(2, d.Cents/1200)
	r := new(big.Rat).SetFloat64(ratio)
	if r == nil {
		r = big.NewRat(1, 1)
	}
	m, _ := monzo.FromBigRat(r.Num(), r.Denom(), primes, 1<<20, rational.Zero)
	return m.WithComponents(numComponents, primes), nil
}

// Marshal serialises c into its persisted JSON form (spec §6.4).
func (c *RootContext) Marshal() ([]byte, error) {
	snap := snapshot{
		Title:         c.Title,
		C4:            toPitchDTO(c.c4),
		Up:            toPitchDTO(mustMonzo(c.up.Number)),
		Lift:          toPitchDTO(mustMonzo(c.lift.Number)),
		TrackingIndex: c.tracker.next,
	}
	if c.unisonFrequency != nil {
		d := toPitchDTO(*c.unisonFrequency)
		snap.UnisonFrequency = &d
	}
	if c.gas != unlimitedGas {
		g := c.gas
		snap.Gas = &g
	}
	if c.mos.CountLarge != 0 || c.mos.CountSmall != 0 {
		snap.MOSConfig = &mosConfigDTO{
			CountLarge: c.mos.CountLarge,
			CountSmall: c.mos.CountSmall,
			Large:      toPitchDTO(c.mos.LargeSize),
			Small:      toPitchDTO(c.mos.SmallSize),
			Period:     toPitchDTO(c.mos.Period),
		}
	}
	return json.Marshal(snap)
}

// Unmarshal restores a RootContext previously produced by Marshal. Per spec
// §6.4, a persisted context with no "gas" key rehydrates to unlimited gas,
// not zero.
func Unmarshal(data []byte, opts ...Option) (*RootContext, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "rootctx: unmarshal")
	}
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	c.Title = snap.Title
	c4, err := fromPitchDTO(snap.C4, c.numComponents, c.primes)
	if err != nil {
		return nil, err
	}
	c.c4 = c4
	up, err := fromPitchDTO(snap.Up, c.numComponents, c.primes)
	if err != nil {
		return nil, err
	}
	c.up.Number = up
	lift, err := fromPitchDTO(snap.Lift, c.numComponents, c.primes)
	if err != nil {
		return nil, err
	}
	c.lift.Number = lift
	if snap.UnisonFrequency != nil {
		uf, err := fromPitchDTO(*snap.UnisonFrequency, c.numComponents, c.primes)
		if err != nil {
			return nil, err
		}
		c.unisonFrequency = &uf
	}
	if snap.Gas != nil {
		c.SetGas(*snap.Gas)
	} else {
		c.SetGas(-1)
	}
	c.tracker.next = snap.TrackingIndex
	if snap.MOSConfig != nil {
		large, err := fromPitchDTO(snap.MOSConfig.Large, c.numComponents, c.primes)
		if err != nil {
			return nil, err
		}
		small, err := fromPitchDTO(snap.MOSConfig.Small, c.numComponents, c.primes)
		if err != nil {
			return nil, err
		}
		period, err := fromPitchDTO(snap.MOSConfig.Period, c.numComponents, c.primes)
		if err != nil {
			return nil, err
		}
		c.mos = MOSConfig{
			CountLarge: snap.MOSConfig.CountLarge,
			CountSmall: snap.MOSConfig.CountSmall,
			LargeSize:  large,
			SmallSize:  small,
			Period:     period,
		}
	}
	return c, nil
}

func mustMonzo(n monzo.Number) monzo.TimeMonzo {
	if m, ok := n.(monzo.TimeMonzo); ok {
		return m
	}
	return monzo.Unity(0)
}

package prelude

import (
	"math"
	"math/big"
	"sort"

	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

func floatOf(iv value.Interval) float64 {
	if m, ok := iv.Number.(monzo.TimeMonzo); ok {
		return m.Float64()
	}
	return iv.Number.(monzo.TimeReal).Value
}

func intervalArg(args []value.Value, i int, name string) (value.Interval, error) {
	if i >= len(args) {
		return value.Interval{}, sweerr.NewArityError("%s expects an argument at position %d", name, i)
	}
	iv, ok := args[i].(value.Interval)
	if !ok {
		return value.Interval{}, sweerr.NewTypeError("%s expects an interval, got %s", name, args[i].Kind())
	}
	return iv, nil
}

func arrayArg(args []value.Value, i int, name string) (value.Array, error) {
	if i >= len(args) {
		return nil, sweerr.NewArityError("%s expects an argument at position %d", name, i)
	}
	arr, ok := args[i].(value.Array)
	if !ok {
		return nil, sweerr.NewTypeError("%s expects an array, got %s", name, args[i].Kind())
	}
	return arr, nil
}

// builtins returns every native riff bound to root, the ones package eval
// cannot express as interpreted SonicWeave because they need direct access
// to a Go library (math, sort) or the host (warn).
func builtins(root *rootctx.RootContext) []*native {
	return []*native{
		{name: "relative", required: 1, fn: func(args []value.Value) (value.Value, error) {
			iv, err := intervalArg(args, 0, "relative")
			if err != nil {
				return nil, err
			}
			return root.Relative(iv)
		}},
		{name: "absolute", required: 1, fn: func(args []value.Value) (value.Value, error) {
			iv, err := intervalArg(args, 0, "absolute")
			if err != nil {
				return nil, err
			}
			return root.Absolute(iv)
		}},
		{name: "linear", required: 1, fn: func(args []value.Value) (value.Value, error) {
			iv, err := intervalArg(args, 0, "linear")
			if err != nil {
				return nil, err
			}
			iv.Domain = value.Linear
			return iv, nil
		}},
		{name: "logarithmic", required: 1, fn: func(args []value.Value) (value.Value, error) {
			iv, err := intervalArg(args, 0, "logarithmic")
			if err != nil {
				return nil, err
			}
			iv.Domain = value.Logarithmic
			return iv, nil
		}},
		{name: "cents", required: 1, fn: func(args []value.Value) (value.Value, error) {
			iv, err := intervalArg(args, 0, "cents")
			if err != nil {
				return nil, err
			}
			c := 1200 * math.Log2(floatOf(iv))
			return value.Interval{
				Number: monzo.TimeReal{Value: c},
				Domain: value.Linear,
				Node:   value.Node{Kind: value.NodeCents, Cents: c},
			}, nil
		}},
		{name: "fraction", required: 1, fn: func(args []value.Value) (value.Value, error) {
			iv, err := intervalArg(args, 0, "fraction")
			if err != nil {
				return nil, err
			}
			if m, ok := iv.Number.(monzo.TimeMonzo); ok {
				if f, ferr := m.AsFraction(root.Primes()); ferr == nil {
					out := iv
					out.Node = value.Node{Kind: value.NodeFraction, Num: f.Num().Int64(), Den: f.Denom().Int64()}
					return out, nil
				}
			}
			f, ok := rational.FromFloat(floatOf(iv))
			if !ok {
				return nil, sweerr.NewValueError("fraction: value is not representable as a rational")
			}
			m, trials := monzo.FromBigRat(f.Num(), f.Denom(), root.Primes(), int(root.Remaining()), rational.Zero)
			if err := root.Spend(int64(trials)); err != nil {
				return nil, err
			}
			out := value.FromMonzo(m.WithComponents(root.NumComponents(), root.Primes()))
			out.Node = value.Node{Kind: value.NodeFraction, Num: f.Num().Int64(), Den: f.Denom().Int64()}
			return out, nil
		}},
		{name: "mtof", required: 1, fn: func(args []value.Value) (value.Value, error) {
			iv, err := intervalArg(args, 0, "mtof")
			if err != nil {
				return nil, err
			}
			freq := 440 * math.Pow(2, (floatOf(iv)-69)/12)
			return value.Interval{
				Number:  monzo.TimeReal{TimeExponent: -1, Value: freq},
				Domain:  value.Linear,
				Echelon: value.Absolute,
			}, nil
		}},
		{name: "ftom", required: 1, fn: func(args []value.Value) (value.Value, error) {
			iv, err := intervalArg(args, 0, "ftom")
			if err != nil {
				return nil, err
			}
			note := 69 + 12*math.Log2(floatOf(iv)/440)
			return value.Interval{Number: monzo.TimeReal{Value: note}, Domain: value.Linear}, nil
		}},
		{name: "sort", required: 1, fn: func(args []value.Value) (value.Value, error) {
			arr, err := arrayArg(args, 0, "sort")
			if err != nil {
				return nil, err
			}
			out := append(value.Array(nil), arr...)
			var sortErr error
			sort.SliceStable(out, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				a, aok := out[i].(value.Interval)
				b, bok := out[j].(value.Interval)
				if !aok || !bok {
					sortErr = sweerr.NewTypeError("sort: every element must be an interval")
					return false
				}
				c, err := root.Compare(a, b)
				if err != nil {
					sortErr = err
					return false
				}
				return c < 0
			})
			if sortErr != nil {
				return nil, sortErr
			}
			return out, nil
		}},
		{name: "repeat", required: 2, fn: func(args []value.Value) (value.Value, error) {
			arr, err := arrayArg(args, 0, "repeat")
			if err != nil {
				return nil, err
			}
			n, err := intervalArg(args, 1, "repeat")
			if err != nil {
				return nil, err
			}
			count := int(floatOf(n))
			if count < 0 {
				return nil, sweerr.NewValueError("repeat: count must be non-negative")
			}
			if err := root.Spend(int64(count * len(arr))); err != nil {
				return nil, err
			}
			out := make(value.Array, 0, count*len(arr))
			for i := 0; i < count; i++ {
				out = append(out, arr...)
			}
			return out, nil
		}},
		{name: "reduce", required: 1, fn: func(args []value.Value) (value.Value, error) {
			arr, err := arrayArg(args, 0, "reduce")
			if err != nil {
				return nil, err
			}
			two, err := fractionMonzo(root, 2, 1)
			if err != nil {
				return nil, err
			}
			equave := value.FromMonzo(two)
			if len(args) > 1 {
				equave, err = intervalArg(args, 1, "reduce")
				if err != nil {
					return nil, err
				}
			}
			out := make(value.Array, len(arr))
			for i, v := range arr {
				iv, ok := v.(value.Interval)
				if !ok {
					return nil, sweerr.NewTypeError("reduce: every element must be an interval")
				}
				out[i], err = octaveReduce(root, iv, equave)
				if err != nil {
					return nil, err
				}
			}
			return out, nil
		}},
		{name: "warn", required: 1, fn: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				root.Warn("")
				return value.Niente{}, nil
			}
			if s, ok := args[0].(value.Str); ok {
				root.Warn(string(s))
			} else {
				root.Warn(args[0].Kind().String())
			}
			return value.Niente{}, nil
		}},
		{name: "track", required: 1, fn: func(args []value.Value) (value.Value, error) {
			iv, err := intervalArg(args, 0, "track")
			if err != nil {
				return nil, err
			}
			return root.Track(iv), nil
		}},
	}
}

func fractionMonzo(root *rootctx.RootContext, num, den int64) (monzo.TimeMonzo, error) {
	m, trials := monzo.FromBigRat(big.NewInt(num), big.NewInt(den), root.Primes(), int(root.Remaining()), rational.Zero)
	if err := root.Spend(int64(trials)); err != nil {
		return monzo.TimeMonzo{}, err
	}
	return m.WithComponents(root.NumComponents(), root.Primes()), nil
}

// octaveReduce repeatedly divides or multiplies iv by equave until its
// linear value falls within [1, equave), the usual meaning of "reduce" for
// a scale builder riff.
func octaveReduce(root *rootctx.RootContext, iv, equave value.Interval) (value.Interval, error) {
	one := value.FromMonzo(monzo.Unity(root.NumComponents()))
	for {
		c, err := root.Compare(iv, one)
		if err != nil {
			return value.Interval{}, err
		}
		if c < 0 {
			var mulErr error
			iv, mulErr = value.Mul(iv, equave)
			if mulErr != nil {
				return value.Interval{}, mulErr
			}
			continue
		}
		cmp, err := root.Compare(iv, equave)
		if err != nil {
			return value.Interval{}, err
		}
		if cmp >= 0 {
			var divErr error
			iv, divErr = value.Div(iv, equave)
			if divErr != nil {
				return value.Interval{}, divErr
			}
			continue
		}
		break
	}
	return iv, nil
}

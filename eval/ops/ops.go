package ops

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

// tildeCoerce strips a leading/trailing "~" from op, reporting whether
// coercion was requested and the bare operator name. A coercing operator
// retags the right operand's Domain to match the left before dispatch
// (spec §4.2's tilde variants), rather than duplicating arithmetic.
func tildeCoerce(op string) (bare string, coerce bool) {
	switch {
	case len(op) >= 2 && op[0] == '~':
		return op[1:], true
	case len(op) >= 2 && op[len(op)-1] == '~':
		return op[:len(op)-1], true
	default:
		return op, false
	}
}

// Binary applies a BinaryExpression operator to two already-evaluated
// operands, dispatching arithmetic/comparison/tempering/broadcasting (spec
// §4.2, §4.3, §4.6).
func Binary(root *rootctx.RootContext, op string, a, b value.Value) (value.Value, error) {
	bare, coerce := tildeCoerce(op)

	if bare == "tns" {
		return TensorProduct(root, a, b)
	}

	if av, ok := a.(value.Array); ok {
		return broadcastBinary(root, op, av, b)
	}
	if bv, ok := b.(value.Array); ok {
		return broadcastBinary(root, op, a, bv)
	}
	if ar, ok := a.(value.Record); ok {
		return broadcastBinary(root, op, ar, b)
	}
	if br, ok := b.(value.Record); ok {
		return broadcastBinary(root, op, a, br)
	}

	if v, ok := a.(value.Val); ok {
		if iv, ok := b.(value.Interval); ok && bare == "*" {
			return value.Temper(v, iv)
		}
	}

	ai, aok := a.(value.Interval)
	bi, bok := b.(value.Interval)
	if aok && bok {
		if coerce {
			bi.Domain = ai.Domain
		}
		return intervalBinary(root, bare, ai, bi)
	}

	ab, aIsBool := a.(value.Bool)
	bb, bIsBool := b.(value.Bool)
	if aIsBool && bIsBool {
		return boolBinary(bare, ab, bb)
	}

	as, aIsStr := a.(value.Str)
	bs, bIsStr := b.(value.Str)
	if aIsStr && bIsStr && bare == "+" {
		return as + bs, nil
	}

	return nil, sweerr.NewTypeError("cannot apply %q to %s and %s", op, a.Kind(), b.Kind())
}

func broadcastBinary(root *rootctx.RootContext, op string, a, b value.Value) (value.Value, error) {
	charge := func() error { return root.Spend(1) }
	return value.Broadcast(a, b, charge, func(x, y value.Value) (value.Value, error) {
		return Binary(root, op, x, y)
	})
}

func boolBinary(op string, a, b value.Bool) (value.Value, error) {
	switch op {
	case "and", "vand":
		return a && b, nil
	case "or", "vor":
		return a || b, nil
	case "==":
		return a == b, nil
	case "!=":
		return a != b, nil
	default:
		return nil, sweerr.NewTypeError("unsupported boolean operator %q", op)
	}
}

func intervalBinary(root *rootctx.RootContext, op string, a, b value.Interval) (value.Value, error) {
	switch op {
	case "+":
		return value.Add(root, a, b)
	case "-":
		return value.Sub(root, a, b)
	case "*":
		return value.Mul(a, b)
	case "/":
		return value.Div(a, b)
	case "^":
		e, err := exponent(b)
		if err != nil {
			return nil, err
		}
		return value.Pow(root, a, e)
	case "==":
		c, err := root.Compare(a, b)
		return value.Bool(err == nil && c == 0), nil
	case "!=":
		c, err := root.Compare(a, b)
		if err != nil {
			return value.Bool(true), nil
		}
		return value.Bool(c != 0), nil
	case "<":
		return compareBool(root, a, b, func(c int) bool { return c < 0 })
	case "<=":
		return compareBool(root, a, b, func(c int) bool { return c <= 0 })
	case ">":
		return compareBool(root, a, b, func(c int) bool { return c > 0 })
	case ">=":
		return compareBool(root, a, b, func(c int) bool { return c >= 0 })
	default:
		return nil, sweerr.NewTypeError("unsupported interval operator %q", op)
	}
}

func compareBool(root *rootctx.RootContext, a, b value.Interval, pred func(int) bool) (value.Value, error) {
	c, err := root.Compare(a, b)
	if err != nil {
		return nil, err
	}
	return value.Bool(pred(c)), nil
}

func exponent(iv value.Interval) (rational.Rational, error) {
	if m, ok := iv.Number.(monzo.TimeMonzo); ok {
		if f, err := m.AsFraction(monzo.DefaultPrimes); err == nil {
			return f, nil
		}
		f, ok := rational.FromFloat(m.Float64())
		if !ok {
			return rational.Rational{}, sweerr.NewValueError("exponent is not representable as a rational")
		}
		return f, nil
	}
	r := iv.Number.(monzo.TimeReal)
	f, ok := rational.FromFloat(r.Value)
	if !ok {
		return rational.Rational{}, sweerr.NewValueError("exponent is not representable as a rational")
	}
	return f, nil
}

// TensorProduct computes the outer product of two arrays of intervals,
// flattened in row-major order: result[i*len(b)+j] = a[i] * b[j]. A bare
// Interval on either side is treated as a length-1 array, so `x tns y`
// between two scalars is just their product. Charged at N² gas (spec §5).
func TensorProduct(root *rootctx.RootContext, a, b value.Value) (value.Value, error) {
	as := asArray(a)
	bs := asArray(b)
	if err := root.Spend(int64(len(as) * len(bs))); err != nil {
		return nil, err
	}
	out := make(value.Array, 0, len(as)*len(bs))
	for _, x := range as {
		for _, y := range bs {
			xi, xok := x.(value.Interval)
			yi, yok := y.(value.Interval)
			if !xok || !yok {
				return nil, sweerr.NewTypeError("tensor product operands must be intervals")
			}
			v, err := value.Mul(xi, yi)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	_, aIsArr := a.(value.Array)
	_, bIsArr := b.(value.Array)
	if !aIsArr && !bIsArr {
		return out[0], nil
	}
	return out, nil
}

func asArray(v value.Value) value.Array {
	if arr, ok := v.(value.Array); ok {
		return arr
	}
	return value.Array{v}
}

// Unary applies a UnaryExpression operator.
func Unary(root *rootctx.RootContext, op string, a value.Value) (value.Value, error) {
	switch op {
	case "-":
		if iv, ok := a.(value.Interval); ok {
			return value.Neg(iv), nil
		}
	case "%", "recip":
		if iv, ok := a.(value.Interval); ok {
			one := value.FromMonzo(monzo.Unity(len(monzo.DefaultPrimes)))
			return value.Div(one, iv)
		}
	case "not", "vnot":
		if b, ok := a.(value.Bool); ok {
			return !b, nil
		}
	}
	return nil, sweerr.NewTypeError("unsupported unary operator %q on %s", op, a.Kind())
}

package eval

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
	"github.com/xenharmonic-devs/sonic-weave-sub001/eval/ops"
	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

func (v *Visitor) evalCall(scope *Scope, e ast.CallExpression) (value.Value, error) {
	callee, err := v.evalExpression(scope, e.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(value.Function)
	if !ok {
		return nil, sweerr.NewTypeError("cannot call a %s", callee.Kind())
	}
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		av, err := v.evalExpression(scope, a)
		if err != nil {
			return nil, err
		}
		args[i] = av
	}
	if err := v.Root.Spend(1); err != nil {
		return nil, err
	}
	c, ok := fn.(callable)
	if !ok {
		return nil, sweerr.NewTypeError("%s is not invocable", callee.Kind())
	}
	return c.Call(args)
}

// callable is implemented by every concrete value.Function: Callable
// (riffs/fn/arrow) and any native builtin the prelude installs.
type callable interface {
	Call([]value.Value) (value.Value, error)
}

func (v *Visitor) evalArray(scope *Scope, e ast.ArrayExpression) (value.Value, error) {
	if e.ComprehensionExpr != nil {
		iterable, err := v.evalExpression(scope, e.ComprehensionIter)
		if err != nil {
			return nil, err
		}
		arr, ok := iterable.(value.Array)
		if !ok {
			return nil, sweerr.NewTypeError("comprehension source must be an array, got %s", iterable.Kind())
		}
		out := make(value.Array, 0, len(arr))
		for _, elem := range arr {
			// a comprehension runs in a temporary child scope discarded
			// immediately after use, so the loop variable never leaks
			// (spec §4.5 "Comprehensions").
			iter := scope.Child()
			iter.Declare(e.ComprehensionVar, elem, false)
			if e.ComprehensionCond != nil {
				cond, err := v.evalExpression(iter, e.ComprehensionCond)
				if err != nil {
					return nil, err
				}
				if !truthy(cond) {
					continue
				}
			}
			val, err := v.evalExpression(iter, e.ComprehensionExpr)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	}
	out := make(value.Array, len(e.Elements))
	for i, elem := range e.Elements {
		val, err := v.evalExpression(scope, elem)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

func (v *Visitor) evalRecord(scope *Scope, e ast.RecordExpression) (value.Value, error) {
	values := make([]value.Value, len(e.Values))
	for i, val := range e.Values {
		rv, err := v.evalExpression(scope, val)
		if err != nil {
			return nil, err
		}
		values[i] = rv
	}
	return value.NewRecord(e.Keys, values), nil
}

func (v *Visitor) evalRange(scope *Scope, e ast.RangeExpression) (value.Value, error) {
	start, err := intOf(v, scope, e.Start)
	if err != nil {
		return nil, err
	}
	end, err := intOf(v, scope, e.End)
	if err != nil {
		return nil, err
	}
	step := int64(1)
	if e.Step != nil {
		stepVal, err := intOf(v, scope, e.Step)
		if err != nil {
			return nil, err
		}
		step = stepVal - start
		if step == 0 {
			return nil, sweerr.NewValueError("range step cannot be zero")
		}
	}
	if end < start {
		step = -abs(step)
	} else {
		step = abs(step)
	}
	var out value.Array
	for n := start; (step > 0 && n <= end) || (step < 0 && n >= end); n += step {
		if err := v.Root.Spend(1); err != nil {
			return nil, err
		}
		m, err := fractionMonzo(v.Root, n, 1)
		if err != nil {
			return nil, err
		}
		iv := value.FromMonzo(m)
		iv.Node = value.Node{Kind: value.NodeFraction, Num: n, Den: 1}
		out = append(out, iv)
	}
	return out, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func intOf(v *Visitor, scope *Scope, n ast.Node) (int64, error) {
	val, err := v.evalExpression(scope, n)
	if err != nil {
		return 0, err
	}
	iv, ok := val.(value.Interval)
	if !ok {
		return 0, sweerr.NewTypeError("expected an integer, got %s", val.Kind())
	}
	m, ok := iv.Number.(monzo.TimeMonzo)
	if !ok {
		return 0, sweerr.NewValueError("expected an exact integer")
	}
	f, err := m.AsFraction(monzo.DefaultPrimes)
	if err != nil || !f.IsInt() {
		return 0, sweerr.NewValueError("expected an exact integer")
	}
	return f.Num().Int64(), nil
}

// evalHarmonicSegment builds n/Start for every n after Start up to End
// inclusive (spec §6.1 `4::8`), or, if Start > End, the subharmonics
// Start/n; Start itself (the unison) is skipped. Each is gas-charged per
// spec §5's "1 per integer in a generated harmonic/subharmonic segment".
func (v *Visitor) evalHarmonicSegment(scope *Scope, e ast.HarmonicSegment) (value.Value, error) {
	start, err := intOf(v, scope, e.Start)
	if err != nil {
		return nil, err
	}
	end, err := intOf(v, scope, e.End)
	if err != nil {
		return nil, err
	}
	var out value.Array
	step := int64(1)
	if end < start {
		step = -1
	}
	for n := start; (step > 0 && n <= end) || (step < 0 && n >= end); n += step {
		if n == start {
			continue
		}
		if err := v.Root.Spend(1); err != nil {
			return nil, err
		}
		var m monzo.TimeMonzo
		if step > 0 {
			m, err = fractionMonzo(v.Root, n, start)
		} else {
			m, err = fractionMonzo(v.Root, start, n)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, value.FromMonzo(m))
	}
	return out, nil
}

// evalEnumeratedChord spells a colon-separated chord relative to its own
// first element, e.g. `4:5:6` -> [5/4, 6/4].
func (v *Visitor) evalEnumeratedChord(scope *Scope, e ast.EnumeratedChord) (value.Value, error) {
	if len(e.Elements) < 2 {
		return nil, sweerr.NewValueError("enumerated chord requires at least two elements")
	}
	root, err := v.evalExpression(scope, e.Elements[0])
	if err != nil {
		return nil, err
	}
	rootIv, ok := root.(value.Interval)
	if !ok {
		return nil, sweerr.NewTypeError("chord root must be an interval, got %s", root.Kind())
	}
	out := make(value.Array, 0, len(e.Elements)-1)
	for _, elemNode := range e.Elements[1:] {
		elem, err := v.evalExpression(scope, elemNode)
		if err != nil {
			return nil, err
		}
		elemIv, ok := elem.(value.Interval)
		if !ok {
			return nil, sweerr.NewTypeError("chord element must be an interval, got %s", elem.Kind())
		}
		iv, err := value.Div(elemIv, rootIv)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

func (v *Visitor) evalAssignment(scope *Scope, e ast.AssignmentExpression) (value.Value, error) {
	rhs, err := v.evalExpression(scope, e.Value)
	if err != nil {
		return nil, err
	}
	ident, isIdent := e.Target.(ast.Identifier)

	if e.Index != nil {
		if !isIdent {
			return nil, sweerr.NewTypeError("slice assignment target must be a plain identifier")
		}
		cur, ok := scope.Lookup(ident.Name)
		if !ok {
			return nil, sweerr.NewNameError(ident.Name)
		}
		arr, ok := cur.(value.Array)
		if !ok {
			return nil, sweerr.NewTypeError("cannot index-assign into a %s", cur.Kind())
		}
		idx, err := intOf(v, scope, e.Index)
		if err != nil {
			return nil, err
		}
		i := int(idx)
		if i < 0 {
			i += len(arr)
		}
		if i < 0 || i >= len(arr) {
			return nil, sweerr.NewIndexError("index %d out of range for array of length %d", idx, len(arr))
		}
		final, err := combineAssign(v.Root, e.Op, arr[i], rhs)
		if err != nil {
			return nil, err
		}
		arr[i] = final
		return final, nil
	}

	if !isIdent {
		return nil, sweerr.NewTypeError("assignment target must be a plain identifier or index expression")
	}

	if e.Nullish {
		cur, ok := scope.Lookup(ident.Name)
		if ok {
			if _, isNiente := cur.(value.Niente); !isNiente {
				return cur, nil
			}
		}
		return rhs, scope.Assign(ident.Name, rhs)
	}

	if e.Op == "=" {
		return rhs, scope.Assign(ident.Name, rhs)
	}
	cur, ok := scope.Lookup(ident.Name)
	if !ok {
		return nil, sweerr.NewNameError(ident.Name)
	}
	final, err := combineAssign(v.Root, e.Op, cur, rhs)
	if err != nil {
		return nil, err
	}
	return final, scope.Assign(ident.Name, final)
}

// combineAssign applies a compound assignment operator's arithmetic,
// stripping the trailing "=" (e.g. "+=" -> "+", "~*=" -> "~*"). String and
// array "+=" concatenate directly; everything else goes through ops.Binary.
func combineAssign(root *rootctx.RootContext, op string, cur, rhs value.Value) (value.Value, error) {
	if op == "=" {
		return rhs, nil
	}
	bare := op[:len(op)-1]
	if s, ok := cur.(value.Str); ok {
		if y, ok := rhs.(value.Str); ok && bare == "+" {
			return s + y, nil
		}
	}
	if a, ok := cur.(value.Array); ok {
		if y, ok := rhs.(value.Array); ok && bare == "+" {
			return append(append(value.Array(nil), a...), y...), nil
		}
	}
	return ops.Binary(root, bare, cur, rhs)
}

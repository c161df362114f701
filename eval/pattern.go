package eval

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

// bindPattern destructures v against pat, declaring each leaf name in
// scope. isConst propagates to every leaf (a `const [a, b] = ...` makes
// both a and b immutable).
func bindPattern(scope *Scope, pat ast.Pattern, v value.Value, isConst bool) error {
	if pat.Name != "" || (len(pat.Elements) == 0 && len(pat.Keys) == 0) {
		scope.Declare(pat.Name, v, isConst)
		return nil
	}
	if len(pat.Elements) > 0 {
		arr, ok := v.(value.Array)
		if !ok {
			return sweerr.NewTypeError("cannot destructure a non-array value as an array pattern")
		}
		if pat.Rest == nil && len(arr) != len(pat.Elements) {
			return sweerr.NewValueError("array pattern expects %d element(s), got %d", len(pat.Elements), len(arr))
		}
		if pat.Rest != nil && len(arr) < len(pat.Elements) {
			return sweerr.NewValueError("array pattern expects at least %d element(s), got %d", len(pat.Elements), len(arr))
		}
		for i, sub := range pat.Elements {
			if err := bindPattern(scope, sub, arr[i], isConst); err != nil {
				return err
			}
		}
		if pat.Rest != nil {
			rest := append(value.Array(nil), arr[len(pat.Elements):]...)
			if err := bindPattern(scope, *pat.Rest, rest, isConst); err != nil {
				return err
			}
		}
		return nil
	}
	rec, ok := v.(value.Record)
	if !ok {
		return sweerr.NewTypeError("cannot destructure a non-record value as a record pattern")
	}
	for i, k := range pat.Keys {
		fv, ok := rec.Get(k)
		if !ok {
			return sweerr.NewIndexError("record has no key %q", k)
		}
		if err := bindPattern(scope, pat.Values[i], fv, isConst); err != nil {
			return err
		}
	}
	return nil
}

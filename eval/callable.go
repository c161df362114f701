package eval

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

// Callable is the single internal representation shared by `riff`, `fn`,
// and arrow-function declarations (spec §4.5 "Three declarations share one
// internal representation"). A riff without an explicit `return` yields
// its own scale ($); a plain fn or arrow yields Niente in that case.
type Callable struct {
	name    string
	params  []ast.Param
	rest    string
	body    ast.Node
	parent  *Scope
	riff    bool
	visitor *Visitor
}

// Kind implements value.Value.
func (*Callable) Kind() value.Kind { return value.KindFunction }

// Name implements value.Function.
func (c *Callable) Name() string { return c.name }

// Arity implements value.Function.
func (c *Callable) Arity() (required int, hasRest bool) {
	for _, p := range c.params {
		if p.Default == nil {
			required++
		}
	}
	return required, c.rest != ""
}

// Call invokes c with args, bound in a fresh child of c's captured defining
// scope (not the caller's scope — spec §4.5). Defaults are re-evaluated per
// call in that callee scope. An explicit `return v` yields v; otherwise a
// riff yields its own scale as a value.Array, and a plain fn/arrow yields
// value.Niente{}.
func (c *Callable) Call(args []value.Value) (value.Value, error) {
	callee := c.parent.Child()
	if err := bindParams(c.visitor, callee, c.params, c.rest, args); err != nil {
		return nil, err
	}
	sig, err := c.visitor.evalStatement(callee, c.body)
	if err != nil {
		return nil, err
	}
	switch sig.kind {
	case sigReturn:
		return sig.value, nil
	case sigThrow:
		return nil, sig.thrown
	case sigBreak, sigContinue:
		return nil, sweerr.NewValueError("break/continue not valid at function top level")
	}
	if c.riff {
		return callee.Scale(), nil
	}
	return value.Niente{}, nil
}

func bindParams(v *Visitor, callee *Scope, params []ast.Param, rest string, args []value.Value) error {
	required := 0
	for _, p := range params {
		if p.Default == nil {
			required++
		}
	}
	if len(args) < required {
		return sweerr.NewArityError("expected at least %d argument(s), got %d", required, len(args))
	}
	if rest == "" && len(args) > len(params) {
		return sweerr.NewArityError("expected at most %d argument(s), got %d", len(params), len(args))
	}
	for i, p := range params {
		var arg value.Value
		if i < len(args) {
			arg = args[i]
		} else {
			dv, err := v.evalExpression(callee, p.Default)
			if err != nil {
				return err
			}
			arg = dv
		}
		if p.Pattern != nil {
			if err := bindPattern(callee, *p.Pattern, arg, false); err != nil {
				return err
			}
			continue
		}
		callee.Declare(p.Name, arg, false)
	}
	if rest != "" {
		var tail value.Array
		if len(args) > len(params) {
			tail = append(value.Array(nil), args[len(params):]...)
		}
		callee.Declare(rest, tail, false)
	}
	return nil
}

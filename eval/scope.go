package eval

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

type binding struct {
	value value.Value
	const_ bool
}

// Scope is one lexical environment: a parent chain for name lookup, an
// owned scale (the implicit `$`), and a LIFO stack of deferred statements
// run on every exit path (spec §4.5).
type Scope struct {
	parent *Scope
	vars   map[string]*binding
	scale  value.Array
	defers []ast.Node
}

// NewScope creates a root scope with no parent (used for the prelude's
// global scope).
func NewScope() *Scope {
	return &Scope{vars: make(map[string]*binding)}
}

// Child creates a scope whose parent chain continues through s, used both
// for lexical blocks and for a function call's captured-parent scope.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, vars: make(map[string]*binding)}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Declare binds name in this scope (a `let`/`const` target, or a function
// parameter). It shadows any outer binding of the same name.
func (s *Scope) Declare(name string, v value.Value, isConst bool) {
	s.vars[name] = &binding{value: v, const_: isConst}
}

// Lookup searches s and its parent chain for name.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Assign finds the nearest enclosing binding of name and updates it,
// erroring on an unbound name or an attempt to mutate a const (spec §4.5
// "Assignments to existing names find the nearest enclosing binding").
func (s *Scope) Assign(name string, v value.Value) error {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			if b.const_ {
				return sweerr.NewValueError("cannot assign to const %q", name)
			}
			b.value = v
			return nil
		}
	}
	return sweerr.NewNameError(name)
}

// Scale returns this scope's own `$` array.
func (s *Scope) Scale() value.Array { return s.scale }

// ParentScale returns the enclosing scope's `$$`/`££`, or an empty array at
// the root.
func (s *Scope) ParentScale() value.Array {
	if s.parent == nil {
		return nil
	}
	return s.parent.scale
}

// Push appends v to the implicit scale, applying the default-action rules
// for non-Interval values (spec §4.5): a bare Color colors every currently
// uncolored interval already in the scale; a bare String labels every
// currently unlabeled one; a Record appends its values, using its keys as
// labels; anything else (Interval, Array-spread element) is appended as-is.
func (s *Scope) Push(v value.Value) {
	switch x := v.(type) {
	case value.Color:
		for i, iv := range s.scale {
			if iv, ok := iv.(value.Interval); ok && iv.TheColor == "" {
				iv.TheColor = x
				s.scale[i] = iv
			}
		}
	case value.Str:
		for i, iv := range s.scale {
			if iv, ok := iv.(value.Interval); ok && iv.Label == "" {
				iv.Label = string(x)
				s.scale[i] = iv
			}
		}
	case value.Array:
		for _, e := range x {
			s.Push(e)
		}
	case value.Record:
		for _, k := range x.Keys {
			ev := x.Values[k]
			if iv, ok := ev.(value.Interval); ok {
				iv.Label = k
				ev = iv
			}
			s.scale = append(s.scale, ev)
		}
	case value.Niente:
		// explicitly discarded; nothing to push.
	default:
		s.scale = append(s.scale, v)
	}
}

// SpreadInto appends s's own scale onto parent's, per spec §4.5 "On block
// or function exit, the block's scale is spread into the enclosing scale".
func (s *Scope) SpreadInto(parent *Scope) {
	for _, v := range s.scale {
		parent.Push(v)
	}
}

// PushDefer registers stmt on this scope's defer stack.
func (s *Scope) PushDefer(stmt ast.Node) {
	s.defers = append(s.defers, stmt)
}

// PopDefers drains and returns this scope's deferred statements in
// reverse-registration (LIFO) order, per spec §4.5.
func (s *Scope) PopDefers() []ast.Node {
	out := make([]ast.Node, len(s.defers))
	for i, n := 0, len(s.defers); i < n; i++ {
		out[i] = s.defers[n-1-i]
	}
	s.defers = nil
	return out
}

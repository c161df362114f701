package prelude

import "github.com/xenharmonic-devs/sonic-weave-sub001/value"

// native wraps a Go function as a SonicWeave callable, satisfying both
// value.Function and eval's unexported callable interface structurally (a
// riff implemented in Go rather than interpreted).
type native struct {
	name     string
	required int
	hasRest  bool
	fn       func([]value.Value) (value.Value, error)
}

func (*native) Kind() value.Kind { return value.KindFunction }

func (n *native) Name() string { return n.name }

func (n *native) Arity() (required int, hasRest bool) { return n.required, n.hasRest }

func (n *native) Call(args []value.Value) (value.Value, error) {
	return n.fn(args)
}

package eval

import "github.com/xenharmonic-devs/sonic-weave-sub001/value"

// signalKind is the per-statement execution result (spec §4.5 "State
// machine of statement execution").
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
	sigThrow
)

// signal carries a non-local exit out of statement execution: a return
// value, a thrown payload, or a bare break/continue. The zero value
// (sigNone) means "ran to completion, keep going".
type signal struct {
	kind    signalKind
	value   value.Value // set for sigReturn/sigThrow
	thrown  error       // set for sigThrow, so sweerr.IsOutOfGas etc. still work
}

func (s signal) isNone() bool { return s.kind == sigNone }

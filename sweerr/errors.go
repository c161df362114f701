package sweerr

import "fmt"

// Position is the source location an error can carry (spec §7, last
// sentence). It is optional and only set through WithPosition; nothing in
// this module calls WithPosition, so errors returned by the evaluator carry
// a zero Position.
type Position struct {
	Line, Column int
}

func (p Position) String() string {
	if p.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// kindError is embedded by every concrete error kind to give it a uniform
// Error() string and an optional position and cause.
type kindError struct {
	kind string
	msg  string
	pos  Position
	wraps error
}

func (e *kindError) Error() string {
	if p := e.pos.String(); p != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.kind, e.msg, p)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Unwrap lets errors.Is/errors.As and github.com/pkg/errors.Cause see
// through a sweerr kind to whatever underlying error it wraps, if any.
func (e *kindError) Unwrap() error { return e.wraps }

// WithPosition returns a copy of err with its source position set, if err
// is a sweerr kind; otherwise it returns err unchanged.
func WithPosition(err error, pos Position) error {
	type positioner interface{ withPosition(Position) error }
	if pe, ok := err.(positioner); ok {
		return pe.withPosition(pos)
	}
	return err
}

func (e *kindError) withPosition(pos Position) error {
	cp := *e
	cp.pos = pos
	return &cp
}

// TypeError: an operator or function was applied to incompatible kinds.
type TypeError struct{ *kindError }

func NewTypeError(format string, args ...any) error {
	return &TypeError{&kindError{kind: "TypeError", msg: fmt.Sprintf(format, args...)}}
}

// DomainError: mixing logarithmic and linear domains without coercion.
type DomainError struct{ *kindError }

func NewDomainError(format string, args ...any) error {
	return &DomainError{&kindError{kind: "DomainError", msg: fmt.Sprintf(format, args...)}}
}

// EchelonError: relative/absolute mismatch without a unison frequency.
type EchelonError struct{ *kindError }

func NewEchelonError(format string, args ...any) error {
	return &EchelonError{&kindError{kind: "EchelonError", msg: fmt.Sprintf(format, args...)}}
}

// ValueError: e.g. division by zero, non-integer required, empty pop.
type ValueError struct{ *kindError }

func NewValueError(format string, args ...any) error {
	return &ValueError{&kindError{kind: "ValueError", msg: fmt.Sprintf(format, args...)}}
}

// NameError: an unbound identifier was referenced.
type NameError struct{ *kindError }

func NewNameError(name string) error {
	return &NameError{&kindError{kind: "NameError", msg: fmt.Sprintf("%s is not defined", name)}}
}

// IndexError: array/slice/record key out of range.
type IndexError struct{ *kindError }

func NewIndexError(format string, args ...any) error {
	return &IndexError{&kindError{kind: "IndexError", msg: fmt.Sprintf(format, args...)}}
}

// ArityError: too few/many arguments, or a missing required parameter.
type ArityError struct{ *kindError }

func NewArityError(format string, args ...any) error {
	return &ArityError{&kindError{kind: "ArityError", msg: fmt.Sprintf(format, args...)}}
}

// UserError carries the payload of a `throw expr` statement. Payload is
// typically a string but may be any SonicWeave value.
type UserError struct {
	*kindError
	Payload any
}

func NewUserError(payload any) error {
	return &UserError{kindError: &kindError{kind: "UserError", msg: fmt.Sprint(payload)}, Payload: payload}
}

// OutOfGasError is raised when the evaluation's gas budget is exhausted. It
// is deliberately NOT catchable by user try/catch (it bypasses catch blocks
// but still runs finally/defer, spec §5/§7); IsOutOfGas lets a catch
// implementation recognize it regardless of wrapping.
type OutOfGasError struct{ *kindError }

func NewOutOfGasError() error {
	return &OutOfGasError{&kindError{kind: "OutOfGasError", msg: "out of gas"}}
}

func (*OutOfGasError) uncatchable() {}

// IsOutOfGas reports whether err is, or wraps, an OutOfGasError.
func IsOutOfGas(err error) bool {
	for err != nil {
		if _, ok := err.(*OutOfGasError); ok {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

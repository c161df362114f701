package eval

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
	"github.com/xenharmonic-devs/sonic-weave-sub001/eval/ops"
	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

// Visitor walks an ast.Node program against a RootContext, dispatching
// each statement/expression kind to its handler (spec §4.5). It owns no
// scope itself; Global is the prelude's root scope, the parent of every
// user program's top-level scope.
type Visitor struct {
	Root   *rootctx.RootContext
	Global *Scope
}

// NewVisitor creates a Visitor rooted at root, with an empty global scope
// (the caller is expected to load the prelude into it before running user
// code — see package prelude).
func NewVisitor(root *rootctx.RootContext) *Visitor {
	return &Visitor{Root: root, Global: NewScope()}
}

// Run evaluates program (a BlockStatement, typically) in a fresh child of
// v.Global and returns that scope's final scale. A panic raised while
// evaluating is recovered and returned as an error.
func (v *Visitor) Run(program ast.Node) (scale value.Array, err error) {
	defer func() {
		if r := recover(); r != nil {
			scale, err = nil, errors.Errorf("eval: recovered from panic: %v", r)
		}
	}()
	top := v.Global.Child()
	sig, err := v.evalStatement(top, program)
	if err != nil {
		return nil, err
	}
	if sig.kind == sigThrow {
		return nil, sig.thrown
	}
	return top.Scale(), nil
}

// evalStatement evaluates one statement, returning the control-flow signal
// it produced (spec §4.5's per-statement state machine).
func (v *Visitor) evalStatement(scope *Scope, n ast.Node) (sig signal, err error) {
	switch s := n.(type) {
	case ast.BlockStatement:
		return v.evalBlock(scope, s)

	case ast.IfStatement:
		test, err := v.evalExpression(scope, s.Test)
		if err != nil {
			return signal{}, err
		}
		if truthy(test) {
			return v.evalStatement(scope, s.Consequent)
		}
		if s.Alternate != nil {
			return v.evalStatement(scope, s.Alternate)
		}
		return signal{}, nil

	case ast.WhileStatement:
		return v.evalWhile(scope, s)

	case ast.ForOfStatement:
		return v.evalForOf(scope, s)

	case ast.ForInStatement:
		return v.evalForIn(scope, s)

	case ast.ReturnStatement:
		if s.Argument == nil {
			return signal{kind: sigReturn, value: value.Niente{}}, nil
		}
		val, err := v.evalExpression(scope, s.Argument)
		if err != nil {
			return signal{}, err
		}
		return signal{kind: sigReturn, value: val}, nil

	case ast.ThrowStatement:
		val, err := v.evalExpression(scope, s.Argument)
		if err != nil {
			return signal{}, err
		}
		return signal{kind: sigThrow, value: val, thrown: sweerr.NewUserError(val)}, nil

	case ast.TryStatement:
		return v.evalTry(scope, s)

	case ast.DeferStatement:
		scope.PushDefer(s.Argument)
		return signal{}, nil

	case ast.FunctionDeclaration:
		fn := &Callable{name: s.Name, params: s.Params, rest: s.Rest, body: s.Body, parent: scope, riff: s.Riff, visitor: v}
		scope.Declare(s.Name, fn, false)
		return signal{}, nil

	case ast.VariableDeclaration:
		val, err := v.evalExpression(scope, s.Init)
		if err != nil {
			return signal{}, err
		}
		for _, target := range s.Targets {
			if err := bindPattern(scope, target, val, s.Const); err != nil {
				return signal{}, err
			}
		}
		return signal{}, nil

	case ast.PitchDeclaration:
		val, err := v.evalExpression(scope, s.Value)
		if err != nil {
			return signal{}, err
		}
		iv, ok := val.(value.Interval)
		if !ok {
			return signal{}, sweerr.NewTypeError("pitch declaration requires an interval, got %s", val.Kind())
		}
		v.Root.SetC4(asTimeMonzo(v.Root, iv.Number))
		return signal{}, nil

	case ast.AssignmentExpression:
		_, err := v.evalAssignment(scope, s)
		return signal{}, err

	default:
		// expression statement: evaluate and push onto the implicit scale
		// per the default-action rules (spec §4.5), unless explicitly
		// discarded.
		val, err := v.evalExpression(scope, n)
		if err != nil {
			return signal{}, err
		}
		if val != nil {
			scope.Push(val)
		}
		return signal{}, nil
	}
}

// asTimeMonzo returns n as an exact TimeMonzo, re-factoring a TimeReal's
// float64 approximation against root's prime basis when n is already
// lossy (a pitch declaration's right-hand side is usually exact, but
// nothing stops it from being, say, an irrational-tempered value).
func asTimeMonzo(root *rootctx.RootContext, n monzo.Number) monzo.TimeMonzo {
	if m, ok := n.(monzo.TimeMonzo); ok {
		return m
	}
	r := n.(monzo.TimeReal)
	rat := new(big.Rat).SetFloat64(r.Value)
	if rat == nil {
		rat = big.NewRat(1, 1)
	}
	m, _ := monzo.FromBigRat(rat.Num(), rat.Denom(), root.Primes(), int(root.Remaining()), rational.Zero)
	return m.WithComponents(root.NumComponents(), root.Primes())
}

// evalBlock runs each statement of s.Body in order, threading a non-none
// signal straight back out (early exit), and always running this scope's
// defers before returning (spec §4.5 "on any exit path ... those statements
// run in reverse order").
func (v *Visitor) evalBlock(parent *Scope, s ast.BlockStatement) (signal, error) {
	child := parent.Child()
	result, resultErr := v.runBlockBody(child, s.Body)
	for _, d := range child.PopDefers() {
		if _, derr := v.evalStatement(child, d); derr != nil && resultErr == nil {
			resultErr = derr
		}
	}
	child.SpreadInto(parent)
	return result, resultErr
}

func (v *Visitor) runBlockBody(scope *Scope, body []ast.Node) (signal, error) {
	for _, stmt := range body {
		sig, err := v.evalStatement(scope, stmt)
		if err != nil {
			return signal{}, err
		}
		if !sig.isNone() {
			return sig, nil
		}
	}
	return signal{}, nil
}

func (v *Visitor) evalWhile(parent *Scope, s ast.WhileStatement) (signal, error) {
	broke := false
	for {
		test, err := v.evalExpression(parent, s.Test)
		if err != nil {
			return signal{}, err
		}
		if !truthy(test) {
			break
		}
		if err := v.Root.Spend(1); err != nil {
			return signal{}, err
		}
		sig, err := v.evalStatement(parent, s.Body)
		if err != nil {
			return signal{}, err
		}
		switch sig.kind {
		case sigBreak:
			broke = true
		case sigReturn, sigThrow:
			return sig, nil
		}
		if sig.kind == sigBreak {
			break
		}
	}
	if !broke && s.Else != nil {
		return v.evalStatement(parent, s.Else)
	}
	return signal{}, nil
}

func (v *Visitor) evalForOf(parent *Scope, s ast.ForOfStatement) (signal, error) {
	iterable, err := v.evalExpression(parent, s.Iterable)
	if err != nil {
		return signal{}, err
	}
	arr, ok := iterable.(value.Array)
	if !ok {
		return signal{}, sweerr.NewTypeError("for..of requires an array, got %s", iterable.Kind())
	}
	broke := false
	for _, elem := range arr {
		if err := v.Root.Spend(1); err != nil {
			return signal{}, err
		}
		iter := parent.Child()
		iter.Declare(s.Var, elem, false)
		sig, err := v.evalStatement(iter, s.Body)
		if err != nil {
			return signal{}, err
		}
		iter.SpreadInto(parent)
		if sig.kind == sigBreak {
			broke = true
			break
		}
		if sig.kind == sigReturn || sig.kind == sigThrow {
			return sig, nil
		}
	}
	if !broke && s.Else != nil {
		return v.evalStatement(parent, s.Else)
	}
	return signal{}, nil
}

func (v *Visitor) evalForIn(parent *Scope, s ast.ForInStatement) (signal, error) {
	iterable, err := v.evalExpression(parent, s.Iterable)
	if err != nil {
		return signal{}, err
	}
	rec, ok := iterable.(value.Record)
	if !ok {
		return signal{}, sweerr.NewTypeError("for..in requires a record, got %s", iterable.Kind())
	}
	broke := false
	for _, key := range rec.Keys {
		if err := v.Root.Spend(1); err != nil {
			return signal{}, err
		}
		iter := parent.Child()
		iter.Declare(s.Var, value.Str(key), false)
		sig, err := v.evalStatement(iter, s.Body)
		if err != nil {
			return signal{}, err
		}
		iter.SpreadInto(parent)
		if sig.kind == sigBreak {
			broke = true
			break
		}
		if sig.kind == sigReturn || sig.kind == sigThrow {
			return sig, nil
		}
	}
	if !broke && s.Else != nil {
		return v.evalStatement(parent, s.Else)
	}
	return signal{}, nil
}

func (v *Visitor) evalTry(scope *Scope, s ast.TryStatement) (sig signal, err error) {
	sig, err = v.evalStatement(scope, s.Block)
	if err != nil && !sweerr.IsOutOfGas(err) && s.Handler != nil {
		catchScope := scope.Child()
		catchScope.Declare(s.Param, errorPayload(err), false)
		sig, err = v.evalStatement(catchScope, s.Handler)
	} else if sig.kind == sigThrow && !sweerr.IsOutOfGas(sig.thrown) && s.Handler != nil {
		catchScope := scope.Child()
		catchScope.Declare(s.Param, sig.value, false)
		sig, err = v.evalStatement(catchScope, s.Handler)
	}
	if s.Finalizer != nil {
		finSig, finErr := v.evalStatement(scope, s.Finalizer)
		if finErr != nil {
			return signal{}, finErr
		}
		if !finSig.isNone() {
			return finSig, nil
		}
	}
	return sig, err
}

func errorPayload(err error) value.Value {
	return value.Str(err.Error())
}

func truthy(v value.Value) bool {
	switch x := v.(type) {
	case value.Bool:
		return bool(x)
	case value.Niente:
		return false
	default:
		return true
	}
}

// evalExpression evaluates an expression node to a value.Value.
func (v *Visitor) evalExpression(scope *Scope, n ast.Node) (value.Value, error) {
	switch e := n.(type) {
	case ast.IntegerLiteral, ast.DecimalLiteral, ast.FractionLiteral, ast.CentsLiteral,
		ast.MonzoLiteral, ast.NedjiLiteral, ast.RadicalLiteral, ast.Pythagorean, ast.FJS,
		ast.AbsoluteFJS, ast.MOSLiteral:
		iv, err := evalLiteral(v.Root, n)
		if err != nil {
			return nil, err
		}
		iv.Node.InflectionGeneration = v.Root.Generation()
		return iv, nil

	case ast.Identifier:
		val, ok := scope.Lookup(e.Name)
		if !ok {
			return nil, sweerr.NewNameError(e.Name)
		}
		return val, nil

	case ast.BinaryExpression:
		left, err := v.evalExpression(scope, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := v.evalExpression(scope, e.Right)
		if err != nil {
			return nil, err
		}
		return ops.Binary(v.Root, e.Op, left, right)

	case ast.UnaryExpression:
		operand, err := v.evalExpression(scope, e.Operand)
		if err != nil {
			return nil, err
		}
		return ops.Unary(v.Root, e.Op, operand)

	case ast.CallExpression:
		return v.evalCall(scope, e)

	case ast.ArrayExpression:
		return v.evalArray(scope, e)

	case ast.RecordExpression:
		return v.evalRecord(scope, e)

	case ast.RangeExpression:
		return v.evalRange(scope, e)

	case ast.HarmonicSegment:
		return v.evalHarmonicSegment(scope, e)

	case ast.EnumeratedChord:
		return v.evalEnumeratedChord(scope, e)

	case ast.ArrowFunction:
		return &Callable{params: e.Params, rest: e.Rest, body: e.Body, parent: scope, riff: false, visitor: v}, nil

	case ast.AssignmentExpression:
		return v.evalAssignment(scope, e)

	default:
		return nil, sweerr.NewTypeError("unsupported expression node")
	}
}

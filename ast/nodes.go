package ast

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
)

// Kind identifies a node's concrete shape, mirroring value.Kind's role in
// the value package: a cheap tag eval's visitor switches on instead of a
// type switch over every possible Node implementation.
type Kind int

const (
	KindIntegerLiteral Kind = iota
	KindDecimalLiteral
	KindFractionLiteral
	KindCentsLiteral
	KindMonzoLiteral
	KindNedjiLiteral
	KindRadicalLiteral
	KindFJS
	KindAbsoluteFJS
	KindPythagorean
	KindMOSLiteral
	KindIdentifier
	KindBinaryExpression
	KindUnaryExpression
	KindCallExpression
	KindArrayExpression
	KindRecordExpression
	KindRangeExpression
	KindHarmonicSegment
	KindEnumeratedChord
	KindBlockStatement
	KindIfStatement
	KindWhileStatement
	KindForOfStatement
	KindForInStatement
	KindReturnStatement
	KindThrowStatement
	KindTryStatement
	KindDeferStatement
	KindFunctionDeclaration
	KindArrowFunction
	KindVariableDeclaration
	KindAssignmentExpression
	KindPitchDeclaration
)

// Node is implemented by every AST shape the evaluator consumes.
type Node interface {
	Kind() Kind
	Pos() sweerr.Position
}

type base struct {
	Position sweerr.Position
}

func (b base) Pos() sweerr.Position { return b.Position }

// IntegerLiteral is a bare whole number, e.g. `5`.
type IntegerLiteral struct {
	base
	Value int64
}

func (IntegerLiteral) Kind() Kind { return KindIntegerLiteral }

// DecimalLiteral is a decimal number suffixed `.` (real-valued), e.g. `1.5e`.
type DecimalLiteral struct {
	base
	Value float64
}

func (DecimalLiteral) Kind() Kind { return KindDecimalLiteral }

// FractionLiteral is an exact ratio, e.g. `5/4`.
type FractionLiteral struct {
	base
	Num, Den int64
}

func (FractionLiteral) Kind() Kind { return KindFractionLiteral }

// CentsLiteral is a real-valued size in cents, e.g. `701.955c` or `700.`.
type CentsLiteral struct {
	base
	Value float64
}

func (CentsLiteral) Kind() Kind { return KindCentsLiteral }

// MonzoLiteral is an explicit prime-exponent vector, e.g. `[-4 4 -1>`.
type MonzoLiteral struct {
	base
	Exponents []rational.Rational
}

func (MonzoLiteral) Kind() Kind { return KindMonzoLiteral }

// NedjiLiteral is an N-divisions-of-J-equal-in-I step, e.g. `7\12` or the
// equave-qualified `7\12<3>`. A nil Equave means the default equave (2/1).
type NedjiLiteral struct {
	base
	A, B   int64
	Equave *FractionLiteral
}

func (NedjiLiteral) Kind() Kind { return KindNedjiLiteral }

// RadicalLiteral is an explicit root, e.g. `sqrt(3/2)` surfaced to the
// grammar as `3/2^1/2`'s literal form: the Degree-th root of Radicand.
type RadicalLiteral struct {
	base
	Degree   int64
	Radicand FractionLiteral
}

func (RadicalLiteral) Kind() Kind { return KindRadicalLiteral }

// Accidental is one FJS prime-comma inflection: Prime is the comma's prime
// (5, 7, 11, ... 23; primes with no FJS comma, 2 and 3 included, are
// rejected), Count its exponent, and Super selects superscript (otonal) vs.
// subscript (utonal) placement. Sharps and flats are not Accidentals:
// AbsoluteFJS carries them in its Sharps field.
type Accidental struct {
	Prime int64
	Count int
	Super bool
}

// Pythagorean is a nominal + generic interval quality spelled the
// three-limit way, e.g. `P5`, `M3`, `m7`.
type Pythagorean struct {
	base
	Degree  int // generic interval number, e.g. 5 for a fifth
	Quality string // "P", "M", "m", "A", "d", with repeats for multiply-augmented/diminished
	Octave  int
}

func (Pythagorean) Kind() Kind { return KindPythagorean }

// FJS is a Pythagorean interval refined with Functional Just System prime
// comma accidentals, e.g. `M3^5` (the 5-limit major third).
type FJS struct {
	base
	Base        Pythagorean
	Accidentals []Accidental
}

func (FJS) Kind() Kind { return KindFJS }

// AbsoluteFJS is an absolute pitch spelled with a note nominal (A-G),
// accidental sharps/flats, octave number, and FJS comma accidentals, e.g.
// `C4`, `Eb4^5`.
type AbsoluteFJS struct {
	base
	Nominal     byte // 'A'..'G'
	Sharps      int  // positive for sharps, negative for flats
	Octave      int
	Accidentals []Accidental
}

func (AbsoluteFJS) Kind() Kind { return KindAbsoluteFJS }

// MOSLiteral spells an interval as a MOS scale degree plus accidentals
// resolved against the active RootContext.mos_config, e.g. `P1s`, `M2`.
type MOSLiteral struct {
	base
	Degree      int
	Accidentals int // net sharps (+) / flats (-) in MOS step units
}

func (MOSLiteral) Kind() Kind { return KindMOSLiteral }

// Identifier references a bound name.
type Identifier struct {
	base
	Name string
}

func (Identifier) Kind() Kind { return KindIdentifier }

// BinaryExpression applies a binary operator, e.g. `a + b`, `a ~* b`,
// `a vand b`.
type BinaryExpression struct {
	base
	Op          string
	Left, Right Node
}

func (BinaryExpression) Kind() Kind { return KindBinaryExpression }

// UnaryExpression applies a unary operator, e.g. `-a`, `%a`, `a'` (inverse,
// negate, step-count strip — whichever the grammar assigns to Op).
type UnaryExpression struct {
	base
	Op      string
	Operand Node
	Prefix  bool
}

func (UnaryExpression) Kind() Kind { return KindUnaryExpression }

// CallExpression invokes Callee with Args, e.g. `mtof(69)`.
type CallExpression struct {
	base
	Callee Node
	Args   []Node
}

func (CallExpression) Kind() Kind { return KindCallExpression }

// ArrayExpression is an array literal or comprehension, e.g. `[1, 2, 3]`
// or `[i for i of [1..5] if i mod 2 == 0]`. A comprehension sets
// ComprehensionExpr, ComprehensionVar and ComprehensionIter, and
// ComprehensionCond when it has an `if` clause.
type ArrayExpression struct {
	base
	Elements []Node

	// Comprehension fields; ComprehensionExpr is nil for a plain literal.
	ComprehensionExpr Node
	ComprehensionVar  string
	ComprehensionIter Node
	ComprehensionCond Node // nil when there is no `if` clause
}

func (ArrayExpression) Kind() Kind { return KindArrayExpression }

// RecordExpression is a record literal, e.g. `{a: 5/4, b: 3/2}`.
type RecordExpression struct {
	base
	Keys   []string
	Values []Node
}

func (RecordExpression) Kind() Kind { return KindRecordExpression }

// RangeExpression is an integer range, e.g. `[1..10]` or `[1,3..10]`
// (Step non-nil for the latter).
type RangeExpression struct {
	base
	Start, End Node
	Step       Node
}

func (RangeExpression) Kind() Kind { return KindRangeExpression }

// HarmonicSegment is a harmonic or subharmonic run, e.g. `4::8` (the
// harmonics 5/4, 6/4, 7/4, 8/4) or `8::4` (subharmonics).
type HarmonicSegment struct {
	base
	Start, End Node
}

func (HarmonicSegment) Kind() Kind { return KindHarmonicSegment }

// EnumeratedChord is a colon-separated chord spelled against its own root,
// e.g. `4:5:6` (a major triad over an implicit root of 4).
type EnumeratedChord struct {
	base
	Elements []Node
}

func (EnumeratedChord) Kind() Kind { return KindEnumeratedChord }

// BlockStatement is a `{ ... }` sequence of statements.
type BlockStatement struct {
	base
	Body []Node
}

func (BlockStatement) Kind() Kind { return KindBlockStatement }

// IfStatement is `if (test) consequent [else alternate]`. Alternate is nil
// when there is no else clause.
type IfStatement struct {
	base
	Test                  Node
	Consequent, Alternate Node
}

func (IfStatement) Kind() Kind { return KindIfStatement }

// WhileStatement is `while (test) body [else elseBody]`; Else runs iff the
// loop terminated without a `break` (spec §4.5).
type WhileStatement struct {
	base
	Test Node
	Body Node
	Else Node
}

func (WhileStatement) Kind() Kind { return KindWhileStatement }

// ForOfStatement is `for (x of iterable) body [else elseBody]`, binding
// each element of iterable to Var in turn.
type ForOfStatement struct {
	base
	Var      string
	Iterable Node
	Body     Node
	Else     Node
}

func (ForOfStatement) Kind() Kind { return KindForOfStatement }

// ForInStatement is `for (k in record) body [else elseBody]`, binding each
// key of a record to Var in turn.
type ForInStatement struct {
	base
	Var      string
	Iterable Node
	Body     Node
	Else     Node
}

func (ForInStatement) Kind() Kind { return KindForInStatement }

// ReturnStatement is `return [argument]`.
type ReturnStatement struct {
	base
	Argument Node // nil for a bare `return`
}

func (ReturnStatement) Kind() Kind { return KindReturnStatement }

// ThrowStatement is `throw argument`.
type ThrowStatement struct {
	base
	Argument Node
}

func (ThrowStatement) Kind() Kind { return KindThrowStatement }

// TryStatement is `try block catch (param) handler finally finalizer`;
// Handler and Finalizer are independently optional, though at least one
// must be present for the node to be well-formed.
type TryStatement struct {
	base
	Block     Node
	Param     string
	Handler   Node // nil when there is no catch clause
	Finalizer Node // nil when there is no finally clause
}

func (TryStatement) Kind() Kind { return KindTryStatement }

// DeferStatement is `defer argument`, registered on the enclosing scope's
// LIFO defer stack (spec §4.5).
type DeferStatement struct {
	base
	Argument Node
}

func (DeferStatement) Kind() Kind { return KindDeferStatement }

// Param is one formal parameter: a plain name, an optional default
// (re-evaluated per call in the callee's scope), or a destructuring
// pattern.
type Param struct {
	Name    string
	Pattern *Pattern // non-nil for a destructuring parameter; Name is then ""
	Default Node     // nil when there is no default
}

// Pattern is a destructuring target on the left of `let`/parameter
// binding: either a plain name, an array pattern (with an optional rest
// element), or a record pattern.
type Pattern struct {
	Name string // set for a leaf binding

	// Array pattern
	Elements []Pattern
	Rest     *Pattern // non-nil when the pattern ends in `...rest`

	// Record pattern
	Keys   []string
	Values []Pattern
}

// FunctionDeclaration declares a named function, covering both `riff`
// (scale-building, implicit-$-returning) and `fn` (plain) forms; Riff
// distinguishes which default-return behaviour applies (spec §4.5).
type FunctionDeclaration struct {
	base
	Name   string
	Params []Param
	Rest   string // "" when there is no rest parameter
	Body   Node
	Riff   bool
}

func (FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }

// ArrowFunction is `(params) => body` or `x => expr`.
type ArrowFunction struct {
	base
	Params []Param
	Rest   string
	Body   Node
}

func (ArrowFunction) Kind() Kind { return KindArrowFunction }

// VariableDeclaration is `let`/`const` binding one or more (possibly
// destructured) targets to Init.
type VariableDeclaration struct {
	base
	Const   bool
	Targets []Pattern
	Init    Node
}

func (VariableDeclaration) Kind() Kind { return KindVariableDeclaration }

// AssignmentExpression is `target op= value`, where Op is "=" for plain
// assignment or the compound operator (e.g. "+=", "~*="); Index/Nullish
// select the two special forms spec §6.1 calls out: slice-index assignment
// (`arr[i] = v`) and nullish assignment (`x ??= v`, only assigns when
// target is currently niente).
type AssignmentExpression struct {
	base
	Target  Node
	Op      string
	Value   Node
	Index   Node // non-nil for `target[Index] = value`
	Nullish bool
}

func (AssignmentExpression) Kind() Kind { return KindAssignmentExpression }

// PitchDeclaration is `C4 = 262 Hz`-style absolute-reference binding: a
// special assignment that threads Value through RootContext.SetC4. Name is
// not consulted: every pitch declaration rebinds C4, and none sets the
// unison frequency.
type PitchDeclaration struct {
	base
	Name  string
	Value Node
}

func (PitchDeclaration) Kind() Kind { return KindPitchDeclaration }

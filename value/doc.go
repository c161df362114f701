// Package value implements the L2 layer: the tagged SonicWeave value
// universe (spec §3.1, §9 "Dynamic typing → tagged sum types"). An
// Interval wraps a monzo.Number with domain (linear/logarithmic), echelon
// (relative/absolute), a step count, a formatting hint and metadata; Val
// and ValBasis give the dual, tempering side of the numeric tower.
//
// Every other dynamically-typed value the evaluator manipulates (booleans,
// strings, colors, arrays, records, niente, and the Function interface
// implemented by callables in package eval) also lives here as a variant of
// the Value interface, so that package eval's operator protocol has one
// closed set of kinds to switch over.
package value

// Package monzo implements the L1 layer of the SonicWeave numeric tower:
// TimeMonzo, the exact representation of a musical quantity as a rational
// time exponent, a vector of rational prime exponents and an unfactored
// rational residual, and TimeReal, its lossy float64 fallback.
//
// A TimeMonzo operation whose result cannot stay exact (PowRational with an
// irrational result) returns an error instead of panicking or rounding, and
// the caller switches to the TimeReal functions (PowReal, MulReal, ...);
// once a quantity is a TimeReal it stays one, matching the "exact/real
// boundary" behaviour spec'd for the evaluator. A number too large to factor
// within the caller's trial-division budget (FromBigRat) stays exact, with
// the unfactored part kept in the residual.
package monzo

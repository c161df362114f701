// Package rational implements exact arbitrary-precision rational arithmetic,
// the L0 layer of the SonicWeave numeric tower: a thin, immutable wrapper
// around math/big tuned to the operations the higher layers (monzo, value)
// actually need — add, sub, mul, quo, gcd, lcm, integer powers, sign and
// ordering — plus a few number-theoretic helpers (prime factoring with a
// caller-supplied trial-division budget) that those layers drive through
// their own gas accounting rather than doing unbounded work here.
//
// Rational values are immutable: every operation returns a new Rational and
// never mutates its receiver or argument.
package rational

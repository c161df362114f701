// Package ops is the L5 operator protocol: it maps BinaryExpression/
// UnaryExpression operator tokens onto package value's arithmetic and
// comparison primitives, handling the cross-kind dispatch (Interval vs.
// Val vs. Array vs. Record vs. Bool) and array/record broadcasting that
// value.Add/Mul/etc. themselves leave to their caller (spec §4.6).
package ops

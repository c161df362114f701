// The sonicweave command is a minimal showcase for packages rootctx/eval/
// prelude: it builds a small hard-coded program (the grammar/parser that
// would turn program text into an ast.Node tree is out of scope, see
// DESIGN.md), runs it through a Visitor, and prints each interval of the
// resulting scale in cents.
//
// Usage:
//
//	-gas int
//	      evaluation gas budget, -1 for unlimited (default -1)
//	-components int
//	      prime-exponent vector length new intervals are built with (default 23)
package main

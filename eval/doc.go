// Package eval is the L4/L5 tree-walking evaluator: Scope (lexical
// scoping, the implicit scale $, deferred statements) and Visitor (AST
// dispatch, control flow, operator protocol) that turn an ast.Node program
// into a value.Array scale, charging a rootctx.RootContext's gas budget as
// it goes (spec §4.5, §5).
//
// The dispatch loop below plays the role vm.Instance.Run's opcode switch
// plays for the Ngaro VM: one statement/expression kind per case, a single
// top-level recover converting an unexpected panic into an error rather
// than crashing the host.
package eval

package prelude

import (
	"github.com/xenharmonic-devs/sonic-weave-sub001/eval"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
)

// Volatiles names the subset of the prelude a host is expected to
// re-install after Load, the second of the two loading stages described by
// spec §4.7: "warn" is the one builtin whose behavior is host-specific (a
// bare Load wires it to a no-op via RootContext.Warn's nil default).
var Volatiles = []string{"warn"}

// Load installs the prelude's riffs into visitor.Global. Call it once,
// immediately after eval.NewVisitor and before running any user program —
// every child scope created by Run sees these bindings via the parent
// chain. The grammar/parser that would let this be authored as SonicWeave
// source text is out of scope (spec's Non-goals), so the prelude here is a
// fixed set of native Go closures instead; see DESIGN.md.
func Load(root *rootctx.RootContext, v *eval.Visitor) {
	for _, fn := range builtins(root) {
		v.Global.Declare(fn.name, fn, true)
	}
}

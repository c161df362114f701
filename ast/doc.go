// Package ast defines the node shapes the evaluator consumes (spec §6.1).
// Parsing a SonicWeave source string into this tree is a collaborator's
// job, out of scope here: ast only fixes the contract the eval package
// walks. Every node carries its source Position; the evaluator does not
// attach it to the errors it returns.
package ast

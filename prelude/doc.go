// Package prelude installs the builtin riffs and constants every evaluation
// starts with: native Go functions (unit conversions, sorting, host hooks)
// installed into the Visitor's global scope ahead of the user's program
// (spec §4.7). Every builtin is a Go closure; no part of the prelude is
// written in, or evaluated as, SonicWeave source.
package prelude

// Package rootctx implements RootContext, the L3 layer: the
// process-wide-per-evaluation mutable state shared by every scope of a
// single evaluation (spec §3.1, §4.4) — the reference pitch C4, the
// unison frequency used to convert between relative and absolute
// echelons, the up/lift inflection definitions, the gas budget, the
// tracking-id counter, and the MOS configuration.
//
// RootContext plays the role vm.Instance plays for the Ngaro virtual
// machine: a single struct constructed with functional Options
// (rootctx.Option, mirroring vm.Option) and owned by exactly one
// evaluation. Unlike vm.Instance it carries no I/O ports; its equivalent
// of "instructions executed" is the Gas budget, charged by every layer
// above it through the Budget interface (package value) that RootContext
// satisfies structurally.
package rootctx

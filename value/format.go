package value

import "github.com/xenharmonic-devs/sonic-weave-sub001/rational"

// NodeKind identifies which literal form (if any) an Interval was
// constructed from, purely so that an external pretty-printer can try to
// reproduce it. The core never consults NodeKind for arithmetic: formatting
// is cosmetic (spec §3.1, §9).
type NodeKind int

const (
	NodeNone NodeKind = iota
	NodeFraction
	NodeNedji
	NodeCents
	NodeMonzoLiteral
	NodeFJS
	NodeRadical
)

// Node is the optional formatting hint carried by an Interval. Once an
// Interval crosses the exact/real boundary its Node may become
// inconsistent with its actual Number; the core deliberately does not
// correct or clear it (spec §9 Open Questions, last bullet) — a
// pretty-printer downstream decides what to do with a stale hint.
type Node struct {
	Kind NodeKind

	// NodeFraction
	Num, Den int64

	// NodeNedji: a\b<equave>
	NedjiA, NedjiB int64
	NedjiEquave    rational.Rational

	// NodeCents
	Cents float64

	// InflectionGeneration stamps the RootContext inflection generation
	// (rootctx.RootContext.Generation) this Interval's up/lift-dependent
	// literal form was built under, so a formatter can tell a frozen
	// interval's original spelling apart from one that should re-resolve
	// against the current ^ and / definitions (spec §9 Open Questions).
	InflectionGeneration int
}

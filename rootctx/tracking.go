package rootctx

import "github.com/google/uuid"

// Tracker hands out the tracking ids the track() builtin stamps onto
// intervals (spec §4.4). Ids are deterministic within a single evaluation:
// each call mixes a monotonic counter into a namespaced UUIDv5 so that
// re-running the same program twice yields the same ids, which matters for
// golden-output tests and reproducible serialization.
type Tracker struct {
	next int64
}

// trackingNamespace roots the UUIDv5 derivation; any fixed value works, it
// only has to be stable across runs.
var trackingNamespace = uuid.MustParse("b7e3b1b0-3f0a-4f7d-9c9e-9a6b9f6a9b1a")

// Next returns the next tracking id in sequence.
func (t *Tracker) Next() string {
	id := uuid.NewSHA1(trackingNamespace, []byte{
		byte(t.next >> 56), byte(t.next >> 48), byte(t.next >> 40), byte(t.next >> 32),
		byte(t.next >> 24), byte(t.next >> 16), byte(t.next >> 8), byte(t.next),
	})
	t.next++
	return id.String()
}

package rootctx

import "github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"

// unlimitedGas marks a RootContext constructed without a gas budget (spec
// §6.4: "Missing gas rehydrates to infinity"). Spend is then a no-op.
const unlimitedGas = int64(-1)

// Spend decrements the gas budget by n, charged by every gas-metered
// operation (loop iterations, broadcast elements, prime-factoring trial
// divisions, segment/Farey generation, tensor products — spec §5). It
// returns a sweerr.OutOfGasError, uncatchable by user code, the instant the
// budget would go negative. Gas is never spent below zero: Spend leaves the
// counter at exactly zero on the call that exhausts it.
func (c *RootContext) Spend(n int64) error {
	if c.gas == unlimitedGas {
		return nil
	}
	if n <= 0 {
		return nil
	}
	if c.gas < n {
		c.gas = 0
		return sweerr.NewOutOfGasError()
	}
	c.gas -= n
	return nil
}

// Remaining returns the gas left, or a very large number when unlimited
// (callers use it only to size best-effort work like residual factoring,
// never to detect exhaustion — use Spend's error for that).
func (c *RootContext) Remaining() int64 {
	if c.gas == unlimitedGas {
		return 1 << 30
	}
	return c.gas
}

// SetGas (re)initializes the gas budget. A negative value means unlimited.
func (c *RootContext) SetGas(n int64) {
	if n < 0 {
		c.gas = unlimitedGas
		return
	}
	c.gas = n
}

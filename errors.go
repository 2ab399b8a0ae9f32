package reactive

import "github.com/graphkit-go/reactive/internal"

// Error types surfaced from compute/effect panics and misuse, per the
// taxonomy: Cycle, ComputeFailure, EffectFailure (aggregated into
// MultiError unless WithOnError is set), UseAfterDispose.
type (
	CycleError           = internal.CycleError
	ComputeError         = internal.ComputeError
	EffectError          = internal.EffectError
	MultiError           = internal.MultiError
	UseAfterDisposeError = internal.UseAfterDisposeError
)

// ErrReenqueueLimit is returned (via panic from Batch, or from a direct
// Write outside a batch) when a single effect is re-enqueued more times
// than its Context's MaxReenqueue allows within one flush — the guard
// against a write-triggers-itself infinite loop.
var ErrReenqueueLimit = internal.ErrReenqueueLimit

package reactive

import "github.com/graphkit-go/reactive/internal"

// Batch runs fn with effect dispatch for all Source writes inside it
// deferred until fn returns (or, for nested Batch calls, until the
// outermost one returns), so dependents see at most one flush instead of
// one per write. The written values are visible to reads inside fn
// immediately. Returns fn's result.
func Batch[T any](fn func() T) T {
	ctx := internal.GetContext()
	ctx.StartBatch()
	var result T
	var flushErr error
	func() {
		defer func() {
			flushErr = ctx.EndBatch()
		}()
		result = fn()
	}()
	if flushErr != nil {
		panic(flushErr)
	}
	return result
}

// BatchFunc is Batch for a function with no return value.
func BatchFunc(fn func()) {
	Batch(func() any {
		fn()
		return nil
	})
}

// Untrack runs fn without recording any reactive dependency reads made
// inside it, even if called from within a Computed or Effect body.
func Untrack[T any](fn func() T) T {
	ctx := internal.GetContext()
	var result T
	ctx.RunUntracked(func() { result = fn() })
	return result
}

// OnCleanup registers fn to run when the current owner (the enclosing
// Computed/Effect, or root) is disposed. A re-run of the enclosing
// Computed/Effect does not run it.
func OnCleanup(fn func()) {
	ctx := internal.GetContext()
	ctx.CurrentOwner().OnCleanup(fn)
}

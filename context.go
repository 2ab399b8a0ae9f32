package reactive

import "github.com/graphkit-go/reactive/internal"

// ValueSlot is an owner-scoped contextual value: Set stores a value in the
// current owner; Value looks it up starting at the current owner and
// walking up through ancestors, falling back to the initial value given
// at creation if no ancestor ever set one.
type ValueSlot[T any] struct {
	key     *int
	initial T
}

// NewValueSlot creates a ValueSlot defaulting to initial.
func NewValueSlot[T any](initial T) *ValueSlot[T] {
	return &ValueSlot[T]{key: new(int), initial: initial}
}

// Set stores v in the current owner's value map.
func (s *ValueSlot[T]) Set(v T) {
	ctx := internal.GetContext()
	ctx.CurrentOwner().SetValue(s.key, any(v))
}

// Value returns the nearest ancestor owner's stored value, or the initial
// value if none was ever set.
func (s *ValueSlot[T]) Value() T {
	ctx := internal.GetContext()
	if v, ok := ctx.CurrentOwner().LookupValue(s.key); ok {
		return as[T](v)
	}
	return s.initial
}

// SetMaxReenqueue configures, for the calling goroutine's graph, how many
// times a single effect may be re-enqueued within one flush before it
// aborts with ErrReenqueueLimit instead of looping forever (spec §4.11).
// Defaults to 1000; call this before triggering the write that would
// exercise a self-dirtying effect to raise or lower the bound.
func SetMaxReenqueue(n int) {
	internal.GetContext().MaxReenqueue = n
}

// MaxReenqueue reports the current re-enqueue bound for the calling
// goroutine's graph (see SetMaxReenqueue).
func MaxReenqueue() int {
	return internal.GetContext().MaxReenqueue
}

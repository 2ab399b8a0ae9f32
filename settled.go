package reactive

import "github.com/graphkit-go/reactive/internal"

// OnSettled registers a one-shot callback that fires once both the render
// and user effect queues have fully drained for the write currently in
// flight (or the next one, if called outside a flush).
func OnSettled(fn func()) {
	internal.GetContext().OnSettled(fn)
}

// OnRenderSettled registers a one-shot callback that fires once the render
// effects queued for the write have run, before any user effect runs.
// Render effects those runs enqueue in turn run after it.
func OnRenderSettled(fn func()) {
	internal.GetContext().OnRenderSettled(fn)
}

// OnUserSettled registers a one-shot callback that fires once the user
// effects queued for the write have run. User effects those runs enqueue
// in turn run after it.
func OnUserSettled(fn func()) {
	internal.GetContext().OnUserSettled(fn)
}

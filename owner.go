package reactive

import "github.com/graphkit-go/reactive/internal"

// Owner is a disposal-tree scope: every Computed and Effect implicitly
// owns one, but Owner is also exposed directly so callers can group
// manually-created reactive state under a single Dispose call.
type Owner struct {
	owner *internal.Owner
}

// NewOwner creates an Owner as a child of the current scope.
func NewOwner() *Owner {
	ctx := internal.GetContext()
	return &Owner{owner: ctx.NewChildOwner()}
}

// Run executes fn with this Owner as the current scope: Computeds and
// Effects created inside fn become its children, disposed (most-
// recently-created first) when Dispose is called. Sources are not attached
// to any owner and stay usable after Dispose.
func (o *Owner) Run(fn func()) {
	ctx := internal.GetContext()
	ctx.RunWithOwner(o.owner, fn)
}

// Dispose disposes this Owner's children (most-recently-created first)
// then runs its own cleanups.
func (o *Owner) Dispose() {
	o.owner.Dispose()
}

// OnCleanup registers fn to run once when this Owner is disposed.
func (o *Owner) OnCleanup(fn func()) {
	o.owner.OnCleanup(fn)
}

// OnError registers fn to intercept a panic from any descendant compute
// not already handled by a closer ancestor owner.
func (o *Owner) OnError(fn func(error)) {
	o.owner.OnError(fn)
}

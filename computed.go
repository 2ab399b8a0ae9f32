package reactive

import "github.com/graphkit-go/reactive/internal"

// Computed is a derived, memoized reactive value. It is lazy: fn does not
// run until the Computed is first Read or Peeked, and re-runs only when a
// dependency it actually read last time has produced a new value.
type Computed[T any] struct {
	node *internal.Node
}

// NewComputed derives a value from other Sources/Computeds read inside fn.
func NewComputed[T any](fn func() T, opts ...ComputedOption[T]) *Computed[T] {
	o := resolveOptions(opts)
	ctx := internal.GetContext()
	n := internal.NewComputed(ctx, func() any { return fn() }, o.equals, o.onError, o.name)
	return &Computed[T]{node: n}
}

// Read validates and, if necessary, recomputes the Computed, then returns
// its value, tracking a dependency on it if called from within another
// Computed or Effect body.
func (c *Computed[T]) Read() T {
	v, err := internal.ComputedRead(c.node)
	if err != nil {
		panic(err)
	}
	return as[T](v)
}

// Peek behaves like Read but does not track a dependency.
func (c *Computed[T]) Peek() T {
	v, err := internal.ComputedPeek(c.node)
	if err != nil {
		panic(err)
	}
	return as[T](v)
}

// Dispose detaches the Computed's owner subtree and its own edges.
func (c *Computed[T]) Dispose() {
	internal.ComputedDispose(c.node)
}

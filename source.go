package reactive

import "github.com/graphkit-go/reactive/internal"

// Readable is satisfied by both Source[T] and Computed[T]; Subscribe
// accepts either.
type Readable[T any] interface {
	Read() T
	Peek() T
}

// Source is a mutable reactive value — the root of a dependency graph.
type Source[T any] struct {
	node *internal.Node
}

// NewSource creates a Source holding initial, bound to the Context of the
// calling goroutine.
func NewSource[T any](initial T, opts ...SourceOption[T]) *Source[T] {
	o := resolveOptions(opts)
	ctx := internal.GetContext()
	equals := defaultEqualsFor(o)
	n := internal.NewSource(ctx, any(initial), equals, o.name)
	return &Source[T]{node: n}
}

// Read returns the current value, tracking a dependency on it if called
// from within a Computed or Effect body.
func (s *Source[T]) Read() T {
	v, err := internal.SourceRead(s.node)
	if err != nil {
		panic(err)
	}
	return as[T](v)
}

// Peek returns the current value without tracking a dependency.
func (s *Source[T]) Peek() T {
	v, err := internal.SourcePeek(s.node)
	if err != nil {
		panic(err)
	}
	return as[T](v)
}

// Write stores v, triggering dependents if it differs from the current
// value, and flushes immediately unless called from within Batch.
func (s *Source[T]) Write(v T) {
	if err := internal.SourceWrite(s.node, any(v)); err != nil {
		panic(err)
	}
}

// Dispose detaches the Source from the graph; further Read/Write panics
// with a *UseAfterDisposeError.
func (s *Source[T]) Dispose() {
	internal.SourceDispose(s.node)
}

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

func defaultEqualsFor(o *nodeOptions) func(a, b any) bool {
	if o.equals != nil {
		return o.equals
	}
	return nil
}

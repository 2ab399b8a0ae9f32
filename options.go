package reactive

// nodeOptions is the boxed, non-generic option bag every typed option
// writes into; SourceOption/ComputedOption/EffectOption are all defined as
// func(*nodeOptions) so WithEquals/WithOnError/WithName satisfy all three
// without duplicating the option machinery per node kind.
type nodeOptions struct {
	equals  func(a, b any) bool
	onError func(error)
	name    string
}

// SourceOption configures a Source created via NewSource.
type SourceOption[T any] func(*nodeOptions)

// ComputedOption configures a Computed created via NewComputed.
type ComputedOption[T any] func(*nodeOptions)

// EffectOption configures an Effect/RenderEffect created via NewEffect or
// NewRenderEffect.
type EffectOption func(*nodeOptions)

// WithEquals overrides the default == comparison used to decide whether a
// new value actually changed. Required for types that aren't comparable
// with == (slices, maps, funcs boxed in the value).
func WithEquals[T any](eq func(a, b T) bool) func(*nodeOptions) {
	return func(o *nodeOptions) {
		o.equals = func(a, b any) bool { return eq(a.(T), b.(T)) }
	}
}

// WithOnError registers a handler that intercepts a panic from this node's
// own compute closure, instead of letting it bubble to the nearest owner
// with an OnError handler (or, absent one, re-panic to the caller).
func WithOnError(fn func(error)) func(*nodeOptions) {
	return func(o *nodeOptions) { o.onError = fn }
}

// WithName attaches a debug name, surfaced in error messages.
func WithName(name string) func(*nodeOptions) {
	return func(o *nodeOptions) { o.name = name }
}

func resolveOptions[O ~func(*nodeOptions)](opts []O) *nodeOptions {
	o := &nodeOptions{}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

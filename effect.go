package reactive

import "github.com/graphkit-go/reactive/internal"

// Disposer stops a node created by NewEffect/NewRenderEffect from ever
// running again and runs its pending cleanup.
type Disposer func()

// Unsubscribe stops a Subscribe callback from firing again.
type Unsubscribe func()

// NewEffect creates a side-effecting node that runs immediately and
// re-runs, on the user dispatch lane, whenever a Source/Computed it read
// last time changes. fn may return a cleanup, run before the next run and
// on dispose.
func NewEffect(fn func() func(), opts ...EffectOption) Disposer {
	return newEffectNode(internal.KindEffect, internal.LaneUser, fn, opts...)
}

// NewRenderEffect is identical to NewEffect but runs on the render
// dispatch lane: all render effects from a given write finish before any
// user effect from the same write begins.
func NewRenderEffect(fn func() func(), opts ...EffectOption) Disposer {
	return newEffectNode(internal.KindEffect, internal.LaneRender, fn, opts...)
}

func newEffectNode(kind internal.Kind, lane internal.QueueLane, fn func() func(), opts ...EffectOption) Disposer {
	o := resolveOptions(opts)
	ctx := internal.GetContext()
	n := internal.NewEffectNode(ctx, kind, lane, fn, o.onError, o.name)
	return func() { internal.EffectDispose(n) }
}

// Subscribe attaches cb to node: it fires synchronously with the current
// value on attach, then again whenever node's value actually changes,
// dispatched on the user lane.
func Subscribe[T any](node Readable[T], cb func(T)) Unsubscribe {
	ctx := internal.GetContext()

	var target *internal.Node
	var read func(*internal.Node) (any, error)

	switch v := any(node).(type) {
	case *Source[T]:
		target = v.node
		read = internal.SourceRead
	case *Computed[T]:
		target = v.node
		read = internal.ComputedRead
	default:
		panic("reactive: Subscribe requires a *Source or *Computed")
	}

	n := internal.NewSubscriberNode(ctx, target, read, func(v any) {
		cb(as[T](v))
	}, "")
	return func() { internal.EffectDispose(n) }
}

package internal

// NewEffectNode creates an Effect or Subscriber node and runs it once,
// synchronously, at creation time (spec §4.7: effects run eagerly since
// nothing ever reads an effect to pull it). lane selects which of the two
// flush-time dispatch queues subsequent re-runs land on (spec §4.9).
func NewEffectNode(ctx *Context, kind Kind, lane QueueLane, fn func() func(), onError func(error), name string) *Node {
	n := newNode(ctx, kind)
	n.lane = lane
	n.name = name
	n.onError = onError
	n.owner = NewOwner()
	if ctx.currentOwner != nil {
		ctx.currentOwner.addChild(n.owner)
	}
	n.owner.OnCleanup(func() { teardownEffectNode(n) })
	n.compute = func(_ *Node) (any, error) {
		return fn(), nil
	}

	runInitial(ctx, n)
	return n
}

// teardownEffectNode runs the pending cleanup and unlinks n's edges. It is
// registered as n.owner's cleanup, so it fires both when the node is
// disposed directly (EffectDispose) and when an ancestor owner disposes it
// as part of a wider disposeChildren sweep (e.g. a Computed re-running and
// tearing down effects created by its previous run).
func teardownEffectNode(n *Node) {
	if n.state == StateDisposed {
		return
	}
	n.state = StateDisposed
	if n.cleanup != nil {
		cleanup := n.cleanup
		n.cleanup = nil
		cleanup()
	}
	n.unlinkAll()
}

func runInitial(ctx *Context, n *Node) {
	if n.owner != nil {
		n.owner.disposeChildren()
	}
	n.markInputsStale()

	var result any
	var err error
	ctx.runCompute(n, n.owner, func() {
		result, err = ctx.invokeCompute(n)
	})
	n.pruneStaleInputs()

	if err != nil {
		effErr := &EffectError{Name: n.name, Err: err}
		if n.onError != nil {
			n.onError(effErr)
			return
		}
		if n.owner != nil && n.owner.handleError(effErr) {
			return
		}
		panic(effErr)
	}

	if cleanup, ok := result.(func()); ok {
		n.cleanup = cleanup
	}
}

// EffectDispose disposes the effect's owner subtree, which runs the
// registered teardownEffectNode cleanup (pending cleanup + edge unlink) for
// n along with every nested owner created by n's compute. If the node is
// still sitting in a queue when this runs, runEffectNode's disposed check
// skips it instead of running a disposed effect.
func EffectDispose(n *Node) {
	if n.owner != nil {
		n.owner.Dispose()
		return
	}
	teardownEffectNode(n)
}

// NewSubscriberNode wires a Subscriber onto an existing Readable node
// (Source or Computed): it fires cb synchronously with the current value
// on attach, then again — on the user lane — whenever the observed node's
// value actually changes (spec §6 Subscribe).
func NewSubscriberNode(ctx *Context, target *Node, read func(*Node) (any, error), cb func(any), name string) *Node {
	n := newNode(ctx, KindSubscriber)
	n.lane = LaneUser
	n.name = name
	n.owner = NewOwner()
	if ctx.currentOwner != nil {
		ctx.currentOwner.addChild(n.owner)
	}
	n.owner.OnCleanup(func() { teardownEffectNode(n) })

	n.compute = func(_ *Node) (any, error) {
		v, err := read(target)
		if err != nil {
			return nil, err
		}
		if !n.initialized || !n.equals(n.value, v) {
			n.value = v
			n.initialized = true
			cb(v)
		}
		return nil, nil
	}

	runInitial(ctx, n)
	return n
}

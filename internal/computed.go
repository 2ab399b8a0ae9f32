package internal

// NewComputed creates a lazily-evaluated derived node. It starts
// StateDirty and has never run — its compute closure executes for the
// first time on whichever Read/Peek observes it first (spec §4.2, P3:
// "a Computed created but never read never runs").
func NewComputed(ctx *Context, fn func() any, equals func(a, b any) bool, onError func(error), name string) *Node {
	n := newNode(ctx, KindComputed)
	n.state = StateDirty
	n.name = name
	n.onError = onError
	if equals != nil {
		n.equals = equals
	}
	n.owner = NewOwner()
	if ctx.currentOwner != nil {
		ctx.currentOwner.addChild(n.owner)
	}
	n.owner.OnCleanup(func() {
		n.state = StateDisposed
		n.unlinkAll()
	})
	n.compute = func(_ *Node) (any, error) {
		return fn(), nil
	}
	return n
}

// ComputedRead validates n (recomputing only if necessary) and returns its
// current value, linking it as a dependency of whatever is currently
// tracking.
func ComputedRead(n *Node) (any, error) {
	if n.state == StateDisposed {
		return nil, &UseAfterDisposeError{Name: n.name}
	}
	if err := ensureClean(n); err != nil {
		return nil, err
	}
	n.ctx.track(n)
	return n.value, nil
}

// ComputedPeek validates n like ComputedRead but does not record a
// dependency edge.
func ComputedPeek(n *Node) (any, error) {
	if n.state == StateDisposed {
		return nil, &UseAfterDisposeError{Name: n.name}
	}
	if err := ensureClean(n); err != nil {
		return nil, err
	}
	return n.value, nil
}

// ComputedDispose detaches n's owner subtree and its own edges.
func ComputedDispose(n *Node) {
	if n.state == StateDisposed {
		return
	}
	n.state = StateDisposed
	if n.owner != nil {
		n.owner.dispose()
	}
	n.unlinkAll()
}

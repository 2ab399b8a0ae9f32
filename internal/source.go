package internal

// NewSource creates a mutable root node, clean from the moment of
// creation (spec §4.1: a Source has no inputs and is never pulled).
func NewSource(ctx *Context, initial any, equals func(a, b any) bool, name string) *Node {
	n := newNode(ctx, KindSource)
	n.state = StateClean
	n.value = initial
	n.initialized = true
	n.name = name
	if equals != nil {
		n.equals = equals
	}
	return n
}

// SourceRead returns the current value, recording a dependency edge to
// the currently-computing consumer if one is tracking.
func SourceRead(n *Node) (any, error) {
	if n.state == StateDisposed {
		return nil, &UseAfterDisposeError{Name: n.name}
	}
	n.ctx.track(n)
	return n.value, nil
}

// SourcePeek returns the current value without recording a dependency
// edge (spec §4.1's untracked read).
func SourcePeek(n *Node) (any, error) {
	if n.state == StateDisposed {
		return nil, &UseAfterDisposeError{Name: n.name}
	}
	return n.value, nil
}

// SourceWrite stores v if it differs under n's equals, bumps n's version,
// pushes the change to dependents, and flushes immediately unless a batch
// is in progress (spec §4.1 write semantics, §4.6 batching).
func SourceWrite(n *Node, v any) error {
	if n.state == StateDisposed {
		return &UseAfterDisposeError{Name: n.name}
	}
	if n.equals(n.value, v) {
		return nil
	}

	n.value = v
	n.version = n.ctx.nextClock()
	push(n)

	if n.ctx.batchDepth == 0 {
		return n.ctx.flush()
	}
	return nil
}

// SourceDispose detaches n from the graph. A disposed Source can no
// longer be read or written.
func SourceDispose(n *Node) {
	if n.state == StateDisposed {
		return
	}
	n.state = StateDisposed
	n.unlinkAll()
}

package internal

// push runs the push phase from a changed producer (spec §4.5): every
// Computed reachable through an output edge is marked StateCheck (never
// recomputed here), and every Effect/Subscriber reachable is enqueued.
// Traversal stops descending into a branch already non-Clean, since that
// branch was already pushed through earlier in the same write/flush.
// Implemented iteratively (an explicit stack, not recursion) so a
// pathologically deep dependency chain cannot overflow the call stack
// (spec §9).
func push(producer *Node) {
	var stack []*Node

	visit := func(n *Node) {
		switch n.kind {
		case KindEffect, KindSubscriber:
			n.ctx.enqueue(n)
		default:
			if n.state == StateClean {
				n.state = StateCheck
				stack = append(stack, n)
			}
		}
	}

	for l := producer.outputsHead; l != nil; l = l.nextSub {
		visit(l.consumer)
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for l := n.outputsHead; l != nil; l = l.nextSub {
			visit(l.consumer)
		}
	}
}

// validateFrame is one level of the explicit-stack DFS ensureClean uses to
// validate a Computed's inputs without recursing on the native stack.
type validateFrame struct {
	node     *Node
	link     *Link
	mismatch bool
}

// ensureClean brings a Computed node fully up to date: StateDirty means
// "never computed, or known stale — recompute unconditionally"; StateCheck
// means "walk inputs depth-first and recompute only if one of them
// actually produced a new version" (spec §4.4, the glitch-free pull
// phase). Clean is a no-op. Encountering a node already StateComputing
// means a dependency cycle closed back on itself.
func ensureClean(root *Node) error {
	if root.state == StateClean {
		return nil
	}

	stack := []*validateFrame{{node: root, link: root.inputsHead}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		node := top.node

		switch node.state {
		case StateClean:
			stack = stack[:len(stack)-1]
			continue
		case StateComputing:
			stack = stack[:len(stack)-1]
			return &CycleError{Name: node.name}
		case StateDirty:
			stack = stack[:len(stack)-1]
			if err := recomputeComputed(node); err != nil {
				return err
			}
			continue
		}

		// StateCheck: walk inputs looking for a version mismatch.
		link := top.link
		if link == nil {
			stack = stack[:len(stack)-1]
			if top.mismatch {
				if err := recomputeComputed(node); err != nil {
					return err
				}
			} else {
				node.state = StateClean
			}
			continue
		}

		producer := link.producer
		if producer.kind != KindSource && producer.state != StateClean {
			stack = append(stack, &validateFrame{node: producer, link: producer.inputsHead})
			continue
		}

		if link.producerVersionAtLink != producer.version {
			top.mismatch = true
		}
		top.link = link.nextDep
	}

	return nil
}

// recomputeComputed re-runs a Computed's compute closure: disposes
// children from its previous run, marks current inputs stale-until-
// confirmed, runs the closure under tracking, prunes whatever inputs
// weren't re-read, and — only if the new value differs under the node's
// equals — bumps its version and pushes the change to its own consumers
// (spec §4.3, §4.4).
func recomputeComputed(n *Node) error {
	if n.owner != nil {
		n.owner.disposeChildren()
	}
	n.markInputsStale()
	n.state = StateComputing

	prevValue := n.value
	var next any
	var err error
	n.ctx.runCompute(n, n.owner, func() {
		next, err = n.ctx.invokeCompute(n)
	})

	if err != nil {
		// Abandon the in-flight compute: roll the candidate edges back to
		// the pre-compute snapshot instead of committing the partial read
		// set, and leave the node Dirty so the next Read retries the
		// compute rather than returning a zero value forever (spec §7 —
		// this is the Computed policy; Effect's "marks it Clean anyway" is
		// a different node kind and does not apply here).
		n.unmarkInputsStale()
		n.state = StateDirty
		computeErr := &ComputeError{Name: n.name, Err: err}
		if n.onError != nil {
			n.onError(computeErr)
			return nil
		}
		if n.owner != nil && n.owner.handleError(computeErr) {
			return nil
		}
		return computeErr
	}

	n.pruneStaleInputs()
	n.state = StateClean
	changed := !n.initialized || !n.equals(prevValue, next)
	n.value = next
	n.initialized = true
	if changed {
		n.version = n.ctx.nextClock()
		push(n)
	}
	return nil
}

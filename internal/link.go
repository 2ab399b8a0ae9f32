package internal

// Link is an edge from a producer (Source/Computed) to a consumer
// (Computed/Effect/Subscriber) that read it during a compute. It is
// version-stamped: a Clean consumer is valid only so long as every one of
// its Links still shows producerVersionAtLink == producer.version (the
// core glitch-freedom invariant, spec §3/§4.2).
type Link struct {
	producer *Node
	consumer *Node

	producerVersionAtLink int64

	// stale marks a Link that existed before the consumer's current
	// compute began and has not yet been re-confirmed (read again) during
	// it. Links still stale when the compute finishes are pruned (spec
	// §4.3's candidate/used discipline): this is what lets an input that
	// is no longer read fall out of the graph without reallocating every
	// surviving edge.
	stale bool

	prevDep, nextDep *Link
	prevSub, nextSub *Link
}

// linkTo records that consumer read producer during the compute currently
// running on consumer. A repeated read of the producer lastLinkedInput
// already points to is a no-op. Otherwise it reuses an existing Link
// between the same pair when one survived from a previous compute (spec
// §4.3: try the edge after lastLinkedInput first, then scan), only
// allocating a new Link when no candidate edge exists.
func linkTo(producer, consumer *Node) {
	if l := consumer.lastLinkedInput; l != nil && l.producer == producer {
		return
	}
	if l := consumer.lastLinkedInput; l != nil && l.nextDep != nil && l.nextDep.producer == producer {
		l = l.nextDep
		l.stale = false
		l.producerVersionAtLink = producer.version
		consumer.lastLinkedInput = l
		return
	}

	for l := consumer.inputsHead; l != nil; l = l.nextDep {
		if l.producer == producer {
			l.stale = false
			l.producerVersionAtLink = producer.version
			consumer.lastLinkedInput = l
			return
		}
	}

	l := &Link{
		producer:              producer,
		producerVersionAtLink: producer.version,
	}
	producer.appendOutput(l)
	consumer.appendInput(l)
	consumer.lastLinkedInput = l
}

// markInputsStale flags every current input edge of n as stale-until-
// confirmed, at the start of a fresh compute (spec §4.3 step 0).
func (n *Node) markInputsStale() {
	for l := n.inputsHead; l != nil; l = l.nextDep {
		l.stale = true
	}
	n.lastLinkedInput = nil
}

// unmarkInputsStale clears the stale flag set by markInputsStale without
// removing anything — used to abandon a compute that errored before
// finishing, so the pre-compute edge set survives untouched rather than
// having the partial read set committed (spec §7: a failed compute leaves
// the node's edges at their pre-compute snapshot).
func (n *Node) unmarkInputsStale() {
	for l := n.inputsHead; l != nil; l = l.nextDep {
		l.stale = false
	}
	n.lastLinkedInput = nil
}

// pruneStaleInputs removes every input edge still marked stale after a
// compute has finished reading — i.e. every producer n stopped reading
// this run (spec §4.3 step 2).
func (n *Node) pruneStaleInputs() {
	l := n.inputsHead
	for l != nil {
		next := l.nextDep
		if l.stale {
			n.removeInput(l)
			l.producer.removeOutput(l)
		}
		l = next
	}
}

// inputsVersionsMatch reports whether every input Link's recorded producer
// version still matches the producer's current version — the Clean-state
// fast check (spec §4.2).
func (n *Node) inputsVersionsMatch() bool {
	for l := n.inputsHead; l != nil; l = l.nextDep {
		if l.producerVersionAtLink != l.producer.version {
			return false
		}
	}
	return true
}

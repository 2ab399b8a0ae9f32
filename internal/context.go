package internal

// Context is the mutable state of one reactive graph: which node is
// currently computing (for dependency tracking), which owner is in scope
// (for disposal-tree attachment), the batching depth, the logical clock
// used to stamp Source/Computed versions, and the two effect-dispatch
// lanes (render, user). Exactly one goroutine is meant to touch a given
// Context (spec §5); see runtime.go for how one is obtained per goroutine.
type Context struct {
	currentConsumer *Node
	currentOwner    *Owner
	tracking        bool

	clock int64

	batchDepth int
	flushing   bool
	flushGen   int64

	renderQueue []*Node
	userQueue   []*Node

	reenqueueErr error

	onSettled       []func()
	onRenderSettled []func()
	onUserSettled   []func()

	rootOwner *Owner

	// MaxReenqueue bounds how many times a single effect may be
	// re-enqueued within one flush before the flush aborts with
	// ErrReenqueueLimit (spec §4.11). Defaults to 1000.
	MaxReenqueue int
}

// NewContext creates a fresh, empty graph.
func NewContext() *Context {
	ctx := &Context{tracking: true, MaxReenqueue: 1000}
	ctx.rootOwner = NewOwner()
	ctx.currentOwner = ctx.rootOwner
	return ctx
}

func (ctx *Context) nextClock() int64 {
	ctx.clock++
	return ctx.clock
}

// CurrentOwner returns the owner scope OnCleanup/OnError/ValueSlot
// operations attach to right now.
func (ctx *Context) CurrentOwner() *Owner {
	return ctx.currentOwner
}

// track records that ctx's current consumer read producer, provided
// tracking is active (spec §4.1's read semantics; Untrack disables it).
func (ctx *Context) track(producer *Node) {
	if ctx.tracking && ctx.currentConsumer != nil {
		linkTo(producer, ctx.currentConsumer)
	}
}

// runCompute executes fn with n/owner installed as the current
// consumer/owner, restoring the previous values on return (spec §4.1's
// nested-compute requirement — a Computed created inside another
// Computed's body must not pollute the outer one's tracking).
func (ctx *Context) runCompute(n *Node, owner *Owner, fn func()) {
	prevConsumer, prevOwner := ctx.currentConsumer, ctx.currentOwner
	ctx.currentConsumer, ctx.currentOwner = n, owner
	defer func() {
		ctx.currentConsumer, ctx.currentOwner = prevConsumer, prevOwner
	}()
	fn()
}

// runWithOwner installs owner as current (without changing the tracked
// consumer) for the duration of fn — used by Owner.Run / NewOwner scopes.
func (ctx *Context) runWithOwner(owner *Owner, fn func()) {
	prevOwner := ctx.currentOwner
	ctx.currentOwner = owner
	defer func() { ctx.currentOwner = prevOwner }()
	fn()
}

// RunWithOwner installs owner as the current owner for the duration of fn,
// recovering any panic into owner's error catchers (or re-panicking if
// none is registered) — the root package's Owner.Run is built on this.
func (ctx *Context) RunWithOwner(owner *Owner, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := panicToError(r)
			if !owner.handleError(err) {
				panic(r)
			}
		}
	}()
	ctx.runWithOwner(owner, fn)
}

// NewChildOwner creates a new Owner attached as a child of the current
// owner, so disposing the current scope disposes it too.
func (ctx *Context) NewChildOwner() *Owner {
	o := NewOwner()
	if ctx.currentOwner != nil {
		ctx.currentOwner.addChild(o)
	}
	return o
}

func (ctx *Context) runUntracked(fn func()) {
	prev := ctx.tracking
	ctx.tracking = false
	defer func() { ctx.tracking = prev }()
	fn()
}

// invokeCompute runs n.compute with panics recovered into err, so callers
// never need their own recover boilerplate.
func (ctx *Context) invokeCompute(n *Node) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	result, err = n.compute(n)
	return
}

func (ctx *Context) startBatch() {
	ctx.batchDepth++
}

// endBatch leaves a batch level, flushing once the outermost batch exits.
func (ctx *Context) endBatch() error {
	ctx.batchDepth--
	if ctx.batchDepth == 0 {
		return ctx.flush()
	}
	return nil
}

// StartBatch, EndBatch, RunUntracked, OnSettled, OnRenderSettled and
// OnUserSettled are the exported entry points the root package's Batch,
// Untrack and the On*Settled hooks are built from.

// StartBatch enters one level of batching.
func (ctx *Context) StartBatch() { ctx.startBatch() }

// EndBatch leaves one level of batching, flushing if it was the outermost.
func (ctx *Context) EndBatch() error { return ctx.endBatch() }

// RunUntracked runs fn with dependency tracking suspended.
func (ctx *Context) RunUntracked(fn func()) { ctx.runUntracked(fn) }

// OnSettled registers a one-shot callback fired after both the render and
// user queues have fully drained for the in-progress (or next) flush.
func (ctx *Context) OnSettled(fn func()) {
	ctx.onSettled = append(ctx.onSettled, fn)
}

// OnRenderSettled registers a one-shot callback fired once the render
// effects queued when the flush reached the render queue have run; render
// effects those runs enqueue run after it.
func (ctx *Context) OnRenderSettled(fn func()) {
	ctx.onRenderSettled = append(ctx.onRenderSettled, fn)
}

// OnUserSettled registers a one-shot callback fired once the user effects
// queued when the flush reached the user queue have run; user effects
// those runs enqueue run after it.
func (ctx *Context) OnUserSettled(fn func()) {
	ctx.onUserSettled = append(ctx.onUserSettled, fn)
}

// enqueue schedules an Effect/Subscriber node to run during the next
// flush, on the lane it was created with. Re-entering enqueue for a node
// already queued is a no-op (invariant: a node appears at most once per
// lane at a time).
func (ctx *Context) enqueue(n *Node) {
	if n.queued {
		return
	}
	if n.lastFlushGen != ctx.flushGen {
		n.lastFlushGen = ctx.flushGen
		n.reenqueued = 0
	}
	n.reenqueued++
	if n.reenqueued > ctx.MaxReenqueue {
		ctx.reenqueueErr = ErrReenqueueLimit
		return
	}
	n.queued = true
	if n.lane == LaneRender {
		ctx.renderQueue = append(ctx.renderQueue, n)
	} else {
		ctx.userQueue = append(ctx.userQueue, n)
	}
}

// flush drains the render queue to completion, then the user queue to
// completion, repeating both while user effects have left render work
// queued, and fires OnRenderSettled/OnUserSettled/OnSettled one-shot
// hooks at the right moments (spec §4.9). Re-entrant calls (a Write from
// inside an already-draining flush) are no-ops; the in-progress flush's
// loop picks the new work up. Effect errors from every lane are collected
// into one flat MultiError.
func (ctx *Context) flush() error {
	if ctx.flushing {
		return nil
	}
	ctx.flushing = true
	ctx.flushGen++
	ctx.reenqueueErr = nil
	defer func() { ctx.flushing = false }()

	var errs []error

	for {
		if err := ctx.drainLane(LaneRender); err != nil {
			errs = append(errs, err.(*MultiError).Errors...)
		}
		if ctx.reenqueueErr != nil {
			break
		}
		if err := ctx.drainLane(LaneUser); err != nil {
			errs = append(errs, err.(*MultiError).Errors...)
		}
		if ctx.reenqueueErr != nil || len(ctx.renderQueue) == 0 {
			break
		}
	}

	fireOnce(&ctx.onSettled)

	if ctx.reenqueueErr != nil {
		return ctx.reenqueueErr
	}
	if len(errs) > 0 {
		return &MultiError{Errors: errs}
	}
	return nil
}

func fireOnce(hooks *[]func()) {
	fns := *hooks
	*hooks = nil
	for _, fn := range fns {
		fn()
	}
}

func (ctx *Context) laneQueue(lane QueueLane) *[]*Node {
	if lane == LaneRender {
		return &ctx.renderQueue
	}
	return &ctx.userQueue
}

func (ctx *Context) laneSettled(lane QueueLane) *[]func() {
	if lane == LaneRender {
		return &ctx.onRenderSettled
	}
	return &ctx.onUserSettled
}

// drainLane processes exactly the items present in the lane at entry
// (even though chained effects may append more mid-loop), fires that
// lane's settled hooks, then silently drains whatever accumulated
// afterward until the lane is genuinely empty — without re-firing the
// hooks it already fired. This reproduces the exact dispatch/settled
// ordering the engine's behavioral tests require.
func (ctx *Context) drainLane(lane QueueLane) error {
	queueRef := ctx.laneQueue(lane)
	initialCount := len(*queueRef)

	var errs []error
	for i := 0; i < initialCount && len(*queueRef) > 0; i++ {
		n := (*queueRef)[0]
		*queueRef = (*queueRef)[1:]
		if err := ctx.runEffectNode(n); err != nil {
			errs = append(errs, err)
		}
		if ctx.reenqueueErr != nil {
			return joinErrs(errs)
		}
	}

	fireOnce(ctx.laneSettled(lane))

	for len(*queueRef) > 0 {
		n := (*queueRef)[0]
		*queueRef = (*queueRef)[1:]
		if err := ctx.runEffectNode(n); err != nil {
			errs = append(errs, err)
		}
		if ctx.reenqueueErr != nil {
			return joinErrs(errs)
		}
	}

	return joinErrs(errs)
}

func joinErrs(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &MultiError{Errors: errs}
}

// runEffectNode runs a single dequeued Effect/Subscriber: it first
// validates its inputs the way a Computed would and skips the run when no
// input produced a new version; otherwise cleanup from the previous run,
// then the compute closure, capturing the new cleanup.
func (ctx *Context) runEffectNode(n *Node) error {
	n.queued = false

	if n.state == StateDisposed {
		return nil
	}

	if n.inputsHead != nil {
		unchanged := true
		for l := n.inputsHead; l != nil && unchanged; l = l.nextDep {
			if l.producer.kind == KindComputed && ensureClean(l.producer) != nil {
				unchanged = false
			} else if l.producerVersionAtLink != l.producer.version {
				unchanged = false
			}
		}
		if unchanged {
			return nil
		}
	}

	if n.cleanup != nil {
		cleanup := n.cleanup
		n.cleanup = nil
		cleanup()
	}

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
			return nil
		}
		if n.owner != nil && n.owner.handleError(effErr) {
			return nil
		}
		return effErr
	}

	if cleanupFn, ok := result.(func()); ok {
		n.cleanup = cleanupFn
	}
	return nil
}

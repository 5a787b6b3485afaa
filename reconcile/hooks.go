package reconcile

// HookSlot holds one piece of widget-local state (useState/useRef
// equivalent), addressed by (instanceID, hookIndex).
type HookSlot struct {
	Value      interface{}
	Generation uint64
	Cleanup    func()
}

// hookBucket is the ordered slot list for one instance. Hook call order
// must be identical across renders of the same instance;
// HookOrderError below is how that invariant is enforced.
type hookBucket struct {
	slots      []HookSlot
	generation uint64
}

// HookRegistry owns all widget-local hook state, keyed by instance ID.
// It is exclusively mutated inside a render pass by the single active
// widget.
type HookRegistry struct {
	buckets map[InstanceID]*hookBucket
}

func newHookRegistry() *HookRegistry {
	return &HookRegistry{buckets: make(map[InstanceID]*hookBucket)}
}

// HookOrderError reports a fatal hook-call-order mismatch.
type HookOrderError struct {
	InstanceID InstanceID
	HookIndex  int
}

func (e *HookOrderError) Error() string {
	return "ZRUI_HOOK_ORDER: instance call order mismatch"
}

// Begin starts a render pass for inst, returning a Cursor used to read
// and write its hook slots in call order.
func (r *HookRegistry) Begin(inst InstanceID) *Cursor {
	b, ok := r.buckets[inst]
	if !ok {
		b = &hookBucket{}
		r.buckets[inst] = b
	}
	return &Cursor{registry: r, inst: inst, bucket: b}
}

// release drops all hook state (running cleanups) for an unmounted
// instance.
func (r *HookRegistry) release(inst InstanceID) {
	b, ok := r.buckets[inst]
	if !ok {
		return
	}
	for _, slot := range b.slots {
		if slot.Cleanup != nil {
			safeRunCleanup(slot.Cleanup)
		}
	}
	delete(r.buckets, inst)
}

// safeRunCleanup runs a cleanup function, swallowing any panic it
// raises so one widget's teardown can never break its siblings'.
func safeRunCleanup(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// Cursor walks one instance's hook slots in call order during a single
// render.
type Cursor struct {
	registry *HookRegistry
	inst     InstanceID
	bucket   *hookBucket
	index    int
}

// Slot returns the index-th hook slot, creating it with initial on
// first use. A call-order mismatch (a later call expecting a different
// kind of slot than what was recorded at that index in a prior render)
// is the caller's responsibility to detect by comparing Slot's
// returned Value's dynamic type; this layer only guarantees stable
// positional identity.
func (c *Cursor) Slot(initial interface{}) *HookSlot {
	idx := c.index
	c.index++
	if idx < len(c.bucket.slots) {
		return &c.bucket.slots[idx]
	}
	if idx != len(c.bucket.slots) {
		// A hook was requested out of order relative to the slots
		// already recorded: fatal, since slot identity depends on
		// call order staying fixed across renders.
		panic(&HookOrderError{InstanceID: c.inst, HookIndex: idx})
	}
	c.bucket.slots = append(c.bucket.slots, HookSlot{Value: initial, Generation: c.bucket.generation})
	return &c.bucket.slots[idx]
}

// Generation returns the instance's current state generation. Stale
// closures captured in an earlier generation compare their captured
// generation against this value and no-op if it has advanced,
// preventing a setState from a dropped/remounted instance from
// corrupting live state.
func (c *Cursor) Generation() uint64 { return c.bucket.generation }

// Bump advances the instance's generation counter, invalidating any
// setState closures captured before this call.
func (c *Cursor) Bump() { c.bucket.generation++ }

// End finalizes the render pass for this cursor's instance. Calling it
// with fewer hook calls than the previous render also fails fast with
// HookOrderError, since later-numbered slots become addressable by no
// call in this render and would silently retain stale state otherwise.
func (c *Cursor) End() error {
	if c.index != len(c.bucket.slots) {
		return &HookOrderError{InstanceID: c.inst, HookIndex: c.index}
	}
	return nil
}

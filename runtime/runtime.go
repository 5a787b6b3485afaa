// Package runtime wires the reconcile -> layout -> render -> zrdl
// pipeline to a Backend, parses ZREV event batches into routed focus
// state, and drives the host loop: awaitEvents -> applyEvents ->
// render -> submitDrawlist -> awaitNextBatch.
package runtime

import (
	"sync"
	"time"

	"github.com/rezi-tui/rezi/focus"
	"github.com/rezi-tui/rezi/layout"
	"github.com/rezi-tui/rezi/reconcile"
	"github.com/rezi-tui/rezi/render"
	"github.com/rezi-tui/rezi/vnode"
	"github.com/rezi-tui/rezi/zrdl"
	"github.com/rezi-tui/rezi/zrev"
)

// Options configures a Runtime. New uses every field as given; a
// zero-value field is not replaced by its DefaultOptions value. The
// type follows the teacher's
// Options{}/Default*Options() constructor pattern rather than a
// flag/env-parsing library (the core reads no environment variables
// per spec.md §6).
type Options struct {
	InitialCols    int32
	InitialRows    int32
	DebugSink      DebugSink
	ChordBindings  []focus.Binding
	BuilderVersion zrdl.Version
	ParseLimits    zrev.Limits
	RenderOptions  render.Options

	// OnTick and OnUserEvent receive zrev.KindTick/KindUser records,
	// which name no widget to route to (spec.md §5: "the core only
	// surfaces ... intents" for host-scheduled work). Nil means the
	// host doesn't care about that event kind.
	OnTick      func(dtMs uint32)
	OnUserEvent func(tag uint32, payload []byte)
}

// DefaultOptions returns a permissive configuration suitable for
// interactive use: an 80x24 initial viewport, a 256-entry ring debug
// sink, ZRDL v2 (cursor placement enabled), and zrev.DefaultLimits.
func DefaultOptions() Options {
	return Options{
		InitialCols:    80,
		InitialRows:    24,
		DebugSink:      NewRingSink(256),
		BuilderVersion: zrdl.Version2,
		ParseLimits:    zrev.DefaultLimits(),
		RenderOptions:  render.DefaultOptions(),
	}
}

// Runtime owns one backend engine instance and the full pipeline state
// needed to turn a render function into drawlists and route incoming
// events back into focus state, across the lifetime of Start/Stop.
type Runtime struct {
	mu sync.Mutex

	backend Backend
	opts    Options

	engineID    EngineID
	reconciler  *reconcile.Reconciler
	cache       *layout.Cache
	instances   []*reconcile.Instance
	chord       *focus.ChordMatcher
	unwrapState *zrev.TimeUnwrapState

	focusState State
	cols, rows int32
	viewportSet bool
	lastLayout  *layout.LayoutTree

	timer *frameTimer

	root   func(State) *vnode.Node
	stopCh chan struct{}
	wg     sync.WaitGroup
	running bool
}

// State is the application-owned state this runtime round-trips
// through each frame: the widget tree's focus bookkeeping, generalized
// so a host application is free to carry its own state alongside it.
type State = focus.State

// New creates a Runtime bound to backend. Call Start to begin driving
// the event/render loop.
func New(backend Backend, opts Options) *Runtime {
	return &Runtime{
		backend:     backend,
		opts:        opts,
		reconciler:  reconcile.NewReconciler(),
		cache:       layout.NewCache(),
		chord:       focus.NewChordMatcher(opts.ChordBindings),
		unwrapState: &zrev.TimeUnwrapState{},
		cols:        opts.InitialCols,
		rows:        opts.InitialRows,
		timer:       newFrameTimer(),
	}
}

// SetInitialViewport overrides the host-provided initial viewport.
// Per spec.md §6 this only takes effect before any resize event has
// arrived; once one has, the backend's own reporting is authoritative.
func (rt *Runtime) SetInitialViewport(cols, rows int32) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.viewportSet {
		return
	}
	rt.cols, rt.rows = cols, rows
}

// Start creates the backend engine, renders and submits the first
// frame, and begins the awaitEvents/applyEvents/render/submitDrawlist
// loop on its own goroutine. root is called once per frame with the
// current focus state to produce the next VNode tree.
func (rt *Runtime) Start(root func(State) *vnode.Node) error {
	rt.mu.Lock()
	if rt.running {
		rt.mu.Unlock()
		return nil
	}
	rt.root = root
	id, err := rt.backend.Create(BackendConfig{Cols: rt.cols, Rows: rt.rows})
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	rt.engineID = id
	rt.stopCh = make(chan struct{})
	rt.running = true
	rt.mu.Unlock()

	if err := rt.renderFrame(); err != nil {
		return err
	}

	rt.wg.Add(1)
	go rt.loop()
	return nil
}

// Stop ends the loop goroutine and destroys the backend engine.
// Idempotent, matching engineDestroy's idempotence requirement.
func (rt *Runtime) Stop() error {
	rt.mu.Lock()
	if !rt.running {
		rt.mu.Unlock()
		return nil
	}
	close(rt.stopCh)
	id := rt.engineID
	rt.running = false
	rt.mu.Unlock()

	// Destroy first: it unblocks a loop goroutine parked in PollEvents,
	// which then sees stopCh closed and returns.
	err := rt.backend.Destroy(id)
	rt.wg.Wait()
	return err
}

// PostUserEvent forwards a host-originated event to the backend.
// ErrRingFull surfaces to the caller rather than being dropped
// silently, per spec.md §5's backpressure rule.
func (rt *Runtime) PostUserEvent(tag uint32, payload []byte) error {
	rt.mu.Lock()
	id := rt.engineID
	rt.mu.Unlock()
	return rt.backend.PostUserEvent(id, tag, payload)
}

// Metrics returns a point-in-time snapshot of the rendered-frame count
// and frame timings; EventsProcessed and DroppedBatches are left zero.
func (rt *Runtime) Metrics() Metrics {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	frameTimes := make([]float64, len(rt.timer.frameTimes))
	copy(frameTimes, rt.timer.frameTimes)
	return Metrics{
		FramesRendered:  rt.timer.framesRendered,
		LastFrameTimeMs: rt.timer.lastFrameTimeMs,
		PeakFrameTimeMs: rt.timer.peakFrameTimeMs,
		AvgFrameTimeMs:  rt.timer.average(),
		FrameTimesMs:    frameTimes,
	}
}

func (rt *Runtime) loop() {
	defer rt.wg.Done()
	for {
		select {
		case <-rt.stopCh:
			return
		default:
		}

		rt.mu.Lock()
		id := rt.engineID
		rt.mu.Unlock()

		polled, err := rt.backend.PollEvents(id)
		if err != nil {
			rt.recordError("poll events failed: " + err.Error())
			continue
		}
		events, perr := zrev.Parse(polled.Bytes, rt.opts.ParseLimits, rt.unwrapState)
		if polled.Release != nil {
			polled.Release()
		}
		if perr != nil {
			rt.recordError("dropped zrev batch: " + perr.Error())
			continue
		}
		if polled.DroppedBatches > 0 {
			rt.recordError("backend reported dropped batches")
		}

		rt.applyEvents(events)
		if err := rt.renderFrame(); err != nil {
			rt.recordError("render failed: " + err.Error())
		}
	}
}

func (rt *Runtime) recordError(msg string) {
	if rt.opts.DebugSink != nil {
		rt.opts.DebugSink.Record(DebugRecord{Kind: DebugError, Message: msg})
	}
}

// applyEvents routes each event in wire order — the routing function
// for event N+1 observes the state produced by N, per spec.md §5's
// ordering guarantee. A KindKey event first reaches the focused
// instance's own widget-specific routing function (spec.md §4.8), so
// e.g. a modal dialog can trap Tab within its own ring; only a key the
// focused widget doesn't consume falls through to global Tab/Shift+Tab/
// Escape routing, and only then to the chord matcher.
func (rt *Runtime) applyEvents(events []zrev.Event) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	root := instanceOf(rt.instances)

	for _, ev := range events {
		switch ev.Kind {
		case zrev.KindResize:
			if ev.Resize != nil {
				rt.cols, rt.rows = int32(ev.Resize.Cols), int32(ev.Resize.Rows)
				rt.viewportSet = true
			}
		case zrev.KindKey:
			if ev.Key == nil || ev.Key.Action == zrev.KeyUp {
				continue
			}
			pk := focus.FromKeyEvent(*ev.Key)
			focused := findInstance(root, rt.focusState.FocusedID)
			if res, props, ok := routeFocusedWidget(focused, pk); ok && res.Consumed {
				rt.runEffect(deliverRouteResult(props, res), "widget routing handler error: ")
				continue
			}
			if next, consumed := focus.RouteGlobalKey(rt.focusState, pk); consumed {
				rt.focusState = next
				continue
			}
			if res := rt.chord.Match(pk, nowMs()); res.Status == focus.MatchComplete {
				if handler, ok := res.Binding.Handler.(focus.Effect); ok {
					rt.runEffect(handler, "chord handler error: ")
				}
			}
		case zrev.KindText:
			if ev.Text == nil {
				continue
			}
			focused := findInstance(root, rt.focusState.FocusedID)
			if res, props, ok := insertTextIntoFocusedInput(focused, string(ev.Text.Codepoint)); ok {
				rt.runEffect(deliverRouteResult(props, res), "text insert handler error: ")
			}
		case zrev.KindPaste:
			if ev.Paste == nil {
				continue
			}
			focused := findInstance(root, rt.focusState.FocusedID)
			if res, props, ok := insertTextIntoFocusedInput(focused, string(ev.Paste.Bytes)); ok {
				rt.runEffect(deliverRouteResult(props, res), "paste insert handler error: ")
			}
		case zrev.KindMouse:
			if ev.Mouse == nil || ev.Mouse.Kind != zrev.MouseDown {
				continue
			}
			id := hitTestWidgetID(rt.lastLayout, ev.Mouse.X, ev.Mouse.Y)
			inst := findInstance(root, id)
			if inst == nil || inst.VNode == nil || inst.VNode.Widget == nil {
				continue
			}
			if focusable, _ := inst.VNode.Widget.Props["focusable"].(bool); focusable {
				rt.focusState.FocusedID = id
			}
			if cb, ok := inst.VNode.Widget.Props["onRoute"].(func(focus.RouteResult)); ok {
				res := focus.RouteResult{NodeToActivate: strPtrLocal(id), Action: "click", Consumed: true}
				rt.runEffect(func() error { cb(res); return nil }, "mouse click handler error: ")
			}
		case zrev.KindTick:
			if ev.Tick != nil && rt.opts.OnTick != nil {
				rt.opts.OnTick(ev.Tick.DtMs)
			}
		case zrev.KindUser:
			if ev.User != nil && rt.opts.OnUserEvent != nil {
				rt.opts.OnUserEvent(ev.User.Tag, ev.User.Bytes)
			}
		}
	}
	rt.focusState = focus.ApplyPendingFocusChange(rt.focusState)
}

// runEffect runs eff (a no-op if nil) through focus.RunBatch, logging
// any recovered panic/error under msgPrefix rather than propagating it,
// per spec.md §7 class 3.
func (rt *Runtime) runEffect(eff focus.Effect, msgPrefix string) {
	if eff == nil {
		return
	}
	if err := focus.RunBatch([]focus.Effect{eff}); err != nil {
		rt.recordError(msgPrefix + err.Error())
	}
}

func (rt *Runtime) renderFrame() error {
	start := time.Now()

	rt.mu.Lock()
	tree := rt.root(rt.focusState)
	instances, _ := rt.reconciler.Reconcile(rt.instances, []*vnode.Node{tree})
	rt.instances = instances
	// The focus list is rebuilt from the instance tree this frame just
	// produced, so the next batch of key events routes against the
	// widgets actually on screen, not last frame's.
	rt.focusState.FocusList = focus.BuildFocusList(instanceOf(instances))
	cols, rows := rt.cols, rt.rows
	cache := rt.cache
	id := rt.engineID
	rt.mu.Unlock()

	if len(instances) == 0 {
		return nil
	}
	result := layout.Layout(instances[0], 0, 0, cols, rows, layout.AxisHorizontal, cache)
	if !result.OK {
		return &FatalError{Code: CodeInvalidProps, Detail: "layout failed"}
	}
	rt.mu.Lock()
	rt.lastLayout = result.Tree
	rt.mu.Unlock()

	builder := zrdl.NewBuilder(rt.opts.BuilderVersion)
	render.Render(result.Tree, builder, rt.opts.RenderOptions)
	built := builder.Build()
	if !built.OK {
		return &FatalError{Code: CodeZRDLLimit, Detail: "drawlist exceeded its byte cap"}
	}

	if err := rt.backend.SubmitDrawlist(id, built.Bytes); err != nil {
		return err
	}
	if err := rt.backend.Present(id); err != nil {
		return err
	}

	rt.mu.Lock()
	rt.timer.track(start)
	rt.mu.Unlock()
	return nil
}

func instanceOf(roots []*reconcile.Instance) *reconcile.Instance {
	if len(roots) == 0 {
		return nil
	}
	return roots[0]
}

// nowMs stands in for a wall-clock millisecond timestamp. Isolated in
// its own function so a future host-clock injection point (tests that
// need deterministic chord timing) has a single seam to replace.
func nowMs() uint32 {
	return uint32(time.Now().UnixMilli())
}

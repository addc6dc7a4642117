package reactivity

import (
	"errors"
	"sync/atomic"
)

// Sentinel errors for the reactivity system, matching the teacher's
// sentinel-error-over-panic convention (pkg/bubbly/tracker.go's
// ErrCircularDependency/ErrMaxDepthExceeded).
var (
	ErrEffectReentry    = errors.New("reactivity: effect re-entered itself")
	ErrMaxEffectDepth   = errors.New("reactivity: max effect nesting depth exceeded")
	ErrNilEffectFn      = errors.New("reactivity: effect function cannot be nil")
	ErrNilComputeFn     = errors.New("reactivity: computed function cannot be nil")
	ErrNilWatchCallback = errors.New("reactivity: watch callback cannot be nil")
)

// TrackEvent and TriggerEvent carry diagnostic info to OnTrack/OnTrigger
// hooks (spec §3.2, surfaced to user code as renderTracked/renderTriggered
// per spec §6.3).
type TrackEvent struct {
	Target any
	Key    any
}

type TriggerEvent struct {
	Target any
	Key    any
}

// Scheduler is invoked instead of re-running the effect body directly when
// one of its dependencies changes. Computed and the render effect both
// install a Scheduler; a plain effect with no Scheduler re-runs inline.
type Scheduler func(e *Effect)

// EffectOptions configures an Effect's behavior, mirroring spec §3.2's
// options record (lazy, scheduler, computed, onTrack, onTrigger, onStop).
type EffectOptions struct {
	// Lazy effects do not auto-run at creation; the caller runs them via
	// Run() the first time.
	Lazy bool
	// Computed marks this effect as a computed cell's inner effect so
	// trigger() runs it before non-computed effects (spec §3.2/§4.2.2).
	Computed  bool
	Scheduler Scheduler
	OnTrack   func(TrackEvent)
	OnTrigger func(TriggerEvent)
	OnStop    func()
}

var effectIDSeq int64

// Effect is a re-runnable unit of work. Re-running it first clears every
// dependency set it belonged to, then re-tracks from scratch — this is the
// central invariant of spec §3.2/§4.2.3.
type Effect struct {
	id      int64
	fn      func()
	options EffectOptions
	deps    []*depSet
	active  bool
}

// ID returns the effect's monotonic creation id. The scheduler sorts the
// pre-flush queue ascending by this id to guarantee parent-before-child
// ordering (spec §4.3/§5).
func (e *Effect) ID() int64 { return e.id }

// NewEffect creates and, unless EffectOptions.Lazy is set, immediately runs
// a new effect. fn is re-invoked whenever a dependency it read during its
// last run changes.
func NewEffect(fn func(), opts EffectOptions) (*Effect, error) {
	if fn == nil {
		return nil, ErrNilEffectFn
	}
	e := &Effect{
		id:      atomic.AddInt64(&effectIDSeq, 1),
		fn:      fn,
		options: opts,
		active:  true,
	}
	if !opts.Lazy {
		e.Run()
	}
	return e, nil
}

// Run executes the effect body, tracking every Ref/Store/Computed read
// during the call as a fresh dependency set. Re-entrant calls (the effect
// triggering itself, directly or through a dependency cycle) are no-ops,
// per spec's cycle-avoidance invariant.
func (e *Effect) Run() {
	if !e.active {
		return
	}
	if err := globalStack.push(e); err != nil {
		return
	}
	defer globalStack.pop()
	cleanup(e)
	e.fn()
}

// Stop deactivates the effect and removes it from every dependency set it
// currently belongs to. A stopped effect never re-runs, even if Run is
// called directly.
func (e *Effect) Stop() {
	if !e.active {
		return
	}
	e.active = false
	cleanup(e)
	if e.options.OnStop != nil {
		e.options.OnStop()
	}
}

// Active reports whether the effect has not been Stop()ped.
func (e *Effect) Active() bool { return e.active }

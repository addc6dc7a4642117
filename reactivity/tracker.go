// Package reactivity implements the tracked-state layer: transparent
// reactive containers, an effect scheduler with dependency sets, and the
// derived primitives (Computed, Watch) built on top of them.
//
// Go has no object-proxy machinery, so the "transparent read/write
// interception" the design calls for is realized with explicit handle types
// (Ref[T], Store) instead of a language-level Proxy. The tracking contract
// is unchanged: reading through a handle while an effect is running records
// a dependency edge; writing through a handle notifies every effect that
// read it since its last run.
package reactivity

import "sync"

// MaxEffectDepth bounds nested effect re-entry to catch runaway recursive
// dependency chains before they blow the goroutine stack.
const MaxEffectDepth = 100

// effectStack is the process-wide stack of currently-running effects. The
// top of the stack is the "active effect" that track() records reads
// against, mirroring spec's single implicit tracker.
//
// Unlike the teacher's per-goroutine DepTracker (pkg/bubbly/tracker.go),
// loom's scheduler guarantees at most one flush owner at a time (§5), so a
// single mutex-guarded stack is sufficient and keeps the dependency graph
// trivially inspectable in tests.
type effectStack struct {
	mu    sync.Mutex
	stack []*Effect
}

var globalStack = &effectStack{}

func (s *effectStack) push(e *Effect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, running := range s.stack {
		if running == e {
			return ErrEffectReentry
		}
	}
	if len(s.stack) >= MaxEffectDepth {
		return ErrMaxEffectDepth
	}
	s.stack = append(s.stack, e)
	return nil
}

func (s *effectStack) pop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *effectStack) active() *Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// ActiveEffect returns the effect currently being tracked, or nil.
// Exposed for Ref/Store/Computed to call track() without importing an
// internal cycle.
func ActiveEffect() *Effect {
	return globalStack.active()
}

// trackingPaused suppresses dependency collection; used by untracked reads
// (e.g. a computed's default setter, or a directive reading a prop once).
var trackingPaused int32

// PauseTracking and ResumeTracking bracket a block of reads that should not
// register dependencies on the active effect.
func PauseTracking() { pauseMu.Lock(); trackingPaused++; pauseMu.Unlock() }
func ResumeTracking() {
	pauseMu.Lock()
	if trackingPaused > 0 {
		trackingPaused--
	}
	pauseMu.Unlock()
}

var pauseMu sync.Mutex

func isTrackingPaused() bool {
	pauseMu.Lock()
	defer pauseMu.Unlock()
	return trackingPaused > 0
}

// depKey identifies one trackable slot: a target (the Ref or Store
// identity) plus a key within it (Refs use the sentinel valueKey; Stores
// use the field/index name).
type depKey struct {
	target any
	key    any
}

// valueKey is the sentinel key Refs track against, matching spec's "reads
// track on the sentinel key `value`".
const valueKey = "value"

// iterateKey is the sentinel key collection-shaped Stores track ownKeys
// enumeration against, per spec's ITERATE bucket.
const iterateKey = "__iterate__"

// depGraph is the global target ⇒ (key ⇒ effect set) map, spec §3.2.
type depGraph struct {
	mu   sync.Mutex
	sets map[depKey]*depSet
}

var graph = &depGraph{sets: make(map[depKey]*depSet)}

// depSet is the set of effects depending on one depKey, plus the reverse
// edge each effect keeps so cleanup is O(deps) per spec invariant.
type depSet struct {
	effects map[*Effect]struct{}
}

func (g *depGraph) setFor(k depKey) *depSet {
	g.mu.Lock()
	defer g.mu.Unlock()
	ds, ok := g.sets[k]
	if !ok {
		ds = &depSet{effects: make(map[*Effect]struct{})}
		g.sets[k] = ds
	}
	return ds
}

// track records that the active effect read (target, key).
func track(target any, key any) {
	if isTrackingPaused() {
		return
	}
	eff := globalStack.active()
	if eff == nil {
		return
	}
	ds := graph.setFor(depKey{target, key})
	ds.mu().Lock()
	if _, ok := ds.effects[eff]; !ok {
		ds.effects[eff] = struct{}{}
		eff.deps = append(eff.deps, ds)
	}
	ds.mu().Unlock()
	if eff.options.OnTrack != nil {
		eff.options.OnTrack(TrackEvent{Target: target, Key: key})
	}
}

// trigger notifies every effect depending on (target, key). Computed
// effects run before plain effects, per spec §4.2.2/§3.2.
func trigger(target any, key any) {
	ds, ok := lookup(target, key)
	if !ok {
		return
	}
	ds.mu().Lock()
	effects := make([]*Effect, 0, len(ds.effects))
	for e := range ds.effects {
		effects = append(effects, e)
	}
	ds.mu().Unlock()

	var computedEffects, plainEffects []*Effect
	for _, e := range effects {
		if e.options.Computed {
			computedEffects = append(computedEffects, e)
		} else {
			plainEffects = append(plainEffects, e)
		}
	}
	run := func(e *Effect) {
		if e == globalStack.active() {
			return // cycle guard: suppress self-trigger
		}
		if e.options.OnTrigger != nil {
			e.options.OnTrigger(TriggerEvent{Target: target, Key: key})
		}
		if e.options.Scheduler != nil {
			e.options.Scheduler(e)
		} else {
			e.Run()
		}
	}
	for _, e := range computedEffects {
		run(e)
	}
	for _, e := range plainEffects {
		run(e)
	}
}

func lookup(target, key any) (*depSet, bool) {
	graph.mu.Lock()
	defer graph.mu.Unlock()
	ds, ok := graph.sets[depKey{target, key}]
	return ds, ok
}

// cleanup removes an effect from every dep set it belongs to, as required
// before each re-run (spec §3.2 invariant).
func cleanup(e *Effect) {
	for _, ds := range e.deps {
		ds.mu().Lock()
		delete(ds.effects, e)
		ds.mu().Unlock()
	}
	e.deps = e.deps[:0]
}

var dsMu sync.Mutex

// mu returns a process-wide lock guarding this depSet's effects map. A
// single shared lock (rather than one per set) keeps depSet small; contention
// is a non-issue under the single-flush-owner discipline of §5.
func (ds *depSet) mu() *sync.Mutex { return &dsMu }

package reactivity

// FlushTiming selects when a watcher's callback runs relative to the
// scheduler's render-effect queue, per spec §4.2.5.
type FlushTiming int

const (
	// FlushPre runs before render effects in the same tick (the default).
	FlushPre FlushTiming = iota
	// FlushPost runs after render effects have drained.
	FlushPost
	// FlushSync runs synchronously, inline with the triggering write.
	FlushSync
)

// WatchOptions configures a Watch/WatchEffect call.
type WatchOptions struct {
	// Immediate runs the callback once immediately with the current value
	// (old value reported as the zero value of T).
	Immediate bool
	// Deep recursively reads every reachable field of the source so that
	// nested mutations (not just replacing the top-level value) trigger
	// the callback. Only meaningful for Store-shaped sources.
	Deep bool
	Flush FlushTiming
}

// StopHandle deactivates a watcher: its inner effect is removed from every
// dependency set, and (if mounted on an owning component) it's dropped from
// that component's auto-cleanup list.
type StopHandle func()

// InvalidationCallback is registered by a watch/watchEffect body via the
// onInvalidate parameter; it is invoked before the *next* run of the
// callback, and one final time when the watcher is stopped (spec §5
// "Cancellation").
type InvalidationCallback func(cleanup func())

// owningScheduler lets the runtime package route pre/post flush watchers
// through a specific component's scheduler instance instead of the global
// one; nil means use reactivity.Global.
var ownerScheduler *Scheduler

// SetOwnerScheduler overrides the scheduler watchers enqueue into. Intended
// for use by runtime.Instance so component-scoped watchers flush alongside
// that component's render effect; pass nil to restore the default.
func SetOwnerScheduler(s *Scheduler) { ownerScheduler = s }

func activeScheduler() *Scheduler {
	if ownerScheduler != nil {
		return ownerScheduler
	}
	return Global
}

// Watch observes a getter function and invokes cb with (newVal, oldVal)
// whenever a value it reads changes, per spec §4.2.5. The getter is run
// once up front (untracked by the caller's surrounding effect, if any) to
// seed oldValue; Immediate additionally fires cb right away.
func Watch[T any](getter func() T, cb func(newVal, oldVal T, onInvalidate InvalidationCallback), opts WatchOptions) StopHandle {
	if cb == nil {
		panic(ErrNilWatchCallback)
	}

	var oldValue T
	var hasOld bool
	var cleanupFn func()

	invalidate := func() {
		if cleanupFn != nil {
			fn := cleanupFn
			cleanupFn = nil
			fn()
		}
	}
	onInvalidate := func(fn func()) { cleanupFn = fn }

	job := func() {
		newValue := runGetter(getter, opts.Deep)
		if opts.Deep || !hasOld || !refDefaultEqual(newValue, oldValue) {
			invalidate()
			old := oldValue
			oldValue = newValue
			hasOld = true
			cb(newValue, old, onInvalidate)
		}
	}

	eff, _ := NewEffect(func() {
		oldValue = runGetter(getter, opts.Deep)
		hasOld = true
	}, EffectOptions{Lazy: true, Computed: true, Scheduler: func(e *Effect) {
		switch opts.Flush {
		case FlushSync:
			job()
		case FlushPost:
			activeScheduler().QueuePostFlushCb(job)
		default:
			activeScheduler().QueueJob(e, e.ID(), job)
		}
	}})

	eff.Run() // prime oldValue by running once without firing cb
	if opts.Immediate {
		var zero T
		cb(oldValue, zero, onInvalidate)
	}

	return func() {
		invalidate()
		eff.Stop()
	}
}

// WatchRef is a convenience wrapper for the common case of watching a
// single Ref, matching the teacher's Watch(ref, callback) ergonomics
// (pkg/bubbly/watch.go) layered on top of the general Watch above.
func WatchRef[T any](source *Ref[T], cb func(newVal, oldVal T), opts ...WatchOptions) StopHandle {
	o := WatchOptions{}
	if len(opts) > 0 {
		o = opts[0]
	}
	return Watch(func() T { return source.Get() }, func(n, old T, _ InvalidationCallback) {
		cb(n, old)
	}, o)
}

// runGetter evaluates getter. When deep is requested and the result is a
// *Store, it also reads every reachable field via Store.Walk, so a tracked
// run records the nested fields as dependencies; other result types are
// returned without traversal — deep traversal for arbitrary Refs of
// structs isn't meaningful without reflection-based walking, which Store
// provides explicitly (see store.go).
func runGetter[T any](getter func() T, deep bool) T {
	v := getter()
	if s, ok := any(v).(*Store); ok && deep {
		s.Walk()
	}
	return v
}

package reactivity

// WatchEffectFn is a self-contained reactive effect body. It receives an
// onInvalidate registrar so long-running side effects (timers, in-flight
// requests) can clean up before the next run or on Stop, per spec §4.2.5
// point 1 ("Function with no callback → treated as a self-contained effect;
// supports an onInvalidate registration").
type WatchEffectFn func(onInvalidate InvalidationCallback)

// WatchEffect runs fn immediately, tracking every Ref/Computed/Store field
// it reads, and re-runs it whenever any of them change. Grounded on
// pkg/bubbly/watch_effect.go's WatchEffect, generalized to ambient
// effect-stack tracking instead of an explicit dependency list argument.
func WatchEffect(fn WatchEffectFn, opts ...WatchOptions) StopHandle {
	o := WatchOptions{}
	if len(opts) > 0 {
		o = opts[0]
	}
	var cleanupFn func()
	invalidate := func() {
		if cleanupFn != nil {
			c := cleanupFn
			cleanupFn = nil
			c()
		}
	}
	onInvalidate := func(f func()) { cleanupFn = f }

	body := func() {
		invalidate()
		fn(onInvalidate)
	}

	eff, _ := NewEffect(body, EffectOptions{Lazy: true, Scheduler: func(e *Effect) {
		switch o.Flush {
		case FlushSync:
			e.runBody()
		case FlushPost:
			activeScheduler().QueuePostFlushCb(func() { e.runBody() })
		default:
			activeScheduler().QueueJob(e, e.ID(), func() { e.runBody() })
		}
	}})
	eff.Run()

	return func() {
		invalidate()
		eff.Stop()
	}
}

// runBody re-invokes the effect's original function, used by schedulers
// that want to run the tracked body directly (as opposed to Run(), which is
// equivalent but named for the generic Effect API).
func (e *Effect) runBody() { e.Run() }

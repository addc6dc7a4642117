package reactivity

import "sync"

// Computed is a lazy, cached derived value. Its getter runs at most once
// between any two dependency updates: reading it when the cache is dirty
// recomputes and re-tracks dependencies; reading it otherwise returns the
// cached value with no re-evaluation.
//
// Grounded on pkg/bubbly/computed.go's double-checked-locking cache, kept
// intact; the dependency-tracking strategy is changed from the teacher's
// explicit globalTracker.BeginTracking/Track/EndTracking calls to the
// ambient effect-stack model in tracker.go/effect.go, so a Computed's inner
// Effect is just "an effect whose scheduler marks dirty instead of
// recomputing" (spec §4.2.4) rather than a bespoke tracking context.
type Computed[T any] struct {
	mu     sync.RWMutex
	getter func() T
	setter func(T)
	cache  T
	dirty  bool
	effect *Effect
}

// NewComputed creates a read-only computed cell. fn is not invoked until
// the first Get().
func NewComputed[T any](fn func() T) *Computed[T] {
	return NewWritableComputed(fn, nil)
}

// NewWritableComputed creates a computed cell with an explicit setter. The
// setter is invoked on Set(); by default (setter == nil) Set does nothing
// and emits no diagnostic.
func NewWritableComputed[T any](fn func() T, setter func(T)) *Computed[T] {
	if fn == nil {
		panic(ErrNilComputeFn)
	}
	c := &Computed[T]{getter: fn, setter: setter, dirty: true}
	c.effect, _ = NewEffect(func() {
		c.mu.Lock()
		c.cache = c.getter()
		c.dirty = false
		c.mu.Unlock()
	}, EffectOptions{
		Lazy:     true,
		Computed: true,
		Scheduler: func(e *Effect) {
			c.mu.Lock()
			wasDirty := c.dirty
			c.dirty = true
			c.mu.Unlock()
			if !wasDirty {
				trigger(c, valueKey)
			}
		},
	})
	return c
}

// Get returns the cached value, recomputing first if dirty. Tracks a
// dependency on this computed the same way a Ref would, so computed chains
// (computed→computed→render effect) propagate invalidation correctly.
func (c *Computed[T]) Get() T {
	track(c, valueKey)
	c.mu.RLock()
	dirty := c.dirty
	c.mu.RUnlock()
	if dirty {
		c.effect.Run()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache
}

// Set invokes the writable computed's setter, if one was configured.
func (c *Computed[T]) Set(value T) {
	if c.setter != nil {
		c.setter(value)
	}
}

// Stop detaches the computed's inner effect from the dependency graph,
// releasing its dependencies. A stopped computed keeps returning its last
// cached value forever.
func (c *Computed[T]) Stop() { c.effect.Stop() }

// Value returns the cached value boxed as any, same unwrapping contract as
// Ref.Value — lets the render context treat Ref and Computed uniformly.
func (c *Computed[T]) Value() any { return c.Get() }

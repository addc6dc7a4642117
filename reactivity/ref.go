package reactivity

import "sync"

// Ref is a single-cell tracked container holding a mutable value of type T.
// Reads while an effect is running record a dependency on the ref's
// sentinel "value" slot; writes that change the value (compared by
// identity/equality) notify every effect that depends on it.
//
// Grounded on the teacher's generic Ref[T] (pkg/bubbly/ref.go), generalized
// from a plain mutex-guarded cell into a tracked one per spec §3.2.
type Ref[T any] struct {
	mu    sync.RWMutex
	value T
	equal func(a, b T) bool
}

// NewRef creates a reactive reference with the given initial value.
func NewRef[T any](value T) *Ref[T] {
	return &Ref[T]{value: value}
}

// NewRefWithEqual is like NewRef but uses eq to decide whether a Set should
// trigger (the default, used by NewRef, is refDefaultEqual, i.e.
// reflect.DeepEqual).
func NewRefWithEqual[T any](value T, eq func(a, b T) bool) *Ref[T] {
	return &Ref[T]{value: value, equal: eq}
}

// Get returns the current value, tracking a dependency on it if called
// while an effect (or computed, or watcher) is running.
func (r *Ref[T]) Get() T {
	track(r, valueKey)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Peek returns the current value without tracking a dependency. Useful
// inside an effect body when a read should not make the effect re-run.
func (r *Ref[T]) Peek() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set updates the value. If the new value differs from the old one it
// triggers every effect depending on this ref.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	old := r.value
	changed := !r.equalLocked(old, value)
	if changed {
		r.value = value
	}
	r.mu.Unlock()
	if changed {
		trigger(r, valueKey)
	}
}

func (r *Ref[T]) equalLocked(a, b T) bool {
	if r.equal != nil {
		return r.equal(a, b)
	}
	return refDefaultEqual(a, b)
}

// AddDependent records a dependency of the currently running effect on
// this ref, exactly as Get does — the track/trigger graph owns that edge,
// so e itself is not used, and nothing is recorded when no effect is
// running. Computed has no counterpart method.
func (r *Ref[T]) AddDependent(e *Effect) {
	track(r, valueKey)
}

// Value returns the current value boxed as any, tracking a dependency like
// Get. Setup functions are generic-free (map[string]any), so a template
// expression has no way to call a generic Get[T]() directly; the render
// context unwraps anything satisfying this interface instead, mirroring
// Vue's automatic ref-unwrapping in template expressions.
func (r *Ref[T]) Value() any { return r.Get() }

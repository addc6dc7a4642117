package reactivity

import (
	"sync"
)

// Store is the Go substitute for spec §4.2.1's transparent object-proxy
// wrapper over a plain object/array/map. Go has no proxy machinery, so
// instead of intercepting arbitrary field access, Store exposes an explicit
// map-shaped handle with tracked Get/Set/Delete/Keys/Has operations — the
// "explicit handle type" substitution spec §9 calls for.
//
// Non-reactive values stored under a key are returned as-is; reactive
// values (another *Store, a *Ref[T], a *Computed[T]) are returned directly
// so identity is preserved across repeated Gets, matching spec's
// "tracked wrappers are idempotent" invariant for the cases Go's type
// system can express without an any→any proxy cache.
type Store struct {
	mu       *sync.RWMutex
	fields   map[string]any
	readOnly bool
	shallow  bool
}

// NewStore wraps the given initial fields in a tracked Store.
func NewStore(initial map[string]any) *Store {
	fields := make(map[string]any, len(initial))
	for k, v := range initial {
		fields[k] = v
	}
	return &Store{mu: &sync.RWMutex{}, fields: fields}
}

// NewShallowStore creates a Store whose Get does not recursively wrap
// nested maps into child Stores — only top-level reads are tracked, per
// spec's "shallow variant tracks only top-level reads".
func NewShallowStore(initial map[string]any) *Store {
	s := NewStore(initial)
	s.shallow = true
	return s
}

// ReadOnly returns a read-only view over the same backing fields, sharing
// the original Store's mutex (not a copy of it) so the two views stay
// mutually exclusive over the one underlying map. Writes through the
// returned Store are rejected; per spec, this is used for props objects
// passed to a child component.
func (s *Store) ReadOnly() *Store {
	return &Store{mu: s.mu, fields: s.fields, readOnly: true, shallow: s.shallow}
}

// Get reads a field, tracking (s, key) as a dependency. If the stored value
// is itself a map[string]any and the store is not shallow, it is lazily
// wrapped into a child Store and the wrapper is cached back into fields so
// repeated Gets return the identical child Store (proxy-identity
// invariant).
func (s *Store) Get(key string) any {
	track(s, key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.fields[key]
	if !ok {
		return nil
	}
	if s.shallow {
		return v
	}
	if nested, ok := v.(map[string]any); ok {
		wrapped := NewStore(nested)
		s.fields[key] = wrapped
		return wrapped
	}
	return v
}

// Has reports whether key is present, tracking a dependency the same as
// spec's `has` trap.
func (s *Store) Has(key string) bool {
	track(s, key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.fields[key]
	return ok
}

// Keys returns the field names, tracking the iteration sentinel so adding
// or removing a key re-runs effects that enumerated this store (spec's
// ITERATE bucket).
func (s *Store) Keys() []string {
	track(s, iterateKey)
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	return keys
}

// Set writes a field. ADD (key previously absent) additionally triggers the
// iteration sentinel so `Keys()`-dependent effects re-run; SET of an
// existing key only triggers that key's own dependents. Writing to a
// read-only store is a silent no-op; no diagnostic is emitted.
func (s *Store) Set(key string, value any) {
	if s.readOnly {
		return
	}
	// Note: spec's "if the existing value is a ref and the new value is
	// not, forward the write to the ref's value" describes JS's untyped
	// property slots. Store fields are typed as `any`, and a *Ref[T]'s T is
	// erased once boxed into that slot, so there is no generic way to
	// forward an arbitrary `any` into a *Ref[T]'s Set(T) without knowing T.
	// Callers that want a field to behave like a ref should store the
	// *Ref[T] itself and call ref.Set directly; Store.Set always replaces
	// the slot's value, ref or not.
	s.mu.Lock()
	_, existed := s.fields[key]
	old := s.fields[key]
	changed := !existed || !deepEqualAny(old, value)
	if changed {
		s.fields[key] = value
	}
	s.mu.Unlock()
	if !existed {
		trigger(s, key)
		trigger(s, iterateKey)
		return
	}
	if changed {
		trigger(s, key)
	}
}

// Delete removes a field, triggering both that key's dependents and the
// iteration sentinel (spec's DELETE op).
func (s *Store) Delete(key string) {
	if s.readOnly {
		return
	}
	s.mu.Lock()
	_, existed := s.fields[key]
	if existed {
		delete(s.fields, key)
	}
	s.mu.Unlock()
	if existed {
		trigger(s, key)
		trigger(s, iterateKey)
	}
}

// Walk reads every reachable field recursively, used by deep watchers
// (spec §4.2.5 point 2) to collect a full set of dependencies in one pass.
// A visited set (by Store pointer identity) breaks cycles, per spec §9's
// "deep traversal... maintain a visited set keyed by tracked-container
// identity".
func (s *Store) Walk() {
	walkStore(s, make(map[*Store]bool))
}

func walkStore(s *Store, visited map[*Store]bool) {
	if s == nil || visited[s] {
		return
	}
	visited[s] = true
	for _, k := range s.Keys() {
		v := s.Get(k)
		if child, ok := v.(*Store); ok {
			walkStore(child, visited)
		}
	}
}

func deepEqualAny(a, b any) bool {
	return refDefaultEqual(a, b)
}

// Package runtime wires the compiler's render programs and the
// renderer's reconciler into long-lived component instances: setup
// invocation, the render effect, lifecycle hooks, provide/inject, and
// error capture — spec.md §4.2/§4.3/§4.5/§6.3/§7 realized over the
// reactivity and renderer packages built earlier. Grounded throughout on
// pkg/bubbly/{component,context,render_context,lifecycle,provide_inject,
// component_errors,key_bindings}.go, generalized from the teacher's
// string-View() component model to a retained vnode.Node subtree driven by
// renderer.Options.Patch.
package runtime

import "github.com/loomui/loom/reactivity"

// setupHost is the non-generic surface a running setup function's
// package-level helpers (Provide, Inject, OnMounted, ...) need from
// whichever Instance[N, E] is currently executing its Setup — spec.md
// §6.3's "registration inside setup appends to the array bound to
// currentInstance" names exactly this global-current-instance pattern
// (Vue's Composition API), generalized here into an interface so one
// non-generic stack can hold instances of any N/E pairing.
type setupHost interface {
	instanceErrorHandler
	instanceHooks() *hooks
	provide(key string, value any)
	inject(key string, def any) any
	propsStore() *reactivity.Store
	attrsMap() map[string]any
	emitEvent(event string, args ...any)
	bindKey(kb KeyBinding)
}

var currentStack []setupHost

func pushCurrent(h setupHost) { currentStack = append(currentStack, h) }

func popCurrent() { currentStack = currentStack[:len(currentStack)-1] }

func current() setupHost {
	if len(currentStack) == 0 {
		return nil
	}
	return currentStack[len(currentStack)-1]
}

// OnBeforeCreate, OnCreated, ... register a hook on the instance currently
// running its Setup function. Calling one outside of Setup is a silent
// no-op, matching spec.md's guidance that lifecycle registration is only
// meaningful during setup.
func OnBeforeCreate(fn func()) { addHook(func(h *hooks) { h.BeforeCreate = append(h.BeforeCreate, fn) }) }
func OnCreated(fn func())      { addHook(func(h *hooks) { h.Created = append(h.Created, fn) }) }
func OnBeforeMount(fn func())  { addHook(func(h *hooks) { h.BeforeMount = append(h.BeforeMount, fn) }) }
func OnMounted(fn func())      { addHook(func(h *hooks) { h.Mounted = append(h.Mounted, fn) }) }
func OnBeforeUpdate(fn func()) { addHook(func(h *hooks) { h.BeforeUpdate = append(h.BeforeUpdate, fn) }) }
func OnUpdated(fn func())      { addHook(func(h *hooks) { h.Updated = append(h.Updated, fn) }) }
func OnBeforeUnmount(fn func()) {
	addHook(func(h *hooks) { h.BeforeUnmount = append(h.BeforeUnmount, fn) })
}
func OnUnmounted(fn func())   { addHook(func(h *hooks) { h.Unmounted = append(h.Unmounted, fn) }) }
func OnActivated(fn func())   { addHook(func(h *hooks) { h.Activated = append(h.Activated, fn) }) }
func OnDeactivated(fn func()) { addHook(func(h *hooks) { h.Deactivated = append(h.Deactivated, fn) }) }

func OnRenderTracked(fn func(reactivity.TrackEvent)) {
	addHook(func(h *hooks) { h.RenderTracked = append(h.RenderTracked, fn) })
}
func OnRenderTriggered(fn func(reactivity.TriggerEvent)) {
	addHook(func(h *hooks) { h.RenderTriggered = append(h.RenderTriggered, fn) })
}

// OnErrorCaptured registers a handler on the error-capture chain (spec.md
// §7); returning true from fn halts further propagation up the parent
// chain.
func OnErrorCaptured(fn func(err error) bool) {
	addHook(func(h *hooks) { h.ErrorCaptured = append(h.ErrorCaptured, fn) })
}

func addHook(register func(*hooks)) {
	if h := current(); h != nil {
		register(h.instanceHooks())
	}
}

// Provide stores value under key in the current instance's provides map,
// visible to Inject calls made by any descendant (spec.md §4.5).
func Provide(key string, value any) {
	if h := current(); h != nil {
		h.provide(key, value)
	}
}

// Inject walks the current instance's parent chain for the nearest
// provider of key, returning def if none provided it.
func Inject(key string, def any) any {
	if h := current(); h != nil {
		return h.inject(key, def)
	}
	return def
}

// ProvideKey is a type-safe provide/inject key, kept with the teacher's
// exact generic-key ergonomics (pkg/bubbly/provide_inject.go) per
// SPEC_FULL.md §9's supplemented-features list.
type ProvideKey[T any] struct{ key string }

func NewProvideKey[T any](key string) ProvideKey[T] { return ProvideKey[T]{key: key} }

func ProvideTyped[T any](key ProvideKey[T], value T) { Provide(key.key, value) }

func InjectTyped[T any](key ProvideKey[T], def T) T {
	v := Inject(key.key, def)
	if t, ok := v.(T); ok {
		return t
	}
	return def
}

// Emit sends a custom event from the current instance up to whichever
// "on<Event>" prop handler its parent template bound, per spec.md §4.2's
// setup(props, {attrs, slots, emit}) contract.
func Emit(event string, args ...any) {
	if h := current(); h != nil {
		h.emitEvent(event, args...)
	}
}

// CurrentProps and CurrentAttrs expose the running instance's props/attrs
// split (spec.md §4.2 step 2) to a Setup function without threading a
// context parameter through every call — the same ergonomics as Vue's
// composition API free functions, adapted to this package's `runtime.`
// namespace instead of calling them directly on a `*Context` receiver like
// the teacher does.
func CurrentProps() *reactivity.Store {
	if h := current(); h != nil {
		return h.propsStore()
	}
	return nil
}

func CurrentAttrs() map[string]any {
	if h := current(); h != nil {
		return h.attrsMap()
	}
	return nil
}

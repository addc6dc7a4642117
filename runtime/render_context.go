package runtime

import "github.com/loomui/loom/vnode"

// renderContextAccessor is the minimal surface renderContext needs from an
// Instance[N, E] without depending on its type parameters.
type renderContextAccessor interface {
	stateValue(name string) (any, bool)
	propValue(name string) (any, bool)
	attrsMap() map[string]any
	slotsMap() map[string]vnode.SlotFn
	globalValue(name string) (any, bool)
}

// renderContext implements compiler.RenderContext (Get(name string) any)
// over a running instance, per spec.md §4.4.7's read-priority chain:
// setup-state, declared prop, `$`-prefixed built-in, app-context global.
// This port has no separate "data" tier (options-API `data()` is not part
// of this component model) and no access-type cache — every Get call walks
// the chain directly, which is acceptable since a render pass already
// re-evaluates every expression from scratch.
type renderContext struct {
	inst renderContextAccessor
}

func newRenderContext(inst renderContextAccessor) *renderContext {
	return &renderContext{inst: inst}
}

func (rc *renderContext) Get(name string) any {
	if v, ok := rc.inst.stateValue(name); ok {
		return unwrapReactive(v)
	}
	if v, ok := rc.inst.propValue(name); ok {
		return unwrapReactive(v)
	}
	if len(name) > 0 && name[0] == '$' {
		if v, ok := rc.builtin(name); ok {
			return v
		}
	}
	if v, ok := rc.inst.globalValue(name); ok {
		return unwrapReactive(v)
	}
	return nil
}

// reactiveValuer is satisfied by *reactivity.Ref[T] and *reactivity.Computed[T]
// (their Value() methods), letting setup-state hold either a plain value or
// a reactive cell under the same map[string]any key — generics preclude a
// single concrete type here, so this is a structural interface instead.
type reactiveValuer interface{ Value() any }

// unwrapReactive dereferences a Ref/Computed read from setup-state into its
// underlying value, tracking a dependency on it in the process since
// Value() delegates to Get(). Template expressions never see the cell
// itself, matching Vue's automatic ref-unwrapping in templates.
func unwrapReactive(v any) any {
	if rv, ok := v.(reactiveValuer); ok {
		return rv.Value()
	}
	return v
}

func (rc *renderContext) builtin(name string) (any, bool) {
	switch name {
	case "$attrs":
		return rc.inst.attrsMap(), true
	case "$slots":
		return rc.inst.slotsMap(), true
	default:
		return nil, false
	}
}

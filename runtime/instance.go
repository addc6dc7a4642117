package runtime

import (
	"reflect"
	"strings"

	"github.com/loomui/loom/reactivity"
	"github.com/loomui/loom/renderer"
	"github.com/loomui/loom/vnode"
)

// Instance is a running component: the props/attrs split, the setup-state
// record, the lifecycle hook slices, the provides map, and the render
// effect wired to reactivity.Global — spec.md §4.2/§4.3/§4.4.3 for the
// concrete N/E pairing an application's HostBackend uses. Grounded on
// pkg/bubbly/component.go's Component struct, generalized from its
// string-View()-plus-diff model to driving renderer.Options.Patch against
// a retained vnode.Node subtree.
type Instance[N any, E any] struct {
	opts     *renderer.Options[N, E]
	registry *Registry
	def      ComponentOptions
	parent   setupHost

	propsWrite *reactivity.Store
	propsRead  *reactivity.Store
	attrs      map[string]any
	slots      map[string]vnode.SlotFn
	state      map[string]any
	provides   map[string]any

	hooks       hooks
	keyBindings []KeyBinding
	effect      *reactivity.Effect

	vn        *vnode.Node
	subtree   *vnode.Node
	container E
	anchor    N

	onUnhandled func(error)
}

// NewFactory builds a renderer.ComponentFactory[N, E] that resolves a
// component vnode's Component.Name against registry and constructs an
// Instance to own it — this is what compiler.program.go's renderElement
// leaves unset (vnode.ComponentDef.Setup is nil straight out of Render);
// resolveComponents below fills it in on every freshly-rendered subtree
// before handing it to renderer.Options.Patch, since the compiler has no
// notion of a component registry.
func NewFactory[N any, E any](registry *Registry, opts *renderer.Options[N, E], onUnhandled func(error)) renderer.ComponentFactory[N, E] {
	return func(vn *vnode.Node, parent any) renderer.ComponentInstance[N, E] {
		def, ok := registry.Resolve(vn.Component.Name)
		if !ok && opts.OnError != nil {
			opts.OnError(&CapturedError{
				Err:       errUnknownComponent(vn.Component.Name),
				Source:    ErrorSourceRender,
				Component: vn.Component.Name,
			})
		}
		var p setupHost
		if ph, ok := parent.(setupHost); ok {
			p = ph
		}
		return &Instance[N, E]{
			opts:        opts,
			registry:    registry,
			def:         def,
			parent:      p,
			provides:    map[string]any{},
			onUnhandled: onUnhandled,
		}
	}
}

func errUnknownComponent(name string) error {
	return &unknownComponentError{name: name}
}

type unknownComponentError struct{ name string }

func (e *unknownComponentError) Error() string {
	return "runtime: no component registered under name " + e.name
}

// resolveComponents walks a freshly-rendered subtree assigning a
// ComponentFactory to any KindComponent node the compiler left bare,
// reusing inst's own registry/opts/error-handler so descendants join the
// same app. Slot-fn subtrees are resolved lazily when invoked (they are
// rendered by whichever parent calls them, not walked here).
func (inst *Instance[N, E]) resolveComponents(n *vnode.Node) {
	if n == nil {
		return
	}
	if n.Kind == vnode.KindComponent && n.Component.Setup == nil {
		n.Component.Setup = NewFactory[N, E](inst.registry, inst.opts, inst.onUnhandled)
	}
	for _, c := range n.Children.Array {
		inst.resolveComponents(c)
	}
}

// --- renderer.ComponentInstance[N, E] ---

func (inst *Instance[N, E]) Mount(vn *vnode.Node, container E, anchor N) {
	inst.vn = vn
	inst.container = container
	inst.anchor = anchor
	inst.splitProps(vn.Props)
	inst.slots = vn.Children.Slots

	pushCurrent(inst)
	invokeWithErrorHandling(inst, ErrorSourceSetup, inst.onUnhandled, func() error {
		if inst.def.Setup != nil {
			inst.state = inst.def.Setup()
		} else {
			inst.state = map[string]any{}
		}
		return nil
	})
	popCurrent()

	// beforeCreate/created have no separate invocation point of their own
	// in this port: Setup is the entire "create" phase (there is no
	// options-API data()/computed() stage before it runs), so both fire
	// back-to-back immediately once setup returns, per spec.md §6.3's
	// hook set applied to a composition-only component model.
	fireAll(inst.hooks.BeforeCreate)
	fireAll(inst.hooks.Created)

	effect, err := reactivity.NewEffect(inst.runRenderEffect, reactivity.EffectOptions{
		OnTrack:   func(e reactivity.TrackEvent) { fireTrack(inst.hooks.RenderTracked, e) },
		OnTrigger: func(e reactivity.TriggerEvent) { fireTrigger(inst.hooks.RenderTriggered, e) },
		Scheduler: func(e *reactivity.Effect) {
			reactivity.Global.QueueJob(inst, e.ID(), e.Run)
		},
	})
	if err != nil {
		if inst.onUnhandled != nil {
			inst.onUnhandled(err)
		}
		return
	}
	inst.effect = effect
	mountedInstances.Inc()
}

func (inst *Instance[N, E]) ShouldUpdate(next *vnode.Node) bool {
	if inst.vn == nil {
		return true
	}
	if !propsEqual(inst.vn.Props, next.Props) {
		return true
	}
	if !slotKeysEqual(inst.vn.Children.Slots, next.Children.Slots) {
		return true
	}
	return false
}

func (inst *Instance[N, E]) Update(next *vnode.Node) {
	inst.splitProps(next.Props)
	inst.vn = next
	inst.slots = next.Children.Slots
	if inst.effect != nil {
		inst.effect.Run()
	}
}

func (inst *Instance[N, E]) Subtree() *vnode.Node { return inst.subtree }

func (inst *Instance[N, E]) Unmount() {
	fireAll(inst.hooks.BeforeUnmount)
	if inst.effect != nil {
		inst.effect.Stop()
	}
	if inst.subtree != nil {
		inst.opts.Unmount(inst.subtree)
	}
	fireAll(inst.hooks.Unmounted)
	mountedInstances.Dec()
}

// runRenderEffect is the render effect body: on its first run (no subtree
// yet) it performs the initial mount patch; every subsequent run patches
// the previous subtree against a freshly rendered one, in place, at the
// anchor position the previous subtree currently occupies in the host
// tree (spec.md §4.4.3's update path).
func (inst *Instance[N, E]) runRenderEffect() {
	renderEffectRuns.Inc()
	invokeWithErrorHandling(inst, ErrorSourceRender, inst.onUnhandled, func() error {
		if inst.subtree == nil {
			fireAll(inst.hooks.BeforeMount)
			tree := inst.renderOnce()
			inst.resolveComponents(tree)
			inst.opts.Patch(nil, tree, inst.container, inst.anchor, inst)
			inst.subtree = tree
			inst.vn.El = renderer.RootHandle[N](tree)
			reactivity.Global.QueuePostFlushCb(func() { fireAll(inst.hooks.Mounted) })
			return nil
		}

		fireAll(inst.hooks.BeforeUpdate)
		old := inst.subtree
		container := inst.opts.ParentOf(old)
		anchor := inst.opts.NextHostSibling(old)
		next := inst.renderOnce()
		inst.resolveComponents(next)
		inst.opts.Patch(old, next, container, anchor, inst)
		inst.subtree = next
		inst.vn.El = renderer.RootHandle[N](next)
		reactivity.Global.QueuePostFlushCb(func() { fireAll(inst.hooks.Updated) })
		return nil
	})
}

func (inst *Instance[N, E]) renderOnce() *vnode.Node {
	if inst.def.Template == nil {
		return vnode.Comment("empty component")
	}
	return inst.def.Template.Render(newRenderContext(inst))
}

// --- props/attrs split (spec.md §4.2 step 2) ---

func (inst *Instance[N, E]) splitProps(raw map[string]any) {
	props := map[string]any{}
	attrs := map[string]any{}
	for k, v := range raw {
		if isDeclaredProp(inst.def.Props, k) {
			props[k] = v
		} else {
			attrs[k] = v
		}
	}
	if inst.propsWrite == nil {
		inst.propsWrite = reactivity.NewShallowStore(props)
		inst.propsRead = inst.propsWrite.ReadOnly()
	} else {
		for k, v := range props {
			inst.propsWrite.Set(k, v)
		}
		for _, k := range inst.propsWrite.Keys() {
			if _, ok := props[k]; !ok {
				inst.propsWrite.Delete(k)
			}
		}
	}
	inst.attrs = attrs
}

func isDeclaredProp(declared []string, key string) bool {
	for _, d := range declared {
		if d == key {
			return true
		}
	}
	return false
}

func propsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		ov, ok := b[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

func slotKeysEqual(a, b map[string]vnode.SlotFn) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// --- setupHost ---

func (inst *Instance[N, E]) instanceHooks() *hooks { return &inst.hooks }

func (inst *Instance[N, E]) provide(key string, value any) { inst.provides[key] = value }

func (inst *Instance[N, E]) inject(key string, def any) any {
	if v, ok := inst.provides[key]; ok {
		return v
	}
	if inst.parent != nil {
		return inst.parent.inject(key, def)
	}
	return def
}

func (inst *Instance[N, E]) propsStore() *reactivity.Store { return inst.propsRead }

func (inst *Instance[N, E]) attrsMap() map[string]any { return inst.attrs }

func (inst *Instance[N, E]) slotsMap() map[string]vnode.SlotFn { return inst.slots }

// emitEvent calls the "on<Event>" prop handler bound by the parent
// template, per spec.md §4.2's setup(props, {attrs, slots, emit})
// contract. Handler shape is intentionally loose (this port has no
// compile-time event-signature checking) — the common zero/one/variadic
// argument forms are supported directly; anything else is a silent no-op,
// matching the teacher's "best-effort dynamic dispatch" event handling in
// pkg/bubbly/context.go.
func (inst *Instance[N, E]) emitEvent(event string, args ...any) {
	if inst.vn == nil {
		return
	}
	handler, ok := inst.vn.Props[emitPropKey(event)]
	if !ok {
		return
	}
	switch fn := handler.(type) {
	case func():
		fn()
	case func(...any):
		fn(args...)
	case func(any):
		if len(args) == 1 {
			fn(args[0])
		}
	}
}

func emitPropKey(event string) string {
	if event == "" {
		return "on"
	}
	return "on" + strings.ToUpper(event[:1]) + event[1:]
}

// --- instanceErrorHandler ---

func (inst *Instance[N, E]) componentName() string { return inst.def.Name }

func (inst *Instance[N, E]) errorCapturedHooks() []func(error) bool { return inst.hooks.ErrorCaptured }

func (inst *Instance[N, E]) parentHandler() instanceErrorHandler {
	if inst.parent == nil {
		return nil
	}
	return inst.parent
}

// --- renderContextAccessor ---

func (inst *Instance[N, E]) stateValue(name string) (any, bool) {
	v, ok := inst.state[name]
	return v, ok
}

func (inst *Instance[N, E]) propValue(name string) (any, bool) {
	if !isDeclaredProp(inst.def.Props, name) || inst.propsRead == nil {
		return nil, false
	}
	return inst.propsRead.Get(name), true
}

func (inst *Instance[N, E]) globalValue(name string) (any, bool) {
	// No app-context global-property registry is wired in this port
	// (spec.md §4.4.7 tier 8) — nothing in SPEC_FULL.md's component model
	// populates one, so the chain bottoms out here instead of panicking.
	return nil, false
}

// NewRoot constructs the top-level Instance for an application's root
// component, bypassing NewFactory's registry lookup since the root has no
// enclosing vnode.ComponentDef to resolve it from — the app entry point
// (the root loom package) calls this directly and then Mounts it.
func NewRoot[N any, E any](opts *renderer.Options[N, E], registry *Registry, def ComponentOptions, onUnhandled func(error)) *Instance[N, E] {
	return &Instance[N, E]{
		opts:        opts,
		registry:    registry,
		def:         def,
		provides:    map[string]any{},
		onUnhandled: onUnhandled,
	}
}

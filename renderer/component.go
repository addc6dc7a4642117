package renderer

import "github.com/loomui/loom/vnode"

// ComponentInstance is the subset of a component instance's lifecycle the
// reconciler drives directly (spec §4.4.3/§4.4.6). runtime.Instance[N, E]
// implements this; renderer never imports runtime (runtime imports
// renderer to drive Patch), so the dependency is expressed as an
// interface instead, matching the vnode package's "Instance any" opaque
// field and the §9 design note about avoiding reference cycles between a
// component instance and the tree that reconciles it.
type ComponentInstance[N any, E any] interface {
	// Mount runs setup, installs the render effect, and performs the
	// first patch(nil, subtree, ...) into container at anchor.
	Mount(vn *vnode.Node, container E, anchor N)
	// ShouldUpdate reports spec §4.4.3's shouldUpdateComponent decision.
	// runtime.Instance answers true when the props differ or the set of
	// slot names differs; directives are not compared.
	ShouldUpdate(next *vnode.Node) bool
	// Update assigns instance.next = next and re-invokes the render
	// effect synchronously (the effect's own scheduler already coalesces
	// repeated self-triggered updates within a tick).
	Update(next *vnode.Node)
	// Subtree returns the instance's current rendered root vnode — the
	// "subTree" spec's render effect compares against on each update.
	Subtree() *vnode.Node
	// Unmount runs beforeUnmount/unmounted hooks and releases the
	// instance's render effect and watchers.
	Unmount()
}

// ComponentFactory constructs a fresh instance for a just-mounted
// Component vnode; runtime wires this in via vnode.ComponentDef.Setup,
// typed as this exact function shape for the concrete N/E pairing the
// application uses.
type ComponentFactory[N any, E any] func(vn *vnode.Node, parent any) ComponentInstance[N, E]

// PatchComponent implements spec §4.4.3: mount creates a fresh instance
// and hands control to its Mount method; update checks
// shouldUpdateComponent and either re-renders in place or copies pointers
// forward unchanged.
func (o *Options[N, E]) PatchComponent(old, new *vnode.Node, container E, anchor N, parent any) {
	if old == nil {
		factory, ok := new.Component.Setup.(ComponentFactory[N, E])
		if !ok {
			o.warn("renderer: component vnode missing a ComponentFactory[N,E]")
			return
		}
		inst := factory(new, parent)
		new.Instance = inst
		inst.Mount(new, container, anchor)
		new.El = inst.Subtree().El
		return
	}

	inst, ok := old.Instance.(ComponentInstance[N, E])
	if !ok {
		o.warn("renderer: component vnode instance has unexpected type")
		return
	}
	new.Instance = inst
	if inst.ShouldUpdate(new) {
		inst.Update(new)
	} else {
		new.El = old.El
	}
	new.El = inst.Subtree().El
}

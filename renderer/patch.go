package renderer

import "github.com/loomui/loom/vnode"

// Patch is the core dispatch (spec §4.4.1): given an old node (nil on
// first mount), a new node, a container, and an optional insertion
// anchor, it mounts, updates, or replaces as needed.
func (o *Options[N, E]) Patch(old, new *vnode.Node, container E, anchor N, parent any) {
	if old != nil && new != nil && !vnode.SameType(old, new) {
		o.Unmount(old)
		old = nil
	}
	if new == nil {
		if old != nil {
			o.Unmount(old)
		}
		return
	}

	switch new.Kind {
	case vnode.KindText:
		o.patchText(old, new, container, anchor)
	case vnode.KindComment:
		o.patchComment(old, new, container, anchor)
	case vnode.KindStatic:
		o.patchStatic(old, new, container, anchor)
	case vnode.KindFragment:
		o.patchFragment(old, new, container, anchor, parent)
	case vnode.KindElement:
		o.PatchElement(old, new, container, anchor, parent)
	case vnode.KindComponent:
		o.PatchComponent(old, new, container, anchor, parent)
	default:
		o.warn("renderer: unknown vnode kind, skipping")
	}

	o.resolveRef(old, new)
}

func (o *Options[N, E]) patchText(old, new *vnode.Node, container E, anchor N) {
	if old == nil {
		n := o.Backend.CreateText(new.TextContent)
		o.Backend.Insert(n, container, anchor)
		new.El = n
		return
	}
	n := nodeHandle[N](old)
	new.El = n
	if old.TextContent != new.TextContent {
		o.Backend.SetText(n, new.TextContent)
	}
}

func (o *Options[N, E]) patchComment(old, new *vnode.Node, container E, anchor N) {
	if old == nil {
		n := o.Backend.CreateComment(new.TextContent)
		o.Backend.Insert(n, container, anchor)
		new.El = n
		return
	}
	new.El = old.El // comments never update their content in place
}

func (o *Options[N, E]) patchStatic(old, new *vnode.Node, container E, anchor N) {
	if old == nil {
		n := o.Backend.CreateText(new.TextContent)
		o.Backend.Insert(n, container, anchor)
		new.El = n
		return
	}
	new.El = old.El
}

// patchFragment mounts/patches a fragment's children between two boundary
// markers, per spec §4.4.1's "insert an empty-text start marker and an
// empty-text end marker" note.
func (o *Options[N, E]) patchFragment(old, new *vnode.Node, container E, anchor N, parent any) {
	if old == nil {
		start := o.Backend.CreateText("")
		end := o.Backend.CreateText("")
		o.Backend.Insert(start, container, anchor)
		new.El = start
		o.mountChildrenArray(new.Children.Array, container, end, parent)
		o.Backend.Insert(end, container, anchor)
		new.Anchor = end
		return
	}
	new.El = old.El
	new.Anchor = old.Anchor
	endAnchor := asHandle[N](old.Anchor)
	if old.PatchFlag.Has(vnode.PatchStableFragment) && old.DynamicChildren != nil {
		o.PatchBlockChildren(old.DynamicChildren, new.DynamicChildren, container, parent)
		return
	}
	o.PatchChildrenArray(old.Children.Array, new.Children.Array, container, endAnchor, parent)
}

func (o *Options[N, E]) mountChildrenArray(children []*vnode.Node, container E, anchor N, parent any) {
	for _, c := range children {
		o.Patch(nil, c, container, anchor, parent)
	}
}

// resolveRef implements spec §4.4.1 step 3: after mount/update, a ref
// binding that is a func(any) is called with the new host handle. Other
// ref forms are ignored, and an old ref is not cleared.
func (o *Options[N, E]) resolveRef(old, new *vnode.Node) {
	if new == nil || new.Ref == nil {
		return
	}
	if setter, ok := new.Ref.(func(any)); ok {
		setter(new.El)
	}
}

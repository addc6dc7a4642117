package renderer

import "github.com/loomui/loom/vnode"

// PatchElement implements spec §4.4.2: mount creates the host element and
// applies every prop; update dispatches on patchFlag to the narrowest
// applicable fast path, falling back to a full children patch.
func (o *Options[N, E]) PatchElement(old, new *vnode.Node, container E, anchor N, parent any) {
	if old == nil {
		o.mountElement(new, container, anchor, parent)
		return
	}
	el := asHandle[E](old.El)
	new.El = el

	if new.PatchFlag.IsInRange() {
		o.patchElementFast(old, new, el)
	} else if !new.PatchFlag.Has(vnode.PatchHoisted) {
		o.patchFullProps(old, new, el)
	}

	if new.DynamicChildren != nil && old.DynamicChildren != nil {
		o.PatchBlockChildren(old.DynamicChildren, new.DynamicChildren, el, parent)
	} else if !new.PatchFlag.Has(vnode.PatchHoisted) {
		o.PatchChildrenArray(old.Children.Array, new.Children.Array, el, zeroNode[N](), parent)
		if new.ShapeFlag.Has(vnode.ShapeTextChildren) && old.Children.Text != new.Children.Text {
			o.Backend.SetElementText(el, new.Children.Text)
		}
	}
}

func zeroNode[N any]() N {
	var z N
	return z
}

func (o *Options[N, E]) mountElement(new *vnode.Node, container E, anchor N, parent any) {
	el := o.Backend.CreateElement(new.Tag, false, false)
	new.El = el

	for k, v := range new.Props {
		o.Backend.PatchProp(el, k, nil, v)
	}

	if new.ShapeFlag.Has(vnode.ShapeTextChildren) {
		o.Backend.SetElementText(el, new.Children.Text)
	} else if new.ShapeFlag.Has(vnode.ShapeArrayChildren) {
		o.mountChildrenArray(new.Children.Array, el, zeroNode[N](), parent)
	}

	o.Backend.Insert(o.Backend.AsNode(el), container, anchor)
}

// patchElementFast implements the narrow per-flag updates of spec §4.4.2:
// FULL_PROPS defers to patchFullProps and returns; otherwise CLASS/STYLE/
// PROPS/TEXT each touch only what their flag names.
func (o *Options[N, E]) patchElementFast(old, new *vnode.Node, el E) {
	if new.PatchFlag.Has(vnode.PatchFullProps) {
		o.patchFullProps(old, new, el)
		return
	}
	if new.PatchFlag.Has(vnode.PatchClass) {
		if ov, nv := old.Props["class"], new.Props["class"]; ov != nv {
			o.Backend.PatchProp(el, "class", ov, nv)
		}
	}
	if new.PatchFlag.Has(vnode.PatchStyle) {
		if ov, nv := old.Props["style"], new.Props["style"]; ov != nv {
			o.Backend.PatchProp(el, "style", ov, nv)
		}
	}
	if new.PatchFlag.Has(vnode.PatchProps) {
		for _, k := range new.DynamicProps {
			ov, nv := old.Props[k], new.Props[k]
			if ov != nv {
				o.Backend.PatchProp(el, k, ov, nv)
			}
		}
	}
	if new.PatchFlag.Has(vnode.PatchText) {
		if new.ShapeFlag.Has(vnode.ShapeTextChildren) && old.Children.Text != new.Children.Text {
			o.Backend.SetElementText(el, new.Children.Text)
		}
	}
}

// patchFullProps implements the FULL_PROPS path (spec §4.4.8): re-apply
// every new prop, and remove/restore keys present in old but absent in
// new.
func (o *Options[N, E]) patchFullProps(old, new *vnode.Node, el E) {
	for k, nv := range new.Props {
		ov := old.Props[k]
		if ov != nv {
			o.Backend.PatchProp(el, k, ov, nv)
		}
	}
	for k, ov := range old.Props {
		if _, ok := new.Props[k]; !ok {
			o.Backend.PatchProp(el, k, ov, nil)
		}
	}
}

package renderer

import "github.com/loomui/loom/vnode"

// PatchChildrenArray implements spec §4.4.5's full children patch: dispatch
// by shape (new-is-text / new-is-array / new-is-empty), and for
// array-vs-array, choose the keyed or unkeyed algorithm based on whether
// the children carry keys.
func (o *Options[N, E]) PatchChildrenArray(oldChildren, newChildren []*vnode.Node, container E, anchor N, parent any) {
	if len(newChildren) == 0 {
		o.unmountAll(oldChildren)
		return
	}
	if len(oldChildren) == 0 {
		o.mountChildrenArray(newChildren, container, anchor, parent)
		return
	}
	if childrenAreKeyed(oldChildren) || childrenAreKeyed(newChildren) {
		o.PatchKeyedChildren(oldChildren, newChildren, container, anchor, parent)
		return
	}
	o.patchUnkeyedChildren(oldChildren, newChildren, container, anchor, parent)
}

func childrenAreKeyed(children []*vnode.Node) bool {
	for _, c := range children {
		if c.Key != nil {
			return true
		}
	}
	return false
}

// patchUnkeyedChildren implements spec's unkeyed diff: patch index-by-
// index up to min(|old|,|new|); unmount tail of old or mount tail of new.
func (o *Options[N, E]) patchUnkeyedChildren(oldChildren, newChildren []*vnode.Node, container E, anchor N, parent any) {
	common := len(oldChildren)
	if len(newChildren) < common {
		common = len(newChildren)
	}
	for i := 0; i < common; i++ {
		o.Patch(oldChildren[i], newChildren[i], container, anchor, parent)
	}
	if len(oldChildren) > common {
		o.unmountAll(oldChildren[common:])
	}
	if len(newChildren) > common {
		for _, c := range newChildren[common:] {
			o.Patch(nil, c, container, anchor, parent)
		}
	}
}

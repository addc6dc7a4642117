package renderer

import "github.com/loomui/loom/vnode"

// PatchBlockChildren implements spec §4.4.4: walk the block's flat
// dynamicChildren array pairwise and patch each — O(dynamic nodes),
// independent of the static structure size surrounding them. The
// container for each pair is the parent of the *old* element when that
// element is a fragment/component/of a different type than its new
// counterpart (those can't reuse fallbackContainer directly); otherwise
// fallbackContainer.
func (o *Options[N, E]) PatchBlockChildren(oldChildren, newChildren []*vnode.Node, fallbackContainer E, parent any) {
	n := len(oldChildren)
	if len(newChildren) < n {
		n = len(newChildren)
	}
	for i := 0; i < n; i++ {
		oldChild, newChild := oldChildren[i], newChildren[i]
		container := fallbackContainer
		if oldChild.Kind == vnode.KindFragment || oldChild.Kind == vnode.KindComponent || !vnode.SameType(oldChild, newChild) {
			if p := o.Backend.ParentNode(asHandle[N](oldChild.El)); !o.Backend.IsNil(o.Backend.AsNode(p)) {
				container = p
			}
		}
		o.Patch(oldChild, newChild, container, zeroNode[N](), parent)
	}
}

package renderer

import "github.com/loomui/loom/vnode"

// Unmount tears a mounted subtree down: detaches its host handle(s) and,
// for components, runs the Unmounter hook installed by PatchComponent.
// Unmounting an already-unmounted node is a no-op rather than a
// diagnostic; Patch does not check for mounting an already-mounted node
// either.
func (o *Options[N, E]) Unmount(n *vnode.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case vnode.KindFragment:
		for _, c := range n.Children.Array {
			o.Unmount(c)
		}
		if h := asHandle[N](n.El); !o.Backend.IsNil(h) {
			o.Backend.Remove(h)
		}
		if end := asHandle[N](n.Anchor); !o.Backend.IsNil(end) {
			o.Backend.Remove(end)
		}
	case vnode.KindComponent:
		if unmounter, ok := n.Instance.(interface{ Unmount() }); ok {
			unmounter.Unmount()
		}
	case vnode.KindElement:
		for _, c := range n.Children.Array {
			o.Unmount(c)
		}
		if h := asHandle[N](n.El); !o.Backend.IsNil(h) {
			o.Backend.Remove(h)
		}
	default:
		if h := asHandle[N](n.El); !o.Backend.IsNil(h) {
			o.Backend.Remove(h)
		}
	}
}

func (o *Options[N, E]) unmountAll(children []*vnode.Node) {
	for _, c := range children {
		o.Unmount(c)
	}
}

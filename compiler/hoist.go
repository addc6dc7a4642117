package compiler

// HoistSlot is one entry in the module-scope hoist table: a fully-static
// subtree's codegen node, extracted once per program load rather than
// re-run on every render (spec §4.1.2 "Static hoisting"). Grounded on
// jpl-au-fluent-jit's ExecutionPlan/StaticContent/DynamicPath split
// (compile.go): that compiler partitions a rendered tree into a linear
// plan of pre-rendered StaticContent and path-addressed DynamicPath
// entries so static bytes are computed once and replayed; hoist.go
// borrows that same "separate a linear plan of static vs. dynamic slots
// at compile time" shape, except the "replay" step here hands back the
// same pre-built *vnode.Node on every render instead of copying bytes.
type HoistSlot struct {
	Node *Node
}

// applyHoisting walks the transformed tree once more, identifying fully
// static subtrees (per spec's definition: every element plain, patch flag
// zero, no dynamic key/ref/cached handler, all children static) and
// extracting them into ctx.Hoists, replacing the inline node with a
// reference (HoistSlot index). v-if/v-for roots are never hoisted, per
// spec's explicit carve-out — their Codegen keeps PFBail-free but
// un-hoisted so the block machinery still sees them each render.
func applyHoisting(n *Node, ctx *TransformContext) {
	if n == nil {
		return
	}
	switch n.Type {
	case NodeRoot:
		for _, c := range n.Children {
			hoistChild(c, ctx)
		}
	case NodeElement:
		for _, c := range n.Children {
			hoistChild(c, ctx)
		}
	}
}

func hoistChild(n *Node, ctx *TransformContext) {
	if n == nil {
		return
	}
	if isFullyStatic(n) {
		slot := len(ctx.Hoists)
		ctx.Hoists = append(ctx.Hoists, n)
		n.Hoisted = true
		n.HoistSlot = slot
		n.PatchFlag |= PFHoisted
		return
	}
	switch n.Type {
	case NodeElement:
		if hoistablePropsOnly(n) {
			// Props-only hoist: leave children inline (they are dynamic)
			// but mark that this node's props object may be reused across
			// renders, per spec's "may have only its props object hoisted".
			n.HoistSlot = -1
		}
		for _, c := range n.Children {
			hoistChild(c, ctx)
		}
	case NodeIf:
		for _, b := range n.Branches {
			for _, c := range b.Children {
				applyHoisting(c, ctx)
			}
		}
	case NodeFor:
		applyHoisting(n.ForBody, ctx)
	}
}

// isFullyStatic implements spec's static-subtree predicate: a plain
// (non-component, non-slot) element with a zero patch flag, no dynamic
// key/ref/cached-handler props, and every child also static.
func isFullyStatic(n *Node) bool {
	switch n.Type {
	case NodeText, NodeComment:
		return true
	case NodeElement:
		if n.ElementType != ElementPlain {
			return false
		}
		if n.Codegen != nil && n.Codegen.PatchFlag != 0 {
			return false
		}
		if n.Codegen != nil && (len(n.Codegen.DynamicProps) > 0 || len(n.Codegen.Directives) > 0) {
			return false
		}
		for _, c := range n.Children {
			if !isFullyStatic(c) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// hoistablePropsOnly reports whether a node's props (but not its
// children) qualify for hoisting on their own.
func hoistablePropsOnly(n *Node) bool {
	if n.Codegen == nil {
		return false
	}
	return n.Codegen.PatchFlag == 0 && len(n.Codegen.DynamicProps) == 0
}

// Package vnode defines the virtual-node data model the compiler's render
// programs produce and the renderer reconciles: a tagged-union Node type
// with shape/patch flag bitsets, per spec.md §3.1 and the §9 design note
// directing tagged unions over virtual dispatch for this port.
//
// Grounded on the Go vdom shapes in the pack's other_examples (vango's
// renderer package, Nu11ified-golem's dom/vdom.go) for the Kind/Tag/Props/
// Children field layout; the patch-flag/shape-flag bit semantics are new
// (spec-defined), with jpl-au-fluent-jit's static/dynamic execution-plan
// split as the closest analogue for the HOISTED fast path.
package vnode

// Kind discriminates the Node tagged union.
type Kind uint8

const (
	KindElement Kind = iota
	KindText
	KindComment
	KindStatic
	KindFragment
	KindComponent
	KindTeleport
	KindSuspense
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindStatic:
		return "Static"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindTeleport:
		return "Teleport"
	case KindSuspense:
		return "Suspense"
	default:
		return "Unknown"
	}
}

// ShapeFlag classifies a VNode's kind and the shape of its Children, for
// fast dispatch-rejection in the reconciler (spec §3.1).
type ShapeFlag uint32

const (
	ShapeElement ShapeFlag = 1 << iota
	ShapeFunctionalComponent
	ShapeStatefulComponent
	ShapeTextChildren
	ShapeArrayChildren
	ShapeSlotsChildren
	ShapeTeleport
	ShapeSuspense
	ShapeComponentShouldKeepAlive
	ShapeComponentKeptAlive

	ShapeComponent = ShapeStatefulComponent | ShapeFunctionalComponent
)

func (f ShapeFlag) Has(bit ShapeFlag) bool { return f&bit != 0 }

// PatchFlag is the compile-time bitset naming *what* about a VNode may have
// changed since the previous render of the same source position (spec
// §3.1). A zero PatchFlag with no DynamicChildren means "fully static,
// never diff".
type PatchFlag uint32

const (
	// PatchText: the element has dynamic text content only.
	PatchText PatchFlag = 1 << iota
	// PatchClass: the element's class binding is dynamic.
	PatchClass
	// PatchStyle: the element's style binding is dynamic.
	PatchStyle
	// PatchProps: the element has dynamic non-class/style/key/ref props;
	// DynamicProps names which ones.
	PatchProps
	// PatchFullProps: the element has a dynamic prop *key* (computed
	// attribute name) — falls back to a full props diff.
	PatchFullProps
	// PatchHydrateEvents: the element has a non-cached event listener that
	// must be (re)attached even on hydration-style mounts.
	PatchHydrateEvents
	// PatchStableFragment: a fragment whose children order is stable
	// (v-for over a stable key) — only needs positional patch, never a
	// full keyed diff.
	PatchStableFragment
	// PatchKeyedFragment: the fragment's children carry keys and may
	// reorder — needs the full keyed diff.
	PatchKeyedFragment
	// PatchUnkeyedFragment: the fragment's children are unkeyed; patch
	// positionally and mount/unmount any length delta.
	PatchUnkeyedFragment
	// PatchNeedPatch: non-prop update needed — a ref binding or a custom
	// directive with lifecycle hooks is present.
	PatchNeedPatch
	// PatchDynamicSlots: the component's slots are conditional or
	// iterated, so the slots object itself may change shape between
	// renders.
	PatchDynamicSlots
	// PatchHoisted: fully static — compiler hoisted this subtree to a
	// module-scope slot; the reconciler must skip diffing it entirely.
	PatchHoisted
	// PatchBail: opt out of every fast path; always do a full diff. Set
	// when static analysis cannot prove any of the above.
	PatchBail
)

func (f PatchFlag) Has(bit PatchFlag) bool { return f&bit != 0 }

// IsInRange reports whether the flag is a positive, diffable patch flag
// (i.e. not HOISTED/BAIL, which are sentinel/opt-out values rather than
// "diff just this" instructions) — mirrors the element-patch dispatch of
// spec §4.4.2, which only takes the fast per-kind paths when patchFlag > 0
// and not BAIL.
func (f PatchFlag) IsInRange() bool {
	return f > 0 && !f.Has(PatchBail) && !f.Has(PatchHoisted)
}

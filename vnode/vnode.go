package vnode

// HostHandle is the opaque reference a Node carries once it has been
// mounted: the renderer stashes whatever its HostBackend returned from
// CreateElement/CreateText there, and reads it back on patch/unmount. It is
// deliberately `any` — the vnode package must not import renderer/host, so
// the concrete handle type (a *host.Cell, a testhost.Node, ...) stays
// opaque at this layer, per spec §6.1's host-backend parametricity.
type HostHandle = any

// Children holds a Node's children in whichever shape its ShapeFlag names.
// Exactly one of Text/Array/Slots is meaningful at a time; which one is
// selected by ShapeFlag.Has(ShapeTextChildren|ShapeArrayChildren|
// ShapeSlotsChildren).
type Children struct {
	Text  string
	Array []*Node
	Slots map[string]SlotFn
}

// SlotFn renders a named/scoped slot given the props the child passed to
// it, returning the slot's VNode children (spec §4.1.3 "Slot outlet").
type SlotFn func(props map[string]any) []*Node

// Node is the tagged union every render-program-produced value is, per
// spec §3.1 and the §9 design note calling for a tagged union rather than
// a VNode base class hierarchy. Kind discriminates which of the
// kind-specific fields below are meaningful; unused fields are left at
// their zero value.
type Node struct {
	Kind Kind

	// Element / Component
	Tag         string // element tag name, or component type name for KindComponent
	Component   ComponentDef
	Props       map[string]any
	DynamicProps []string // keys named by a PatchProps-flagged Node

	Children        Children
	DynamicChildren []*Node // the subset of Children.Array the compiler proved dynamic

	// Text / Comment
	TextContent string

	Key any // v-for :key / explicit :key binding; nil means unkeyed
	Ref any // ref binding target (a *reactivity.Ref[HostHandle] or similar), opaque here

	ShapeFlag ShapeFlag
	PatchFlag PatchFlag

	// StaticID is a slot for the index of the module-scope hoisted node
	// that produced this Node. Nothing in this module sets or reads it: a
	// hoisted node is handed back as the same *Node on every render and
	// patched like any other.
	StaticID int

	// Host-assigned identity once mounted. El is the root host handle for
	// element/text/comment nodes; Component nodes additionally carry a
	// runtime component instance in Instance.
	El       HostHandle
	Instance any // *runtime.Instance, kept as `any` to avoid an import cycle

	// Anchor is a host-level marker used by fragment/component nodes whose
	// root is itself multi-rooted, so the renderer knows where in the
	// parent's child list this subtree's content ends (spec §4.4.4).
	Anchor HostHandle
}

// ComponentDef is the compile-time descriptor of a component reference
// inside a template — its type name and setup function — kept abstract
// here so vnode has no dependency on runtime.Instance's concrete shape.
type ComponentDef struct {
	Name  string
	Setup any // a renderer.ComponentFactory[N, E] for the app's N/E pairing; opaque here to avoid an import cycle
}

// IsElement, IsComponent, IsText, IsFragment report the Node's Kind for
// callers that would rather not switch on Kind directly.
func (n *Node) IsElement() bool  { return n != nil && n.Kind == KindElement }
func (n *Node) IsComponent() bool {
	return n != nil && n.Kind == KindComponent
}
func (n *Node) IsText() bool     { return n != nil && n.Kind == KindText }
func (n *Node) IsFragment() bool { return n != nil && n.Kind == KindFragment }
func (n *Node) IsStatic() bool   { return n != nil && n.Kind == KindStatic }

// SameType reports whether two Nodes refer to the "same" logical DOM
// position across a render — same Kind and same Tag (for elements) or same
// Component.Name (for components) — the precondition for patching in place
// rather than replace, per spec §4.4.1's patch/replace decision.
func SameType(a, b *Node) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindElement, KindStatic:
		return a.Tag == b.Tag
	case KindComponent:
		return a.Component.Name == b.Component.Name
	default:
		return true
	}
}

// Text constructs a KindText leaf node.
func Text(content string, dynamic bool) *Node {
	n := &Node{Kind: KindText, TextContent: content, ShapeFlag: ShapeTextChildren}
	if dynamic {
		n.PatchFlag = PatchText
	}
	return n
}

// Comment constructs a KindComment leaf node (v-if false branch placeholder,
// per spec §4.4.3's "render a comment placeholder" removal-path note).
func Comment(content string) *Node {
	return &Node{Kind: KindComment, TextContent: content}
}

// Element constructs a KindElement node with the given tag, props and
// children, inferring ShapeFlag from the children's shape.
func Element(tag string, props map[string]any, children []*Node) *Node {
	n := &Node{
		Kind:      KindElement,
		Tag:       tag,
		Props:     props,
		ShapeFlag: ShapeElement,
	}
	if len(children) > 0 {
		n.Children.Array = children
		n.ShapeFlag |= ShapeArrayChildren
	}
	return n
}

// Fragment constructs a KindFragment node wrapping a child list, used for
// v-for root output and multi-root component templates (spec §4.1.3).
func Fragment(children []*Node, patchFlag PatchFlag) *Node {
	return &Node{
		Kind:      KindFragment,
		Children:  Children{Array: children},
		ShapeFlag: ShapeArrayChildren,
		PatchFlag: patchFlag,
	}
}

package compiler

// NodeType discriminates the AST tagged union produced by the parser and
// consumed/rewritten in place by the transform, per spec §4.1.1/§4.1.2 and
// the §9 design note preferring tagged unions to a base-class hierarchy.
type NodeType int

const (
	NodeRoot NodeType = iota
	NodeElement
	NodeText
	NodeComment
	NodeInterpolation
	NodeAttribute
	NodeDirective
	NodeCompoundExpression // merged run of adjacent text/interpolation
	NodeIf
	NodeIfBranch
	NodeFor
	NodeTextCall // wraps a dynamic text child in createTextVNode
	NodeVNodeCall
	NodeSlotOutlet
)

// ElementType classifies an Element node per the parser's classification
// rules (spec §4.1.1 "Elements are classified as...").
type ElementType int

const (
	ElementPlain ElementType = iota
	ElementComponent
	ElementSlot
	ElementTemplate
)

// TextMode gates which constructs the lexer recognizes while scanning,
// per spec §4.1.1's five text modes.
type TextMode int

const (
	TextModeData TextMode = iota
	TextModeRCData
	TextModeRawText
	TextModeCData
	TextModeAttributeValue
)

// Node is the tagged-union AST node. Exactly the fields relevant to Type
// are populated; the rest stay at their zero value.
type Node struct {
	Type NodeType
	Loc  SourceRange

	// Element
	Tag         string
	ElementType ElementType
	Attrs       []*Attribute // raw attributes and directives, pre-transform
	Props       []*Node      // NodeDirective / NodeAttribute entries surviving transform
	Children    []*Node
	IsSelfClose bool
	IsPre       bool // this element (or an ancestor) carries v-pre

	// Text / Comment / Interpolation
	Content string
	Expr    string // raw expression source, for Interpolation/Directive exp

	// Directive (raw, pre-dispatch)
	Name     string // directive name without "v-" prefix ("if", "bind", "on", ...)
	Arg      string // static argument, or "" if none/dynamic
	ArgIsExp bool
	Modifiers []string

	// If / IfBranch
	Branches []*IfBranch

	// For
	ForSource  string
	ForAlias   string // value alias
	ForKeyVar  string // optional key alias
	ForIndex   string // optional index alias
	ForBody    *Node  // the element this v-for decorates, now an anonymous body

	// Codegen (populated by transform, consumed by generator)
	Codegen *VNodeCall

	// Static hoisting
	Hoisted   bool
	HoistSlot int

	// Patch flag / shape flag assigned by element codegen
	PatchFlag    PatchFlagBits
	DynamicProps []string
	IsBlock      bool
	IsForBlock   bool
}

// Attribute is a raw parsed attribute/directive attribute before directive
// dispatch classifies it.
type Attribute struct {
	IsDirective bool
	Name        string // "class", or directive name ("bind", "on", "if", ...)
	Arg         string
	ArgIsExp    bool
	Modifiers   []string
	Value       string // static value, or expression source for directives
	Loc         SourceRange
}

// IfBranch is one arm of a fused v-if/else-if/else chain.
type IfBranch struct {
	Condition string // "" for the trailing v-else
	Children  []*Node
}

// PatchFlagBits mirrors vnode.PatchFlag without importing the vnode
// package from the compiler's AST layer — program.go converts this to a
// vnode.PatchFlag by a direct cast when rendering, so the bit order here
// matches vnode's PatchFlag constants.
type PatchFlagBits uint32

const (
	PFText PatchFlagBits = 1 << iota
	PFClass
	PFStyle
	PFProps
	PFFullProps
	PFHydrateEvents
	PFStableFragment
	PFKeyedFragment
	PFUnkeyedFragment
	PFNeedPatch
	PFDynamicSlots
	PFHoisted
	PFBail
)

// VNodeCall is the codegen description built by the element transform on
// exit (spec §4.1.3): everything the generator needs to emit a single
// createVNode/createBlock call.
type VNodeCall struct {
	Tag          string
	IsComponent  bool
	IsDynamic    bool // <component :is="...">
	StaticProps  map[string]string
	DynamicProps map[string]string // computed-key entries
	MergeExprs   []string          // no-arg v-bind/v-on merge operands
	Directives   []*RuntimeDirective
	ChildrenText string // single dynamic text child
	ChildrenList []*Node
	Slots        map[string]string // component slot name -> slot function body placeholder
	PatchFlag    PatchFlagBits
	DynamicPropNames []string
	IsBlock      bool
	IsForBlock   bool
}

// RuntimeDirective is a directive the directive-transform dispatch table
// could not fully resolve at compile time (needRuntime=true, spec §4.1.2),
// retained for a withDirectives(...) runtime call.
type RuntimeDirective struct {
	Name      string
	Expr      string
	Arg       string
	Modifiers []string
}

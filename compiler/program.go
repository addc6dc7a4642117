package compiler

import (
	"github.com/loomui/loom/vnode"
)

// Program is the portable render-program representation the compiler
// emits and the renderer (via a component's render effect) consumes, per
// spec §6.2: a hoist table of pre-built static VNodes, an asset-resolution
// prelude naming user components/directives to resolve from the
// surrounding app context, and a render expression (here: the transformed
// AST itself, walked by Render) producing the root VNode.
type Program struct {
	Hoists     []*vnode.Node
	Components map[string]bool
	Directives map[string]bool
	root       *Node
}

// Compile runs Parse → Transform → materializes the hoist table, and
// returns a Program ready to Render repeatedly against different
// RenderContexts (spec §4.1.4's "generator" stage plus the "hoist table
// initializer" it emits).
func Compile(src string, popts ParserOptions, topts TransformOptions) (*Program, *TransformContext) {
	root := Parse(src, popts)
	ctx := Transform(root, topts)
	prog := &Program{Components: ctx.Components, Directives: ctx.Directives, root: root}
	for _, hoisted := range ctx.Hoists {
		prog.Hoists = append(prog.Hoists, renderStatic(hoisted))
	}
	return prog, ctx
}

// Render walks the compiled AST, evaluating every embedded expression
// against rc, and produces a fresh vnode.Node tree — the "render
// expression tree" of spec §6.2 realized as direct interpretation rather
// than a separately-compiled Go function, per the §9 "compile-time vs
// runtime split" note that downstream consumers may run the compiler
// ahead of time and ship only the program as data; this port keeps both
// stages in-process for simplicity.
func (p *Program) Render(rc RenderContext) *vnode.Node {
	if len(p.root.Children) == 1 {
		return renderNode(p.root.Children[0], rc, p)
	}
	children := make([]*vnode.Node, 0, len(p.root.Children))
	for _, c := range p.root.Children {
		if rendered := renderNode(c, rc, p); rendered != nil {
			children = append(children, rendered)
		}
	}
	return vnode.Fragment(children, 0)
}

func renderNode(n *Node, rc RenderContext, p *Program) *vnode.Node {
	if n == nil {
		return nil
	}
	if n.Hoisted && n.HoistSlot >= 0 && n.HoistSlot < len(p.Hoists) {
		return p.Hoists[n.HoistSlot]
	}
	switch n.Type {
	case NodeText:
		return vnode.Text(n.Content, false)
	case NodeComment:
		return vnode.Comment(n.Content)
	case NodeInterpolation:
		return vnode.Text(toStringValue(EvalExpr(n.Expr, rc)), true)
	case NodeIf:
		return renderIf(n, rc, p)
	case NodeFor:
		return renderFor(n, rc, p)
	case NodeSlotOutlet:
		return renderSlotOutlet(n, rc, p)
	case NodeElement:
		return renderElement(n, rc, p)
	default:
		return nil
	}
}

func renderIf(n *Node, rc RenderContext, p *Program) *vnode.Node {
	for _, b := range n.Branches {
		if b.Condition == "" || truthy(EvalExpr(b.Condition, rc)) {
			var children []*vnode.Node
			for _, c := range b.Children {
				if rendered := renderNode(c, rc, p); rendered != nil {
					children = append(children, rendered)
				}
			}
			if len(children) == 1 {
				return children[0]
			}
			return vnode.Fragment(children, vnode.PatchFlag(PFStableFragment))
		}
	}
	return vnode.Comment("v-if")
}

func renderFor(n *Node, rc RenderContext, p *Program) *vnode.Node {
	source := EvalExpr(n.ForSource, rc)
	var children []*vnode.Node
	each := func(index int, key, val any) {
		scoped := newForScopeContext(rc, n.ForAlias, val, n.ForIndex, index, n.ForKeyVar, key)
		rendered := renderNode(n.ForBody, scoped, p)
		if rendered != nil {
			if rendered.Key == nil {
				rendered.Key = key
			}
			children = append(children, rendered)
		}
	}
	switch src := source.(type) {
	case []any:
		for i, v := range src {
			each(i, i, v)
		}
	case map[string]any:
		i := 0
		for k, v := range src {
			each(i, k, v)
			i++
		}
	}
	return vnode.Fragment(children, vnode.PatchFlag(PFKeyedFragment))
}

// renderSlotOutlet resolves a `<slot>`/`<slot name="...">` against the
// parent-supplied $slots map (spec §4.1.2 item 5's slot-outlet
// resolution), falling back to the outlet's own children when the parent
// passed no matching slot. This port has no v-slot scope-prop passing at
// the call site yet (buildChildren always names every component child
// "default" — see DESIGN.md), so fn is always invoked with a nil scope;
// a real scoped slot's bound variables would arrive there.
func renderSlotOutlet(n *Node, rc RenderContext, p *Program) *vnode.Node {
	if slots, ok := rc.Get("$slots").(map[string]vnode.SlotFn); ok {
		if fn, ok := slots[slotOutletName(n)]; ok {
			return vnode.Fragment(fn(nil), 0)
		}
	}
	var children []*vnode.Node
	for _, c := range n.Children {
		if rendered := renderNode(c, rc, p); rendered != nil {
			children = append(children, rendered)
		}
	}
	return vnode.Fragment(children, 0)
}

func slotOutletName(n *Node) string {
	for _, a := range n.Attrs {
		if !a.IsDirective && a.Name == "name" {
			return a.Value
		}
	}
	return "default"
}

func renderElement(n *Node, rc RenderContext, p *Program) *vnode.Node {
	if n.Codegen == nil {
		return vnode.Element(n.Tag, nil, nil)
	}
	call := n.Codegen
	props := map[string]any{}
	for k, v := range call.StaticProps {
		props[k] = v
	}
	for k, expr := range call.DynamicProps {
		props[k] = EvalExpr(expr, rc)
	}

	if call.IsComponent {
		out := &vnode.Node{
			Kind:      vnode.KindComponent,
			Component: vnode.ComponentDef{Name: call.Tag},
			Props:     props,
			ShapeFlag: vnode.ShapeStatefulComponent,
			PatchFlag: vnode.PatchFlag(call.PatchFlag),
		}
		var kids []*vnode.Node
		for _, c := range call.ChildrenList {
			if rendered := renderNode(c, rc, p); rendered != nil {
				kids = append(kids, rendered)
			}
		}
		out.Children.Array = kids
		if len(call.ChildrenList) > 0 {
			childrenList := call.ChildrenList
			out.Children.Slots = map[string]vnode.SlotFn{
				"default": func(props map[string]any) []*vnode.Node {
					var slotKids []*vnode.Node
					for _, c := range childrenList {
						if rendered := renderNode(c, rc, p); rendered != nil {
							slotKids = append(slotKids, rendered)
						}
					}
					return slotKids
				},
			}
		}
		return out
	}

	var key any
	if keyExpr, ok := call.DynamicProps["key"]; ok {
		key = EvalExpr(keyExpr, rc)
	} else if keyLit, ok := call.StaticProps["key"]; ok {
		key = keyLit
	}

	if call.ChildrenText != "" && len(call.ChildrenList) == 0 {
		var text string
		if call.PatchFlag&PFText != 0 {
			text = toStringValue(EvalExpr(call.ChildrenText, rc))
		} else {
			text = unquoteLit(call.ChildrenText)
		}
		el := vnode.Element(n.Tag, props, []*vnode.Node{vnode.Text(text, call.PatchFlag&PFText != 0)})
		el.PatchFlag = vnode.PatchFlag(call.PatchFlag)
		el.DynamicProps = call.DynamicPropNames
		el.Key = key
		return el
	}

	var kids []*vnode.Node
	for _, c := range call.ChildrenList {
		if rendered := renderNode(c, rc, p); rendered != nil {
			kids = append(kids, rendered)
		}
	}
	el := vnode.Element(n.Tag, props, kids)
	el.PatchFlag = vnode.PatchFlag(call.PatchFlag)
	el.DynamicProps = call.DynamicPropNames
	el.Key = key
	return el
}

func unquoteLit(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// renderStatic materializes a hoisted AST subtree into a vnode.Node once,
// with no RenderContext needed since by definition it contains no dynamic
// expressions.
func renderStatic(n *Node) *vnode.Node {
	return renderNode(n, nil, &Program{})
}

// forScopeContext layers v-for aliases over a parent RenderContext,
// implementing the in-scope-identifier lookup the transform's
// prefixFreeIdentifiers relies on at compile time and this evaluator
// relies on at render time.
type forScopeContext struct {
	parent        RenderContext
	alias         string
	value         any
	indexName     string
	index         int
	keyName       string
	key           any
}

func newForScopeContext(parent RenderContext, alias string, value any, indexName string, index int, keyName string, key any) *forScopeContext {
	return &forScopeContext{parent: parent, alias: alias, value: value, indexName: indexName, index: index, keyName: keyName, key: key}
}

func (c *forScopeContext) Get(name string) any {
	switch name {
	case c.alias:
		return c.value
	case c.indexName:
		if c.indexName != "" {
			return float64(c.index)
		}
	case c.keyName:
		if c.keyName != "" {
			return c.key
		}
	}
	if c.parent != nil {
		return c.parent.Get(name)
	}
	return nil
}

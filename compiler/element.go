package compiler

import "strings"

// transformElement is the central transform (spec §4.1.2 item 6 / §4.1.3):
// on exit, it builds the element's VNodeCall — tag resolution, props
// expression with patch-flag computation, children expression, and the
// block-ness decision.
func transformElement(n *Node, ctx *TransformContext) ExitFn {
	if n.Type != NodeElement {
		return nil
	}
	return func(n *Node, ctx *TransformContext) {
		call := &VNodeCall{
			Tag:         n.Tag,
			StaticProps: map[string]string{},
			DynamicProps: map[string]string{},
		}
		call.IsComponent = n.ElementType == ElementComponent
		if call.IsComponent {
			ctx.Components[n.Tag] = true
		}
		for _, a := range isDynamicComponentAttr(n.Attrs) {
			call.IsDynamic = true
			call.Tag = a.Value
		}

		buildProps(n, ctx, call)
		buildChildren(n, ctx, call)
		call.IsBlock = decideBlock(n, call)

		n.Codegen = call
		n.PatchFlag = call.PatchFlag
		n.DynamicProps = call.DynamicPropNames
		n.IsBlock = call.IsBlock
	}
}

func isDynamicComponentAttr(attrs []*Attribute) []*Attribute {
	var out []*Attribute
	for _, a := range attrs {
		if a.IsDirective && a.Name == "bind" && a.Arg == "is" {
			out = append(out, a)
		}
		if a.IsDirective && a.Name == "is" {
			out = append(out, a)
		}
	}
	return out
}

// buildProps iterates raw attributes, merging directive-transform output
// into call's static/dynamic prop maps and computing the patch flag, per
// spec §4.1.3's "Build props expression" / "Compute patch flag" steps.
func buildProps(n *Node, ctx *TransformContext, call *VNodeCall) {
	classParts := []string{}
	styleParts := []string{}
	classDynamic := false
	styleDynamic := false
	var dynamicPropNames []string
	hasFullProps := false
	hasRuntimeDirective := false
	hasOtherDynamicFlag := false

	for _, a := range n.Attrs {
		if !a.IsDirective {
			switch a.Name {
			case "class":
				classParts = append(classParts, a.Value)
			case "style":
				styleParts = append(styleParts, a.Value)
			default:
				call.StaticProps[a.Name] = a.Value
			}
			continue
		}
		if a.Name == "if" || a.Name == "else" || a.Name == "else-if" || a.Name == "for" || a.Name == "once" || a.Name == "pre" || a.Name == "slot" {
			continue // consumed by earlier node transforms
		}

		dt, ok := ctx.DirectiveTransforms[a.Name]
		if !ok {
			ctx.Directives[a.Name] = true
			hasRuntimeDirective = true
			continue
		}
		res := dt(a, ctx)
		if res.NeedRuntime && res.Runtime != nil {
			call.Directives = append(call.Directives, res.Runtime)
			hasRuntimeDirective = true
			if res.Runtime.Name == "bind" && res.Runtime.Arg == "" {
				call.MergeExprs = append(call.MergeExprs, res.Runtime.Expr)
				hasFullProps = true
			}
			if res.Runtime.Name == "on" && res.Runtime.Arg == "" {
				call.MergeExprs = append(call.MergeExprs, "toHandlers("+res.Runtime.Expr+")")
				hasFullProps = true
			}
			if res.Runtime.Arg != "" && isDynamicArgAttr(a) {
				hasFullProps = true
			}
		}
		for k, v := range res.Props {
			switch k {
			case "class":
				classParts = append(classParts, v)
				classDynamic = true
			case "style":
				styleParts = append(styleParts, v)
				styleDynamic = true
			case "ref":
				call.StaticProps["ref"] = v
				hasOtherDynamicFlag = true
			default:
				if isDynamicKey(a, k) {
					call.DynamicProps[k] = v
					dynamicPropNames = append(dynamicPropNames, k)
				} else if isDynamicValue(v) {
					call.DynamicProps[k] = v
					dynamicPropNames = append(dynamicPropNames, k)
				} else {
					call.StaticProps[k] = v
				}
				if strings.HasPrefix(k, "on") && a.Name == "on" {
					hasOtherDynamicFlag = hasOtherDynamicFlag || true
				}
			}
		}
	}

	if len(classParts) > 0 {
		joined := strings.Join(classParts, " ")
		if classDynamic {
			call.DynamicProps["class"] = joined
			call.PatchFlag |= PFClass
		} else {
			call.StaticProps["class"] = joined
		}
	}
	if len(styleParts) > 0 {
		joined := strings.Join(styleParts, "; ")
		if styleDynamic {
			call.DynamicProps["style"] = joined
			call.PatchFlag |= PFStyle
		} else {
			call.StaticProps["style"] = joined
		}
	}

	if hasFullProps {
		call.PatchFlag = PFFullProps
		call.DynamicPropNames = nil
	} else {
		if len(dynamicPropNames) > 0 {
			call.PatchFlag |= PFProps
			call.DynamicPropNames = dynamicPropNames
		}
		if _, hasRef := call.StaticProps["ref"]; hasRef {
			call.PatchFlag |= PFNeedPatch
		}
		if call.PatchFlag == 0 && hasRuntimeDirective {
			call.PatchFlag |= PFNeedPatch
		}
		_ = hasOtherDynamicFlag
	}
}

func isDynamicArgAttr(a *Attribute) bool { return a.ArgIsExp }

// isDynamicKey reports whether the prop's *name* came from a dynamic
// directive argument (forces FULL_PROPS upstream), vs. a static name
// whose *value* merely happens to be a computed expression.
func isDynamicKey(a *Attribute, _ string) bool { return a.ArgIsExp }

// isDynamicValue is a conservative heuristic: a value produced by the
// directive-transform stage (as opposed to a literal HTML attribute
// value) is always an expression and therefore dynamic in the patch-flag
// sense, since directive values are Go/template expressions, not string
// literals.
func isDynamicValue(v string) bool { return v != "" }

// buildChildren builds the children expression per spec §4.1.3: a single
// dynamic text child sets TEXT and is passed directly; component children
// become slot functions (DYNAMIC_SLOTS if any slot is conditional/
// iterated); otherwise the children array is passed as-is.
func buildChildren(n *Node, ctx *TransformContext, call *VNodeCall) {
	if call.IsComponent {
		call.Slots = map[string]string{}
		for _, c := range n.Children {
			name := "default"
			if c.Type == NodeIf || c.Type == NodeFor {
				call.PatchFlag |= PFDynamicSlots
			}
			call.Slots[name] = name
		}
		call.ChildrenList = n.Children
		return
	}
	if len(n.Children) == 1 && (n.Children[0].Type == NodeInterpolation || n.Children[0].Type == NodeText) {
		c := n.Children[0]
		if c.Type == NodeInterpolation {
			call.ChildrenText = c.Expr
			call.PatchFlag |= PFText
		} else {
			call.ChildrenText = quoteStringLit(c.Content)
		}
		return
	}
	call.ChildrenList = n.Children
}

func quoteStringLit(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

// decideBlock implements spec §4.1.3's "decide block-ness": true iff the
// element is a dynamic component, an <svg>/<foreignObject>, or has a
// dynamic key prop.
func decideBlock(n *Node, call *VNodeCall) bool {
	if call.IsDynamic {
		return true
	}
	tag := strings.ToLower(n.Tag)
	if tag == "svg" || tag == "foreignobject" {
		return true
	}
	if _, ok := call.DynamicProps["key"]; ok {
		return true
	}
	return false
}

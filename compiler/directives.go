package compiler

import "strings"

// DirectiveTransform resolves one raw directive attribute into props to
// merge onto the owning VNodeCall, or requests a runtime directive call
// when it cannot be fully resolved at compile time (spec §4.1.2's
// dispatch table). Grounded on pkg/bubbly/directives/{bind,on,if,show,
// foreach}.go: the teacher expresses these as runtime builder types
// (BindDirective[T], IfDirective, ForEachDirective); this compiler instead
// resolves the same four directive *names* at compile time into codegen
// props, which is the shift from "directive as a runtime helper you call"
// to "directive as a compile-time prop-producing transform" spec.md
// describes.
type DirectiveTransform func(a *Attribute, ctx *TransformContext) DirectiveResult

// DirectiveResult is what a DirectiveTransform produces for one directive.
type DirectiveResult struct {
	Props       map[string]string // entries to merge into the VNodeCall's props
	NeedRuntime bool
	Runtime     *RuntimeDirective
}

// directiveTransforms is the dispatch table keyed by directive name.
// NewTransformContext copies it into each context before merging any
// user-supplied overrides, so the package-level map is never mutated.
var directiveTransforms = map[string]DirectiveTransform{
	"bind":  transformBind,
	"on":    transformOn,
	"model": transformModel,
	"show":  transformShow,
}

// transformBind implements v-bind (spec §4.1.2/§4.1.3): static argument ->
// a single prop entry; dynamic argument ([expr]) -> a computed-key entry
// that forces FULL_PROPS; no argument -> the expression becomes a
// mergeProps(...) operand. `.camel` renames a static argument to
// camelCase here; for the dynamic-argument and no-argument forms the
// modifier list is only recorded on the Runtime entry. `.prop` is not
// interpreted by this transform.
func transformBind(a *Attribute, ctx *TransformContext) DirectiveResult {
	if a.Arg == "" {
		return DirectiveResult{NeedRuntime: true, Runtime: &RuntimeDirective{Name: "bind", Expr: a.Value, Modifiers: a.Modifiers}}
	}
	if a.ArgIsExp {
		return DirectiveResult{NeedRuntime: true, Runtime: &RuntimeDirective{Name: "bind", Expr: a.Value, Arg: a.Arg, Modifiers: a.Modifiers}}
	}
	argName := a.Arg
	for _, m := range a.Modifiers {
		if m == "camel" {
			argName = toCamel(argName)
		}
	}
	return DirectiveResult{Props: map[string]string{argName: a.Value}}
}

// transformOn implements v-on: a static argument produces an "on<Arg>"
// prop holding the handler expression as written. Inline statements and
// expressions are passed through alike; no anonymous-handler wrapping is
// done. `.stop`/`.prevent`/`.self` and key modifiers are compiled into a
// withModifiers(...) wrapper expression so the runtime need not
// re-inspect the modifier list per invocation. With no argument, the
// expression is returned as a runtime directive (a handlers object).
func transformOn(a *Attribute, ctx *TransformContext) DirectiveResult {
	handlerName := "on" + capitalize(a.Arg)
	expr := a.Value
	if len(a.Modifiers) > 0 {
		expr = wrapHandlerWithModifiers(expr, a.Modifiers)
	}
	if a.Arg == "" {
		return DirectiveResult{NeedRuntime: true, Runtime: &RuntimeDirective{Name: "on", Expr: expr, Modifiers: a.Modifiers}}
	}
	return DirectiveResult{Props: map[string]string{handlerName: expr}}
}

// transformModel implements v-model as a host-backend-specific transform:
// it always requests a runtime directive call, since the concrete
// event/prop pairing ("value"+"input" for a text field, "checked"+"change"
// for a checkbox, a key-binding event for this repo's terminal host) can
// only be resolved once the element's tag/type is known, which happens in
// the element transform's exit phase, not here.
func transformModel(a *Attribute, ctx *TransformContext) DirectiveResult {
	return DirectiveResult{NeedRuntime: true, Runtime: &RuntimeDirective{Name: "model", Expr: a.Value, Arg: a.Arg, Modifiers: a.Modifiers}}
}

// transformShow implements v-show as a host-specific runtime directive
// (toggling visibility without unmounting), the terminal analogue of CSS
// `display:none` toggling.
func transformShow(a *Attribute, ctx *TransformContext) DirectiveResult {
	return DirectiveResult{NeedRuntime: true, Runtime: &RuntimeDirective{Name: "show", Expr: a.Value}}
}

func toCamel(s string) string {
	parts := strings.Split(s, "-")
	for i := 1; i < len(parts); i++ {
		parts[i] = capitalize(parts[i])
	}
	return strings.Join(parts, "")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// wrapHandlerWithModifiers produces an expression naming the modifier set
// alongside the original handler expression; the render-program generator
// resolves this into an actual wrapped-handler call (spec keeps this
// resolution inside the v-on transform's output, not the generator).
func wrapHandlerWithModifiers(expr string, mods []string) string {
	return "withModifiers(" + expr + ", [" + strings.Join(quoteAll(mods), ", ") + "])"
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = "\"" + s + "\""
	}
	return out
}

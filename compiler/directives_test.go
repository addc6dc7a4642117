package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformBindStaticArgumentProducesProp(t *testing.T) {
	a := &Attribute{Name: "bind", Arg: "id", Value: "userId"}
	out := transformBind(a, nil)

	assert.False(t, out.NeedRuntime)
	assert.Equal(t, map[string]string{"id": "userId"}, out.Props)
}

func TestTransformBindDynamicArgumentRequestsRuntime(t *testing.T) {
	a := &Attribute{Name: "bind", Arg: "key", ArgIsExp: true, Value: "dynamicKey"}
	out := transformBind(a, nil)

	assert.True(t, out.NeedRuntime)
	assert.Equal(t, &RuntimeDirective{Name: "bind", Expr: "dynamicKey", Arg: "key"}, out.Runtime)
}

func TestTransformBindNoArgumentRequestsMergePropsRuntime(t *testing.T) {
	a := &Attribute{Name: "bind", Value: "attrsObject"}
	out := transformBind(a, nil)

	assert.True(t, out.NeedRuntime)
	assert.Equal(t, "attrsObject", out.Runtime.Expr)
}

func TestTransformBindCamelModifierConvertsArgName(t *testing.T) {
	a := &Attribute{Name: "bind", Arg: "aria-label", Value: "label", Modifiers: []string{"camel"}}
	out := transformBind(a, nil)

	assert.Equal(t, map[string]string{"ariaLabel": "label"}, out.Props)
}

func TestTransformOnProducesOnPrefixedHandlerProp(t *testing.T) {
	a := &Attribute{Name: "on", Arg: "increment", Value: "doIncrement"}
	out := transformOn(a, nil)

	assert.False(t, out.NeedRuntime)
	assert.Equal(t, map[string]string{"onIncrement": "doIncrement"}, out.Props)
}

func TestTransformOnWithModifiersWrapsHandlerExpression(t *testing.T) {
	a := &Attribute{Name: "on", Arg: "submit", Value: "doSubmit", Modifiers: []string{"prevent", "stop"}}
	out := transformOn(a, nil)

	assert.Equal(t, `withModifiers(doSubmit, ["prevent", "stop"])`, out.Props["onSubmit"])
}

func TestTransformOnWithoutArgumentRequestsRuntime(t *testing.T) {
	a := &Attribute{Name: "on", Value: "listenersObject"}
	out := transformOn(a, nil)

	assert.True(t, out.NeedRuntime)
	assert.Equal(t, "listenersObject", out.Runtime.Expr)
}

func TestTransformModelAlwaysRequestsRuntime(t *testing.T) {
	a := &Attribute{Name: "model", Value: "text", Arg: "value"}
	out := transformModel(a, nil)

	assert.True(t, out.NeedRuntime)
	assert.Equal(t, "model", out.Runtime.Name)
	assert.Equal(t, "text", out.Runtime.Expr)
	assert.Equal(t, "value", out.Runtime.Arg)
}

func TestTransformShowAlwaysRequestsRuntime(t *testing.T) {
	a := &Attribute{Name: "show", Value: "visible"}
	out := transformShow(a, nil)

	assert.True(t, out.NeedRuntime)
	assert.Equal(t, "show", out.Runtime.Name)
	assert.Equal(t, "visible", out.Runtime.Expr)
}

func TestDirectiveTransformsDispatchTableHasAllFourNames(t *testing.T) {
	for _, name := range []string{"bind", "on", "model", "show"} {
		_, ok := directiveTransforms[name]
		assert.True(t, ok, "missing dispatch entry for v-%s", name)
	}
}

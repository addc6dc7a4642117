package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loomui/loom/vnode"
)

type mapContext map[string]any

func (m mapContext) Get(name string) any { return m[name] }

func compileTemplate(t *testing.T, src string) *Program {
	t.Helper()
	prog, ctx := Compile(src, ParserOptions{}, TransformOptions{})
	assert.NotNil(t, ctx)
	return prog
}

func TestCompileAndRenderSimpleInterpolation(t *testing.T) {
	prog := compileTemplate(t, `<div>{{ name }}</div>`)
	out := prog.Render(mapContext{"name": "ada"})

	assert.Equal(t, vnode.KindElement, out.Kind)
	assert.Equal(t, "div", out.Tag)
	assert.Len(t, out.Children.Array, 1)
	assert.Equal(t, "ada", out.Children.Array[0].TextContent)
}

func TestCompileAndRenderStaticAttribute(t *testing.T) {
	prog := compileTemplate(t, `<span class="greeting">hi</span>`)
	out := prog.Render(mapContext{})

	assert.Equal(t, "span", out.Tag)
	assert.Equal(t, "greeting", out.Props["class"])
}

func TestCompileAndRenderVIfVElseChain(t *testing.T) {
	prog := compileTemplate(t, `<div v-if="show">yes</div><div v-else>no</div>`)

	shown := prog.Render(mapContext{"show": true})
	assert.Equal(t, "yes", shown.Children.Array[0].TextContent)

	hidden := prog.Render(mapContext{"show": false})
	assert.Equal(t, "no", hidden.Children.Array[0].TextContent)
}

func TestCompileAndRenderVIfVElseIfVElseChain(t *testing.T) {
	prog := compileTemplate(t, `<div v-if="n == 1">one</div><div v-else-if="n == 2">two</div><div v-else>other</div>`)

	one := prog.Render(mapContext{"n": 1.0})
	assert.Equal(t, "one", one.Children.Array[0].TextContent)

	two := prog.Render(mapContext{"n": 2.0})
	assert.Equal(t, "two", two.Children.Array[0].TextContent)

	other := prog.Render(mapContext{"n": 3.0})
	assert.Equal(t, "other", other.Children.Array[0].TextContent)
}

func TestCompileAndRenderVForOverSliceProducesKeyedFragment(t *testing.T) {
	prog := compileTemplate(t, `<li v-for="item in items" :key="item">{{ item }}</li>`)

	items := []any{"a", "b", "c"}
	out := prog.Render(mapContext{"items": items})

	assert.Equal(t, vnode.PatchFlag(PFKeyedFragment), out.PatchFlag)
	assert.Len(t, out.Children.Array, 3)
	for i, child := range out.Children.Array {
		assert.Equal(t, items[i], child.Key)
		assert.Equal(t, items[i], child.Children.Array[0].TextContent)
	}
}

func TestCompileAndRenderComponentReference(t *testing.T) {
	prog := compileTemplate(t, `<TodoItem :label="label" />`)
	out := prog.Render(mapContext{"label": "buy milk"})

	assert.Equal(t, vnode.KindComponent, out.Kind)
	assert.Equal(t, "TodoItem", out.Component.Name)
	assert.Equal(t, "buy milk", out.Props["label"])
	assert.Nil(t, out.Component.Setup, "the compiler leaves component resolution to the runtime registry")
}

func TestCompileAndRenderComponentChildrenBuildDefaultSlotFn(t *testing.T) {
	prog := compileTemplate(t, `<Card><span>{{ body }}</span></Card>`)
	out := prog.Render(mapContext{"body": "hello"})

	assert.Equal(t, vnode.KindComponent, out.Kind)
	assert.Len(t, out.Children.Array, 1, "children still render eagerly into Children.Array")
	defaultSlot, ok := out.Children.Slots["default"]
	assert.True(t, ok, "component children must also be exposed as a \"default\" SlotFn")
	rendered := defaultSlot(nil)
	assert.Len(t, rendered, 1)
	assert.Equal(t, "hello", rendered[0].Children.Array[0].TextContent)
}

func TestCompileAndRenderSlotOutletResolvesNamedSlotFromContext(t *testing.T) {
	prog := compileTemplate(t, `<div><slot name="header">fallback</slot></div>`)

	withSlot := prog.Render(mapContext{"$slots": map[string]vnode.SlotFn{
		"header": func(props map[string]any) []*vnode.Node {
			return []*vnode.Node{vnode.Text("from parent", false)}
		},
	}})
	assert.Equal(t, "from parent", withSlot.Children.Array[0].Children.Array[0].TextContent)

	withoutSlot := prog.Render(mapContext{})
	assert.Equal(t, "fallback", withoutSlot.Children.Array[0].Children.Array[0].TextContent)
}

func TestEvalExprArithmeticAndComparison(t *testing.T) {
	ctx := mapContext{"a": 2.0, "b": 3.0}
	assert.Equal(t, 5.0, EvalExpr("a + b", ctx))
	assert.Equal(t, true, EvalExpr("a < b", ctx))
	assert.Equal(t, false, EvalExpr("a == b", ctx))
	assert.Equal(t, true, EvalExpr("!(a == b)", ctx))
}

// TestInterpolationStringifiesIntValues covers spec.md §8.4 E1: a
// computed/ref holding a Go int (not float64) must still stringify
// correctly through an interpolation, matching
// runtime/reactive_template_test.go's NewComputed(func() int { ... })
// binding.
func TestInterpolationStringifiesIntValues(t *testing.T) {
	prog := compileTemplate(t, `<p>{{ n }}</p>`)

	out := prog.Render(mapContext{"n": 42})
	assert.Equal(t, "42", out.Children.Array[0].TextContent)

	out = prog.Render(mapContext{"n": int64(7)})
	assert.Equal(t, "7", out.Children.Array[0].TextContent)
}

// TestEqualComparesIntsNumericallyNotByStringRendering guards against
// equal() regressing into string-coercion comparison for int-valued
// operands, which previously made every nonzero int pair compare equal
// (both sides stringified to "").
func TestEqualComparesIntsNumericallyNotByStringRendering(t *testing.T) {
	ctx := mapContext{"a": 1, "b": 2}
	assert.Equal(t, false, EvalExpr("a == b", ctx))
	assert.Equal(t, true, EvalExpr("a != b", ctx))

	same := mapContext{"a": 5, "b": 5}
	assert.Equal(t, true, EvalExpr("a == b", same))
}

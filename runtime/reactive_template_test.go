package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loomui/loom/reactivity"
	"github.com/loomui/loom/renderer/testhost"
	"github.com/loomui/loom/vnode"
)

// TestCounterWithComputedTemplateEndToEnd reproduces spec.md §8.4 E1: a
// ref, a computed derived from it, and a template binding directly to
// the computed. Mounting plus two increments must produce the host text
// sequence "1", "2", "3", with the computed's getter invoked exactly once
// per render (it is read exactly once per Program.Render call and stays
// cached otherwise).
func TestCounterWithComputedTemplateEndToEnd(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	count := reactivity.NewRef(0)
	getterCalls := 0
	plusOne := reactivity.NewComputed(func() int {
		getterCalls++
		return count.Get() + 1
	})

	def := ComponentOptions{
		Name:     "Counter",
		Template: compileTemplate(t, `<p>{{ plusOne }}</p>`),
		Setup:    func() map[string]any { return map[string]any{"plusOne": plusOne} },
	}

	inst := NewRoot[*testhost.Node, *testhost.Node](opts, registry, def, nil)
	inst.Mount(&vnode.Node{Kind: vnode.KindComponent}, container, nil)

	text := func() string { return container.Children[0].Children[0].Text }

	assert.Equal(t, "1", text())
	count.Set(1)
	assert.Equal(t, "2", text())
	count.Set(2)
	assert.Equal(t, "3", text())
	assert.Equal(t, 3, getterCalls)
}

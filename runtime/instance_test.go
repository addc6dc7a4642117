package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loomui/loom/compiler"
	"github.com/loomui/loom/renderer"
	"github.com/loomui/loom/renderer/testhost"
	"github.com/loomui/loom/vnode"
)

func compileTemplate(t *testing.T, src string) *compiler.Program {
	t.Helper()
	prog, _ := compiler.Compile(src, compiler.ParserOptions{}, compiler.TransformOptions{})
	return prog
}

func newTestRuntime() (*renderer.Options[*testhost.Node, *testhost.Node], *testhost.Backend, *Registry) {
	backend := testhost.New()
	opts := &renderer.Options[*testhost.Node, *testhost.Node]{Backend: backend}
	return opts, backend, NewRegistry()
}

func TestInstanceMountRendersTemplateIntoContainer(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	def := ComponentOptions{
		Name:     "Greeting",
		Template: compileTemplate(t, `<div>{{ name }}</div>`),
		Setup:    func() map[string]any { return map[string]any{"name": "ada"} },
	}

	inst := NewRoot[*testhost.Node, *testhost.Node](opts, registry, def, nil)
	inst.Mount(&vnode.Node{Kind: vnode.KindComponent}, container, nil)

	assert.Len(t, container.Children, 1)
	el := container.Children[0]
	assert.Equal(t, "div", el.Tag)
	assert.Equal(t, "ada", el.Children[0].Text)
}

func TestInstanceFiresLifecycleHooksInOrder(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	var order []string
	def := ComponentOptions{
		Name:     "Hooked",
		Template: compileTemplate(t, `<span>hi</span>`),
		Setup: func() map[string]any {
			OnBeforeCreate(func() { order = append(order, "beforeCreate") })
			OnCreated(func() { order = append(order, "created") })
			OnBeforeMount(func() { order = append(order, "beforeMount") })
			OnMounted(func() { order = append(order, "mounted") })
			return nil
		},
	}

	inst := NewRoot[*testhost.Node, *testhost.Node](opts, registry, def, nil)
	inst.Mount(&vnode.Node{Kind: vnode.KindComponent}, container, nil)

	assert.Equal(t, []string{"beforeCreate", "created", "beforeMount", "mounted"}, order)
}

func TestInstanceUpdateReflectsChangedProp(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	def := ComponentOptions{
		Name:     "Labeled",
		Props:    []string{"label"},
		Template: compileTemplate(t, `<div>{{ label }}</div>`),
	}

	inst := NewRoot[*testhost.Node, *testhost.Node](opts, registry, def, nil)
	vn := &vnode.Node{Kind: vnode.KindComponent, Props: map[string]any{"label": "first"}}
	inst.Mount(vn, container, nil)
	assert.Equal(t, "first", container.Children[0].Children[0].Text)

	next := &vnode.Node{Kind: vnode.KindComponent, Props: map[string]any{"label": "second"}}
	assert.True(t, inst.ShouldUpdate(next))
	inst.Update(next)
	assert.Equal(t, "second", container.Children[0].Children[0].Text)
}

func TestInstanceShouldUpdateFalseWhenPropsUnchanged(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	def := ComponentOptions{
		Name:     "Same",
		Props:    []string{"label"},
		Template: compileTemplate(t, `<div>{{ label }}</div>`),
	}

	inst := NewRoot[*testhost.Node, *testhost.Node](opts, registry, def, nil)
	vn := &vnode.Node{Kind: vnode.KindComponent, Props: map[string]any{"label": "same"}}
	inst.Mount(vn, container, nil)

	next := &vnode.Node{Kind: vnode.KindComponent, Props: map[string]any{"label": "same"}}
	assert.False(t, inst.ShouldUpdate(next))
}

func TestInstanceUnmountFiresHooksAndRemovesHostNode(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	var order []string
	def := ComponentOptions{
		Name:     "Goodbye",
		Template: compileTemplate(t, `<p>bye</p>`),
		Setup: func() map[string]any {
			OnBeforeUnmount(func() { order = append(order, "beforeUnmount") })
			OnUnmounted(func() { order = append(order, "unmounted") })
			return nil
		},
	}

	inst := NewRoot[*testhost.Node, *testhost.Node](opts, registry, def, nil)
	inst.Mount(&vnode.Node{Kind: vnode.KindComponent}, container, nil)
	assert.Len(t, container.Children, 1)

	inst.Unmount()
	assert.Equal(t, []string{"beforeUnmount", "unmounted"}, order)
	assert.Len(t, container.Children, 0)
}

func TestInstancePropsAttrsSplit(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	var sawLabel any
	var sawAttrs map[string]any

	def := ComponentOptions{
		Name:     "SplitTest",
		Props:    []string{"label"},
		Template: compileTemplate(t, `<div></div>`),
		Setup: func() map[string]any {
			sawLabel = CurrentProps().Get("label")
			sawAttrs = CurrentAttrs()
			return nil
		},
	}

	inst := NewRoot[*testhost.Node, *testhost.Node](opts, registry, def, nil)
	vn := &vnode.Node{Kind: vnode.KindComponent, Props: map[string]any{
		"label":   "ok",
		"data-id": "x1",
	}}
	inst.Mount(vn, container, nil)

	assert.Equal(t, "ok", sawLabel)
	assert.Equal(t, "x1", sawAttrs["data-id"])
	_, isProp := sawAttrs["label"]
	assert.False(t, isProp, "a declared prop must not also appear in attrs")
}

func TestInstanceProvideInjectAcrossParentChain(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	parentDef := ComponentOptions{
		Name:     "Parent",
		Template: compileTemplate(t, `<div></div>`),
		Setup: func() map[string]any {
			Provide("theme", "dark")
			return nil
		},
	}
	parent := NewRoot[*testhost.Node, *testhost.Node](opts, registry, parentDef, nil)
	parent.Mount(&vnode.Node{Kind: vnode.KindComponent}, container, nil)

	var injected any
	childDef := ComponentOptions{
		Name:     "Child",
		Template: compileTemplate(t, `<span></span>`),
		Setup: func() map[string]any {
			injected = Inject("theme", "light")
			return nil
		},
	}
	child := &Instance[*testhost.Node, *testhost.Node]{
		opts: opts, registry: registry, def: childDef, parent: parent, provides: map[string]any{},
	}
	child.Mount(&vnode.Node{Kind: vnode.KindComponent}, container, nil)

	assert.Equal(t, "dark", injected)
}

func TestInstanceEmitInvokesParentBoundHandler(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	var gotArg any
	def := ComponentOptions{
		Name:     "Emitter",
		Template: compileTemplate(t, `<div></div>`),
		Setup: func() map[string]any {
			Emit("select", "item-1")
			return nil
		},
	}

	inst := NewRoot[*testhost.Node, *testhost.Node](opts, registry, def, nil)
	vn := &vnode.Node{Kind: vnode.KindComponent, Props: map[string]any{
		"onSelect": func(v any) { gotArg = v },
	}}
	inst.Mount(vn, container, nil)

	assert.Equal(t, "item-1", gotArg)
}

func TestInstanceErrorCapturedHookHaltsPropagation(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	var capturedByParent, capturedByChild bool
	parentDef := ComponentOptions{
		Name:     "ErrParent",
		Template: compileTemplate(t, `<div></div>`),
		Setup: func() map[string]any {
			OnErrorCaptured(func(err error) bool { capturedByParent = true; return true })
			return nil
		},
	}
	parent := NewRoot[*testhost.Node, *testhost.Node](opts, registry, parentDef, nil)
	parent.Mount(&vnode.Node{Kind: vnode.KindComponent}, container, nil)

	childDef := ComponentOptions{
		Name:     "ErrChild",
		Template: compileTemplate(t, `<span></span>`),
		Setup: func() map[string]any {
			OnErrorCaptured(func(err error) bool { capturedByChild = true; return false })
			panic("boom")
		},
	}
	child := &Instance[*testhost.Node, *testhost.Node]{
		opts: opts, registry: registry, def: childDef, parent: parent, provides: map[string]any{},
	}
	child.Mount(&vnode.Node{Kind: vnode.KindComponent}, container, nil)

	assert.True(t, capturedByChild, "the panicking component's own errorCaptured hook must run first")
	assert.True(t, capturedByParent, "an errorCaptured hook returning false must let the error keep propagating to the parent")
}

func TestHandleKeyDispatchesMatchingBinding(t *testing.T) {
	opts, backend, registry := newTestRuntime()
	container := backend.CreateElement("root", false, false)

	var gotEvent string
	def := ComponentOptions{
		Name:     "KeyBound",
		Template: compileTemplate(t, `<div></div>`),
		Setup: func() map[string]any {
			OnConditionalKeyBinding(KeyBinding{Key: "q", Event: "quit"})
			return nil
		},
	}

	inst := NewRoot[*testhost.Node, *testhost.Node](opts, registry, def, nil)
	vn := &vnode.Node{Kind: vnode.KindComponent, Props: map[string]any{
		"onQuit": func() { gotEvent = "quit" },
	}}
	inst.Mount(vn, container, nil)

	event, matched := inst.HandleKey("q")
	assert.True(t, matched)
	assert.Equal(t, "quit", event)
	assert.Equal(t, "quit", gotEvent)

	_, matched = inst.HandleKey("z")
	assert.False(t, matched)
}

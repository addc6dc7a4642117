package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loomui/loom/renderer/testhost"
	"github.com/loomui/loom/vnode"
)

func newTestOptions() (*Options[*testhost.Node, *testhost.Node], *testhost.Backend) {
	b := testhost.New()
	return &Options[*testhost.Node, *testhost.Node]{Backend: b}, b
}

func TestMountElementWithTextChild(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	vn := vnode.Element("div", map[string]any{"class": "greeting"}, []*vnode.Node{
		vnode.Text("hello", false),
	})
	opts.Patch(nil, vn, container, nil, nil)

	el := vn.El.(*testhost.Node)
	assert.Equal(t, "div", el.Tag)
	assert.Equal(t, "greeting", el.Props["class"])
	assert.Len(t, el.Children, 1)
	assert.Equal(t, "hello", el.Children[0].Text)
}

func TestPatchElementUpdatesChangedPropOnly(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	old := vnode.Element("div", map[string]any{"class": "a", "id": "x"}, nil)
	old.PatchFlag = vnode.PatchFullProps
	opts.Patch(nil, old, container, nil, nil)

	new := vnode.Element("div", map[string]any{"class": "b", "id": "x"}, nil)
	new.PatchFlag = vnode.PatchFullProps
	opts.Patch(old, new, container, nil, nil)

	el := new.El.(*testhost.Node)
	assert.Equal(t, "b", el.Props["class"])
	assert.Equal(t, "x", el.Props["id"])
}

func TestPatchTextUpdatesInPlace(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	old := vnode.Text("one", true)
	opts.Patch(nil, old, container, nil, nil)

	new := vnode.Text("two", true)
	opts.Patch(old, new, container, nil, nil)

	textNode := new.El.(*testhost.Node)
	assert.Same(t, old.El, new.El, "patching text in place must reuse the same host handle")
	assert.Equal(t, "two", textNode.Text)
}

func TestUnmountRemovesHostNode(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	vn := vnode.Element("div", nil, nil)
	opts.Patch(nil, vn, container, nil, nil)
	assert.Len(t, container.Children, 1)

	opts.Patch(vn, nil, container, nil, nil)
	assert.Len(t, container.Children, 0)
}

func TestSameTypeMismatchReplacesNode(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	old := vnode.Element("div", nil, nil)
	opts.Patch(nil, old, container, nil, nil)

	new := vnode.Element("span", nil, nil)
	opts.Patch(old, new, container, nil, nil)

	assert.Len(t, container.Children, 1)
	assert.Equal(t, "span", container.Children[0].Tag)
}

// TestKeyedChildrenShuffleMinimizesMoves reproduces the documented keyed
// diff scenario: old positions [1,2,3,4,5,6,7,8,9], new order
// [2,1,5,3,6,4,8,9,7] — the longest increasing subsequence of old indices
// by new position sits at new positions [1,3,5,6,7] (keys 1,3,4,8,9), so
// those five keep their relative position and everything else moves.
func TestKeyedChildrenShuffleMinimizesMoves(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	keys := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	c1 := make([]*vnode.Node, len(keys))
	for i, k := range keys {
		n := vnode.Text("", false)
		n.Key = k
		c1[i] = n
	}
	for _, n := range c1 {
		opts.Patch(nil, n, container, nil, nil)
	}

	newOrder := []int{2, 1, 5, 3, 6, 4, 8, 9, 7}
	byKey := make(map[any]*vnode.Node, len(c1))
	for _, n := range c1 {
		byKey[n.Key] = n
	}
	c2 := make([]*vnode.Node, len(newOrder))
	for i, k := range newOrder {
		c2[i] = &vnode.Node{Kind: vnode.KindText, TextContent: "", Key: k, El: byKey[k].El}
	}

	opts.PatchKeyedChildren(c1, c2, container, nil, nil)

	// testhost text nodes carry no Key directly; recover order via the
	// El identity map instead.
	elToKey := make(map[*testhost.Node]int, len(c1))
	for _, n := range c1 {
		elToKey[n.El.(*testhost.Node)] = n.Key.(int)
	}
	order := make([]int, len(container.Children))
	for i, n := range container.Children {
		order[i] = elToKey[n]
	}
	assert.Equal(t, newOrder, order)
}

func TestKeyedChildrenPureAdd(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	c1 := []*vnode.Node{}
	c2 := []*vnode.Node{vnode.Text("a", false), vnode.Text("b", false)}
	opts.PatchKeyedChildren(c1, c2, container, nil, nil)

	assert.Len(t, container.Children, 2)
}

func TestKeyedChildrenPureRemove(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	a, b := vnode.Text("a", false), vnode.Text("b", false)
	c1 := []*vnode.Node{a, b}
	for _, n := range c1 {
		opts.Patch(nil, n, container, nil, nil)
	}

	opts.PatchKeyedChildren(c1, nil, container, nil, nil)
	assert.Len(t, container.Children, 0)
}

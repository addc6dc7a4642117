// Package testhost is an in-memory HostBackend implementation used by the
// reconciler's own test suite and available to downstream component
// tests, grounded on the teacher's testing/testutil harness pattern
// (TestHarness / mock node inspection) — generalized from a mock
// component-render harness into a full tree-shaped fake DOM so keyed-diff
// and patch-flag tests can assert on real mount/unmount/move call counts.
package testhost

import "fmt"

// Node is a test-host tree node: either a text node or an element node,
// discriminated by Tag == "" for text.
type Node struct {
	Tag      string
	Text     string
	Props    map[string]any
	Parent   *Node
	Children []*Node
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Tag == "" {
		return fmt.Sprintf("#text(%q)", n.Text)
	}
	return fmt.Sprintf("<%s>", n.Tag)
}

// Backend implements renderer.HostBackend[*Node, *Node] — elements and
// text nodes share the same Go type here, unlike a real DOM, since the
// in-memory tree has no need to distinguish element-handle from
// node-handle types.
type Backend struct {
	Log []string // call log, for tests asserting operation counts
}

func New() *Backend { return &Backend{} }

func (b *Backend) CreateElement(tag string, isSVG, isCustomizedBuiltIn bool) *Node {
	b.Log = append(b.Log, "create:"+tag)
	return &Node{Tag: tag, Props: map[string]any{}}
}

func (b *Backend) CreateText(s string) *Node {
	b.Log = append(b.Log, "createText")
	return &Node{Text: s}
}

func (b *Backend) CreateComment(s string) *Node {
	b.Log = append(b.Log, "createComment")
	return &Node{Tag: "#comment", Text: s}
}

func (b *Backend) SetText(node *Node, s string) {
	b.Log = append(b.Log, "setText")
	node.Text = s
}

func (b *Backend) SetElementText(el *Node, s string) {
	b.Log = append(b.Log, "setElementText")
	el.Children = []*Node{{Text: s}}
	for _, c := range el.Children {
		c.Parent = el
	}
}

func (b *Backend) Insert(node *Node, parent *Node, anchor *Node) {
	b.Log = append(b.Log, "insert")
	if node.Parent != nil {
		removeChild(node.Parent, node)
	}
	node.Parent = parent
	if anchor == nil {
		parent.Children = append(parent.Children, node)
		return
	}
	idx := indexOf(parent.Children, anchor)
	if idx < 0 {
		parent.Children = append(parent.Children, node)
		return
	}
	parent.Children = append(parent.Children[:idx], append([]*Node{node}, parent.Children[idx:]...)...)
}

func (b *Backend) Remove(node *Node) {
	b.Log = append(b.Log, "remove")
	if node.Parent != nil {
		removeChild(node.Parent, node)
		node.Parent = nil
	}
}

func (b *Backend) ParentNode(node *Node) *Node {
	if node == nil {
		return nil
	}
	return node.Parent
}

func (b *Backend) NextSibling(node *Node) *Node {
	if node == nil || node.Parent == nil {
		return nil
	}
	idx := indexOf(node.Parent.Children, node)
	if idx < 0 || idx+1 >= len(node.Parent.Children) {
		return nil
	}
	return node.Parent.Children[idx+1]
}

func (b *Backend) PatchProp(el *Node, key string, oldValue, newValue any) {
	b.Log = append(b.Log, "patchProp:"+key)
	if newValue == nil {
		delete(el.Props, key)
		return
	}
	el.Props[key] = newValue
}

func (b *Backend) QuerySelector(sel string) *Node { return nil }

func (b *Backend) SetScopeID(el *Node, id string) {
	el.Props["data-scope-id"] = id
}

func (b *Backend) CloneNode(node *Node) *Node {
	clone := &Node{Tag: node.Tag, Text: node.Text, Props: map[string]any{}}
	for k, v := range node.Props {
		clone.Props[k] = v
	}
	for _, c := range node.Children {
		cc := b.CloneNode(c)
		cc.Parent = clone
		clone.Children = append(clone.Children, cc)
	}
	return clone
}

func (b *Backend) AsNode(el *Node) *Node { return el }

func (b *Backend) IsNil(node *Node) bool { return node == nil }

func removeChild(parent, child *Node) {
	idx := indexOf(parent.Children, child)
	if idx < 0 {
		return
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
}

func indexOf(nodes []*Node, target *Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}

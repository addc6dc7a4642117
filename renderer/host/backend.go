package host

import "strings"

// Backend implements renderer.HostBackend[*Node, *Node] over the cell tree
// in node.go. Construct one per bubbletea.Program (see Run in loom.go);
// it has no package-level state, unlike the teacher's shared
// defaultRenderer, because each mounted app owns its own node tree.
type Backend struct{}

func New() *Backend { return &Backend{} }

func (b *Backend) CreateElement(tag string, isSVG, isCustomizedBuiltIn bool) *Node {
	return newElement(tag)
}

func (b *Backend) CreateText(s string) *Node {
	return &Node{Text: s, isText: true}
}

func (b *Backend) CreateComment(s string) *Node {
	return &Node{Text: s, isComment: true}
}

func (b *Backend) SetText(node *Node, s string) {
	node.Text = s
}

func (b *Backend) SetElementText(el *Node, s string) {
	el.Children = []*Node{{Text: s, isText: true, Parent: el}}
}

func (b *Backend) Insert(node *Node, parent *Node, anchor *Node) {
	if node.Parent != nil {
		node.Parent.removeChild(node)
	}
	node.Parent = parent
	if anchor == nil {
		parent.Children = append(parent.Children, node)
		return
	}
	idx := parent.indexOf(anchor)
	if idx < 0 {
		parent.Children = append(parent.Children, node)
		return
	}
	parent.Children = append(parent.Children[:idx], append([]*Node{node}, parent.Children[idx:]...)...)
}

func (b *Backend) Remove(node *Node) {
	if node.Parent != nil {
		node.Parent.removeChild(node)
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
	idx := node.Parent.indexOf(node)
	if idx < 0 || idx+1 >= len(node.Parent.Children) {
		return nil
	}
	return node.Parent.Children[idx+1]
}

// PatchProp routes recognized style keys onto the node's lipgloss.Style,
// "direction" onto the join axis, "on*" keys into Handlers (stored only;
// nothing in this module reads them), and everything else into Attrs
// verbatim — the
// terminal-host analogue of a DOM element's attribute/property split.
func (b *Backend) PatchProp(el *Node, key string, oldValue, newValue any) {
	switch {
	case key == "direction":
		if newValue == "row" {
			el.Direction = Row
		} else {
			el.Direction = Column
		}
	case strings.HasPrefix(key, "on") && len(key) > 2:
		if newValue == nil {
			delete(el.Handlers, key)
			return
		}
		el.Handlers[key] = newValue
	case applyStyleProp(el, key, newValue):
		// handled by applyStyleProp
	default:
		if newValue == nil {
			delete(el.Attrs, key)
			return
		}
		el.Attrs[key] = newValue
	}
}

func (b *Backend) QuerySelector(sel string) *Node { return nil }

func (b *Backend) SetScopeID(el *Node, id string) {
	el.Attrs["data-v-scope"] = id
}

func (b *Backend) CloneNode(node *Node) *Node {
	clone := &Node{
		Tag: node.Tag, Text: node.Text, isText: node.isText, isComment: node.isComment,
		Style: node.Style, Direction: node.Direction,
		Attrs: make(map[string]any, len(node.Attrs)), Handlers: make(map[string]any, len(node.Handlers)),
	}
	for k, v := range node.Attrs {
		clone.Attrs[k] = v
	}
	for k, v := range node.Handlers {
		clone.Handlers[k] = v
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

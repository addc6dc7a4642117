// Package host is the real HostBackend[N, E] implementation: a retained
// tree of cell-buffer nodes styled with lipgloss and driven by a
// bubbletea.Program event loop, grounded on the teacher's actual UI stack
// (pkg/bubbly/render.go's defaultRenderer / NewStyle, pkg/bubbly/runner.go's
// Run/Wrap). Unlike the teacher, which re-renders a component's whole
// string View() on every Update, this backend is a mutation target for
// renderer.Options.Patch: nodes persist across frames and only the props/
// children the reconciler actually touches change, matching spec §6.1's
// host-backend contract.
package host

import "github.com/charmbracelet/lipgloss"

// Direction controls how an element's children are joined into one cell
// block. Templates choose it with the "direction" prop (compiler/element.go
// passes every non-directive attribute through as a prop); default is
// Column, matching a terminal's natural top-to-bottom flow.
type Direction int

const (
	Column Direction = iota
	Row
)

// Node is the host-node/host-element type this backend is parametric
// over (N == E == *Node, matching renderer/testhost's choice — a terminal
// cell tree has no structural reason to distinguish a "node" handle from
// an "element" handle the way a browser DOM does with Text vs Element).
type Node struct {
	Tag       string
	Text      string
	isText    bool
	isComment bool

	Style     lipgloss.Style
	Direction Direction
	Attrs     map[string]any
	Handlers  map[string]any // onClick/onKey/... props, stored by PatchProp; nothing in this module reads them

	Parent   *Node
	Children []*Node
}

func newElement(tag string) *Node {
	return &Node{Tag: tag, Style: lipgloss.NewStyle(), Attrs: map[string]any{}, Handlers: map[string]any{}}
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

package host

import "github.com/charmbracelet/lipgloss"

// Paint flattens a mounted node tree into the string bubbletea's View()
// returns, the one place this package touches lipgloss's compositing
// (JoinVertical/JoinHorizontal) rather than per-node Style.Render alone —
// spec's Non-goals keep cell-grid layout entirely inside lipgloss, so this
// function never hand-rolls column math itself.
func Paint(n *Node) string {
	if n == nil {
		return ""
	}
	if n.isComment {
		return ""
	}
	if n.isText {
		return n.Text
	}

	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		parts = append(parts, Paint(c))
	}

	var body string
	switch n.Direction {
	case Row:
		body = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	return n.Style.Render(body)
}

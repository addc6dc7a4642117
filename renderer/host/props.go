package host

import "github.com/charmbracelet/lipgloss"

// applyStyleProp maps a template's style-shaped prop onto el.Style,
// reporting whether key was recognized. Grounded on the teacher's own
// NewStyle() fluent-builder idiom (pkg/bubbly/render.go) — a fixed set of
// the lipgloss.Style setters most commonly chained there, exposed as flat
// prop keys so compiled v-bind output ("style:bold", literal attrs) can
// drive them without a template author touching lipgloss directly.
func applyStyleProp(el *Node, key string, value any) bool {
	switch key {
	case "bold":
		el.Style = el.Style.Bold(truthy(value))
	case "italic":
		el.Style = el.Style.Italic(truthy(value))
	case "underline":
		el.Style = el.Style.Underline(truthy(value))
	case "strikethrough":
		el.Style = el.Style.Strikethrough(truthy(value))
	case "fg", "color":
		el.Style = el.Style.Foreground(lipgloss.Color(toString(value)))
	case "bg", "background":
		el.Style = el.Style.Background(lipgloss.Color(toString(value)))
	case "width":
		el.Style = el.Style.Width(toInt(value))
	case "height":
		el.Style = el.Style.Height(toInt(value))
	case "padding":
		el.Style = el.Style.Padding(toInt(value))
	case "margin":
		el.Style = el.Style.Margin(toInt(value))
	case "align":
		el.Style = el.Style.Align(toPosition(value))
	case "border":
		el.Style = el.Style.Border(toBorderStyle(value), true)
	default:
		return false
	}
	return true
}

func truthy(v any) bool {
	b, _ := v.(bool)
	return b
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toPosition(v any) lipgloss.Position {
	switch toString(v) {
	case "center":
		return lipgloss.Center
	case "right", "bottom":
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

func toBorderStyle(v any) lipgloss.Border {
	switch toString(v) {
	case "rounded":
		return lipgloss.RoundedBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// Package loom is the application entry point: Run mounts a named
// component out of a runtime.Registry and drives it inside a Bubbletea
// program until it quits, the same one-line integration
// pkg/bubbly/runner.go's Run gives the teacher's components, generalized
// from forwarding Init/Update/View calls to a Component interface to
// driving a runtime.Instance's render effect against a renderer/host
// backend and painting the result with lipgloss.
package loom

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loomui/loom/internal/xlog"
	"github.com/loomui/loom/renderer"
	"github.com/loomui/loom/renderer/host"
	"github.com/loomui/loom/runtime"
	"github.com/loomui/loom/vnode"
)

// RunOption configures Run, mirroring pkg/bubbly/runner.go's RunOption/
// runConfig split, narrowed to the Bubbletea program options this
// terminal backend actually benefits from.
type RunOption func(*runConfig)

type runConfig struct {
	altScreen       bool
	mouseAllMotion  bool
	mouseCellMotion bool
	fps             int
	input           io.Reader
	output          io.Writer
	ctx             context.Context
}

func WithAltScreen() RunOption        { return func(c *runConfig) { c.altScreen = true } }
func WithMouseAllMotion() RunOption   { return func(c *runConfig) { c.mouseAllMotion = true } }
func WithMouseCellMotion() RunOption  { return func(c *runConfig) { c.mouseCellMotion = true } }
func WithFPS(fps int) RunOption       { return func(c *runConfig) { c.fps = fps } }
func WithInput(r io.Reader) RunOption { return func(c *runConfig) { c.input = r } }
func WithOutput(w io.Writer) RunOption {
	return func(c *runConfig) { c.output = w }
}
func WithContext(ctx context.Context) RunOption { return func(c *runConfig) { c.ctx = ctx } }

func (c *runConfig) teaOptions() []tea.ProgramOption {
	var opts []tea.ProgramOption
	if c.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if c.mouseAllMotion {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	if c.mouseCellMotion {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if c.fps > 0 {
		opts = append(opts, tea.WithFPS(c.fps))
	}
	if c.input != nil {
		opts = append(opts, tea.WithInput(c.input))
	}
	if c.output != nil {
		opts = append(opts, tea.WithOutput(c.output))
	}
	if c.ctx != nil {
		opts = append(opts, tea.WithContext(c.ctx))
	}
	return opts
}

// Run mounts the component named rootName in registry as the application
// root and runs it as a Bubbletea program until the user quits (either
// via a "quit" key binding or the terminal's own interrupt handling).
func Run(registry *runtime.Registry, rootName string, opts ...RunOption) error {
	cfg := &runConfig{}
	for _, o := range opts {
		o(cfg)
	}

	def, ok := registry.Resolve(rootName)
	if !ok {
		return &unresolvedRootError{name: rootName}
	}

	backend := host.New()
	ropts := &renderer.Options[*host.Node, *host.Node]{Backend: backend}
	ropts.OnWarn = func(msg string) { xlog.Warn(msg) }
	ropts.OnError = func(err error) { xlog.Error("loom: unhandled component error", "error", err) }

	inst := runtime.NewRoot[*host.Node, *host.Node](ropts, registry, def, ropts.OnError)
	m := &model{inst: inst, def: def, container: backend.CreateElement("root", false, false)}

	p := tea.NewProgram(m, cfg.teaOptions()...)
	_, err := p.Run()
	return err
}

type unresolvedRootError struct{ name string }

func (e *unresolvedRootError) Error() string {
	return "loom: no component registered under name " + e.name
}

// model is the Bubbletea tea.Model bridging host key events into the
// root instance's key-binding table and painting the retained host tree
// on every View call — grounded on pkg/bubbly/wrapper.go's
// autoWrapperModel, generalized from "forward to Component.Update and
// re-stringify" to "forward host key events and repaint the mutated
// retained tree", since this renderer patches in place rather than
// producing a fresh string each frame.
type model struct {
	inst      *runtime.Instance[*host.Node, *host.Node]
	def       runtime.ComponentOptions
	container *host.Node
}

func (m *model) Init() tea.Cmd {
	vn := &vnode.Node{
		Kind:      vnode.KindComponent,
		Component: vnode.ComponentDef{Name: m.def.Name},
		Props:     map[string]any{},
		ShapeFlag: vnode.ShapeStatefulComponent,
	}
	m.inst.Mount(vn, m.container, nil)
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if event, matched := m.inst.HandleKey(km.String()); matched && event == "quit" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *model) View() string {
	return host.Paint(m.container)
}

package runtime

import "github.com/loomui/loom/compiler"

// SetupFunc is a component's setup function: it takes no arguments (its
// props store is read with CurrentProps), runs once at mount, registers lifecycle hooks/watchers via the
// package-level On*/Provide/Inject helpers (valid only while this instance
// is current, see context.go), and returns the exposed state map the
// compiled template's RenderContext.Get reads from — spec.md §4.2 step 2's
// "if setup returns a record, the record becomes the setup-state".
//
// This port does not support the function-return variant (setup returning
// a render function instead of a state record): every component here is
// defined by a *compiler.Program template, so the "record becomes
// setup-state, read by a separately-compiled render function" path is the
// only one that applies.
type SetupFunc func() map[string]any

// ComponentOptions is a component type's compile-time descriptor: its
// declared prop names (used to split incoming vnode Props into the props
// store vs. the attrs fallthrough map, spec.md §4.2 step 2), its Setup
// function, and its compiled template.
type ComponentOptions struct {
	Name     string
	Props    []string
	Setup    SetupFunc
	Template *compiler.Program
}

// Registry resolves a component vnode's Component.Name (emitted by the
// compiler as an `Asset.component.<validId>` reference, spec.md §4.1.3)
// back to its ComponentOptions at render time — the asset-resolution step
// spec.md §4.1.4 describes as part of the render program's prelude.
type Registry struct {
	components map[string]ComponentOptions
}

func NewRegistry() *Registry {
	return &Registry{components: map[string]ComponentOptions{}}
}

func (r *Registry) Register(opts ComponentOptions) {
	r.components[opts.Name] = opts
}

func (r *Registry) Resolve(name string) (ComponentOptions, bool) {
	opts, ok := r.components[name]
	return opts, ok
}

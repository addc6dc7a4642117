package runtime

import "github.com/loomui/loom/reactivity"

// hooks is the closed lifecycle hook set of spec.md §6.3: beforeCreate,
// created, beforeMount, mounted, beforeUpdate, updated, beforeUnmount,
// unmounted, activated, deactivated, renderTracked, renderTriggered,
// errorCaptured. Each is an ordered slice; registering during setup
// appends to the slice bound to whichever instance is current (see
// context.go's currentInstance stack), grounded on
// pkg/bubbly/lifecycle.go's LifecycleManager hook-by-name map, generalized
// here into one struct of typed slices instead of a map keyed by hook name
// string, since the hook set is closed and spec-named rather than
// open-ended.
type hooks struct {
	BeforeCreate    []func()
	Created         []func()
	BeforeMount     []func()
	Mounted         []func()
	BeforeUpdate    []func()
	Updated         []func()
	BeforeUnmount   []func()
	Unmounted       []func()
	Activated       []func()
	Deactivated     []func()
	RenderTracked   []func(reactivity.TrackEvent)
	RenderTriggered []func(reactivity.TriggerEvent)
	ErrorCaptured   []func(err error) bool
}

func fireAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

func fireTrack(fns []func(reactivity.TrackEvent), e reactivity.TrackEvent) {
	for _, fn := range fns {
		fn(e)
	}
}

func fireTrigger(fns []func(reactivity.TriggerEvent), e reactivity.TriggerEvent) {
	for _, fn := range fns {
		fn(e)
	}
}

package runtime

import (
	"fmt"

	"github.com/getsentry/sentry-go"

	"github.com/loomui/loom/internal/xlog"
)

// sentryEnabled gates reporting unhandled component errors to Sentry,
// the teacher's observability dependency (pkg/bubbly/observability's
// SentryReporter) — off by default so a library consumer never has
// events shipped to a DSN it didn't configure. InitSentry turns it on.
var sentryEnabled = false

// InitSentry initializes the process-wide Sentry client and enables
// reporting every error that falls off the end of the errorCaptured
// chain (spec.md §7's fallback tier) to it, in addition to the xlog
// diagnostic that always fires. Call once at application startup.
func InitSentry(opts sentry.ClientOptions) error {
	if err := sentry.Init(opts); err != nil {
		return err
	}
	sentryEnabled = true
	return nil
}

// ErrorSource names which kind of user-code invocation produced an error,
// for diagnostics — spec.md §7's funneled-runtime-error list (setup,
// render, watcher callback, lifecycle hook, event handler, directive hook,
// scheduler job).
type ErrorSource string

const (
	ErrorSourceSetup        ErrorSource = "setup"
	ErrorSourceRender       ErrorSource = "render"
	ErrorSourceWatcher      ErrorSource = "watcher"
	ErrorSourceLifecycle    ErrorSource = "lifecycle"
	ErrorSourceEventHandler ErrorSource = "event-handler"
	ErrorSourceDirective    ErrorSource = "directive"
	ErrorSourceScheduler    ErrorSource = "scheduler"
)

// CapturedError wraps a recovered panic or returned error with the
// component and call site it came from, the payload handed to every
// errorCaptured hook on the chain.
type CapturedError struct {
	Err       error
	Source    ErrorSource
	Component string
}

func (e *CapturedError) Error() string {
	return fmt.Sprintf("loom: %s error in component %q: %v", e.Source, e.Component, e.Err)
}

func (e *CapturedError) Unwrap() error { return e.Err }

// instanceErrorHandler is the minimal surface invokeWithErrorHandling needs
// from an Instance[N, E] without depending on its type parameters: a name
// for diagnostics, the errorCaptured hook chain of this instance, and the
// parent to walk to next. Grounded on pkg/bubbly/component_errors.go's
// hasAncestor walk, generalized from "detect a cycle" to "find the nearest
// handler".
type instanceErrorHandler interface {
	componentName() string
	errorCapturedHooks() []func(error) bool
	parentHandler() instanceErrorHandler
}

// invokeWithErrorHandling runs fn, recovering any panic and funneling both
// panics and returned errors through the error-capture chain (spec.md §7):
// walk inst's parent pointers invoking each errorCaptured hook in
// registration order; a hook returning true halts propagation. If the
// chain exhausts, fall back to the app-level handler (onUnhandled), or log
// via slog if none is configured.
func invokeWithErrorHandling(inst instanceErrorHandler, source ErrorSource, onUnhandled func(error), fn func() error) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = e
				} else {
					err = fmt.Errorf("%v", r)
				}
			}
		}()
		err = fn()
	}()
	if err == nil {
		return
	}

	captured := &CapturedError{Err: err, Source: source, Component: inst.componentName()}
	for cur := inst; cur != nil; cur = cur.parentHandler() {
		handled := false
		for _, hook := range cur.errorCapturedHooks() {
			if hook(captured) {
				handled = true
			}
		}
		if handled {
			return
		}
	}

	if sentryEnabled {
		sentry.CaptureException(captured)
	}
	if onUnhandled != nil {
		onUnhandled(captured)
		return
	}
	xlog.Error("unhandled component error", "error", captured)
}

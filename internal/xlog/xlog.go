// Package xlog is loom's one logging dependency: a thin wrapper around
// the standard library's log/slog, matching the teacher's choice to keep
// logging dependency-free (pkg/core/signal.go's debugMode-gated
// fmt.Printf calls) but upgraded from unstructured prints to structured
// slog calls, gated by an Enabled flag instead of a compile-time debugMode
// constant so a hosting application can turn diagnostics on at runtime.
package xlog

import "log/slog"

// Enabled gates Debug output the same way the teacher's debugMode flag
// gated its fmt.Printf calls — off by default so a library consumer's
// terminal UI is not interleaved with framework chatter.
var Enabled = false

func Debug(msg string, args ...any) {
	if Enabled {
		slog.Debug(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

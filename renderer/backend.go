// Package renderer implements the tree-diff engine that consumes the
// compiler's vnode.Node output and mounts/updates/unmounts it against a
// host backend, per spec.md §4.4. No pack repo implements a patch-flag/
// block-tree/keyed-LIS reconciler of this shape — the teacher's
// pkg/core/component_diff.go carries diff *vocabulary* (Additions/
// Removals/Reorders) without an actual algorithm, and the reconciler here
// is built directly from spec §4.4's prose, with structural cues taken
// from the vdom packages in other_examples (vango's renderer, golem's
// dom/vdom.go) for the HostBackend shape.
package renderer

import "github.com/loomui/loom/vnode"

// HostBackend is the generic interface the reconciler is parametric over
// (spec §6.1): a host-node type N and a host-element type E. A concrete
// backend (renderer/host for the terminal, renderer/testhost for tests)
// implements this against its own tree representation.
type HostBackend[N any, E any] interface {
	CreateElement(tag string, isSVG, isCustomizedBuiltIn bool) E
	CreateText(s string) N
	CreateComment(s string) N
	SetText(node N, s string)
	SetElementText(el E, s string)
	Insert(node N, parent E, anchor N)
	Remove(node N)
	ParentNode(node N) E
	NextSibling(node N) N
	PatchProp(el E, key string, oldValue, newValue any)
	QuerySelector(sel string) E
	SetScopeID(el E, id string)
	CloneNode(node N) N
	AsNode(el E) N
	IsNil(node N) bool
}

// Options bundles the backend plus the handful of cross-cutting
// dependencies the reconciler's recursive operations need (spec §4.4.1's
// "bundle of internals" passed to Teleport/Suspense handlers) — kept here
// so element.go/children.go/component.go/keyed_diff.go share one struct
// instead of threading eight parameters through every call.
type Options[N any, E any] struct {
	Backend  HostBackend[N, E]
	OnError  func(error)
	OnWarn   func(string)
}

func (o *Options[N, E]) warn(msg string) {
	if o.OnWarn != nil {
		o.OnWarn(msg)
	}
}

// nodeHandle reads a vnode's host handle as N, the zero value if unset or
// of the wrong underlying type.
func nodeHandle[N any](n *vnode.Node) N {
	if n == nil {
		var zero N
		return zero
	}
	return asHandle[N](n.El)
}

// asHandle converts an opaque vnode.HostHandle (stored as `any`) back to
// its concrete host type N, the zero value if v is nil or of a different
// underlying type.
func asHandle[N any](v any) N {
	if h, ok := v.(N); ok {
		return h
	}
	var zero N
	return zero
}

// ParentOf returns the host-element parent of n's mounted root handle —
// exported so runtime's component render effect can find where to re-patch
// an already-mounted subtree on an update, the same way it finds a
// top-level instance's container at first mount.
func (o *Options[N, E]) ParentOf(n *vnode.Node) E {
	if n == nil {
		var zero E
		return zero
	}
	return o.Backend.ParentNode(asHandle[N](n.El))
}

// NextHostSibling returns the host node immediately following n's mounted
// root handle, for use as a patch anchor — nil (zero N) if n has no next
// sibling, in which case the caller's own anchor (the end of its subtree)
// should be used instead.
func (o *Options[N, E]) NextHostSibling(n *vnode.Node) N {
	if n == nil {
		var zero N
		return zero
	}
	return o.Backend.NextSibling(asHandle[N](n.El))
}

// RootHandle exposes a mounted node's host handle as N, for callers outside
// this package (runtime's Subtree().El bookkeeping) that need it typed.
func RootHandle[N any](n *vnode.Node) N {
	return asHandle[N](n.El)
}

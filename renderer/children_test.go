package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loomui/loom/vnode"
)

func textChildren(ss ...string) []*vnode.Node {
	out := make([]*vnode.Node, len(ss))
	for i, s := range ss {
		out[i] = vnode.Text(s, false)
	}
	return out
}

// TestPatchChildrenArrayUnkeyedGrowsAppendsTail covers children.go's
// unkeyed path when the new list is longer than the old one: the common
// prefix patches in place and the new tail mounts.
func TestPatchChildrenArrayUnkeyedGrowsAppendsTail(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	old := textChildren("a", "b")
	opts.mountChildrenArray(old, container, nil, nil)

	newChildren := textChildren("a2", "b2", "c")
	opts.PatchChildrenArray(old, newChildren, container, nil, nil)

	assert.Len(t, container.Children, 3)
	assert.Equal(t, "a2", container.Children[0].Text)
	assert.Equal(t, "b2", container.Children[1].Text)
	assert.Equal(t, "c", container.Children[2].Text)
}

// TestPatchChildrenArrayUnkeyedShrinksUnmountsTail covers the opposite
// case: the new list is shorter, so the old tail unmounts.
func TestPatchChildrenArrayUnkeyedShrinksUnmountsTail(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	old := textChildren("a", "b", "c")
	opts.mountChildrenArray(old, container, nil, nil)

	newChildren := textChildren("a2")
	opts.PatchChildrenArray(old, newChildren, container, nil, nil)

	assert.Len(t, container.Children, 1)
	assert.Equal(t, "a2", container.Children[0].Text)
}

// TestPatchChildrenArrayEmptyNewUnmountsAll covers the new-is-empty
// dispatch branch.
func TestPatchChildrenArrayEmptyNewUnmountsAll(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	old := textChildren("a", "b")
	opts.mountChildrenArray(old, container, nil, nil)

	opts.PatchChildrenArray(old, nil, container, nil, nil)
	assert.Len(t, container.Children, 0)
}

// TestPatchChildrenArrayEmptyOldMountsAll covers the old-is-empty
// dispatch branch.
func TestPatchChildrenArrayEmptyOldMountsAll(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	newChildren := textChildren("a", "b")
	opts.PatchChildrenArray(nil, newChildren, container, nil, nil)
	assert.Len(t, container.Children, 2)
}

// TestPatchBlockChildrenPatchesPairwiseAgainstFallbackContainer covers
// block.go's same-type fast path: every dynamic child pair patches
// directly against fallbackContainer since SameType holds throughout.
func TestPatchBlockChildrenPatchesPairwiseAgainstFallbackContainer(t *testing.T) {
	opts, backend := newTestOptions()
	container := backend.CreateElement("root", false, false)

	old := textChildren("a", "b")
	opts.mountChildrenArray(old, container, nil, nil)

	newChildren := textChildren("a2", "b2")
	opts.PatchBlockChildren(old, newChildren, container, nil)

	assert.Equal(t, "a2", container.Children[0].Text)
	assert.Equal(t, "b2", container.Children[1].Text)
	assert.Same(t, old[0].El, newChildren[0].El, "block patch must reuse the old host handle in place")
}

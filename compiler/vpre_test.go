package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVPreSuppressesInterpolation covers spec.md §8.3 boundary scenario 2:
// a v-pre subtree must render its markup completely literally, including
// any {{ }} delimiters, rather than evaluating them as expressions.
func TestVPreSuppressesInterpolation(t *testing.T) {
	prog := compileTemplate(t, `<div v-pre>{{ x }}</div>`)
	out := prog.Render(mapContext{"x": "should not appear"})

	assert.Len(t, out.Children.Array, 1)
	assert.Equal(t, "{{ x }}", out.Children.Array[0].TextContent)
}

// TestVPreLeavesSiblingInterpolationIntact confirms v-pre's suppression is
// scoped to its own subtree (spec §4.1.1's rewind applies only while
// parsing that element and its descendants) and does not leak into a
// following sibling.
func TestVPreLeavesSiblingInterpolationIntact(t *testing.T) {
	prog := compileTemplate(t, `<div><span v-pre>{{ x }}</span><p>{{ x }}</p></div>`)
	out := prog.Render(mapContext{"x": "hi"})

	assert.Equal(t, "{{ x }}", out.Children.Array[0].Children.Array[0].TextContent)
	assert.Equal(t, "hi", out.Children.Array[1].Children.Array[0].TextContent)
}

package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStaticSubtreeIsHoistedAndReusedAcrossRenders covers spec.md §8.3
// boundary scenario 4: a fully-static child element must be computed
// once and replayed by pointer identity on every subsequent render,
// rather than rebuilt, while its dynamic sibling keeps re-rendering.
func TestStaticSubtreeIsHoistedAndReusedAcrossRenders(t *testing.T) {
	prog := compileTemplate(t, `<div><span>static</span><p>{{ dyn }}</p></div>`)

	first := prog.Render(mapContext{"dyn": "one"})
	second := prog.Render(mapContext{"dyn": "two"})

	assert.Same(t, first.Children.Array[0], second.Children.Array[0],
		"a fully-static child must be hoisted once and reused by pointer across renders")
	assert.NotEqual(t, first.Children.Array[1], second.Children.Array[1])
	assert.Equal(t, "two", second.Children.Array[1].Children.Array[0].TextContent)
}

func TestDynamicElementIsNeverHoisted(t *testing.T) {
	prog := compileTemplate(t, `<p>{{ dyn }}</p>`)

	first := prog.Render(mapContext{"dyn": "one"})
	second := prog.Render(mapContext{"dyn": "two"})

	assert.NotSame(t, first, second)
	assert.Equal(t, "one", first.Children.Array[0].TextContent)
	assert.Equal(t, "two", second.Children.Array[0].TextContent)
}

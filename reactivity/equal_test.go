package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefDefaultEqualUsesDeepEqual(t *testing.T) {
	assert.True(t, refDefaultEqual(1, 1))
	assert.False(t, refDefaultEqual(1, 2))

	type point struct{ x, y int }
	assert.True(t, refDefaultEqual(point{1, 2}, point{1, 2}))
	assert.False(t, refDefaultEqual(point{1, 2}, point{1, 3}))

	assert.True(t, refDefaultEqual([]int{1, 2}, []int{1, 2}))
	assert.False(t, refDefaultEqual([]int{1, 2}, []int{1, 3}))
}

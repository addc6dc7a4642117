package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefGetSet(t *testing.T) {
	r := NewRef(1)
	assert.Equal(t, 1, r.Get())
	r.Set(2)
	assert.Equal(t, 2, r.Get())
}

func TestRefTriggersDependentEffect(t *testing.T) {
	r := NewRef(0)
	runs := 0
	eff, err := NewEffect(func() {
		runs++
		_ = r.Get()
	}, EffectOptions{})
	assert.NoError(t, err)
	assert.Equal(t, 1, runs)

	r.Set(1)
	assert.Equal(t, 2, runs)

	eff.Stop()
	r.Set(2)
	assert.Equal(t, 2, runs, "a stopped effect must not re-run")
}

func TestRefSetSameValueDoesNotTrigger(t *testing.T) {
	r := NewRef(5)
	runs := 0
	_, _ = NewEffect(func() {
		runs++
		_ = r.Get()
	}, EffectOptions{})
	assert.Equal(t, 1, runs)

	r.Set(5)
	assert.Equal(t, 1, runs, "setting the identical value must not retrigger")
}

func TestRefPeekDoesNotTrack(t *testing.T) {
	r := NewRef(1)
	runs := 0
	_, _ = NewEffect(func() {
		runs++
		_ = r.Peek()
	}, EffectOptions{})
	assert.Equal(t, 1, runs)

	r.Set(2)
	assert.Equal(t, 1, runs, "Peek must not establish a dependency")
}

func TestNewRefWithEqual(t *testing.T) {
	type point struct{ x, y int }
	r := NewRefWithEqual(point{1, 1}, func(a, b point) bool { return a == b })
	runs := 0
	_, _ = NewEffect(func() {
		runs++
		_ = r.Get()
	}, EffectOptions{})
	assert.Equal(t, 1, runs)

	r.Set(point{1, 1})
	assert.Equal(t, 1, runs, "equal-by-value points should not retrigger")

	r.Set(point{2, 2})
	assert.Equal(t, 2, runs)
}

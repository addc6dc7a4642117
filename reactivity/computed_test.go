package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputedIsLazy(t *testing.T) {
	calls := 0
	c := NewComputed(func() int {
		calls++
		return 42
	})
	assert.Equal(t, 0, calls, "getter must not run before the first Get")

	assert.Equal(t, 42, c.Get())
	assert.Equal(t, 1, calls)
}

func TestComputedCachesUntilDependencyChanges(t *testing.T) {
	r := NewRef(1)
	calls := 0
	c := NewComputed(func() int {
		calls++
		return r.Get() * 2
	})

	assert.Equal(t, 2, c.Get())
	assert.Equal(t, 2, c.Get())
	assert.Equal(t, 1, calls, "repeated Get with no dependency change must not recompute")

	r.Set(5)
	assert.Equal(t, 10, c.Get())
	assert.Equal(t, 2, calls)
}

func TestComputedChainPropagatesInvalidation(t *testing.T) {
	r := NewRef(1)
	doubled := NewComputed(func() int { return r.Get() * 2 })
	quadrupled := NewComputed(func() int { return doubled.Get() * 2 })

	assert.Equal(t, 4, quadrupled.Get())
	r.Set(2)
	assert.Equal(t, 8, quadrupled.Get())
}

func TestComputedTriggersDependentEffectOnlyWhenValueCouldChange(t *testing.T) {
	r := NewRef(1)
	c := NewComputed(func() int { return r.Get() * 2 })

	runs := 0
	var seen int
	_, _ = NewEffect(func() {
		runs++
		seen = c.Get()
	}, EffectOptions{})
	assert.Equal(t, 1, runs)
	assert.Equal(t, 2, seen)

	r.Set(3)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 6, seen)
}

func TestWritableComputedDefaultSetterIsNoOp(t *testing.T) {
	c := NewComputed(func() int { return 7 })
	assert.NotPanics(t, func() { c.Set(99) })
	assert.Equal(t, 7, c.Get(), "Get must be unaffected by Set without a configured setter")
}

func TestWritableComputedInvokesSetter(t *testing.T) {
	r := NewRef(1)
	var setArg int
	c := NewWritableComputed(
		func() int { return r.Get() },
		func(v int) { setArg = v; r.Set(v) },
	)

	assert.Equal(t, 1, c.Get())
	c.Set(9)
	assert.Equal(t, 9, setArg)
	assert.Equal(t, 9, c.Get())
}

func TestComputedStopFreezesLastValue(t *testing.T) {
	r := NewRef(1)
	c := NewComputed(func() int { return r.Get() })
	assert.Equal(t, 1, c.Get())

	c.Stop()
	r.Set(2)
	assert.Equal(t, 1, c.Get(), "a stopped computed must keep returning its last cached value")
}

package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchEffectRunsImmediatelyAndOnDependencyChange(t *testing.T) {
	r := NewRef(1)
	runs := 0
	var seen int

	stop := WatchEffect(func(onInvalidate InvalidationCallback) {
		runs++
		seen = r.Get()
	})
	defer stop()

	assert.Equal(t, 1, runs, "WatchEffect must run its body immediately")
	assert.Equal(t, 1, seen)

	r.Set(2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, seen)
}

func TestWatchEffectOnInvalidateRunsBeforeNextRunAndOnStop(t *testing.T) {
	r := NewRef(1)
	var cleanups int

	stop := WatchEffect(func(onInvalidate InvalidationCallback) {
		_ = r.Get()
		onInvalidate(func() { cleanups++ })
	})

	r.Set(2)
	assert.Equal(t, 1, cleanups)

	stop()
	assert.Equal(t, 2, cleanups)
}

func TestWatchEffectStopPreventsFurtherRuns(t *testing.T) {
	r := NewRef(1)
	runs := 0
	stop := WatchEffect(func(onInvalidate InvalidationCallback) {
		runs++
		_ = r.Get()
	})
	assert.Equal(t, 1, runs)

	stop()
	r.Set(2)
	assert.Equal(t, 1, runs, "a stopped WatchEffect must not re-run")
}

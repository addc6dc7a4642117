package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchFiresOnChangeWithOldAndNewValue(t *testing.T) {
	r := NewRef(1)
	var gotNew, gotOld int
	calls := 0

	stop := WatchRef(r, func(n, old int) {
		calls++
		gotNew, gotOld = n, old
	})
	defer stop()

	assert.Equal(t, 0, calls, "Watch must not fire before any change, without Immediate")

	r.Set(2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, gotNew)
	assert.Equal(t, 1, gotOld)
}

func TestWatchImmediateFiresOnceUpFront(t *testing.T) {
	r := NewRef(5)
	calls := 0
	var gotNew int

	stop := WatchRef(r, func(n, old int) {
		calls++
		gotNew = n
	}, WatchOptions{Immediate: true})
	defer stop()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 5, gotNew)
}

func TestWatchStopPreventsFurtherCallbacks(t *testing.T) {
	r := NewRef(1)
	calls := 0
	stop := WatchRef(r, func(n, old int) { calls++ })

	r.Set(2)
	assert.Equal(t, 1, calls)

	stop()
	r.Set(3)
	assert.Equal(t, 1, calls, "a stopped watcher must not re-fire")
}

func TestWatchSameValueDoesNotFire(t *testing.T) {
	r := NewRef(1)
	calls := 0
	stop := WatchRef(r, func(n, old int) { calls++ })
	defer stop()

	r.Set(1)
	assert.Equal(t, 0, calls, "setting the identical value must not fire the watcher")
}

func TestWatchOnInvalidateRunsBeforeNextCallbackAndOnStop(t *testing.T) {
	r := NewRef(1)
	var cleanups int

	stop := Watch(func() int { return r.Get() }, func(n, old int, onInvalidate InvalidationCallback) {
		onInvalidate(func() { cleanups++ })
	}, WatchOptions{})

	r.Set(2)
	assert.Equal(t, 0, cleanups, "the first callback's cleanup has nothing to invalidate yet")

	r.Set(3)
	assert.Equal(t, 1, cleanups, "registering a new callback invalidates the prior cleanup")

	stop()
	assert.Equal(t, 2, cleanups, "stopping the watcher runs the last registered cleanup once more")
}

func TestWatchFlushSyncRunsInlineWithTrigger(t *testing.T) {
	r := NewRef(1)
	var observedDuringSet int
	stop := WatchRef(r, func(n, old int) {
		observedDuringSet = n
	}, WatchOptions{Flush: FlushSync})
	defer stop()

	r.Set(7)
	assert.Equal(t, 7, observedDuringSet)
}

func TestWatchFunctionGetterTracksArbitraryReads(t *testing.T) {
	a := NewRef(1)
	b := NewRef(10)
	calls := 0
	var sum int

	stop := Watch(func() int { return a.Get() + b.Get() }, func(n, old int, _ InvalidationCallback) {
		calls++
		sum = n
	}, WatchOptions{})
	defer stop()

	a.Set(2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 12, sum)

	b.Set(20)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 22, sum)
}

package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerQueueJobRunsOnFlush(t *testing.T) {
	s := NewScheduler()
	ran := false
	s.QueueJob("job-1", 1, func() { ran = true })
	assert.True(t, ran, "QueueJob flushes synchronously outside of an in-progress flush")
}

func TestSchedulerDedupesSameIdentityBeforeFlush(t *testing.T) {
	s := NewScheduler()

	// Hold the scheduler mid-flush so both QueueJob calls land in the same
	// queue before FlushJobs drains it, by queuing both jobs from inside a
	// gate job's body.
	runs := 0
	s.QueueJob("gate", 0, func() {
		s.QueueJob("same-identity", 1, func() { runs++ })
		s.QueueJob("same-identity", 1, func() { runs += 100 })
	})

	assert.Equal(t, 100, runs, "the later QueueJob call for the same identity replaces the closure, not adds a second run")
	assert.Equal(t, 0, s.PendingJobCount())
}

func TestSchedulerRunsJobsInAscendingIDOrder(t *testing.T) {
	s := NewScheduler()
	var order []int64

	// Queue from a context where flushing hasn't started: since QueueJob
	// triggers an immediate flush, queue all three first via a wrapping job.
	s.QueueJob("gate", 0, func() {
		s.QueueJob("c", 3, func() { order = append(order, 3) })
		s.QueueJob("a", 1, func() { order = append(order, 1) })
		s.QueueJob("b", 2, func() { order = append(order, 2) })
	})

	assert.Equal(t, []int64{1, 2, 3}, order)
}

func TestSchedulerPostFlushCallbackRunsAfterJobs(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.QueueJob("j", 1, func() { order = append(order, "job") })
	s.QueuePostFlushCb(func() { order = append(order, "post") })

	assert.Equal(t, []string{"job", "post"}, order)
}

func TestSchedulerInvalidateJobRemovesQueuedJob(t *testing.T) {
	s := NewScheduler()
	ran := false

	s.QueueJob("outer", 0, func() {
		s.QueueJob("to-cancel", 1, func() { ran = true })
		s.InvalidateJob("to-cancel")
	})

	assert.False(t, ran, "an invalidated job must not run")
}

func TestSchedulerSetErrorHandlerIsInstalled(t *testing.T) {
	s := NewScheduler()
	called := false
	s.SetErrorHandler(func(err error) { called = true })
	assert.NotNil(t, s.onError)
	_ = called
}

// TestFlushJobsTripsRecursionCapOnSelfRequeuingJob covers spec §5's "Cycle
// safety" and testable property §8.1's cycle guard: a job that re-queues
// itself under the same identity on every run must stop after recursionCap
// runs and report exactly one "maximum recursive updates exceeded" error,
// rather than looping forever (each self-requeue produces a brand-new
// *queuedJob, so the cap can only work if it's tracked by identity across
// the whole flush, not on the job struct itself).
func TestFlushJobsTripsRecursionCapOnSelfRequeuingJob(t *testing.T) {
	s := NewScheduler()
	s.recursionCap = 3

	var errs []error
	s.SetErrorHandler(func(err error) { errs = append(errs, err) })

	runs := 0
	var self func()
	self = func() {
		runs++
		s.QueueJob("cycle", 1, self)
	}
	s.QueueJob("cycle", 1, self)

	assert.Equal(t, 3, runs, "the job may run up to the recursion cap before being cut off")
	assert.Len(t, errs, 1, "exceeding the cap must surface exactly one diagnostic error")
	assert.Contains(t, errs[0].Error(), "maximum recursive updates exceeded")
	assert.Equal(t, 0, s.PendingJobCount(), "the cut-off job must not remain queued once the flush gives up on it")
}

func TestNextTickRunsAfterCurrentFlush(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.QueueJob("j", 1, func() { order = append(order, "job") })
	s.NextTick(func() { order = append(order, "tick") })

	assert.Equal(t, []string{"job", "tick"}, order)
}

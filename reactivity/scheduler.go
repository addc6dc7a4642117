package reactivity

import (
	"fmt"
	"sort"
	"sync"
)

// Job is a schedulable unit with an optional ordering id. Render effects
// queue themselves as Jobs via their Scheduler; jobs with a smaller ID run
// first within a flush, which is how the scheduler guarantees
// parent-before-child ordering (spec §4.3/§5): parent component instances
// are created (and so get a smaller effect/job id) before their children.
type Job struct {
	ID int64
	Fn func()
}

// PostFlushCallback is queued to run after the current flush's jobs all
// drain — used for mounted/updated hooks and flush:"post" watchers.
type PostFlushCallback func()

// Scheduler is the process-wide microtask-coalesced job queue described in
// spec §4.3: a pre-flush queue (sorted ascending by job id) and a
// post-flush callback queue, flushed at most once per "tick".
//
// Grounded on pkg/bubbly/scheduler.go's CallbackScheduler (lock + map,
// flush-and-clear under lock, execute outside lock) merged with
// pkg/core/update_queue.go's job-identity dedup and per-job recursion-limit
// guard. JS's promise microtask has no Go equivalent; no goroutine is used:
// queueFlush flushes synchronously (see its comment), and pendingSignal is
// written but never read (see DESIGN.md's Open Question decision).
type Scheduler struct {
	mu            sync.Mutex
	queue         []*queuedJob
	queueIndex    map[any]int // job identity -> index in queue, for idempotent enqueue
	postFlushCbs  []PostFlushCallback
	isPending     bool
	isFlushing    bool
	pendingSignal chan struct{}
	recursionCap  int
	onError       func(error)
}

type queuedJob struct {
	id       int64
	identity any
	fn       func()
}

// Global is the default process-wide scheduler instance every Effect's
// render-effect Scheduler enqueues into, matching spec's "process-wide
// scheduler" singleton.
var Global = NewScheduler()

// NewScheduler constructs an independent scheduler instance. Tests that
// want isolation from Global may construct their own.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		queueIndex:    make(map[any]int),
		pendingSignal: make(chan struct{}, 1),
		recursionCap:  100,
	}
	return s
}

// SetErrorHandler installs a callback invoked when a job exceeds the
// recursion cap (spec §5 "Cycle safety": "exceeding it surfaces a
// non-recoverable error").
func (s *Scheduler) SetErrorHandler(fn func(error)) {
	s.mu.Lock()
	s.onError = fn
	s.mu.Unlock()
}

// QueueJob enqueues job identified by identity with ordering id. A second
// QueueJob call with the same identity while the job is still queued adds
// no second entry — per spec's "At-most-once scheduling" invariant the job
// keeps its place and id and runs once, with its closure replaced by the
// latest fn.
func (s *Scheduler) QueueJob(identity any, id int64, fn func()) {
	s.mu.Lock()
	if idx, ok := s.queueIndex[identity]; ok {
		s.queue[idx].fn = fn // keep identity, refresh closure (latest wins)
		s.mu.Unlock()
		return
	}
	s.queueIndex[identity] = len(s.queue)
	s.queue = append(s.queue, &queuedJob{id: id, identity: identity, fn: fn})
	s.mu.Unlock()
	s.queueFlush()
}

// InvalidateJob removes a queued-but-not-yet-run job by identity, without
// shifting the rest of the queue (its slot is nilled and skipped during
// drain) — used when a parent-initiated update supersedes a child's
// self-queued update (spec §4.4.3/§5).
func (s *Scheduler) InvalidateJob(identity any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.queueIndex[identity]; ok {
		s.queue[idx] = nil
		delete(s.queueIndex, identity)
	}
}

// QueuePostFlushCb appends a callback to run once the current flush's jobs
// have all drained.
func (s *Scheduler) QueuePostFlushCb(cb PostFlushCallback) {
	s.mu.Lock()
	s.postFlushCbs = append(s.postFlushCbs, cb)
	s.mu.Unlock()
	s.queueFlush()
}

func (s *Scheduler) queueFlush() {
	s.mu.Lock()
	if s.isPending || s.isFlushing {
		s.mu.Unlock()
		return
	}
	s.isPending = true
	s.mu.Unlock()
	select {
	case s.pendingSignal <- struct{}{}:
	default:
	}
	// FlushSync-on-signal model: loom flushes synchronously the moment a
	// job is queued outside of an in-progress flush, rather than deferring
	// to a background goroutine. This keeps single-process test programs
	// deterministic (no real event loop to hang a microtask off of) while
	// still coalescing: QueueJob calls made *during* FlushJobs are folded
	// into the recursive drain below instead of triggering reentrant
	// flushes.
	s.FlushJobs()
}

// FlushJobs drains the pre-flush queue (sorted ascending by id, nil slots
// skipped), then drains post-flush callbacks, looping if new work arrived
// during the drain — the whole loop is one logical flush. Exposed publicly
// so a host event loop (e.g. bubbletea's Update) can force a flush at a
// deterministic point, matching spec's nextTick semantics.
//
// Per-identity run counts are tracked in a map local to this logical flush
// rather than on queuedJob itself: a self-requeuing job is dequeued and
// re-enqueued as a brand-new *queuedJob each pass (QueueJob only reuses an
// existing entry when it is still sitting in the queue, not once it has
// already been popped for execution), so a counter living on the struct
// would reset to zero every pass and the recursion cap below could never
// trip. Keying the count by identity instead of by struct instance is what
// actually detects "the same job keeps re-queuing itself."
func (s *Scheduler) FlushJobs() {
	s.mu.Lock()
	if s.isFlushing {
		s.mu.Unlock()
		return
	}
	s.isFlushing = true
	s.mu.Unlock()

	runCounts := make(map[any]int)
	for {
		s.mu.Lock()
		s.isPending = false
		jobs := s.queue
		s.queue = nil
		s.queueIndex = make(map[any]int)
		onError := s.onError
		s.mu.Unlock()

		sort.SliceStable(jobs, func(i, j int) bool {
			a, b := jobs[i], jobs[j]
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.id < b.id
		})

		for _, j := range jobs {
			if j == nil {
				continue
			}
			runCounts[j.identity]++
			if runCounts[j.identity] > s.recursionCap {
				err := fmt.Errorf("reactivity: maximum recursive updates exceeded for job %v", j.identity)
				if onError != nil {
					onError(err)
				}
				continue
			}
			j.fn()
		}

		s.flushPostFlushCbs()

		s.mu.Lock()
		more := len(s.queue) > 0 || len(s.postFlushCbs) > 0
		if !more {
			s.isFlushing = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

func (s *Scheduler) flushPostFlushCbs() {
	s.mu.Lock()
	cbs := s.postFlushCbs
	s.postFlushCbs = nil
	s.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}
}

// NextTick registers fn to run after the current (or next) flush completes,
// the Go analogue of spec's promise-based nextTick().
func (s *Scheduler) NextTick(fn func()) {
	s.QueuePostFlushCb(fn)
}

// PendingJobCount reports the number of jobs currently queued; useful for
// tests asserting at-most-once scheduling.
func (s *Scheduler) PendingJobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

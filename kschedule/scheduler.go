package kschedule

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/birdayz/tau/ktrigger"
	"github.com/birdayz/tau/pkg/log"
)

// Result labels passed to Observer.ObserveJob.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultRetired = "retired"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Service accepts jobs for later execution.
type Service interface {
	// AddJob schedules job according to trigger.
	AddJob(job Job, trigger ktrigger.Trigger) (JobID, error)
	// Remove cancels a job. It reports whether the job was still scheduled.
	Remove(id JobID) bool
}

var _ Service = (*Scheduler)(nil)

// Scheduler executes jobs on a single goroutine in fire-time order. Jobs
// due at the same instant run in submission order.
type Scheduler struct {
	mu     sync.Mutex
	queue  jobQueue
	byID   map[JobID]*entry
	seq    uint64
	closed bool

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	running   atomic.Bool

	clock       clock.Clock
	log         *slog.Logger
	observer    Observer
	stopOnError bool
}

// New creates a Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		byID:        map[JobID]*entry{},
		wake:        make(chan struct{}, 1),
		done:        make(chan struct{}),
		clock:       clock.New(),
		log:         log.NullLogger(),
		stopOnError: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddJob schedules job. It is safe to call from any goroutine, including
// from within a running job.
func (s *Scheduler) AddJob(job Job, trigger ktrigger.Trigger) (JobID, error) {
	if job == nil || trigger == nil {
		return uuid.Nil, ErrNilJob
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return uuid.Nil, ErrClosed
	}

	next, ok := trigger.NextFireTime(time.Time{}, s.clock.Now())
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrNeverFires, trigger)
	}

	e := &entry{
		id:      uuid.New(),
		job:     job,
		trigger: trigger,
		next:    next,
		seq:     s.nextSeq(),
	}
	heap.Push(&s.queue, e)
	s.byID[e.id] = e
	s.pendingChanged()

	s.log.Debug("Job added", "job", e.id, "next", next)

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return e.id, nil
}

// Remove cancels a job. A job that is currently executing finishes its run
// but is not rescheduled.
func (s *Scheduler) Remove(id JobID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	e.removed = true
	if e.index >= 0 {
		heap.Remove(&s.queue, e.index)
	}
	s.pendingChanged()

	return true
}

// Pending returns the number of scheduled jobs, including one that is
// currently executing.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Next returns the fire time of the earliest scheduled job.
func (s *Scheduler) Next() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].next, true
}

// RunPending executes every job that is due at the current clock time on the
// calling goroutine, including jobs that become due while draining. With
// stop-on-error the first failing job ends the drain; otherwise all job
// errors are combined.
func (s *Scheduler) RunPending(ctx context.Context) error {
	var errs error
	for {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		e := s.popDue()
		if e == nil {
			return errs
		}

		if err := s.execute(ctx, e); err != nil {
			if s.stopOnError {
				return err
			}
			errs = multierr.Append(errs, err)
		}
	}
}

// Run executes jobs as they become due until ctx is cancelled, Close is
// called, or a job fails while stop-on-error is set.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	s.log.Info("Scheduler started")
	defer s.log.Info("Scheduler stopped")

	for {
		if err := s.RunPending(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.stopOnError {
				return err
			}
		}

		var (
			timer  *clock.Timer
			timerC <-chan time.Time
		)
		if next, ok := s.Next(); ok {
			timer = s.clock.Timer(next.Sub(s.clock.Now()))
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return ctx.Err()
		case <-s.done:
			stopTimer(timer)
			return nil
		case <-s.wake:
		case <-timerC:
		}
		stopTimer(timer)
	}
}

// Close retires all jobs and stops Run. Further AddJob calls fail.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	s.closed = true
	for _, e := range s.byID {
		e.removed = true
	}
	s.queue = nil
	s.byID = map[JobID]*entry{}
	s.pendingChanged()
	s.mu.Unlock()

	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

func (s *Scheduler) popDue() *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 || s.queue[0].next.After(s.clock.Now()) {
		return nil
	}
	return heap.Pop(&s.queue).(*entry)
}

func (s *Scheduler) execute(ctx context.Context, e *entry) error {
	firedAt := e.next
	err := runJob(ctx, e.job)

	result := ResultOK
	if err != nil {
		result = ResultError
		s.log.Error("Job failed", "job", e.id, "error", err)
	}
	s.observe(result)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.removed {
		return err
	}

	next, ok := e.trigger.NextFireTime(firedAt, s.clock.Now())
	if !ok || (err != nil && s.stopOnError) {
		delete(s.byID, e.id)
		s.pendingChanged()
		s.observe(ResultRetired)
		s.log.Debug("Job retired", "job", e.id)
		return err
	}

	e.next = next
	e.seq = s.nextSeq()
	heap.Push(&s.queue, e)
	return err
}

func (s *Scheduler) nextSeq() uint64 {
	s.seq++
	return s.seq
}

func (s *Scheduler) observe(result string) {
	if s.observer != nil {
		s.observer.ObserveJob(result)
	}
}

// pendingChanged must be called with mu held.
func (s *Scheduler) pendingChanged() {
	if s.observer != nil {
		s.observer.SetPending(len(s.byID))
	}
}

func runJob(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()
	return job(ctx)
}

func stopTimer(t *clock.Timer) {
	if t != nil {
		t.Stop()
	}
}

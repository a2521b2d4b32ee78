// Package tau is a reactive dataflow engine. An Engine owns a kgraph.Network
// of events and signals and the scheduler that feeds it: external stimuli
// become scheduled jobs, and each job runs one activation walk.
package tau

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/petermattis/goid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/birdayz/tau/internal/metrics"
	"github.com/birdayz/tau/kgraph"
	"github.com/birdayz/tau/kschedule"
	"github.com/birdayz/tau/pkg/log"
)

// Engine wires a network, a scheduler and the bridge between them.
type Engine struct {
	net   *kgraph.Network
	sched *kschedule.Scheduler
	ns    *kschedule.NetworkScheduler

	log          *slog.Logger
	registerer   prometheus.Registerer
	clock        clock.Clock
	shortCircuit kgraph.ShortCircuitPolicy
	faults       kgraph.FaultPolicy
	stopOnError  bool

	mu      sync.Mutex
	runners []func(ctx context.Context) error
	cancel  context.CancelFunc
	eg      *errgroup.Group
	// Goroutines owned by Run: the scheduler and every runner.
	owned map[int64]struct{}
}

// New creates an engine.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		log:          log.NullLogger(),
		clock:        clock.New(),
		shortCircuit: kgraph.SkipDescendants,
		faults:       kgraph.FailFast,
		stopOnError:  true,
	}

	for _, opt := range opts {
		opt(e)
	}

	m, err := metrics.New(e.registerer)
	if err != nil {
		return nil, err
	}

	e.net = kgraph.New(
		kgraph.WithLogger(e.log.WithGroup("network")),
		kgraph.WithObserver(m),
		kgraph.WithShortCircuit(e.shortCircuit),
		kgraph.WithFaultPolicy(e.faults),
	)
	e.sched = kschedule.New(
		kschedule.WithLogger(e.log.WithGroup("scheduler")),
		kschedule.WithObserver(m),
		kschedule.WithClock(e.clock),
		kschedule.WithStopOnError(e.stopOnError),
	)
	e.ns = kschedule.NewNetworkScheduler(e.sched, e.net)

	return e, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Network returns the engine's network.
func (e *Engine) Network() *kgraph.Network {
	return e.net
}

// Scheduler returns the engine's scheduling service.
func (e *Engine) Scheduler() *kschedule.Scheduler {
	return e.sched
}

// NetworkScheduler returns the bridge used to schedule events and updates.
func (e *Engine) NetworkScheduler() *kschedule.NetworkScheduler {
	return e.ns
}

// Go registers fn to run alongside the scheduler when Run is called, e.g. a
// feed producing updates. fn must return once its context is cancelled.
func (e *Engine) Go(fn func(ctx context.Context) error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runners = append(e.runners, fn)
}

// Run blocks until it's exited, either by an error or by a graceful shutdown
// triggered by a call to Close or by cancelling ctx.
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	grp, gctx := errgroup.WithContext(ctx)

	e.mu.Lock()
	e.cancel = cancel
	e.eg = grp
	runners := e.runners
	e.mu.Unlock()
	defer cancel()

	e.log.Info("Engine started", "nodes", e.net.Len(), "edges", e.net.Edges(), "runners", len(runners))

	grp.Go(func() error {
		defer e.own()()
		err := e.sched.Run(gctx)
		// The scheduler ending for any reason stops the runners.
		cancel()
		return err
	})
	for _, fn := range runners {
		grp.Go(func() error {
			defer e.own()()
			return fn(gctx)
		})
	}

	err := grp.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		e.log.Error("Engine failed", "error", err)
	} else {
		e.log.Info("Engine stopped")
	}
	return err
}

// own marks the calling goroutine as owned by Run until the returned func is
// called.
func (e *Engine) own() func() {
	id := goid.Get()
	e.mu.Lock()
	if e.owned == nil {
		e.owned = make(map[int64]struct{})
	}
	e.owned[id] = struct{}{}
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.owned, id)
		e.mu.Unlock()
	}
}

// Drain runs every job that is currently due on the calling goroutine and
// returns. It must not be used while Run is active.
func (e *Engine) Drain(ctx context.Context) error {
	return e.sched.RunPending(ctx)
}

// Close gracefully shuts down the engine. Pending jobs are retired. Called
// from a job or a runner, Close only signals the shutdown; Run returns once
// that goroutine is done.
func (e *Engine) Close() error {
	if err := e.sched.Close(); err != nil {
		return err
	}

	e.mu.Lock()
	cancel, eg := e.cancel, e.eg
	_, inside := e.owned[goid.Get()]
	e.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	if inside {
		return nil
	}
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

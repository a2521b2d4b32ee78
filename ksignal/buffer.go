package ksignal

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/birdayz/tau/kgraph"
	"github.com/birdayz/tau/kschedule"
	"github.com/birdayz/tau/ktrigger"
)

// CountBuffer collects values into batches of a fixed size.
type CountBuffer[T any] struct {
	Function[[]T]
	values Signal[T]
	count  int
	buf    []T
}

// BufferWithCount returns a signal that emits a batch each time count values
// have arrived. The signal becomes valid with the first batch.
func BufferWithCount[T any](net *kgraph.Network, values Signal[T], count int) (*CountBuffer[T], error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	b := &CountBuffer[T]{values: values, count: count, buf: make([]T, 0, count)}
	if err := b.Bind(net, b, values); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *CountBuffer[T]) Recompute() {
	v, ok := b.values.Get()
	if !ok {
		return
	}
	b.buf = append(b.buf, v)
	if len(b.buf) == b.count {
		b.Update(slices.Clone(b.buf))
		b.buf = b.buf[:0]
	}
}

// Pending returns the values collected for the next batch.
func (b *CountBuffer[T]) Pending() []T {
	return slices.Clone(b.buf)
}

// TimeBuffer collects values and emits them once a period has elapsed.
type TimeBuffer[T any] struct {
	Function[[]T]
	values   Signal[T]
	buf      []T
	timedOut atomic.Bool
	svc      kschedule.Service
	job      kschedule.JobID
}

// BufferWithTime returns a signal that emits the collected values on the
// first input after each period has elapsed. The period is tracked by an
// interval job on the scheduling service, so a batch is only emitted when a
// value arrives after expiry.
func BufferWithTime[T any](ns *kschedule.NetworkScheduler, values Signal[T], period time.Duration) (*TimeBuffer[T], error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}

	net := ns.Network()
	b := &TimeBuffer[T]{values: values, svc: ns.Service()}
	if err := b.Bind(net, b, values); err != nil {
		return nil, err
	}

	id, err := b.svc.AddJob(func(context.Context) error {
		b.timedOut.Store(true)
		return nil
	}, ktrigger.Interval(period))
	if err != nil {
		_ = net.Disconnect(values, b)
		return nil, err
	}
	b.job = id

	return b, nil
}

func (b *TimeBuffer[T]) Recompute() {
	v, ok := b.values.Get()
	if !ok {
		return
	}
	b.buf = append(b.buf, v)
	if b.timedOut.CompareAndSwap(true, false) {
		b.Update(slices.Clone(b.buf))
		b.buf = b.buf[:0]
	}
}

// Pending returns the values collected for the next batch.
func (b *TimeBuffer[T]) Pending() []T {
	return slices.Clone(b.buf)
}

// Cancel stops the expiry job. Values keep accumulating but are no longer
// emitted.
func (b *TimeBuffer[T]) Cancel() bool {
	return b.svc.Remove(b.job)
}

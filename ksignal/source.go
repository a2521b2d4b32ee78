package ksignal

import (
	"context"
	"fmt"
	"time"

	"github.com/birdayz/tau/kschedule"
	"github.com/birdayz/tau/ktrigger"
)

// Just returns a signal that is set to v by an immediate job.
func Just[T any](ns *kschedule.NetworkScheduler, v T) (*Mutable[T], error) {
	return From(ns, []T{v})
}

// From returns a signal that is set to each of values in order, one
// immediate job per value.
func From[T any](ns *kschedule.NetworkScheduler, values []T) (*Mutable[T], error) {
	m := NewMutable[T]()
	if _, err := ns.Network().Add(m); err != nil {
		return nil, err
	}

	scheduled := make([]kschedule.JobID, 0, len(values))
	for _, v := range values {
		id, err := kschedule.ScheduleUpdate[T](ns, m, v, ktrigger.Immediate())
		if err != nil {
			for _, id := range scheduled {
				ns.Service().Remove(id)
			}
			_ = ns.Network().Remove(m)
			return nil, err
		}
		scheduled = append(scheduled, id)
	}
	return m, nil
}

// Ticker is a signal counting 1, 2, 3, ... on a fixed period.
type Ticker struct {
	Mutable[int64]
	svc  kschedule.Service
	job  kschedule.JobID
	next int64
}

// Interval returns a signal that takes the next integer, starting at 1,
// every period.
func Interval(ns *kschedule.NetworkScheduler, period time.Duration) (*Ticker, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}

	net := ns.Network()
	t := &Ticker{svc: ns.Service()}
	if _, err := net.Add(t); err != nil {
		return nil, err
	}

	id, err := t.svc.AddJob(func(context.Context) error {
		t.next++
		t.SetValue(t.next)
		return net.Activate(t)
	}, ktrigger.Interval(period))
	if err != nil {
		_ = net.Remove(t)
		return nil, err
	}
	t.job = id

	return t, nil
}

// Cancel stops the ticker.
func (t *Ticker) Cancel() bool {
	return t.svc.Remove(t.job)
}

// Package ktrigger defines when scheduled jobs fire.
package ktrigger

import (
	"fmt"
	"time"
)

// Trigger yields the fire times of a job.
type Trigger interface {
	// NextFireTime returns the next time the job should fire, given the
	// previous fire time (zero before the first firing) and the current time.
	// It returns false once the trigger will not fire again.
	NextFireTime(prev, now time.Time) (time.Time, bool)
}

// once fires a single time at an offset computed from now.
type once struct {
	fired bool
	at    func(now time.Time) time.Time
	name  string
}

func (t *once) NextFireTime(_, now time.Time) (time.Time, bool) {
	if t.fired {
		return time.Time{}, false
	}
	t.fired = true
	return t.at(now), true
}

func (t *once) String() string {
	return t.name
}

// Immediate fires exactly once, as soon as possible.
func Immediate() Trigger {
	return &once{
		at:   func(now time.Time) time.Time { return now },
		name: "immediate",
	}
}

// Delay fires once, d after it is first consulted.
func Delay(d time.Duration) Trigger {
	return &once{
		at:   func(now time.Time) time.Time { return now.Add(d) },
		name: fmt.Sprintf("delay(%s)", d),
	}
}

// At fires once at t, or immediately if t has passed.
func At(t time.Time) Trigger {
	return &once{
		at: func(now time.Time) time.Time {
			if t.Before(now) {
				return now
			}
			return t
		},
		name: fmt.Sprintf("at(%s)", t.Format(time.RFC3339Nano)),
	}
}

// IntervalTrigger fires repeatedly on a fixed period.
type IntervalTrigger struct {
	period time.Duration
	limit  int
	fired  int
}

// Interval fires every period, the first time one period after it is first
// consulted. A non-positive period is rejected with a panic.
func Interval(period time.Duration) *IntervalTrigger {
	if period <= 0 {
		panic(fmt.Sprintf("ktrigger: non-positive interval %s", period))
	}
	return &IntervalTrigger{period: period}
}

// Times limits the trigger to n firings. Zero means unlimited.
func (t *IntervalTrigger) Times(n int) *IntervalTrigger {
	t.limit = n
	return t
}

func (t *IntervalTrigger) NextFireTime(prev, now time.Time) (time.Time, bool) {
	if t.limit > 0 && t.fired >= t.limit {
		return time.Time{}, false
	}
	t.fired++
	if prev.IsZero() {
		return now.Add(t.period), true
	}
	return prev.Add(t.period), true
}

func (t *IntervalTrigger) String() string {
	return fmt.Sprintf("interval(%s)", t.period)
}

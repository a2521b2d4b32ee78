package kschedule

import (
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/go-logr/logr"

	"github.com/birdayz/tau/pkg/log"
)

// Observer receives job measurements.
type Observer interface {
	ObserveJob(result string)
	SetPending(n int)
}

// Option is a function that configures a Scheduler
type Option func(*Scheduler)

// WithClock sets the clock used for fire times and timers
var WithClock = func(c clock.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithLogger sets the logger for the scheduler
var WithLogger = func(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// WithLogr sets a logr logger for the scheduler
var WithLogr = func(l logr.Logger) Option {
	return func(s *Scheduler) {
		s.log = log.FromLogr(l)
	}
}

// WithObserver sets the receiver of job measurements
var WithObserver = func(o Observer) Option {
	return func(s *Scheduler) {
		s.observer = o
	}
}

// WithStopOnError controls whether a failing job stops Run. Default is true.
var WithStopOnError = func(stop bool) Option {
	return func(s *Scheduler) {
		s.stopOnError = stop
	}
}

package tau

import (
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/birdayz/tau/kgraph"
	"github.com/birdayz/tau/pkg/log"
)

// Option is a function that configures an Engine
type Option func(*Engine)

// WithLogger sets the logger for the engine, its network and scheduler
var WithLogger = func(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithLogr sets a logr logger for the engine
var WithLogr = func(l logr.Logger) Option {
	return func(e *Engine) {
		e.log = log.FromLogr(l)
	}
}

// WithRegisterer registers the engine's metrics on reg
var WithRegisterer = func(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.registerer = reg
	}
}

// WithClock sets the clock used by the scheduler
var WithClock = func(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithShortCircuit sets the network's short-circuit policy
var WithShortCircuit = func(p kgraph.ShortCircuitPolicy) Option {
	return func(e *Engine) {
		e.shortCircuit = p
	}
}

// WithFaultPolicy sets the network's fault policy
var WithFaultPolicy = func(p kgraph.FaultPolicy) Option {
	return func(e *Engine) {
		e.faults = p
	}
}

// WithStopOnError controls whether a failing job stops Run. Default is true.
var WithStopOnError = func(stop bool) Option {
	return func(e *Engine) {
		e.stopOnError = stop
	}
}

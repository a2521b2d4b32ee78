package kgraph

import (
	"log/slog"
	"time"

	"github.com/go-logr/logr"

	"github.com/birdayz/tau/pkg/log"
)

// ShortCircuitPolicy decides how far a false activation result reaches.
type ShortCircuitPolicy int

const (
	// SkipDescendants stops propagation along the node's outgoing edges only.
	SkipDescendants ShortCircuitPolicy = iota
	// AbortWalk abandons the remaining ordering at the first false.
	AbortWalk
)

func (p ShortCircuitPolicy) String() string {
	switch p {
	case SkipDescendants:
		return "SkipDescendants"
	case AbortWalk:
		return "AbortWalk"
	default:
		return "Unknown"
	}
}

// FaultPolicy decides what a panicking callback does to the walk.
type FaultPolicy int

const (
	// FailFast aborts the walk on the first panic.
	FailFast FaultPolicy = iota
	// IsolateFaults treats a panicking node as not activated and continues.
	IsolateFaults
)

func (p FaultPolicy) String() string {
	switch p {
	case FailFast:
		return "FailFast"
	case IsolateFaults:
		return "IsolateFaults"
	default:
		return "Unknown"
	}
}

// Observer receives walk measurements.
type Observer interface {
	ObserveWalk(d time.Duration, activated int)
	ObserveFault()
}

// Option is a function that configures a Network
type Option func(*Network)

// WithLogger sets the logger for the network
var WithLogger = func(l *slog.Logger) Option {
	return func(n *Network) {
		n.log = l
	}
}

// WithLogr sets a logr logger for the network
var WithLogr = func(l logr.Logger) Option {
	return func(n *Network) {
		n.log = log.FromLogr(l)
	}
}

// WithObserver sets the receiver of walk measurements
var WithObserver = func(o Observer) Option {
	return func(n *Network) {
		n.observer = o
	}
}

// WithShortCircuit sets the short-circuit policy. Default is SkipDescendants.
var WithShortCircuit = func(p ShortCircuitPolicy) Option {
	return func(n *Network) {
		n.shortCircuit = p
	}
}

// WithFaultPolicy sets the fault policy. Default is FailFast.
var WithFaultPolicy = func(p FaultPolicy) Option {
	return func(n *Network) {
		n.faults = p
	}
}

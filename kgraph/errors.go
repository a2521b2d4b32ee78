package kgraph

import "errors"

// Sentinel errors for common failure cases.
var (
	ErrUnknownNode         = errors.New("node not connected to network")
	ErrEdgeNotFound        = errors.New("edge not found")
	ErrSelfLoop            = errors.New("self loops are not allowed")
	ErrNilEvent            = errors.New("event is nil")
	ErrNotComparable       = errors.New("event type is not comparable")
	ErrCycleDetected       = errors.New("cycle detected in network")
	ErrWalkInProgress      = errors.New("activation walk in progress")
	ErrReentrantActivation = errors.New("reentrant activation")
	ErrNodePanicked        = errors.New("node panicked during activation")
)

// Package kgraph provides the dependency graph and activation algorithm of the
// tau dataflow engine.
//
// # Overview
//
// A Network is a directed acyclic graph of Events. An edge producer -> consumer
// means the producer must be evaluated before the consumer within one
// activation walk. Activating a node invokes its callback and, if it returns
// true, walks all of its descendants in topological order:
//
//	net := kgraph.New()
//	_ = net.Connect(price, spread)
//	_ = net.Connect(price, volume)
//	_ = net.Connect(spread, alert)
//
//	// invokes price, then spread and volume, then alert
//	err := net.Activate(price)
//
// # Handles
//
// Nodes are stored in a slot array addressed by NodeID handles issued when a
// node is first connected (or explicitly added). The algorithm works on
// handles and adjacency lists only; the Event to handle index is consulted at
// the API boundary. Events must therefore have comparable dynamic types,
// which in practice means pointers.
//
// # Short-circuit
//
// A callback returning false means "do not propagate". Two policies exist:
//
//   - SkipDescendants (default): propagation stops along the node's outgoing
//     edges only. A node is invoked iff at least one of its parents inside the
//     walk activated, so sibling branches continue.
//   - AbortWalk: the remaining ordering is abandoned at the first false.
//
// # Faults
//
// A panicking callback is recovered. Under FailFast (default) the walk is
// aborted and the panic is returned wrapped in ErrNodePanicked. Under
// IsolateFaults the node is treated as "did not activate", the walk continues
// and all faults are returned combined.
//
// # Preconditions
//
// Cycles are not rejected by Connect. A walk that reaches a cycle fails with
// ErrCycleDetected.
//
// # Thread Safety
//
// A Network is not safe for concurrent use. Exactly one walk may be in flight
// at a time; Activate from inside a callback returns ErrReentrantActivation
// and Connect/Disconnect during a walk return ErrWalkInProgress. Callers that
// receive stimuli from several goroutines should funnel them through a single
// consumer, see package kschedule.
package kgraph

package kgraph

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync/atomic"

	"github.com/birdayz/tau/pkg/log"
)

// Event is a unit of activation with no inherent value.
type Event interface {
	// Activate recomputes the node and reports whether its dependents should
	// also be activated in the current walk.
	Activate() bool
}

// NodeID is a handle issued by a Network when a node is registered. Handles
// of unregistered nodes are recycled.
type NodeID int

type slot struct {
	event    Event
	parents  []NodeID
	children []NodeID

	// activated is reset at the start of every walk.
	activated bool
	// pinned nodes were registered with Add and survive losing all edges.
	pinned bool
	live   bool
}

// Network owns the dependency graph and runs activation walks.
type Network struct {
	slots []slot
	free  []NodeID
	index map[Event]NodeID
	edges int

	shortCircuit ShortCircuitPolicy
	faults       FaultPolicy
	observer     Observer
	log          *slog.Logger

	walking atomic.Bool
	walker  atomic.Int64

	last WalkStats
}

// New creates an empty network.
func New(opts ...Option) *Network {
	n := &Network{
		index:        make(map[Event]NodeID),
		shortCircuit: SkipDescendants,
		faults:       FailFast,
		log:          log.NullLogger(),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Add registers e as a node without connecting it. Nodes added this way stay
// registered when they lose their last edge.
func (n *Network) Add(e Event) (NodeID, error) {
	if n.walking.Load() {
		return 0, ErrWalkInProgress
	}
	id, err := n.register(e)
	if err != nil {
		return 0, err
	}
	n.slots[id].pinned = true
	return id, nil
}

// MustAdd is like Add but panics on error.
func (n *Network) MustAdd(e Event) NodeID {
	id, err := n.Add(e)
	if err != nil {
		panic(err)
	}
	return id
}

// Connect adds consumer as a dependent of producer, registering both nodes if
// they are unseen. Connecting the same pair twice is a no-op.
//
// Connect does not check for cycles. The graph must stay acyclic.
func (n *Network) Connect(producer, consumer Event) error {
	if n.walking.Load() {
		return ErrWalkInProgress
	}
	if err := checkEvent(producer); err != nil {
		return err
	}
	if err := checkEvent(consumer); err != nil {
		return err
	}
	if producer == consumer {
		return fmt.Errorf("%w: %s", ErrSelfLoop, describe(producer))
	}

	p, err := n.register(producer)
	if err != nil {
		return err
	}
	c, err := n.register(consumer)
	if err != nil {
		return err
	}

	if slices.Contains(n.slots[p].children, c) {
		return nil
	}

	n.slots[p].children = append(n.slots[p].children, c)
	n.slots[c].parents = append(n.slots[c].parents, p)
	n.edges++

	n.log.Debug("Connected nodes", "producer", p, "consumer", c)
	return nil
}

// MustConnect is like Connect but panics on error.
func (n *Network) MustConnect(producer, consumer Event) {
	if err := n.Connect(producer, consumer); err != nil {
		panic(err)
	}
}

// Disconnect removes the edge producer -> consumer. A node that is left
// without edges and was not registered with Add is unregistered.
func (n *Network) Disconnect(producer, consumer Event) error {
	if n.walking.Load() {
		return ErrWalkInProgress
	}

	p, ok := n.lookup(producer)
	if !ok {
		return fmt.Errorf("%w: producer %s", ErrEdgeNotFound, describe(producer))
	}
	c, ok := n.lookup(consumer)
	if !ok {
		return fmt.Errorf("%w: consumer %s", ErrEdgeNotFound, describe(consumer))
	}

	idx := slices.Index(n.slots[p].children, c)
	if idx < 0 {
		return fmt.Errorf("%w: %d -> %d", ErrEdgeNotFound, p, c)
	}

	n.slots[p].children = slices.Delete(n.slots[p].children, idx, idx+1)
	if j := slices.Index(n.slots[c].parents, p); j >= 0 {
		n.slots[c].parents = slices.Delete(n.slots[c].parents, j, j+1)
	}
	n.edges--

	n.releaseIfDetached(p)
	n.releaseIfDetached(c)

	n.log.Debug("Disconnected nodes", "producer", p, "consumer", c)
	return nil
}

// Remove unregisters e together with all of its edges.
func (n *Network) Remove(e Event) error {
	if n.walking.Load() {
		return ErrWalkInProgress
	}
	id, ok := n.lookup(e)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, describe(e))
	}

	s := &n.slots[id]
	for _, c := range s.children {
		n.slots[c].parents = slices.DeleteFunc(n.slots[c].parents, func(p NodeID) bool { return p == id })
		n.edges--
		n.releaseIfDetached(c)
	}
	for _, p := range s.parents {
		n.slots[p].children = slices.DeleteFunc(n.slots[p].children, func(c NodeID) bool { return c == id })
		n.edges--
		n.releaseIfDetached(p)
	}
	s.children = nil
	s.parents = nil
	n.release(id)
	return nil
}

// HasActivated reports whether e fired during the current or most recent
// walk. It panics if e is not registered.
func (n *Network) HasActivated(e Event) bool {
	id, ok := n.lookup(e)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnknownNode, describe(e)))
	}
	return n.slots[id].activated
}

// ID returns the handle of e.
func (n *Network) ID(e Event) (NodeID, bool) {
	return n.lookup(e)
}

// Event returns the event registered under id.
func (n *Network) Event(id NodeID) (Event, bool) {
	if int(id) < 0 || int(id) >= len(n.slots) || !n.slots[id].live {
		return nil, false
	}
	return n.slots[id].event, true
}

// Len returns the number of registered nodes.
func (n *Network) Len() int {
	return len(n.index)
}

// Edges returns the number of edges.
func (n *Network) Edges() int {
	return n.edges
}

// Children returns the direct dependents of e in connection order.
func (n *Network) Children(e Event) ([]Event, error) {
	id, ok := n.lookup(e)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, describe(e))
	}
	children := make([]Event, len(n.slots[id].children))
	for i, c := range n.slots[id].children {
		children[i] = n.slots[c].event
	}
	return children, nil
}

func (n *Network) lookup(e Event) (NodeID, bool) {
	if checkEvent(e) != nil {
		return 0, false
	}
	id, ok := n.index[e]
	return id, ok
}

func (n *Network) register(e Event) (NodeID, error) {
	if err := checkEvent(e); err != nil {
		return 0, err
	}
	if id, ok := n.index[e]; ok {
		return id, nil
	}

	var id NodeID
	if len(n.free) > 0 {
		id = n.free[len(n.free)-1]
		n.free = n.free[:len(n.free)-1]
		n.slots[id] = slot{event: e, live: true}
	} else {
		id = NodeID(len(n.slots))
		n.slots = append(n.slots, slot{event: e, live: true})
	}
	n.index[e] = id
	return id, nil
}

func (n *Network) releaseIfDetached(id NodeID) {
	s := &n.slots[id]
	if s.pinned || len(s.parents) > 0 || len(s.children) > 0 {
		return
	}
	n.release(id)
}

func (n *Network) release(id NodeID) {
	delete(n.index, n.slots[id].event)
	n.slots[id] = slot{}
	n.free = append(n.free, id)
}

func checkEvent(e Event) error {
	if e == nil {
		return ErrNilEvent
	}
	if t := reflect.TypeOf(e); !t.Comparable() {
		return fmt.Errorf("%w: %s", ErrNotComparable, t)
	}
	return nil
}

func describe(e Event) string {
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", e)
}

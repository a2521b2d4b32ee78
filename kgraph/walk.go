package kgraph

import (
	"fmt"
	"time"

	"github.com/petermattis/goid"
	"go.uber.org/multierr"
)

// WalkStats summarizes one activation walk.
type WalkStats struct {
	// Invoked counts callbacks that ran, the origin included.
	Invoked int
	// Activated counts callbacks that returned true.
	Activated int
	// Skipped counts descendants that were not invoked.
	Skipped int
	// Faults counts callbacks that panicked.
	Faults int
}

// Activate runs one activation walk starting at origin.
//
//  1. Every activation flag is reset.
//  2. The origin callback runs. If it returns false the walk stops.
//  3. The descendants of origin are ordered topologically.
//  4. Each descendant runs according to the short-circuit policy and is
//     marked activated when its callback returns true.
func (n *Network) Activate(origin Event) error {
	id, ok := n.lookup(origin)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, describe(origin))
	}

	if err := n.enter(); err != nil {
		return err
	}
	defer n.exit()

	start := time.Now()
	stats, err := n.walk(id)
	n.last = stats

	if n.observer != nil {
		n.observer.ObserveWalk(time.Since(start), stats.Activated)
	}
	n.log.Debug("Walk finished",
		"origin", id,
		"invoked", stats.Invoked,
		"activated", stats.Activated,
		"skipped", stats.Skipped,
		"faults", stats.Faults)

	return err
}

// MustActivate is like Activate but panics on error.
func (n *Network) MustActivate(origin Event) {
	if err := n.Activate(origin); err != nil {
		panic(err)
	}
}

// LastWalk returns the statistics of the most recent walk.
func (n *Network) LastWalk() WalkStats {
	return n.last
}

// Walking reports whether a walk is in flight.
func (n *Network) Walking() bool {
	return n.walking.Load()
}

func (n *Network) enter() error {
	gid := goid.Get()
	if !n.walking.CompareAndSwap(false, true) {
		if n.walker.Load() == gid {
			return ErrReentrantActivation
		}
		return ErrWalkInProgress
	}
	n.walker.Store(gid)
	return nil
}

func (n *Network) exit() {
	n.walker.Store(0)
	n.walking.Store(false)
}

func (n *Network) walk(origin NodeID) (WalkStats, error) {
	var stats WalkStats

	for i := range n.slots {
		n.slots[i].activated = false
	}

	var errs error
	fired, err := n.invoke(origin)
	stats.Invoked++
	if err != nil {
		stats.Faults++
		if n.faults == FailFast {
			return stats, err
		}
		errs = multierr.Append(errs, err)
	}
	if !fired {
		return stats, errs
	}
	n.slots[origin].activated = true
	stats.Activated++

	members, err := n.descendants(origin)
	if err != nil {
		return stats, err
	}
	order, err := n.topologicalSort(members)
	if err != nil {
		return stats, err
	}

	for i, id := range order {
		if n.shortCircuit == SkipDescendants && !n.anyParentActivated(id) {
			stats.Skipped++
			continue
		}

		fired, err := n.invoke(id)
		stats.Invoked++
		if err != nil {
			stats.Faults++
			if n.faults == FailFast {
				return stats, err
			}
			errs = multierr.Append(errs, err)
		}

		if !fired {
			if n.shortCircuit == AbortWalk {
				stats.Skipped += len(order) - i - 1
				break
			}
			continue
		}

		n.slots[id].activated = true
		stats.Activated++
	}

	return stats, errs
}

func (n *Network) anyParentActivated(id NodeID) bool {
	for _, p := range n.slots[id].parents {
		if n.slots[p].activated {
			return true
		}
	}
	return false
}

// invoke runs a single callback and converts a panic into an error.
func (n *Network) invoke(id NodeID) (fired bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			fired = false
			err = fmt.Errorf("%w: node %d (%s): %v", ErrNodePanicked, id, describe(n.slots[id].event), r)

			if n.observer != nil {
				n.observer.ObserveFault()
			}
			n.log.Warn("Node panicked", "node", id, "policy", n.faults.String(), "panic", r)
		}
	}()

	return n.slots[id].event.Activate(), nil
}

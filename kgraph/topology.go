package kgraph

import (
	"fmt"
	"slices"
)

// descendants finds all nodes reachable from origin, origin excluded.
// Reaching origin again means the walk would run through a cycle.
// Time complexity: O(V + E).
func (n *Network) descendants(origin NodeID) ([]NodeID, error) {
	visited := make([]bool, len(n.slots))
	visited[origin] = true

	var result []NodeID
	stack := slices.Clone(n.slots[origin].children)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == origin {
			return nil, fmt.Errorf("%w: through node %d", ErrCycleDetected, origin)
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		result = append(result, current)
		stack = append(stack, n.slots[current].children...)
	}

	return result, nil
}

// enqueue adds id to the ready queue, keeping it ordered by handle.
func enqueue(ready []NodeID, id NodeID) []NodeID {
	i, _ := slices.BinarySearch(ready, id)
	return slices.Insert(ready, i, id)
}

// topologicalSort orders members using Kahn's algorithm restricted to the
// subgraph they induce. Ties are broken by ascending NodeID, so the ordering
// is deterministic and follows registration order.
func (n *Network) topologicalSort(members []NodeID) ([]NodeID, error) {
	inSet := make([]bool, len(n.slots))
	for _, id := range members {
		inSet[id] = true
	}

	inDegree := make(map[NodeID]int, len(members))
	for _, id := range members {
		inDegree[id] = 0
	}
	for _, id := range members {
		for _, c := range n.slots[id].children {
			if inSet[c] {
				inDegree[c]++
			}
		}
	}

	queue := make([]NodeID, 0, len(members))
	for _, id := range members {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	slices.Sort(queue)

	result := make([]NodeID, 0, len(members))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)

		for _, c := range n.slots[id].children {
			if !inSet[c] {
				continue
			}
			inDegree[c]--
			if inDegree[c] == 0 {
				queue = enqueue(queue, c)
			}
		}
	}

	if len(result) != len(members) {
		return nil, fmt.Errorf("%w: topological sort failed", ErrCycleDetected)
	}

	return result, nil
}

// Descendants returns the events reachable from e in the order a walk would
// visit them.
func (n *Network) Descendants(e Event) ([]Event, error) {
	id, ok := n.lookup(e)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, describe(e))
	}

	members, err := n.descendants(id)
	if err != nil {
		return nil, err
	}
	order, err := n.topologicalSort(members)
	if err != nil {
		return nil, err
	}

	events := make([]Event, len(order))
	for i, nid := range order {
		events[i] = n.slots[nid].event
	}
	return events, nil
}

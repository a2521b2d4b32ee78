package kgraph

import (
	"fmt"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// dotNode is a network node in the dot graph.
type dotNode struct {
	id        NodeID
	label     string
	activated bool
}

// ID implements graph.Node.
func (d dotNode) ID() int64 {
	return int64(d.id)
}

// DOTID implements dot.Node.
func (d dotNode) DOTID() string {
	return fmt.Sprintf("n%d", d.id)
}

// Attributes implements encoding.Attributer. Nodes that fired in the most
// recent walk are filled green.
func (d dotNode) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{{Key: "label", Value: fmt.Sprintf("%q", d.label)}}
	if d.activated {
		attrs = append(attrs,
			encoding.Attribute{Key: "style", Value: "filled"},
			encoding.Attribute{Key: "fillcolor", Value: "green"})
	}
	return attrs
}

// MarshalDOT renders the network in Graphviz DOT format.
func (n *Network) MarshalDOT(name string) ([]byte, error) {
	g := simple.NewDirectedGraph()
	for id := range n.slots {
		s := &n.slots[id]
		if !s.live {
			continue
		}
		g.AddNode(dotNode{id: NodeID(id), label: describe(s.event), activated: s.activated})
	}
	for id := range n.slots {
		s := &n.slots[id]
		if !s.live {
			continue
		}
		for _, c := range s.children {
			g.SetEdge(g.NewEdge(g.Node(int64(id)), g.Node(int64(c))))
		}
	}
	return dot.Marshal(g, name, "", "  ")
}

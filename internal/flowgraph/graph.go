// Package flowgraph builds a read-only adjacency view of a flow diagram from
// its element list.
package flowgraph

import (
	"errors"
	"fmt"
	"math"

	"github.com/vanshika/flowpath/internal/domain"
)

// ErrMalformedGraph is returned when an element list does not describe a
// consistent graph: an edge pointing at a missing node, a duplicated node id,
// an invalid weight, or an element without identity.
var ErrMalformedGraph = errors.New("malformed graph")

// Arc is one outgoing edge as seen from its source node.
type Arc struct {
	EdgeID string
	Target string
	Weight float64
}

// Graph is an immutable adjacency structure. The zero value is an empty graph.
type Graph struct {
	nodes     []domain.Node
	index     map[string]int
	adjacency map[string][]Arc
	edgeCount int
}

// Build converts a mixed list of node and edge elements into a Graph.
// Nodes may appear after the edges that reference them. Outgoing arcs keep
// the order in which their edges appear in the list.
func Build(elements []domain.Element) (*Graph, error) {
	g := &Graph{
		index:     make(map[string]int),
		adjacency: make(map[string][]Arc),
	}

	var edges []domain.Edge
	for i, elt := range elements {
		switch elt.Kind {
		case domain.KindNode:
			if elt.Node == nil {
				return nil, fmt.Errorf("%w: element %d: node kind without node", ErrMalformedGraph, i)
			}
			if elt.Node.ID == "" {
				return nil, fmt.Errorf("%w: element %d: node id is empty", ErrMalformedGraph, i)
			}
			if _, dup := g.index[elt.Node.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate node id %q", ErrMalformedGraph, elt.Node.ID)
			}
			g.index[elt.Node.ID] = len(g.nodes)
			g.nodes = append(g.nodes, *elt.Node)
		case domain.KindEdge:
			if elt.Edge == nil {
				return nil, fmt.Errorf("%w: element %d: edge kind without edge", ErrMalformedGraph, i)
			}
			if elt.Edge.ID == "" {
				return nil, fmt.Errorf("%w: element %d: edge id is empty", ErrMalformedGraph, i)
			}
			if err := validateWeight(elt.Edge.Weight); err != nil {
				return nil, fmt.Errorf("%w: edge %q: %v", ErrMalformedGraph, elt.Edge.ID, err)
			}
			edges = append(edges, *elt.Edge)
		default:
			return nil, fmt.Errorf("%w: element %d: unknown kind %q", ErrMalformedGraph, i, elt.Kind)
		}
	}

	for _, e := range edges {
		if _, ok := g.index[e.Source]; !ok {
			return nil, fmt.Errorf("%w: edge %q references unknown source %q", ErrMalformedGraph, e.ID, e.Source)
		}
		if _, ok := g.index[e.Target]; !ok {
			return nil, fmt.Errorf("%w: edge %q references unknown target %q", ErrMalformedGraph, e.ID, e.Target)
		}
		g.adjacency[e.Source] = append(g.adjacency[e.Source], Arc{
			EdgeID: e.ID,
			Target: e.Target,
			Weight: e.Weight,
		})
	}
	g.edgeCount = len(edges)

	return g, nil
}

func validateWeight(w float64) error {
	switch {
	case math.IsNaN(w):
		return errors.New("weight is NaN")
	case math.IsInf(w, 0):
		return errors.New("weight is infinite")
	case w < 0:
		return fmt.Errorf("weight %v is negative", w)
	}
	return nil
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (domain.Node, bool) {
	if g == nil {
		return domain.Node{}, false
	}
	i, ok := g.index[id]
	if !ok {
		return domain.Node{}, false
	}
	return g.nodes[i], true
}

// Has reports whether id names a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.Node(id)
	return ok
}

// Nodes returns the nodes in element-list order.
func (g *Graph) Nodes() []domain.Node {
	if g == nil {
		return nil
	}
	return append([]domain.Node(nil), g.nodes...)
}

// Outgoing returns the arcs leaving id. The slice must not be modified.
func (g *Graph) Outgoing(id string) []Arc {
	if g == nil {
		return nil
	}
	return g.adjacency[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return g.edgeCount
}

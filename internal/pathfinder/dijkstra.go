// Package pathfinder computes minimum-weight paths over a flowgraph.Graph.
package pathfinder

import (
	"container/heap"
	"errors"
	"fmt"
	"slices"

	"github.com/vanshika/flowpath/internal/domain"
	"github.com/vanshika/flowpath/internal/flowgraph"
)

// Placeholder is the id a node picker submits while nothing is selected.
const Placeholder = "default"

// ErrInvalidSelection is returned when the start or end id is the
// placeholder, empty, or not a node of the graph.
var ErrInvalidSelection = errors.New("invalid selection")

// ShortestPath runs Dijkstra's algorithm from startID and stops as soon as
// endID is finalized. A missing path is reported as a domain.PathUnreachable
// outcome with a nil error.
//
// Ties between equal-cost routes resolve to the one discovered first, so the
// result is stable for a given element order.
func ShortestPath(g *flowgraph.Graph, startID, endID string) (domain.PathOutcome, error) {
	if err := checkSelection(g, "start", startID); err != nil {
		return domain.PathOutcome{}, err
	}
	if err := checkSelection(g, "end", endID); err != nil {
		return domain.PathOutcome{}, err
	}

	if startID == endID {
		n, _ := g.Node(startID)
		return domain.PathOutcome{
			Status:  domain.PathFound,
			StartID: startID,
			EndID:   endID,
			Nodes:   []domain.PathNode{{ID: n.ID, Label: n.Label}},
		}, nil
	}

	s := search{
		dist:     map[string]float64{startID: 0},
		prev:     make(map[string]step),
		finished: make(map[string]bool),
	}
	s.push(startID, 0)

	for s.frontier.Len() > 0 {
		cur := heap.Pop(&s.frontier).(entry)
		if s.finished[cur.node] {
			continue
		}
		s.finished[cur.node] = true
		if cur.node == endID {
			return s.outcome(g, startID, endID), nil
		}

		for _, arc := range g.Outgoing(cur.node) {
			if s.finished[arc.Target] {
				continue
			}
			alt := cur.dist + arc.Weight
			if d, seen := s.dist[arc.Target]; seen && alt >= d {
				continue
			}
			s.dist[arc.Target] = alt
			s.prev[arc.Target] = step{from: cur.node, edgeID: arc.EdgeID, weight: arc.Weight}
			s.push(arc.Target, alt)
		}
	}

	return domain.Unreachable(startID, endID), nil
}

func checkSelection(g *flowgraph.Graph, role, id string) error {
	switch {
	case id == "" || id == Placeholder:
		return fmt.Errorf("%w: no %s node chosen", ErrInvalidSelection, role)
	case !g.Has(id):
		return fmt.Errorf("%w: %s node %q does not exist", ErrInvalidSelection, role, id)
	}
	return nil
}

type step struct {
	from   string
	edgeID string
	weight float64
}

type search struct {
	frontier frontier
	seq      int
	dist     map[string]float64
	prev     map[string]step
	finished map[string]bool
}

func (s *search) push(node string, dist float64) {
	heap.Push(&s.frontier, entry{node: node, dist: dist, seq: s.seq})
	s.seq++
}

// outcome walks the predecessor chain back from endID.
func (s *search) outcome(g *flowgraph.Graph, startID, endID string) domain.PathOutcome {
	var (
		nodes []domain.PathNode
		edges []domain.PathEdge
	)
	for cur := endID; ; {
		n, _ := g.Node(cur)
		nodes = append(nodes, domain.PathNode{ID: n.ID, Label: n.Label})
		if cur == startID {
			break
		}
		st := s.prev[cur]
		edges = append(edges, domain.PathEdge{ID: st.edgeID, Source: st.from, Target: cur, Weight: st.weight})
		cur = st.from
	}
	slices.Reverse(nodes)
	slices.Reverse(edges)

	return domain.PathOutcome{
		Status:   domain.PathFound,
		StartID:  startID,
		EndID:    endID,
		Nodes:    nodes,
		Edges:    edges,
		Distance: s.dist[endID],
	}
}

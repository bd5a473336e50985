package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/flowpath/internal/domain"
	"github.com/vanshika/flowpath/internal/graph"
)

// ErrFlowNotFound is returned when no flow carries the requested id.
var ErrFlowNotFound = errors.New("flow not found")

// Repository reads saved flows from the graph database. It never writes.
//
// A flow is stored as
//
//	(:Flow {id})-[:CONTAINS]->(:FlowNode {id, label, position})
//	(:FlowNode)-[:CONNECTS {id, weight, position}]->(:FlowNode)
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// LoadFlow returns the flow's element list: its nodes followed by its
// edges, each ordered by stored position and then id.
func (r *Repository) LoadFlow(ctx context.Context, flowID string) ([]domain.Element, error) {
	if flowID == "" {
		return nil, errors.New("flow id is required")
	}
	params := map[string]any{"flowId": flowID}

	nodesRes, err := r.client.ExecuteRead(ctx, FlowNodesQuery, params)
	if err != nil {
		return nil, fmt.Errorf("flow nodes query: %w", err)
	}
	if len(nodesRes.Records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, flowID)
	}

	var elements []domain.Element
	for _, record := range nodesRes.Records {
		// The OPTIONAL MATCH yields a single null row for an empty flow.
		if record.IsNull("nodeId") {
			continue
		}
		elements = append(elements, domain.NodeElement(record.String("nodeId"), record.String("label")))
	}

	edgesRes, err := r.client.ExecuteRead(ctx, FlowEdgesQuery, params)
	if err != nil {
		return nil, fmt.Errorf("flow edges query: %w", err)
	}
	for _, record := range edgesRes.Records {
		weight := domain.DefaultEdgeWeight
		if w, ok := record.Float("weight"); ok {
			weight = w
		}
		elements = append(elements, domain.EdgeElement(
			record.String("edgeId"),
			record.String("sourceId"),
			record.String("targetId"),
			weight,
		))
	}

	return elements, nil
}

// Read-only Cypher used by Repository, exported so tests in other packages
// can register canned results against them.
const FlowNodesQuery = `
MATCH (f:Flow {id: $flowId})
OPTIONAL MATCH (f)-[:CONTAINS]->(n:FlowNode)
RETURN f.id AS flowId, n.id AS nodeId, n.label AS label, n.position AS position
ORDER BY coalesce(n.position, 0), n.id
`

const FlowEdgesQuery = `
MATCH (f:Flow {id: $flowId})-[:CONTAINS]->(a:FlowNode)-[r:CONNECTS]->(b:FlowNode)<-[:CONTAINS]-(f)
RETURN r.id AS edgeId, a.id AS sourceId, b.id AS targetId, r.weight AS weight, r.position AS position
ORDER BY coalesce(r.position, 0), r.id
`

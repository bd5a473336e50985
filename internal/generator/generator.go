package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanshika/flowpath/internal/domain"
)

// Generator produces random flow diagrams with valid edges.
type Generator struct {
	cfg    Config
	rand   *rand.Rand
	labels []string
}

// New returns a configured Generator instance. Unset counts fall back to
// DefaultConfig; a zero seed uses the wall clock.
func New(cfg Config) *Generator {
	if cfg.NumNodes <= 0 {
		cfg.NumNodes = DefaultConfig().NumNodes
	}
	if cfg.NumEdges < 0 {
		cfg.NumEdges = 0
	}
	if cfg.MaxWeight <= 0 {
		cfg.MaxWeight = DefaultConfig().MaxWeight
	}
	if cfg.UnweightedChance < 0 {
		cfg.UnweightedChance = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:    cfg,
		rand:   rand.New(rand.NewSource(cfg.Seed)),
		labels: defaultLabels(),
	}
}

// Generate synthesises the element list. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) ([]domain.Element, error) {
	nodes := make([]domain.Element, g.cfg.NumNodes)
	for i := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := fmt.Sprintf("n%d", i+1)
		label := fmt.Sprintf("%s %d", g.labels[g.rand.Intn(len(g.labels))], i+1)
		nodes[i] = domain.NodeElement(id, label)
	}

	edges := make([]domain.Element, g.cfg.NumEdges)
	for i := range edges {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := g.rand.Intn(g.cfg.NumNodes)
		dst := g.rand.Intn(g.cfg.NumNodes)
		if src == dst && g.cfg.NumNodes > 1 {
			dst = (dst + 1) % g.cfg.NumNodes
		}

		weight := domain.DefaultEdgeWeight
		if g.rand.Float64() >= g.cfg.UnweightedChance {
			weight = float64(1 + g.rand.Intn(g.cfg.MaxWeight))
		}
		edges[i] = domain.EdgeElement(
			fmt.Sprintf("e%d", i+1),
			nodes[src].Node.ID,
			nodes[dst].Node.ID,
			weight,
		)
	}

	elements := append(nodes, edges...)
	if g.cfg.Interleave {
		g.rand.Shuffle(len(elements), func(i, j int) {
			elements[i], elements[j] = elements[j], elements[i]
		})
	}
	return elements, nil
}

func defaultLabels() []string {
	return []string{"Intake", "Review", "Approve", "Reject", "Escalate", "Notify", "Archive", "Validate", "Enrich", "Route", "Merge", "Split"}
}

package flowgraph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/flowpath/internal/domain"
)

func TestBuild_AdjacencyKeepsElementOrder(t *testing.T) {
	elements := []domain.Element{
		domain.EdgeElement("e1", "a", "c", 10),
		domain.NodeElement("a", "Start"),
		domain.NodeElement("b", "Mid"),
		domain.NodeElement("c", "End"),
		domain.EdgeElement("e2", "a", "b", 2),
		domain.EdgeElement("e3", "b", "c", 3),
	}

	g, err := Build(elements)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, []Arc{
		{EdgeID: "e1", Target: "c", Weight: 10},
		{EdgeID: "e2", Target: "b", Weight: 2},
	}, g.Outgoing("a"))
	assert.Empty(t, g.Outgoing("c"))

	nodes := g.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, "Mid", nodes[1].Label)

	n, ok := g.Node("c")
	require.True(t, ok)
	assert.Equal(t, "End", n.Label)
	assert.False(t, g.Has("missing"))
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	elements := []domain.Element{
		domain.NodeElement("a", "A"),
		domain.NodeElement("b", "B"),
		domain.EdgeElement("e1", "a", "b", 1),
	}
	_, err := Build(elements)
	require.NoError(t, err)

	g, err := Build(elements)
	require.NoError(t, err)
	nodes := g.Nodes()
	nodes[0].Label = "changed"

	n, _ := g.Node("a")
	assert.Equal(t, "A", n.Label)
	assert.Equal(t, "A", elements[0].Node.Label)
}

func TestBuild_Malformed(t *testing.T) {
	cases := map[string][]domain.Element{
		"dangling target": {
			domain.NodeElement("a", "A"),
			domain.EdgeElement("e1", "a", "zz", 1),
		},
		"dangling source": {
			domain.NodeElement("a", "A"),
			domain.EdgeElement("e1", "zz", "a", 1),
		},
		"duplicate node": {
			domain.NodeElement("a", "A"),
			domain.NodeElement("a", "Again"),
		},
		"empty node id": {
			domain.NodeElement("", "A"),
		},
		"empty edge id": {
			domain.NodeElement("a", "A"),
			domain.EdgeElement("", "a", "a", 1),
		},
		"negative weight": {
			domain.NodeElement("a", "A"),
			domain.NodeElement("b", "B"),
			domain.EdgeElement("e1", "a", "b", -1),
		},
		"nan weight": {
			domain.NodeElement("a", "A"),
			domain.EdgeElement("e1", "a", "a", math.NaN()),
		},
		"infinite weight": {
			domain.NodeElement("a", "A"),
			domain.EdgeElement("e1", "a", "a", math.Inf(1)),
		},
		"unknown kind": {
			{Kind: "group"},
		},
		"kind without payload": {
			{Kind: domain.KindEdge},
		},
	}

	for name, elements := range cases {
		t.Run(name, func(t *testing.T) {
			g, err := Build(elements)
			require.ErrorIs(t, err, ErrMalformedGraph)
			assert.Nil(t, g)
		})
	}
}

func TestBuild_EmptyList(t *testing.T) {
	g, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
	assert.Nil(t, g.Outgoing("a"))
}

func TestGraph_NilSafe(t *testing.T) {
	var g *Graph
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.EdgeCount())
	assert.False(t, g.Has("a"))
	assert.Nil(t, g.Nodes())
}

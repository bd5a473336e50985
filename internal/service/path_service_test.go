package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/flowpath/internal/domain"
	"github.com/vanshika/flowpath/internal/flowgraph"
	"github.com/vanshika/flowpath/internal/pathfinder"
	"github.com/vanshika/flowpath/internal/repository"
)

type stubFlows struct {
	flows map[string][]domain.Element
	err   error
	calls []string
}

func (s *stubFlows) LoadFlow(ctx context.Context, flowID string) ([]domain.Element, error) {
	s.calls = append(s.calls, flowID)
	if s.err != nil {
		return nil, s.err
	}
	elements, ok := s.flows[flowID]
	if !ok {
		return nil, repository.ErrFlowNotFound
	}
	return elements, nil
}

func sampleFlow() []domain.Element {
	return []domain.Element{
		domain.NodeElement("A", "Start"),
		domain.NodeElement("B", "Mid"),
		domain.NodeElement("C", "End"),
		domain.EdgeElement("e1", "A", "B", 2),
		domain.EdgeElement("e2", "B", "C", 3),
		domain.EdgeElement("e3", "A", "C", 10),
	}
}

func TestPathService_ShortestPath(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewPathService(nil, logger, Options{})

	tick := time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	})

	out, err := svc.ShortestPath(context.Background(), ShortestPathRequest{
		Elements: sampleFlow(),
		StartID:  "  A ",
		EndID:    "C",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Start", "Mid", "End"}, out.Labels())
	assert.Equal(t, 5.0, out.Distance)

	line := logs.String()
	assert.Contains(t, line, "shortest path computed")
	assert.Contains(t, line, "status=found")
	assert.Contains(t, line, "duration=1ms")
	assert.Contains(t, line, "component=path_service")
}

func TestPathService_Unreachable(t *testing.T) {
	svc := NewPathService(nil, nil, Options{})
	out, err := svc.ShortestPath(context.Background(), ShortestPathRequest{
		Elements: sampleFlow(),
		StartID:  "C",
		EndID:    "A",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PathUnreachable, out.Status)
}

func TestPathService_RejectsPlaceholders(t *testing.T) {
	svc := NewPathService(nil, nil, Options{Placeholder: "none"})

	for _, ids := range [][2]string{
		{"none", "C"},
		{"A", "none"},
		{"", "C"},
		{"A", "   "},
		{pathfinder.Placeholder, "C"},
	} {
		_, err := svc.ShortestPath(context.Background(), ShortestPathRequest{
			Elements: sampleFlow(),
			StartID:  ids[0],
			EndID:    ids[1],
		})
		require.ErrorIs(t, err, pathfinder.ErrInvalidSelection, "%v", ids)
	}
	assert.Equal(t, "none", svc.placeholder)
}

func TestPathService_PropagatesMalformedGraph(t *testing.T) {
	svc := NewPathService(nil, nil, Options{})
	elements := append(sampleFlow(), domain.EdgeElement("e9", "C", "ghost", 1))

	_, err := svc.ShortestPath(context.Background(), ShortestPathRequest{Elements: elements, StartID: "A", EndID: "C"})
	require.ErrorIs(t, err, flowgraph.ErrMalformedGraph)
}

func TestPathService_ElementLimit(t *testing.T) {
	svc := NewPathService(nil, nil, Options{MaxElements: 4})

	_, err := svc.ShortestPath(context.Background(), ShortestPathRequest{Elements: sampleFlow(), StartID: "A", EndID: "C"})
	require.ErrorIs(t, err, ErrTooManyElements)

	_, err = svc.SelectableNodes(sampleFlow())
	require.ErrorIs(t, err, ErrTooManyElements)
}

func TestPathService_ShortestPathInFlow(t *testing.T) {
	flows := &stubFlows{flows: map[string][]domain.Element{"flow-1": sampleFlow()}}
	svc := NewPathService(flows, nil, Options{})

	out, err := svc.ShortestPathInFlow(context.Background(), " flow-1 ", "A", "C")
	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Distance)
	assert.Equal(t, []string{"flow-1"}, flows.calls)

	_, err = svc.ShortestPathInFlow(context.Background(), "flow-2", "A", "C")
	require.ErrorIs(t, err, repository.ErrFlowNotFound)
}

func TestPathService_InFlowChecksSelectionBeforeLoading(t *testing.T) {
	flows := &stubFlows{}
	svc := NewPathService(flows, nil, Options{})

	_, err := svc.ShortestPathInFlow(context.Background(), "flow-1", pathfinder.Placeholder, "C")
	require.ErrorIs(t, err, pathfinder.ErrInvalidSelection)
	assert.Empty(t, flows.calls)
}

func TestPathService_InFlowWithoutRepository(t *testing.T) {
	svc := NewPathService(nil, nil, Options{})

	_, err := svc.ShortestPathInFlow(context.Background(), "flow-1", "A", "C")
	require.ErrorIs(t, err, ErrFlowSourceUnavailable)

	_, err = svc.SelectableNodesInFlow(context.Background(), "flow-1")
	require.ErrorIs(t, err, ErrFlowSourceUnavailable)
}

func TestPathService_RepositoryErrorIsWrapped(t *testing.T) {
	boom := errors.New("bolt: timeout")
	svc := NewPathService(&stubFlows{err: boom}, nil, Options{})

	_, err := svc.ShortestPathInFlow(context.Background(), "flow-1", "A", "C")
	require.ErrorIs(t, err, boom)
	assert.True(t, strings.Contains(err.Error(), "load flow flow-1"))
}

func TestPathService_SelectableNodes(t *testing.T) {
	svc := NewPathService(nil, nil, Options{})

	choices, err := svc.SelectableNodes(sampleFlow())
	require.NoError(t, err)

	assert.Equal(t, []domain.NodeOption{
		{Value: "A", Text: "Start"},
		{Value: "B", Text: "Mid"},
		{Value: "C", Text: "End"},
		{Value: "default", Text: "Choose a starting node"},
	}, choices.Start)
	require.Len(t, choices.End, 4)
	assert.Equal(t, domain.NodeOption{Value: "default", Text: "Choose an ending node"}, choices.End[3])
}

func TestPathService_SelectableNodesInFlow(t *testing.T) {
	flows := &stubFlows{flows: map[string][]domain.Element{"flow-1": sampleFlow()}}
	svc := NewPathService(flows, nil, Options{})

	choices, err := svc.SelectableNodesInFlow(context.Background(), "flow-1")
	require.NoError(t, err)
	assert.Len(t, choices.Start, 4)

	_, err = svc.SelectableNodesInFlow(context.Background(), "")
	require.ErrorIs(t, err, pathfinder.ErrInvalidSelection)
}

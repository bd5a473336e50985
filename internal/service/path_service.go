package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/vanshika/flowpath/internal/domain"
	"github.com/vanshika/flowpath/internal/flowgraph"
	"github.com/vanshika/flowpath/internal/pathfinder"
)

const (
	defaultMaxElements = 20000

	startPrompt = "Choose a starting node"
	endPrompt   = "Choose an ending node"
)

var (
	// ErrTooManyElements is returned when a flow exceeds the configured size limit.
	ErrTooManyElements = errors.New("flow has too many elements")
	// ErrFlowSourceUnavailable is returned for flow-id queries when no flow
	// repository is configured.
	ErrFlowSourceUnavailable = errors.New("flow source is not configured")
)

// FlowRepository is the read-only storage contract used to load saved flows.
type FlowRepository interface {
	LoadFlow(ctx context.Context, flowID string) ([]domain.Element, error)
}

// Options tunes request validation.
type Options struct {
	// Placeholder is the id the UI submits for an empty picker. It is
	// rejected in addition to pathfinder.Placeholder.
	Placeholder string
	// MaxElements caps the number of elements per query; zero means the default.
	MaxElements int
}

// ShortestPathRequest carries one query exactly as the UI submits it.
type ShortestPathRequest struct {
	Elements []domain.Element
	StartID  string
	EndID    string
}

// PathService answers shortest-path and node-picker queries over flows that
// are either supplied inline or loaded from a FlowRepository.
type PathService struct {
	flows       FlowRepository
	logger      *slog.Logger
	placeholder string
	maxElements int
	nowFn       func() time.Time
}

// NewPathService constructs a PathService. flows may be nil, in which case only
// inline queries are served.
func NewPathService(flows FlowRepository, logger *slog.Logger, opts Options) *PathService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Placeholder == "" {
		opts.Placeholder = pathfinder.Placeholder
	}
	if opts.MaxElements <= 0 {
		opts.MaxElements = defaultMaxElements
	}
	return &PathService{
		flows:       flows,
		logger:      logger.With("component", "path_service"),
		placeholder: opts.Placeholder,
		maxElements: opts.MaxElements,
		nowFn:       time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *PathService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// ShortestPath computes the minimum-weight path for an inline flow.
func (s *PathService) ShortestPath(ctx context.Context, req ShortestPathRequest) (domain.PathOutcome, error) {
	startID := sanitizeID(req.StartID)
	endID := sanitizeID(req.EndID)
	if err := s.checkSelection(startID, endID); err != nil {
		return domain.PathOutcome{}, err
	}
	if len(req.Elements) > s.maxElements {
		return domain.PathOutcome{}, fmt.Errorf("%w: %d > %d", ErrTooManyElements, len(req.Elements), s.maxElements)
	}

	started := s.nowFn()
	g, err := flowgraph.Build(req.Elements)
	if err != nil {
		return domain.PathOutcome{}, err
	}
	outcome, err := pathfinder.ShortestPath(g, startID, endID)
	if err != nil {
		return domain.PathOutcome{}, err
	}

	s.logger.DebugContext(ctx, "shortest path computed",
		"start", startID,
		"end", endID,
		"status", string(outcome.Status),
		"hops", outcome.Hops(),
		"distance", outcome.Distance,
		"nodes", g.Len(),
		"edges", g.EdgeCount(),
		"duration", s.nowFn().Sub(started).String(),
	)
	return outcome, nil
}

// ShortestPathInFlow loads a saved flow by id and computes the path within it.
func (s *PathService) ShortestPathInFlow(ctx context.Context, flowID, startID, endID string) (domain.PathOutcome, error) {
	startID = sanitizeID(startID)
	endID = sanitizeID(endID)
	if err := s.checkSelection(startID, endID); err != nil {
		return domain.PathOutcome{}, err
	}

	elements, err := s.loadFlow(ctx, flowID)
	if err != nil {
		return domain.PathOutcome{}, err
	}
	return s.ShortestPath(ctx, ShortestPathRequest{
		Elements: elements,
		StartID:  startID,
		EndID:    endID,
	})
}

// SelectableNodes lists the nodes of an inline flow as picker options, in
// element order, each list followed by its placeholder entry.
func (s *PathService) SelectableNodes(elements []domain.Element) (domain.NodeChoices, error) {
	if len(elements) > s.maxElements {
		return domain.NodeChoices{}, fmt.Errorf("%w: %d > %d", ErrTooManyElements, len(elements), s.maxElements)
	}
	g, err := flowgraph.Build(elements)
	if err != nil {
		return domain.NodeChoices{}, err
	}

	nodes := g.Nodes()
	options := make([]domain.NodeOption, 0, len(nodes))
	for _, n := range nodes {
		options = append(options, domain.NodeOption{Value: n.ID, Text: n.Label})
	}

	start := append(append(make([]domain.NodeOption, 0, len(options)+1), options...),
		domain.NodeOption{Value: s.placeholder, Text: startPrompt})
	end := append(append(make([]domain.NodeOption, 0, len(options)+1), options...),
		domain.NodeOption{Value: s.placeholder, Text: endPrompt})
	return domain.NodeChoices{Start: start, End: end}, nil
}

// SelectableNodesInFlow is SelectableNodes over a saved flow.
func (s *PathService) SelectableNodesInFlow(ctx context.Context, flowID string) (domain.NodeChoices, error) {
	elements, err := s.loadFlow(ctx, flowID)
	if err != nil {
		return domain.NodeChoices{}, err
	}
	return s.SelectableNodes(elements)
}

func (s *PathService) loadFlow(ctx context.Context, flowID string) ([]domain.Element, error) {
	if s.flows == nil {
		return nil, ErrFlowSourceUnavailable
	}
	flowID = sanitizeID(flowID)
	if flowID == "" {
		return nil, fmt.Errorf("%w: flow id is required", pathfinder.ErrInvalidSelection)
	}
	elements, err := s.flows.LoadFlow(ctx, flowID)
	if err != nil {
		return nil, fmt.Errorf("load flow %s: %w", flowID, err)
	}
	return elements, nil
}

func (s *PathService) checkSelection(startID, endID string) error {
	if startID == "" || startID == s.placeholder {
		return fmt.Errorf("%w: no start node chosen", pathfinder.ErrInvalidSelection)
	}
	if endID == "" || endID == s.placeholder {
		return fmt.Errorf("%w: no end node chosen", pathfinder.ErrInvalidSelection)
	}
	return nil
}

func sanitizeID(id string) string {
	return strings.TrimSpace(id)
}

package server

import (
	"context"
	"fmt"
	"time"

	"github.com/vanshika/flowpath/internal/graph"
)

const defaultProbeTimeout = 2 * time.Second

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
	// FlowSource names the backing store for saved flows, or "disabled".
	FlowSource() string
}

// GraphHealthService probes the graph database that serves saved flows.
// A nil Client means the server runs inline-only and is always healthy.
type GraphHealthService struct {
	Client  graph.Client
	Timeout time.Duration
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.Client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("flow source unreachable: %w", err)
	}
	return nil
}

func (s GraphHealthService) FlowSource() string {
	if s.Client == nil {
		return "disabled"
	}
	return "neo4j"
}

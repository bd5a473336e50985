package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vanshika/flowpath/internal/config"
	"github.com/vanshika/flowpath/internal/flowfile"
	"github.com/vanshika/flowpath/internal/graph"
	"github.com/vanshika/flowpath/internal/logging"
	"github.com/vanshika/flowpath/internal/repository"
	"github.com/vanshika/flowpath/internal/server"
	"github.com/vanshika/flowpath/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	var flows service.FlowRepository
	if graphClient != nil {
		flows = repository.New(graphClient)
	}
	pathService := service.NewPathService(flows, logger, service.Options{
		Placeholder: cfg.Flow.PlaceholderID,
		MaxElements: cfg.Flow.MaxElements,
	})
	apiHandlers := server.NewAPIHandlers(logger, pathService, server.HandlerOptions{
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		Decode:       flowfile.Options{EdgePrefix: cfg.Flow.LegacyEdgePrefix},
	})

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.GraphHealthService{Client: graphClient},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// buildGraphClient returns a nil client when no graph URI is configured;
// the server then answers inline queries only.
func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		logger.Info("GRAPH_URI not set, flow-id routes disabled")
		return nil, nil
	}

	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
		ConnectTimeout: cfg.Graph.ConnectTimeout,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

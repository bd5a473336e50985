package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanshika/flowpath/internal/config"
	"github.com/vanshika/flowpath/internal/domain"
	"github.com/vanshika/flowpath/internal/flowfile"
	"github.com/vanshika/flowpath/internal/logging"
	"github.com/vanshika/flowpath/internal/service"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// cli holds state shared by all subcommands of one invocation.
type cli struct {
	flowPath     string
	legacyPrefix string
	output       string
	verbose      bool

	logger  *slog.Logger
	service *service.PathService
}

// NewRootCmd builds the flowpath command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "flowpath",
		Short: "Shortest paths through flow diagrams",
		Long: `flowpath answers shortest-path queries over flow diagrams saved by the
browser editor, or over canonical JSON/YAML flow files.

Edges without a weight count as 1.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return c.init(cmd.ErrOrStderr())
		},
	}

	defaults, err := config.Load()
	prefix := flowfile.DefaultEdgePrefix
	if err == nil {
		prefix = defaults.Flow.LegacyEdgePrefix
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.flowPath, "flow", "f", "", "flow file to read (.json, .yaml or .yml)")
	flags.StringVar(&c.legacyPrefix, "legacy-prefix", prefix, "id prefix marking untyped elements as edges; empty means detect by source/target")
	flags.StringVarP(&c.output, "output", "o", outputText, "output format: text or json")
	flags.BoolVar(&c.verbose, "verbose", false, "log debug details to stderr")

	root.AddCommand(newPathCmd(c), newNodesCmd(c))
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) init(stderr io.Writer) error {
	if c.output != outputText && c.output != outputJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.output, outputText, outputJSON)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Logging.Level = "warn"
	if c.verbose {
		cfg.Logging.Level = "debug"
	}
	c.logger = logging.NewWithWriter(stderr, cfg.Logging)

	c.service = service.NewPathService(nil, c.logger, service.Options{
		Placeholder: cfg.Flow.PlaceholderID,
		MaxElements: cfg.Flow.MaxElements,
	})
	return nil
}

func (c *cli) loadElements() ([]domain.Element, error) {
	if c.flowPath == "" {
		return nil, fmt.Errorf("--flow is required")
	}
	elements, err := flowfile.DecodeFile(c.flowPath, flowfile.Options{EdgePrefix: c.legacyPrefix})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("flow loaded", "path", c.flowPath, "elements", len(elements))
	return elements, nil
}

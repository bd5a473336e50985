package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/flowpath/internal/flowfile"
	"github.com/vanshika/flowpath/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		nodes       = flag.Int("nodes", cfg.NumNodes, "number of nodes to generate")
		edges       = flag.Int("edges", cfg.NumEdges, "number of edges to generate")
		maxWeight   = flag.Int("max-weight", cfg.MaxWeight, "upper bound for integer edge weights")
		unweighted  = flag.Float64("unweighted-chance", cfg.UnweightedChance, "probability of an edge keeping the default weight")
		interleave  = flag.Bool("interleave", false, "shuffle edges in among the nodes")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation; 0 uses the clock")
		output      = flag.String("output", "data/flow.json", "file to write; .yaml/.yml selects YAML")
		format      = flag.String("format", "json", "stdout format: json or yaml")
		writeStdout = flag.Bool("stdout", false, "write the flow to stdout instead of a file")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumNodes:         *nodes,
		NumEdges:         *edges,
		MaxWeight:        *maxWeight,
		UnweightedChance: clampProbability(*unweighted),
		Interleave:       *interleave,
		Seed:             *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	elements, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := flowfile.Encode(os.Stdout, flowfile.Format(*format), elements); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write flow to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := flowfile.WriteFile(*output, elements); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write flow: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d elements into %s\n", len(elements), *output)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

package generator

// Config drives the synthetic flow generator.
type Config struct {
	NumNodes int
	NumEdges int
	// MaxWeight bounds the integer weights drawn for weighted edges.
	MaxWeight int
	// UnweightedChance is the probability of an edge left at the default weight.
	UnweightedChance float64
	// Interleave shuffles edges in among the nodes instead of listing all
	// nodes first.
	Interleave bool
	Seed       int64
}

// DefaultConfig returns settings sized like a large hand-drawn diagram.
func DefaultConfig() Config {
	return Config{
		NumNodes:         200,
		NumEdges:         600,
		MaxWeight:        20,
		UnweightedChance: 0.2,
		Seed:             42,
	}
}

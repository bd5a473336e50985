package domain

// PathStatus tags the outcome of a shortest-path query.
type PathStatus string

const (
	PathFound       PathStatus = "found"
	PathUnreachable PathStatus = "unreachable"
)

// PathNode represents a node within a computed path.
type PathNode struct {
	ID    string
	Label string
}

// PathEdge represents a traversed edge between two nodes in a path.
type PathEdge struct {
	ID     string
	Source string
	Target string
	Weight float64
}

// PathOutcome is the result of a shortest-path query between two nodes.
// When Status is PathUnreachable every other field is empty; Distance is
// only meaningful for PathFound.
type PathOutcome struct {
	Status   PathStatus
	StartID  string
	EndID    string
	Nodes    []PathNode
	Edges    []PathEdge
	Distance float64
}

// Found reports whether a path exists.
func (o PathOutcome) Found() bool {
	return o.Status == PathFound
}

// Labels returns the node labels along the path, start to end inclusive.
func (o PathOutcome) Labels() []string {
	labels := make([]string, 0, len(o.Nodes))
	for _, n := range o.Nodes {
		labels = append(labels, n.Label)
	}
	return labels
}

// NodeIDs returns the node identifiers along the path.
func (o PathOutcome) NodeIDs() []string {
	ids := make([]string, 0, len(o.Nodes))
	for _, n := range o.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

// Hops is the number of edges traversed.
func (o PathOutcome) Hops() int {
	return len(o.Edges)
}

// Unreachable builds the outcome for a pair with no directed path.
func Unreachable(startID, endID string) PathOutcome {
	return PathOutcome{Status: PathUnreachable, StartID: startID, EndID: endID}
}

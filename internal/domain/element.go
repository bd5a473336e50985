package domain

// DefaultEdgeWeight is applied to edges whose diagram entry carries no weight.
const DefaultEdgeWeight = 1.0

// ElementKind tags an Element as either a node or an edge.
type ElementKind string

const (
	KindNode ElementKind = "node"
	KindEdge ElementKind = "edge"
)

// Node is a labeled vertex of a flow diagram.
type Node struct {
	ID    string
	Label string
}

// Edge is a directed, weighted connection between two nodes.
type Edge struct {
	ID     string
	Source string
	Target string
	Weight float64
}

// Element is one entry of a diagram's element list. Exactly one of Node or
// Edge is set, matching Kind.
type Element struct {
	Kind ElementKind
	Node *Node
	Edge *Edge
}

// NodeElement wraps a node as an Element.
func NodeElement(id, label string) Element {
	return Element{Kind: KindNode, Node: &Node{ID: id, Label: label}}
}

// EdgeElement wraps a directed edge as an Element.
func EdgeElement(id, source, target string, weight float64) Element {
	return Element{Kind: KindEdge, Edge: &Edge{ID: id, Source: source, Target: target, Weight: weight}}
}

// ID returns the identifier of the wrapped node or edge.
func (e Element) ID() string {
	switch {
	case e.Kind == KindNode && e.Node != nil:
		return e.Node.ID
	case e.Kind == KindEdge && e.Edge != nil:
		return e.Edge.ID
	default:
		return ""
	}
}

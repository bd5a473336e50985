package domain

// NodeOption is an entry of a node picker: the node id as value and its
// label as display text.
type NodeOption struct {
	Value string
	Text  string
}

// NodeChoices holds the option lists for the start and end pickers. Each list
// ends with its "not selected" placeholder entry.
type NodeChoices struct {
	Start []NodeOption
	End   []NodeOption
}

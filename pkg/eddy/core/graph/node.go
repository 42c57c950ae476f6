package graph

import "fmt"

// Kind is the structural kind of the elements in a collection. The engine
// tracks element structure, not Go types: value-level type mismatches
// surface when a DoFn is invoked.
type Kind string

// Valid element kinds.
const (
	// Single is a collection of plain values.
	Single Kind = "Single"
	// KV is a collection of key/value pairs.
	KV Kind = "KV"
	// Grouped is a collection of key/value-stream pairs, as produced by GBK.
	Grouped Kind = "Grouped"
)

// Node is a typed connector describing the data type of the collection it
// represents, as input and output for transforms. A node is produced by
// exactly one transform.
type Node struct {
	id int

	// Kind is the structural kind of the elements.
	Kind Kind
}

// ID returns the graph-local identifier for the node.
func (n *Node) ID() int {
	return n.id
}

func (n *Node) String() string {
	return fmt.Sprintf("{%v: %v}", n.id, n.Kind)
}

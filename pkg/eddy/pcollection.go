package eddy

import (
	"github.com/eddyline/eddy/pkg/eddy/core/graph"
)

// PCollection is an immutable, unordered collection of values. A PCollection
// is produced as the output of a PTransform (including root PTransforms like
// textio.Read) and can be passed as the input of other PTransforms.
//
// Elements are plain values, KV pairs, or, as the output of GroupByKey,
// grouped key/value-stream pairs. The engine tracks the structural kind of
// each collection; value-level types are checked when DoFns are invoked.
type PCollection struct {
	// n is the graph node that PCollection wraps. If there is no node, the
	// PCollection is invalid.
	n *graph.Node
}

// IsValid returns true iff the PCollection is valid and part of a Pipeline.
// Any use of an invalid PCollection will result in a panic.
func (p PCollection) IsValid() bool {
	return p.n != nil
}

// Kind returns the structural kind of the elements.
func (p PCollection) Kind() graph.Kind {
	if !p.IsValid() {
		panic("invalid PCollection")
	}
	return p.n.Kind
}

// Node returns the underlying graph node. It is used by runners only.
func (p PCollection) Node() *graph.Node {
	return p.n
}

func (p PCollection) String() string {
	if !p.IsValid() {
		return "(invalid)"
	}
	return p.n.String()
}

func nodeOut(n *graph.Node) PCollection {
	return PCollection{n: n}
}

// IsKV returns true iff the PCollection is a collection of KV pairs.
func (p PCollection) IsKV() bool {
	return p.Kind() == graph.KV
}

// IsGrouped returns true iff the PCollection is the output of a GroupByKey.
func (p PCollection) IsGrouped() bool {
	return p.Kind() == graph.Grouped
}

package eddy

import (
	"github.com/eddyline/eddy/pkg/eddy/core/graph"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Flatten is a PTransform that takes either multiple PCollections of the
// same kind and returns a single PCollection containing all the elements in
// all the input PCollections. The name "Flatten" suggests taking a list of
// lists and flattening them into a single list.
func Flatten(s Scope, cols ...PCollection) PCollection {
	return Must(TryFlatten(s, cols...))
}

// TryFlatten merges incoming PCollections of the same kind to a single
// PCollection, or returns an error.
func TryFlatten(s Scope, cols ...PCollection) (PCollection, error) {
	if !s.IsValid() {
		return PCollection{}, errors.New("invalid scope")
	}
	for i, in := range cols {
		if !in.IsValid() {
			return PCollection{}, errors.Errorf("invalid pcollection to flatten: index %v", i)
		}
	}
	if len(cols) == 1 {
		// Degenerate case: no-op.
		return cols[0], nil
	}

	var in []*graph.Node
	for _, c := range cols {
		in = append(in, c.n)
	}
	edge, err := graph.NewFlatten(s.real, s.scope, in)
	if err != nil {
		return PCollection{}, errors.WithContextf(err, "inserting Flatten in scope %s", s)
	}
	return nodeOut(edge.Output[0].To), nil
}

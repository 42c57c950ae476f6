package eddy

import (
	"github.com/eddyline/eddy/pkg/eddy/core/graph"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// GroupByKey is a PTransform that takes a PCollection of type KV<A,B>,
// groups the values by key, and returns a Grouped PCollection representing a
// map from each distinct key of the input PCollection to an iterable over
// all the values associated with that key. Each key in the output
// PCollection is unique.
//
// GroupByKey is analogous to converting a multi-map into a uni-map, and
// related to GROUP BY in SQL. It corresponds to the "shuffle" step between
// the Mapper and the Reducer in the MapReduce framework.
//
// Keys must be comparable Go values: two keys are equal iff they compare
// equal, which admits efficient evaluation.
//
// Example of use:
//
//	wordPairs := ...         // PCollection of KV<string,int>
//	grouped := eddy.GroupByKey(s, wordPairs)
//	counts := eddy.ParDo(s, func(word string, values func(*int) bool) (string, int) {
//		// ... fold all values for that word ...
//	}, grouped)
func GroupByKey(s Scope, a PCollection) PCollection {
	return Must(TryGroupByKey(s, a))
}

// TryGroupByKey inserts a GBK transform into the pipeline. Returns an error
// on failure.
func TryGroupByKey(s Scope, a PCollection) (PCollection, error) {
	if !s.IsValid() {
		return PCollection{}, errors.New("invalid scope")
	}
	if !a.IsValid() {
		return PCollection{}, errors.New("invalid pcollection")
	}
	edge, err := graph.NewGBK(s.real, s.scope, a.n)
	if err != nil {
		return PCollection{}, errors.WithContextf(err, "inserting GBK in scope %s", s)
	}
	return nodeOut(edge.Output[0].To), nil
}

package eddy

import (
	"github.com/eddyline/eddy/pkg/eddy/core/graph"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Combine inserts a global Combine transform into the pipeline. It expects a
// PCollection of plain values as input and produces a single-element
// PCollection with the folded result.
func Combine(s Scope, combinefn any, col PCollection) PCollection {
	return Must(TryCombine(s, combinefn, col))
}

// CombinePerKey inserts a GBK and per-key Combine transform into the
// pipeline. It expects a PCollection of KV pairs and produces a PCollection
// of KV pairs holding the folded value per key.
//
// The combinefn is a binary merge function, func(a, b V) V, with an optional
// trailing error. It must be associative and commutative, since values are
// folded in unspecified order.
func CombinePerKey(s Scope, combinefn any, col PCollection) PCollection {
	return Must(TryCombinePerKey(s, combinefn, col))
}

// TryCombine attempts to insert a global Combine transform into the
// pipeline.
func TryCombine(s Scope, combinefn any, col PCollection) (PCollection, error) {
	pre := AddFixedKey(s, col)
	post, err := TryCombinePerKey(s, combinefn, pre)
	if err != nil {
		return PCollection{}, err
	}
	return DropKey(s, post), nil
}

func addCombinePerKeyCtx(err error, s Scope) error {
	return errors.WithContextf(err, "inserting CombinePerKey in scope %s", s)
}

// TryCombinePerKey attempts to insert a per-key Combine transform into the
// pipeline. It may fail for multiple reasons, notably that the combinefn is
// not a valid merge function.
func TryCombinePerKey(s Scope, combinefn any, col PCollection) (PCollection, error) {
	s = s.Scope(graph.CombinePerKeyScope)
	if !col.IsValid() {
		return PCollection{}, addCombinePerKeyCtx(errors.New("invalid pcollection"), s)
	}

	grouped, err := TryGroupByKey(s, col)
	if err != nil {
		return PCollection{}, addCombinePerKeyCtx(err, s)
	}

	fn, err := graph.NewCombineFn(combinefn)
	if err != nil {
		return PCollection{}, addCombinePerKeyCtx(err, s)
	}

	edge, err := graph.NewCombine(s.real, s.scope, fn, grouped.n)
	if err != nil {
		return PCollection{}, addCombinePerKeyCtx(err, s)
	}
	return nodeOut(edge.Output[0].To), nil
}

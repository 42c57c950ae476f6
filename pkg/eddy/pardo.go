package eddy

import (
	"fmt"

	"github.com/eddyline/eddy/pkg/eddy/core/graph"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

func addParDoCtx(err error, s Scope) error {
	return errors.WithContextf(err, "inserting ParDo in scope %s", s)
}

// TryParDo attempts to insert a ParDo transform into the pipeline. It may
// fail for multiple reasons, notably that the dofn is not valid or cannot be
// bound to the incoming PCollection.
func TryParDo(s Scope, dofn any, col PCollection) ([]PCollection, error) {
	if !s.IsValid() {
		return nil, addParDoCtx(errors.New("invalid scope"), s)
	}
	if !col.IsValid() {
		return nil, addParDoCtx(errors.New("invalid pcollection"), s)
	}

	fn, err := graph.NewDoFn(dofn)
	if err != nil {
		return nil, addParDoCtx(err, s)
	}

	edge, err := graph.NewParDo(s.real, s.scope, fn, col.n)
	if err != nil {
		return nil, addParDoCtx(err, s)
	}

	var ret []PCollection
	for _, out := range edge.Output {
		ret = append(ret, nodeOut(out.To))
	}
	return ret, nil
}

// ParDoN inserts a ParDo with any number of outputs into the pipeline.
func ParDoN(s Scope, dofn any, col PCollection) []PCollection {
	return MustN(TryParDo(s, dofn, col))
}

// ParDo0 inserts a ParDo with zero outputs into the pipeline.
func ParDo0(s Scope, dofn any, col PCollection) {
	ret := MustN(TryParDo(s, dofn, col))
	if len(ret) != 0 {
		panic(formatParDoError(dofn, len(ret), 0))
	}
}

// ParDo is the core element-wise PTransform, invoking a user-specified
// function on each of the elements of the input PCollection to produce zero
// or more output elements, all of which are collected into the output
// PCollection. Use one of the ParDo variants for a different number of
// output PCollections.
//
// # DoFns
//
// The function to use to process each element is specified by a DoFn, either
// as a single function or as a struct with methods, notably ProcessElement.
// The struct may also define Setup, StartBundle, FinishBundle and Teardown
// methods.
//
// Conceptually, when a ParDo transform is executed, the elements of the
// input PCollection are divided up into some number of "bundles" processed
// independently, possibly in parallel. For each bundle, StartBundle is
// called if present, then ProcessElement for each element, then
// FinishBundle. A struct DoFn may carry state between these calls and is
// therefore processed as a single bundle.
//
// A DoFn takes the element value (two values for a KV input, a key and an
// iterator for a grouped input), preceded by an optional context.Context.
// Outputs are produced either by emitter parameters, such as func(string),
// or by return values; a trailing error return is permitted either way.
//
// For example:
//
//	words := eddy.ParDo(s, &Foo{...}, ...)
//	lengths := eddy.ParDo(s, func(word string) int {
//		return len(word)
//	}, words)
func ParDo(s Scope, dofn any, col PCollection) PCollection {
	ret := MustN(TryParDo(s, dofn, col))
	if len(ret) != 1 {
		panic(formatParDoError(dofn, len(ret), 1))
	}
	return ret[0]
}

// ParDo2 inserts a ParDo with 2 outputs into the pipeline.
func ParDo2(s Scope, dofn any, col PCollection) (PCollection, PCollection) {
	ret := MustN(TryParDo(s, dofn, col))
	if len(ret) != 2 {
		panic(formatParDoError(dofn, len(ret), 2))
	}
	return ret[0], ret[1]
}

func formatParDoError(dofn any, got, want int) string {
	return fmt.Sprintf("DoFn %v has %v outputs, but ParDo requires %v outputs, use ParDoN instead", dofn, got, want)
}

package eddy

import (
	"github.com/eddyline/eddy/pkg/eddy/core/graph"
)

// Impulse emits a single empty []byte to the pipeline. It is the root of
// bounded sources: a source DoFn consumes the impulse and emits its
// elements.
func Impulse(s Scope) PCollection {
	if !s.IsValid() {
		panic("invalid scope")
	}
	edge := graph.NewImpulse(s.real, s.scope)
	return nodeOut(edge.Output[0].To)
}

package eddy

import (
	"context"
	"strings"

	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// PipelineResult is the result of a pipeline run.
type PipelineResult interface {
	JobID() string
}

var runners = make(map[string]func(ctx context.Context, p *Pipeline) (PipelineResult, error))

// RegisterRunner associates the name with the supplied runner, making it
// available to execute a pipeline via Run.
func RegisterRunner(name string, fn func(ctx context.Context, p *Pipeline) (PipelineResult, error)) {
	if _, ok := runners[name]; ok {
		panic(errors.Errorf("runner %v already registered", name))
	}
	runners[name] = fn
}

// Run executes the pipeline using the given runner. It blocks until the
// pipeline completes.
func Run(ctx context.Context, runner string, p *Pipeline) (PipelineResult, error) {
	fn, ok := runners[runner]
	if !ok {
		var registered []string
		for name := range runners {
			registered = append(registered, name)
		}
		return nil, errors.Errorf("runner %v not registered. Forgot to _ import it? Registered runners: %v", runner, strings.Join(registered, ", "))
	}
	return fn(ctx, p)
}

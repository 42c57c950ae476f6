// Package direct contains the direct runner, which executes a pipeline
// in-process by materializing every collection. It is the default runner for
// tests and small batch jobs.
package direct

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/core/exec"
	"github.com/eddyline/eddy/pkg/eddy/core/graph"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
	"github.com/eddyline/eddy/pkg/eddy/log"
)

func init() {
	eddy.RegisterRunner("direct", Execute)
}

// Execute runs the pipeline in-process.
func Execute(ctx context.Context, p *eddy.Pipeline) (eddy.PipelineResult, error) {
	return ExecuteWithOptions(ctx, p, Options{})
}

// Options controls in-process execution.
type Options struct {
	// Parallelism is the number of bundles a ParDo over a function DoFn is
	// split into. Defaults to GOMAXPROCS. Struct DoFns always run as a
	// single bundle, since they may carry bundle state.
	Parallelism int
	// Seed provides pre-materialized collections, keyed by node ID. Edges
	// whose outputs are all seeded are not re-evaluated. Used by the
	// interactive session to reuse results across incremental runs.
	Seed map[int][]exec.FullValue
}

// ExecuteWithOptions runs the pipeline in-process and returns a Result
// holding every materialized collection.
func ExecuteWithOptions(ctx context.Context, p *eddy.Pipeline, opts Options) (*Result, error) {
	log.Debugf(ctx, "Pipeline: %v", p)

	edges, _, err := p.Build()
	if err != nil {
		return nil, errors.WithContext(err, "invalid pipeline")
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	res := newResult()
	for id, values := range opts.Seed {
		res.values[id] = values
	}

	for _, edge := range edges {
		if seeded(res, edge) {
			continue
		}
		if err := evaluate(ctx, res, edge, parallelism); err != nil {
			return nil, errors.WithContextf(err, "executing %v", edge.Name)
		}
	}
	return res, nil
}

// seeded reports whether the edge can be skipped because all its outputs are
// already materialized. Edges without outputs are sinks and always run.
func seeded(res *Result, edge *graph.MultiEdge) bool {
	if len(edge.Output) == 0 {
		return false
	}
	for _, out := range edge.Output {
		if _, ok := res.values[out.To.ID()]; !ok {
			return false
		}
	}
	return true
}

func evaluate(ctx context.Context, res *Result, edge *graph.MultiEdge, parallelism int) error {
	switch edge.Op {
	case graph.Impulse:
		res.values[edge.Output[0].To.ID()] = []exec.FullValue{{Elm: []byte{}}}
		return nil

	case graph.Flatten:
		var out []exec.FullValue
		for _, in := range edge.Input {
			out = append(out, res.values[in.From.ID()]...)
		}
		res.values[edge.Output[0].To.ID()] = out
		return nil

	case graph.GBK:
		out, err := evaluateGBK(res.values[edge.Input[0].From.ID()])
		if err != nil {
			return err
		}
		res.values[edge.Output[0].To.ID()] = out
		return nil

	case graph.Combine:
		out, err := evaluateCombine(ctx, edge.CombineFn, res.values[edge.Input[0].From.ID()])
		if err != nil {
			return err
		}
		res.values[edge.Output[0].To.ID()] = out
		return nil

	case graph.ParDo:
		return evaluateParDo(ctx, res, edge, parallelism)

	default:
		return errors.Errorf("unexpected opcode: %v", edge.Op)
	}
}

func evaluateParDo(ctx context.Context, res *Result, edge *graph.MultiEdge, parallelism int) error {
	fn := edge.DoFn
	in := res.values[edge.Input[0].From.ID()]
	inKind := edge.Input[0].From.Kind
	inv := exec.NewInvoker(fn.ProcessElement(), inKind)

	numOut := len(edge.Output)

	if fn.IsStruct() {
		out, err := processBundle(ctx, fn, inv, in, numOut)
		if err != nil {
			return err
		}
		for i, o := range edge.Output {
			res.values[o.To.ID()] = out[i]
		}
		return nil
	}

	// Function DoFns carry no bundle state, so the input is split into
	// bundles processed in parallel.
	bundles := split(in, parallelism)
	outs := make([][][]exec.FullValue, len(bundles))

	g, gctx := errgroup.WithContext(ctx)
	for i, bundle := range bundles {
		i, bundle := i, bundle
		g.Go(func() error {
			out, err := processBundle(gctx, fn, inv, bundle, numOut)
			if err != nil {
				return err
			}
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, o := range edge.Output {
		var merged []exec.FullValue
		for _, out := range outs {
			merged = append(merged, out[i]...)
		}
		res.values[o.To.ID()] = merged
	}
	return nil
}

// processBundle runs the bundle lifecycle over the given elements: Setup and
// StartBundle if present, ProcessElement per element, then FinishBundle and
// Teardown.
func processBundle(ctx context.Context, fn *graph.DoFn, inv *exec.Invoker, in []exec.FullValue, numOut int) ([][]exec.FullValue, error) {
	out := make([][]exec.FullValue, numOut)
	var mu sync.Mutex
	collect := func(i int, fv exec.FullValue) {
		mu.Lock()
		out[i] = append(out[i], fv)
		mu.Unlock()
	}

	err := exec.CallNoPanic(func() error {
		if setup, ok := fn.Setup(); ok {
			if err := exec.InvokeLifecycle(ctx, setup, collect); err != nil {
				return err
			}
		}
		if start, ok := fn.StartBundle(); ok {
			if err := exec.InvokeLifecycle(ctx, start, collect); err != nil {
				return err
			}
		}
		for _, fv := range in {
			if err := inv.Invoke(ctx, fv, collect); err != nil {
				return err
			}
		}
		if finish, ok := fn.FinishBundle(); ok {
			if err := exec.InvokeLifecycle(ctx, finish, collect); err != nil {
				return err
			}
		}
		if teardown, ok := fn.Teardown(); ok {
			if err := exec.InvokeLifecycle(ctx, teardown, collect); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// split divides the elements into at most n contiguous bundles.
func split(in []exec.FullValue, n int) [][]exec.FullValue {
	if len(in) == 0 {
		return [][]exec.FullValue{nil}
	}
	if n < 1 {
		n = 1
	}
	size := (len(in) + n - 1) / n
	var bundles [][]exec.FullValue
	for i := 0; i < len(in); i += size {
		end := i + size
		if end > len(in) {
			end = len(in)
		}
		bundles = append(bundles, in[i:end])
	}
	return bundles
}

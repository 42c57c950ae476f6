// Package eddyx is a convenience package for eddy.
package eddyx

import (
	"context"
	"flag"

	"github.com/eddyline/eddy/pkg/eddy"

	// The imports here are for the side effect of filesystem and runner
	// registration.
	_ "github.com/eddyline/eddy/pkg/eddy/io/filesystem/httpfs"
	_ "github.com/eddyline/eddy/pkg/eddy/io/filesystem/local"
	_ "github.com/eddyline/eddy/pkg/eddy/io/filesystem/memfs"
	_ "github.com/eddyline/eddy/pkg/eddy/runners/direct"
	_ "github.com/eddyline/eddy/pkg/eddy/runners/dot"
)

var (
	runner        = flag.String("runner", "", "Pipeline runner.")
	defaultRunner = "direct"
)

func getRunner() string {
	r := *runner
	if r == "" {
		r = defaultRunner
	}
	return r
}

// Run invokes eddy.Run with the runner supplied by the flag "runner". It
// defaults to the direct runner, but all built-in runners and textio
// filesystems are implicitly registered.
func Run(ctx context.Context, p *eddy.Pipeline) error {
	_, err := eddy.Run(ctx, getRunner(), p)
	return err
}

// RunWithResult invokes eddy.Run with the runner supplied by the flag
// "runner" and returns the eddy.PipelineResult.
func RunWithResult(ctx context.Context, p *eddy.Pipeline) (eddy.PipelineResult, error) {
	return eddy.Run(ctx, getRunner(), p)
}

// Package dot is a runner that "runs" a pipeline by producing a DOT graph of
// the execution plan.
package dot

import (
	"bytes"
	"context"
	"flag"
	"os"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/core/util/dot"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

func init() {
	eddy.RegisterRunner("dot", Execute)
}

var dotFile = flag.String("dot_file", "", "DOT output file to create")

// Execute produces a DOT representation of the pipeline and writes it to the
// file named by the dot_file flag.
func Execute(ctx context.Context, p *eddy.Pipeline) (eddy.PipelineResult, error) {
	if *dotFile == "" {
		return nil, errors.New("must supply dot_file argument")
	}

	edges, nodes, err := p.Build()
	if err != nil {
		return nil, errors.WithContext(err, "can't get data to render")
	}

	var buf bytes.Buffer
	if err := dot.Render(edges, nodes, &buf); err != nil {
		return nil, err
	}
	return nil, os.WriteFile(*dotFile, buf.Bytes(), 0644)
}

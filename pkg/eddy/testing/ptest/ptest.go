// Package ptest contains utilities for pipeline unit testing.
package ptest

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/eddyline/eddy/pkg/eddy"

	// ptest uses the direct runner to execute pipelines by default.
	_ "github.com/eddyline/eddy/pkg/eddy/runners/direct"
)

// Create creates a pipeline and a PCollection with the given values.
func Create(values []any) (*eddy.Pipeline, eddy.Scope, eddy.PCollection) {
	p := eddy.NewPipeline()
	s := p.Root()
	return p, s, eddy.Create(s, values...)
}

// CreateList creates a pipeline and a PCollection with the given values.
func CreateList(values any) (*eddy.Pipeline, eddy.Scope, eddy.PCollection) {
	p := eddy.NewPipeline()
	s := p.Root()
	return p, s, eddy.CreateList(s, values)
}

// Create2 creates a pipeline and 2 PCollections with the given values.
func Create2(a, b []any) (*eddy.Pipeline, eddy.Scope, eddy.PCollection, eddy.PCollection) {
	p := eddy.NewPipeline()
	s := p.Root()
	return p, s, eddy.Create(s, a...), eddy.Create(s, b...)
}

// CreateList2 creates a pipeline and 2 PCollections with the given values.
func CreateList2(a, b any) (*eddy.Pipeline, eddy.Scope, eddy.PCollection, eddy.PCollection) {
	p := eddy.NewPipeline()
	s := p.Root()
	return p, s, eddy.CreateList(s, a), eddy.CreateList(s, b)
}

// Runner is a flag that sets which runner pipelines under test will use.
//
// The test file must have a TestMain that calls Main or MainWithDefault
// to function.
var (
	Runner        = flag.String("runner", "", "Pipeline runner.")
	defaultRunner = "direct"
)

// Run runs a pipeline for testing. The semantics of the pipeline is expected
// to be verified through passert.
func Run(p *eddy.Pipeline) error {
	if *Runner == "" {
		*Runner = defaultRunner
	}
	_, err := eddy.Run(context.Background(), *Runner, p)
	return err
}

// RunAndValidate runs a pipeline for testing and validates the result, failing
// the test if the pipeline fails.
func RunAndValidate(t *testing.T, p *eddy.Pipeline) {
	t.Helper()
	if err := Run(p); err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}
}

// Main is an implementation of testing's TestMain to permit testing
// pipelines on runners other than the direct runner.
//
// To enable this behavior, _ import the desired runner, and set the flag accordingly.
//
//	func TestMain(m *testing.M) {
//		ptest.Main(m)
//	}
func Main(m *testing.M) {
	MainWithDefault(m, "direct")
}

// MainWithDefault is an implementation of testing's TestMain to permit testing
// pipelines on runners other than the direct runner, while setting the default
// runner to use.
func MainWithDefault(m *testing.M, runner string) {
	defaultRunner = runner
	if !flag.Parsed() {
		flag.Parse()
	}
	os.Exit(m.Run())
}

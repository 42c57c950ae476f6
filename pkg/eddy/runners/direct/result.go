package direct

import (
	"github.com/google/uuid"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/core/exec"
)

// Result holds every collection materialized during a run, keyed by node ID.
type Result struct {
	jobID  string
	values map[int][]exec.FullValue
}

func newResult() *Result {
	return &Result{
		jobID:  uuid.NewString(),
		values: make(map[int][]exec.FullValue),
	}
}

// JobID returns the unique ID assigned to this run.
func (r *Result) JobID() string {
	return r.jobID
}

// Values returns the materialized contents of the given collection, if it was
// part of the executed pipeline.
func (r *Result) Values(col eddy.PCollection) ([]exec.FullValue, bool) {
	if !col.IsValid() {
		return nil, false
	}
	values, ok := r.values[col.Node().ID()]
	return values, ok
}

// All returns every materialized collection, keyed by node ID. The interactive
// session uses it to retain results across incremental runs.
func (r *Result) All() map[int][]exec.FullValue {
	return r.values
}

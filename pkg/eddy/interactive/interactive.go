// Package interactive supports notebook-style incremental pipeline
// construction: build a few transforms, materialize and inspect a collection,
// extend the pipeline and materialize again without recomputing what is
// already known.
package interactive

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/core/exec"
	"github.com/eddyline/eddy/pkg/eddy/core/util/dot"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
	"github.com/eddyline/eddy/pkg/eddy/runners/direct"
)

// KV is a collected key/value element. For grouped collections, Value holds
// the value slice.
type KV struct {
	Key   any
	Value any
}

// Session owns a growing pipeline and a cache of materialized collections.
type Session struct {
	p     *eddy.Pipeline
	root  eddy.Scope
	cache map[int][]exec.FullValue
}

// NewSession creates a session with an empty pipeline.
func NewSession() *Session {
	p, root := eddy.NewPipelineWithRoot()
	return &Session{p: p, root: root, cache: make(map[int][]exec.FullValue)}
}

// Scope returns the root scope, for inserting transforms.
func (sess *Session) Scope() eddy.Scope {
	return sess.root
}

// Pipeline returns the session's pipeline.
func (sess *Session) Pipeline() *eddy.Pipeline {
	return sess.p
}

// Collect materializes the given collection and returns its elements: plain
// values for single collections and KV elements otherwise. Every collection
// materialized along the way is cached, so collecting again after extending
// the pipeline reuses prior results instead of recomputing them.
func (sess *Session) Collect(ctx context.Context, col eddy.PCollection) ([]any, error) {
	if !col.IsValid() {
		return nil, errors.New("invalid pcollection")
	}

	res, err := direct.ExecuteWithOptions(ctx, sess.p, direct.Options{Seed: sess.cache})
	if err != nil {
		return nil, err
	}
	for id, values := range res.All() {
		sess.cache[id] = values
	}

	values, ok := res.Values(col)
	if !ok {
		return nil, errors.Errorf("collection %v was not materialized", col)
	}
	out := make([]any, 0, len(values))
	for _, fv := range values {
		if col.IsKV() || col.IsGrouped() {
			out = append(out, KV{Key: fv.Elm, Value: fv.Elm2})
		} else {
			out = append(out, fv.Elm)
		}
	}
	return out, nil
}

// Show materializes the collection and prints up to n of its elements to the
// writer as a small table. If n <= 0, all elements are printed.
func (sess *Session) Show(ctx context.Context, w io.Writer, col eddy.PCollection, n int) error {
	elms, err := sess.Collect(ctx, col)
	if err != nil {
		return err
	}
	if n > 0 && len(elms) > n {
		elms = elms[:n]
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	if col.IsKV() || col.IsGrouped() {
		fmt.Fprintln(tw, "key\tvalue")
		for _, elm := range elms {
			kv := elm.(KV)
			fmt.Fprintf(tw, "%v\t%v\n", kv.Key, kv.Value)
		}
	} else {
		fmt.Fprintln(tw, "value")
		for _, elm := range elms {
			fmt.Fprintf(tw, "%v\n", elm)
		}
	}
	return tw.Flush()
}

// ShowGraph writes a DOT rendering of the pipeline built so far.
func (sess *Session) ShowGraph(w io.Writer) error {
	edges, nodes, err := sess.p.Build()
	if err != nil {
		return err
	}
	return dot.Render(edges, nodes, w)
}

package graph

import (
	"github.com/eddyline/eddy/pkg/eddy/core/funcx"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// bindDoFn validates the shape of a DoFn against the kind of its main input
// and returns the kinds of its outputs.
//
// Inputs, by main input kind:
//
//	Single:  one value parameter
//	KV:      two value parameters (key, value)
//	Grouped: one value parameter (key) and one iterator parameter (values)
//
// Outputs are either emitters or returns, not both. Each emitter produces
// one output collection: func(T) a Single one, func(K,V) a KV one. Without
// emitters, one value return produces a Single output and two value returns
// a KV output; no value returns means the DoFn is a sink.
//
// Struct DoFns may instead accumulate in ProcessElement and emit from
// StartBundle or FinishBundle. Lifecycle emitters feed the same output
// collections, so their kinds must agree with ProcessElement's, if any.
func bindDoFn(fn *DoFn, in Kind) ([]Kind, error) {
	f := fn.ProcessElement()

	nv := len(f.Values())
	ni := len(f.Iters())
	switch in {
	case Single:
		if nv != 1 || ni != 0 {
			return nil, errors.Errorf("DoFn %v takes %v values and %v iters, want a single value for input %v", f, nv, ni, in)
		}
	case KV:
		if nv != 2 || ni != 0 {
			return nil, errors.Errorf("DoFn %v takes %v values and %v iters, want (key, value) for input %v", f, nv, ni, in)
		}
	case Grouped:
		if nv != 1 || ni != 1 {
			return nil, errors.Errorf("DoFn %v takes %v values and %v iters, want (key, iter) for input %v", f, nv, ni, in)
		}
	default:
		return nil, errors.Errorf("unknown input kind: %v", in)
	}

	out := emitKinds(f)
	if out == nil {
		switch n := len(f.Returns()); n {
		case 0:
			// Sink, unless a lifecycle method emits.
		case 1:
			out = []Kind{Single}
		case 2:
			out = []Kind{KV}
		default:
			return nil, errors.Errorf("DoFn %v has %v value returns, want at most 2", f, n)
		}
	}

	var lifecycle []*funcx.Fn
	if m, ok := fn.StartBundle(); ok {
		lifecycle = append(lifecycle, m)
	}
	if m, ok := fn.FinishBundle(); ok {
		lifecycle = append(lifecycle, m)
	}
	for _, m := range lifecycle {
		kinds := emitKinds(m)
		if kinds == nil {
			continue
		}
		if out == nil {
			out = kinds
			continue
		}
		if !equalKinds(kinds, out) {
			return nil, errors.Errorf("DoFn %v: lifecycle method %v emits %v, want %v", fn, m, kinds, out)
		}
	}
	return out, nil
}

// emitKinds returns the output kinds implied by the emitter parameters of the
// function, or nil if it has none.
func emitKinds(f *funcx.Fn) []Kind {
	pos, num, ok := f.Emits()
	if !ok {
		return nil
	}
	var out []Kind
	for i := pos; i < pos+num; i++ {
		switch f.Param[i].T.NumIn() {
		case 1:
			out = append(out, Single)
		case 2:
			out = append(out, KV)
		}
	}
	return out
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

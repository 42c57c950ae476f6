package direct

import (
	"context"
	"reflect"

	"github.com/eddyline/eddy/pkg/eddy/core/exec"
	"github.com/eddyline/eddy/pkg/eddy/core/graph"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// evaluateGBK groups KV elements by key. Keys must be comparable; output
// groups appear in first-seen key order so downstream results are
// deterministic for a deterministic input order.
func evaluateGBK(in []exec.FullValue) ([]exec.FullValue, error) {
	groups := make(map[any][]any)
	var order []any
	for _, fv := range in {
		k := fv.Elm
		if k != nil && !reflect.TypeOf(k).Comparable() {
			return nil, errors.Errorf("GBK key %v of type %T is not comparable", k, k)
		}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], fv.Elm2)
	}

	out := make([]exec.FullValue, 0, len(order))
	for _, k := range order {
		out = append(out, exec.FullValue{Elm: k, Elm2: groups[k]})
	}
	return out, nil
}

// evaluateCombine folds the merge function over the values of each grouped
// element, producing one KV per key.
func evaluateCombine(ctx context.Context, fn *graph.CombineFn, in []exec.FullValue) ([]exec.FullValue, error) {
	out := make([]exec.FullValue, 0, len(in))
	for _, fv := range in {
		values, _ := fv.Elm2.([]any)
		if len(values) == 0 {
			continue
		}
		acc := values[0]
		for _, v := range values[1:] {
			merged, err := invokeMerge(ctx, fn, acc, v)
			if err != nil {
				return nil, errors.WithContextf(err, "combining key %v", fv.Elm)
			}
			acc = merged
		}
		out = append(out, exec.FullValue{Elm: fv.Elm, Elm2: acc})
	}
	return out, nil
}

func invokeMerge(ctx context.Context, fn *graph.CombineFn, a, b any) (any, error) {
	f := fn.Merge
	args := make([]reflect.Value, len(f.Param))
	if idx, ok := f.Context(); ok {
		args[idx] = reflect.ValueOf(ctx)
	}
	values := f.Values()
	av, err := mergeArg(f.Param[values[0]].T, a)
	if err != nil {
		return nil, errors.WithContextf(err, "invoking %v", f)
	}
	bv, err := mergeArg(f.Param[values[1]].T, b)
	if err != nil {
		return nil, errors.WithContextf(err, "invoking %v", f)
	}
	args[values[0]] = av
	args[values[1]] = bv

	ret := f.Fn.Call(args)
	if idx, ok := f.Error(); ok {
		if err, _ := ret[idx].Interface().(error); err != nil {
			return nil, errors.WithContextf(err, "invoking %v", f)
		}
	}
	return ret[f.Returns()[0]].Interface(), nil
}

func mergeArg(t reflect.Type, v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, errors.Errorf("value %v of type %v is not assignable to %v", v, rv.Type(), t)
	}
	return rv, nil
}

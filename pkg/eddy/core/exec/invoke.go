// Package exec contains the in-process runtime: element representation and
// reflective invocation of DoFns. It is used by runners and not intended for
// pipeline authors.
package exec

import (
	"context"
	"fmt"
	"reflect"

	"github.com/eddyline/eddy/pkg/eddy/core/funcx"
	"github.com/eddyline/eddy/pkg/eddy/core/graph"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Collector receives output elements during invocation. The out index
// identifies the output collection for DoFns with multiple emitters.
type Collector func(out int, fv FullValue)

// Invoker binds a ProcessElement function to the structure of its main input
// once, so that per-element invocation only assembles arguments.
type Invoker struct {
	fn *funcx.Fn
	in graph.Kind

	ctxIdx  int // -1 if absent
	valIdx  []int
	iterIdx int // -1 if absent
	emitIdx []int
	errIdx  int // -1 if absent
	retIdx  []int
}

// NewInvoker returns an Invoker for the given function and main input kind.
// The function must already have been validated against the input kind at
// graph construction time.
func NewInvoker(fn *funcx.Fn, in graph.Kind) *Invoker {
	inv := &Invoker{fn: fn, in: in, ctxIdx: -1, iterIdx: -1, errIdx: -1}
	if idx, ok := fn.Context(); ok {
		inv.ctxIdx = idx
	}
	inv.valIdx = fn.Values()
	if iters := fn.Iters(); len(iters) > 0 {
		inv.iterIdx = iters[0]
	}
	if pos, num, ok := fn.Emits(); ok {
		for i := pos; i < pos+num; i++ {
			inv.emitIdx = append(inv.emitIdx, i)
		}
	}
	if idx, ok := fn.Error(); ok {
		inv.errIdx = idx
	}
	inv.retIdx = fn.Returns()
	return inv
}

// Invoke processes a single element, passing any outputs to the collector.
func (inv *Invoker) Invoke(ctx context.Context, fv FullValue, collect Collector) error {
	args := make([]reflect.Value, len(inv.fn.Param))

	if inv.ctxIdx >= 0 {
		args[inv.ctxIdx] = reflect.ValueOf(ctx)
	}

	switch inv.in {
	case graph.Single:
		v, err := argValue(inv.fn.Param[inv.valIdx[0]].T, fv.Elm)
		if err != nil {
			return errors.WithContextf(err, "invoking %v", inv.fn)
		}
		args[inv.valIdx[0]] = v
	case graph.KV:
		k, err := argValue(inv.fn.Param[inv.valIdx[0]].T, fv.Elm)
		if err != nil {
			return errors.WithContextf(err, "invoking %v", inv.fn)
		}
		v, err := argValue(inv.fn.Param[inv.valIdx[1]].T, fv.Elm2)
		if err != nil {
			return errors.WithContextf(err, "invoking %v", inv.fn)
		}
		args[inv.valIdx[0]] = k
		args[inv.valIdx[1]] = v
	case graph.Grouped:
		k, err := argValue(inv.fn.Param[inv.valIdx[0]].T, fv.Elm)
		if err != nil {
			return errors.WithContextf(err, "invoking %v", inv.fn)
		}
		args[inv.valIdx[0]] = k
		values, _ := fv.Elm2.([]any)
		args[inv.iterIdx] = makeIter(inv.fn.Param[inv.iterIdx].T, values)
	}

	for i, idx := range inv.emitIdx {
		args[idx] = makeEmit(inv.fn.Param[idx].T, i, collect)
	}

	ret := inv.fn.Fn.Call(args)

	if inv.errIdx >= 0 {
		if err, _ := ret[inv.errIdx].Interface().(error); err != nil {
			return errors.WithContextf(err, "processing element in %v", inv.fn)
		}
	}
	switch len(inv.retIdx) {
	case 0:
		// sink or emitter-only
	case 1:
		collect(0, FullValue{Elm: ret[inv.retIdx[0]].Interface()})
	case 2:
		collect(0, FullValue{Elm: ret[inv.retIdx[0]].Interface(), Elm2: ret[inv.retIdx[1]].Interface()})
	}
	return nil
}

// InvokeLifecycle invokes a DoFn lifecycle method, such as StartBundle.
// Lifecycle methods may take a leading context and emitters, and may return
// an error.
func InvokeLifecycle(ctx context.Context, fn *funcx.Fn, collect Collector) error {
	args := make([]reflect.Value, len(fn.Param))
	if idx, ok := fn.Context(); ok {
		args[idx] = reflect.ValueOf(ctx)
	}
	if pos, num, ok := fn.Emits(); ok {
		for i := 0; i < num; i++ {
			args[pos+i] = makeEmit(fn.Param[pos+i].T, i, collect)
		}
	}
	ret := fn.Fn.Call(args)
	if idx, ok := fn.Error(); ok {
		if err, _ := ret[idx].Interface().(error); err != nil {
			return errors.WithContextf(err, "invoking %v", fn)
		}
	}
	return nil
}

// argValue wraps v for use as an argument of type t. It returns an error if
// the value is not assignable, which is where value-level type mismatches
// surface in a loosely typed graph.
func argValue(t reflect.Type, v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, errors.Errorf("element %v of type %v is not assignable to %v", v, rv.Type(), t)
	}
	return rv, nil
}

// makeEmit builds an emitter function of the given type that forwards to the
// collector under the given output index.
func makeEmit(t reflect.Type, out int, collect Collector) reflect.Value {
	return reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		switch len(args) {
		case 1:
			collect(out, FullValue{Elm: args[0].Interface()})
		case 2:
			collect(out, FullValue{Elm: args[0].Interface(), Elm2: args[1].Interface()})
		}
		return nil
	})
}

// makeIter builds a single-value iterator, func(*T) bool, over the given
// values. Each invocation of the returned function advances the cursor.
func makeIter(t reflect.Type, values []any) reflect.Value {
	i := 0
	return reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		if i >= len(values) {
			return []reflect.Value{reflect.ValueOf(false)}
		}
		p := args[0].Elem()
		v := values[i]
		i++
		if v == nil {
			p.Set(reflect.Zero(p.Type()))
			return []reflect.Value{reflect.ValueOf(true)}
		}
		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(p.Type()) {
			panic(fmt.Sprintf("iterator value %v of type %v is not assignable to %v", v, rv.Type(), p.Type()))
		}
		p.Set(rv)
		return []reflect.Value{reflect.ValueOf(true)}
	})
}

// CallNoPanic calls the given function and converts panics into errors, so a
// misbehaving DoFn fails its bundle rather than the process.
func CallNoPanic(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic in DoFn: %v", r)
		}
	}()
	return fn()
}

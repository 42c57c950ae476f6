// Package filter contains transformations for removing pipeline elements based on
// various conditions.
package filter

import (
	"reflect"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Include filters the elements of a PCollection<A> based on the given function,
// which must be of the form: A -> bool. Include removes all element for which
// the filter function returns false. It returns a PCollection of the same type
// as the input. For example:
//
//	words := eddy.Create(s, "a", "b", "long", "alsolong")
//	short := filter.Include(s, words, func(s string) bool {
//		return len(s) < 3
//	})
//
// Here, "short" will contain "a" and "b" at runtime.
func Include(s eddy.Scope, col eddy.PCollection, fn any) eddy.PCollection {
	s = s.Scope("filter.Include")

	return eddy.ParDo(s, &filterFn{predicate: mustPredicate(fn), include: true}, col)
}

// Exclude filters the elements of a PCollection<A> based on the given function,
// which must be of the form: A -> bool. Exclude removes all element for which
// the filter function returns true. It returns a PCollection of the same type
// as the input. For example:
//
//	words := eddy.Create(s, "a", "b", "long", "alsolong")
//	long := filter.Exclude(s, words, func(s string) bool {
//		return len(s) < 3
//	})
//
// Here, "long" will contain "long" and "alsolong" at runtime.
func Exclude(s eddy.Scope, col eddy.PCollection, fn any) eddy.PCollection {
	s = s.Scope("filter.Exclude")

	return eddy.ParDo(s, &filterFn{predicate: mustPredicate(fn), include: false}, col)
}

// mustPredicate panics unless fn has the form A -> bool.
func mustPredicate(fn any) reflect.Value {
	val := reflect.ValueOf(fn)
	t := val.Type()
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 1 || t.Out(0).Kind() != reflect.Bool {
		panic(errors.Errorf("predicate %v must be a function of the form func(A) bool", fn))
	}
	return val
}

type filterFn struct {
	predicate reflect.Value
	include   bool
}

func (f *filterFn) ProcessElement(elm any, emit func(any)) error {
	in := f.predicate.Type().In(0)
	var arg reflect.Value
	if elm == nil {
		arg = reflect.Zero(in)
	} else {
		arg = reflect.ValueOf(elm)
		if !arg.Type().AssignableTo(in) {
			return errors.Errorf("element %v of type %T is not assignable to predicate input %v", elm, elm, in)
		}
	}
	if f.predicate.Call([]reflect.Value{arg})[0].Bool() == f.include {
		emit(elm)
	}
	return nil
}

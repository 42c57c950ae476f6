package eddy

import (
	"reflect"

	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Create inserts a fixed non-empty set of values into the pipeline. The
// returned PCollection can be used as any other PCollection. Each runner may
// place limits on the sizes of the values and Create should generally only
// be used for small collections.
func Create(s Scope, values ...any) PCollection {
	return Must(TryCreate(s, values...))
}

// CreateList inserts a fixed set of values into the pipeline from a slice or
// array. Unlike Create this supports the creation of an empty PCollection.
func CreateList(s Scope, list any) PCollection {
	val := reflect.ValueOf(list)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		panic(errors.Errorf("input %v must be a slice or array", list))
	}
	var ret []any
	for i := 0; i < val.Len(); i++ {
		ret = append(ret, val.Index(i).Interface())
	}
	return Must(tryCreateList(s, ret))
}

func addCreateCtx(err error, s Scope) error {
	return errors.WithContextf(err, "inserting Create in scope %s", s)
}

// TryCreate inserts a fixed non-empty set of values into the pipeline.
func TryCreate(s Scope, values ...any) (PCollection, error) {
	if len(values) == 0 {
		return PCollection{}, addCreateCtx(errors.New("create has no values"), s)
	}
	return tryCreateList(s, values)
}

func tryCreateList(s Scope, values []any) (PCollection, error) {
	fn := &createFn{Values: values}

	imp := Impulse(s)
	ret, err := TryParDo(s, fn, imp)
	if err != nil {
		return PCollection{}, addCreateCtx(err, s)
	}
	if len(ret) != 1 {
		return PCollection{}, addCreateCtx(errors.New("internal error"), s)
	}
	return ret[0], nil
}

type createFn struct {
	Values []any
}

func (c *createFn) ProcessElement(_ []byte, emit func(any)) {
	for _, v := range c.Values {
		emit(v)
	}
}

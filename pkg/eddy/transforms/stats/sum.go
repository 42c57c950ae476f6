package stats

import (
	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Sum returns the sum of the elements in a PCollection<A> as a singleton
// PCollection<A>. It can only be used for numbers, such as int, int64 or
// float64.
//
// For example:
//
//	col := eddy.Create(s, 1, 11, 7, 5, 10)
//	sum := stats.Sum(s, col)   // PCollection<int> with 34 as the only element.
func Sum(s eddy.Scope, col eddy.PCollection) eddy.PCollection {
	s = s.Scope("stats.Sum")
	return eddy.Combine(s, sumFn, col)
}

// SumPerKey returns the sum of the values per key in a PCollection<KV<A,B>> as
// a PCollection<KV<A,B>>. It can only be used for value numbers, such as int,
// int64 or float64.
func SumPerKey(s eddy.Scope, col eddy.PCollection) eddy.PCollection {
	s = s.Scope("stats.SumPerKey")
	return eddy.CombinePerKey(s, sumFn, col)
}

// sumFn adds two numbers of the same type. All elements of a summed
// collection must share one numeric type.
func sumFn(a, b any) (any, error) {
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return x + y, nil
		}
	case int32:
		if y, ok := b.(int32); ok {
			return x + y, nil
		}
	case int64:
		if y, ok := b.(int64); ok {
			return x + y, nil
		}
	case float32:
		if y, ok := b.(float32); ok {
			return x + y, nil
		}
	case float64:
		if y, ok := b.(float64); ok {
			return x + y, nil
		}
	default:
		return nil, errors.Errorf("sum: unsupported type %T", a)
	}
	return nil, errors.Errorf("sum: mismatched types %T and %T", a, b)
}

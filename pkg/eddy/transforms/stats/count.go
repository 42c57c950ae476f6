// Package stats contains transforms for statistical processing.
package stats

import (
	"github.com/eddyline/eddy/pkg/eddy"
)

// Count counts the number of appearances of each element in a collection. It
// expects a PCollection<T> as input and returns a PCollection<KV<T,int>>. T
// must be comparable so it is valid as a key.
func Count(s eddy.Scope, col eddy.PCollection) eddy.PCollection {
	s = s.Scope("stats.Count")

	pre := eddy.ParDo(s, keyedCountFn, col)
	return SumPerKey(s, pre)
}

func keyedCountFn(elm any) (any, int) {
	return elm, 1
}

// CountElms counts the number of elements in a collection. It expects a
// PCollection<T> as input and returns a PCollection<int> of one element
// containing the count.
func CountElms(s eddy.Scope, col eddy.PCollection) eddy.PCollection {
	s = s.Scope("stats.CountElms")

	if col.IsKV() {
		col = eddy.DropKey(s, col)
	}
	pre := eddy.ParDo(s, countFn, col)
	zero := eddy.Create(s, 0)
	return Sum(s, eddy.Flatten(s, pre, zero))
}

func countFn(_ any) int {
	return 1
}

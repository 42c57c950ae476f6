package filter

import (
	"github.com/eddyline/eddy/pkg/eddy"
)

// Distinct removes all duplicates from a collection, under key equality. It
// expects a PCollection<T> as input and returns a PCollection<T> with
// duplicates removed.
func Distinct(s eddy.Scope, col eddy.PCollection) eddy.PCollection {
	s = s.Scope("filter.Distinct")

	pre := eddy.ParDo(s, mapFn, col)
	post := eddy.GroupByKey(s, pre)
	return eddy.ParDo(s, keyFn, post)
}

func mapFn(elm any) (any, int) {
	return elm, 1
}

func keyFn(key any, _ func(*int) bool) any {
	return key
}

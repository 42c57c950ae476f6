package filter_test

import (
	"testing"

	"github.com/eddyline/eddy/pkg/eddy/testing/passert"
	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
	"github.com/eddyline/eddy/pkg/eddy/transforms/filter"
)

func TestDistinct(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []any
	}{
		{"duplicates", []int{1, 2, 1, 3, 2}, []any{1, 2, 3}},
		{"unique", []int{1, 2, 3}, []any{1, 2, 3}},
		{"single repeated", []int{7, 7, 7}, []any{7}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, s, col := ptest.CreateList(test.in)
			distinct := filter.Distinct(s, col)
			passert.Equals(s, distinct, test.want...)

			ptest.RunAndValidate(t, p)
		})
	}
}

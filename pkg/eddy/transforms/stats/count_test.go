package stats_test

import (
	"fmt"
	"testing"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/testing/passert"
	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
	"github.com/eddyline/eddy/pkg/eddy/transforms/stats"
)

func TestMain(m *testing.M) {
	ptest.Main(m)
}

func kvToString(k any, v int) string {
	return fmt.Sprintf("%v:%v", k, v)
}

func TestCount(t *testing.T) {
	p, s, col := ptest.CreateList([]string{"a", "b", "a", "a"})
	counted := stats.Count(s, col)
	formatted := eddy.ParDo(s, kvToString, counted)
	passert.Equals(s, formatted, "a:3", "b:1")

	ptest.RunAndValidate(t, p)
}

func TestCountInt(t *testing.T) {
	p, s, col := ptest.CreateList([]int{1, 2, 2, 3, 3, 3})
	counted := stats.Count(s, col)
	formatted := eddy.ParDo(s, kvToString, counted)
	passert.Equals(s, formatted, "1:1", "2:2", "3:3")

	ptest.RunAndValidate(t, p)
}

func TestCountElms(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want int
	}{
		{"full", []string{"a", "b", "c"}, 3},
		{"single", []string{"a"}, 1},
		{"empty", nil, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, s, col := ptest.CreateList(test.in)
			counted := stats.CountElms(s, col)
			passert.Equals(s, counted, test.want)

			ptest.RunAndValidate(t, p)
		})
	}
}

func TestCountElmsKV(t *testing.T) {
	p, s, col := ptest.CreateList([]string{"a", "b"})
	kvs := eddy.ParDo(s, func(w string) (string, int) { return w, len(w) }, col)
	counted := stats.CountElms(s, kvs)
	passert.Equals(s, counted, 2)

	ptest.RunAndValidate(t, p)
}

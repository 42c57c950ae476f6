package eddy_test

import (
	"fmt"
	"testing"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/testing/passert"
	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
)

func addInts(a, b int) int { return a + b }

func TestCombine(t *testing.T) {
	p, s, col := ptest.CreateList([]int{1, 11, 7, 5, 10})
	sum := eddy.Combine(s, addInts, col)
	passert.Equals(s, sum, 34)

	ptest.RunAndValidate(t, p)
}

func TestCombinePerKey(t *testing.T) {
	p, s, col := ptest.CreateList([]string{"a", "b", "a", "a", "b"})
	kvs := eddy.ParDo(s, func(w string) (string, int) { return w, 1 }, col)
	counted := eddy.CombinePerKey(s, addInts, kvs)
	formatted := eddy.ParDo(s, func(k string, v int) string { return fmt.Sprintf("%v:%v", k, v) }, counted)
	passert.Equals(s, formatted, "a:3", "b:2")

	ptest.RunAndValidate(t, p)
}

func TestCombineInvalidFn(t *testing.T) {
	_, s, col := ptest.CreateList([]int{1, 2})
	if _, err := eddy.TryCombine(s, func(a int) int { return a }, col); err == nil {
		t.Errorf("TryCombine(unary fn) succeeded, want error")
	}
}

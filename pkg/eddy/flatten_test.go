package eddy_test

import (
	"testing"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/testing/passert"
	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
)

func TestFlatten(t *testing.T) {
	p, s, a, b := ptest.CreateList2([]int{1, 2}, []int{3, 4, 5})
	merged := eddy.Flatten(s, a, b)
	passert.Equals(s, merged, 1, 2, 3, 4, 5)

	ptest.RunAndValidate(t, p)
}

func TestFlattenSingle(t *testing.T) {
	p, s, col := ptest.CreateList([]int{1, 2})
	same := eddy.Flatten(s, col)
	passert.Equals(s, same, 1, 2)

	ptest.RunAndValidate(t, p)
}

func TestFlattenMismatchedKinds(t *testing.T) {
	_, s, a := ptest.CreateList([]int{1})
	kvs := eddy.AddFixedKey(s, a)
	if _, err := eddy.TryFlatten(s, a, kvs); err == nil {
		t.Errorf("TryFlatten(single, kv) succeeded, want error")
	}
}

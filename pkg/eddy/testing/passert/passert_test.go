package passert

import (
	"strings"
	"testing"

	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
)

func TestMain(m *testing.M) {
	ptest.Main(m)
}

func TestEquals(t *testing.T) {
	p, s, col := ptest.CreateList([]string{"a", "b", "b"})
	Equals(s, col, "b", "a", "b")

	ptest.RunAndValidate(t, p)
}

func TestEqualsPCollection(t *testing.T) {
	p, s, col, other := ptest.CreateList2([]int{1, 2, 3}, []int{3, 2, 1})
	Equals(s, col, other)

	ptest.RunAndValidate(t, p)
}

func TestEqualsFailure(t *testing.T) {
	p, s, col := ptest.CreateList([]string{"a", "b"})
	Equals(s, col, "a", "c")

	err := ptest.Run(p)
	if err == nil {
		t.Fatalf("pipeline succeeded, want mismatch failure")
	}
	for _, want := range []string{"1 correct entries", "1 unexpected entries", "b (string)", "1 missing entries", "c (string)"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %v does not mention %q", err, want)
		}
	}
}

func TestEqualsMismatchedTypeFailure(t *testing.T) {
	p, s, col := ptest.CreateList([]int{1})
	Equals(s, col, int64(1))

	if err := ptest.Run(p); err == nil {
		t.Fatalf("pipeline succeeded, want failure for differing element types")
	}
}

func TestEmpty(t *testing.T) {
	p, s, col := ptest.CreateList([]string{})
	Empty(s, col)

	ptest.RunAndValidate(t, p)
}

func TestEmptyFailure(t *testing.T) {
	p, s, col := ptest.CreateList([]string{"a"})
	Empty(s, col)

	if err := ptest.Run(p); err == nil {
		t.Fatalf("pipeline succeeded, want failure for non-empty collection")
	}
}

func TestTrueFalse(t *testing.T) {
	p, s, col := ptest.CreateList([]int{2, 4, 6})
	True(s, col, func(x int) bool { return x%2 == 0 })
	False(s, col, func(x int) bool { return x > 10 })

	ptest.RunAndValidate(t, p)
}

func TestTrueFailure(t *testing.T) {
	p, s, col := ptest.CreateList([]int{2, 3})
	True(s, col, func(x int) bool { return x%2 == 0 })

	if err := ptest.Run(p); err == nil {
		t.Fatalf("pipeline succeeded, want failure for odd element")
	}
}

func TestSum(t *testing.T) {
	p, s, col := ptest.CreateList([]int{1, 2, 3})
	Sum(s, col, "onetwothree", 3, 6)

	ptest.RunAndValidate(t, p)
}

func TestSumFailure(t *testing.T) {
	p, s, col := ptest.CreateList([]int{1, 2, 3})
	Sum(s, col, "wrong", 3, 7)

	if err := ptest.Run(p); err == nil {
		t.Fatalf("pipeline succeeded, want failure for wrong sum")
	}
}

func TestCount(t *testing.T) {
	p, s, col := ptest.CreateList([]string{"a", "b", "c"})
	Count(s, col, "letters", 3)

	ptest.RunAndValidate(t, p)
}

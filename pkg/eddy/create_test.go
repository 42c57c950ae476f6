package eddy_test

import (
	"testing"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/testing/passert"
	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
)

func TestMain(m *testing.M) {
	ptest.Main(m)
}

type wc struct {
	K string
	V int
}

func TestCreate(t *testing.T) {
	tests := []struct {
		values []any
	}{
		{[]any{1, 2, 3}},
		{[]any{"1", "2", "3"}},
		{[]any{float64(0.1), float64(0.2), float64(0.3)}},
		{[]any{false, true, true, false, true}},
		{[]any{wc{"a", 23}, wc{"b", 42}, wc{"c", 5}}},
	}

	for _, test := range tests {
		p, s := eddy.NewPipelineWithRoot()
		c := eddy.Create(s, test.values...)
		passert.Equals(s, c, test.values...)

		if err := ptest.Run(p); err != nil {
			t.Errorf("eddy.Create(%v) failed: %v", test.values, err)
		}
	}
}

func TestCreateList(t *testing.T) {
	tests := []struct {
		values any
		want   []any
	}{
		{[]int{1, 2, 3}, []any{1, 2, 3}},
		{[]string{"1", "2", "3"}, []any{"1", "2", "3"}},
		{[]wc{{"a", 23}, {"b", 42}}, []any{wc{"a", 23}, wc{"b", 42}}},
	}

	for _, test := range tests {
		p, s := eddy.NewPipelineWithRoot()
		c := eddy.CreateList(s, test.values)
		passert.Equals(s, c, test.want...)

		if err := ptest.Run(p); err != nil {
			t.Errorf("eddy.CreateList(%v) failed: %v", test.values, err)
		}
	}
}

func TestCreateEmptyList(t *testing.T) {
	p, s := eddy.NewPipelineWithRoot()
	c := eddy.CreateList(s, []int{})
	passert.Empty(s, c)

	if err := ptest.Run(p); err != nil {
		t.Errorf("eddy.CreateList(empty) failed: %v", err)
	}
}

func TestTryCreateEmpty(t *testing.T) {
	_, s := eddy.NewPipelineWithRoot()
	if _, err := eddy.TryCreate(s); err == nil {
		t.Errorf("TryCreate() succeeded, want error for no values")
	}
}

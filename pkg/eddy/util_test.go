package eddy_test

import (
	"fmt"
	"testing"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/testing/passert"
	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
)

func TestAddFixedKeyDropKey(t *testing.T) {
	p, s, col := ptest.CreateList([]string{"x", "y"})
	keyed := eddy.AddFixedKey(s, col)
	back := eddy.DropKey(s, keyed)
	passert.Equals(s, back, "x", "y")

	ptest.RunAndValidate(t, p)
}

func TestSwapKV(t *testing.T) {
	p, s, col := ptest.CreateList([]string{"a", "bb"})
	kvs := eddy.ParDo(s, func(w string) (string, int) { return w, len(w) }, col)
	swapped := eddy.SwapKV(s, kvs)
	keys := eddy.DropValue(s, swapped)
	passert.Equals(s, keys, 1, 2)

	ptest.RunAndValidate(t, p)
}

func TestExplode(t *testing.T) {
	p, s := eddy.NewPipelineWithRoot()
	col := eddy.Create(s, []any{1, 2}, []any{3})
	exploded := eddy.Explode(s, col)
	passert.Equals(s, exploded, 1, 2, 3)

	ptest.RunAndValidate(t, p)
}

func TestSeq(t *testing.T) {
	p, s, col := ptest.CreateList([]int{1, 2, 3})
	out := eddy.Seq(s, col,
		func(x int) int { return x + 1 },
		func(x int) string { return fmt.Sprint(x * 10) },
	)
	passert.Equals(s, out, "20", "30", "40")

	ptest.RunAndValidate(t, p)
}

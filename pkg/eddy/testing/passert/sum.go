package passert

import (
	"fmt"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Sum validates that the sum and count of elements in the incoming
// PCollection<int> is the same as the given sum and count. Sum is a
// specialized version of Equals that avoids a lot of machinery for testing.
func Sum(s eddy.Scope, col eddy.PCollection, name string, size, value int) {
	s = s.Scope(fmt.Sprintf("passert.Sum(%v)", name))

	keyed := eddy.AddFixedKey(s, col)
	grouped := eddy.GroupByKey(s, keyed)
	eddy.ParDo0(s, &sumFn{Name: name, Size: size, Sum: value}, grouped)
}

type sumFn struct {
	Name string
	Size int
	Sum  int
}

func (f *sumFn) ProcessElement(_ int, values func(*int) bool) error {
	var sum, count, i int
	for values(&i) {
		count++
		sum += i
	}

	if f.Sum != sum || f.Size != count {
		return errors.Errorf("passert.Sum(%v) = {%v, size: %v}, want {%v, size:%v}", f.Name, sum, count, f.Sum, f.Size)
	}
	return nil
}

package passert

import (
	"fmt"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/transforms/stats"
)

// Count verifies the given PCollection<T> has the specified number of
// elements.
func Count(s eddy.Scope, col eddy.PCollection, name string, count int) {
	s = s.Scope(fmt.Sprintf("passert.Count(%v)", name))

	if col.IsKV() {
		col = eddy.DropKey(s, col)
	}
	counted := stats.CountElms(s, col)
	Equals(s, counted, count)
}

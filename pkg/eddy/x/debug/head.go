package debug

import (
	"github.com/eddyline/eddy/pkg/eddy"
)

// Head returns the first "n" elements it sees, it doesn't enforce any logic
// as to what the first "n" elements will be.
func Head(s eddy.Scope, col eddy.PCollection, n int) eddy.PCollection {
	s = s.Scope("debug.Head")

	if col.IsKV() {
		return eddy.ParDo(s, &headKVFn{N: n}, col)
	}
	return eddy.ParDo(s, &headFn{N: n}, col)
}

type headFn struct {
	N int

	seen int
}

func (h *headFn) StartBundle(_ func(any)) {
	h.seen = 0
}

func (h *headFn) ProcessElement(t any, emit func(any)) {
	if h.seen < h.N {
		h.seen++
		emit(t)
	}
}

type headKVFn struct {
	N int

	seen int
}

func (h *headKVFn) StartBundle(_ func(any, any)) {
	h.seen = 0
}

func (h *headKVFn) ProcessElement(x, y any, emit func(any, any)) {
	if h.seen < h.N {
		h.seen++
		emit(x, y)
	}
}

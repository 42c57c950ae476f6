package eddy

// We have some freedom to create various utilities that users can use
// depending on preferences. One point of keeping Pipeline transformation
// functions plain Go functions is that such utilities are more readily
// possible.

// NewPipelineWithRoot creates a new empty pipeline and its root scope.
func NewPipelineWithRoot() (*Pipeline, Scope) {
	p := NewPipeline()
	return p, p.Root()
}

// Seq is a convenience helper to chain single-input/single-output ParDos
// together in a sequence.
func Seq(s Scope, col PCollection, dofns ...any) PCollection {
	cur := col
	for _, dofn := range dofns {
		cur = ParDo(s, dofn, cur)
	}
	return cur
}

// AddFixedKey adds a fixed key (0) to every element.
func AddFixedKey(s Scope, col PCollection) PCollection {
	return ParDo(s, addFixedKeyFn, col)
}

func addFixedKeyFn(elm any) (int, any) {
	return 0, elm
}

// DropKey drops the key for an input PCollection of KV pairs. It returns a
// PCollection of the values.
func DropKey(s Scope, col PCollection) PCollection {
	return ParDo(s, dropKeyFn, col)
}

func dropKeyFn(_, y any) any {
	return y
}

// DropValue drops the value for an input PCollection of KV pairs. It returns
// a PCollection of the keys.
func DropValue(s Scope, col PCollection) PCollection {
	return ParDo(s, dropValueFn, col)
}

func dropValueFn(x, _ any) any {
	return x
}

// SwapKV swaps the key and value for an input PCollection of KV pairs.
func SwapKV(s Scope, col PCollection) PCollection {
	return ParDo(s, swapKVFn, col)
}

func swapKVFn(x, y any) (any, any) {
	return y, x
}

// Explode is a PTransform that takes a single PCollection of slices and
// returns a PCollection containing all the elements of each incoming slice.
func Explode(s Scope, col PCollection) PCollection {
	s = s.Scope("eddy.Explode")
	return ParDo(s, explodeFn, col)
}

func explodeFn(list []any, emit func(any)) {
	for _, elm := range list {
		emit(elm)
	}
}

// The MustX functions are convenience helpers to create error-less functions.

// MustN returns the input, but panics if err != nil.
func MustN(list []PCollection, err error) []PCollection {
	if err != nil {
		panic(err)
	}
	return list
}

// Must returns the input, but panics if err != nil.
func Must(a PCollection, err error) PCollection {
	if err != nil {
		panic(err)
	}
	return a
}

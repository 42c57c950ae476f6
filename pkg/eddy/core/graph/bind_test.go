package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// bundleEmitFn accumulates in ProcessElement and emits the result when the
// bundle finishes.
type bundleEmitFn struct {
	total int
}

func (f *bundleEmitFn) ProcessElement(x int)        { f.total += x }
func (f *bundleEmitFn) FinishBundle(emit func(int)) { emit(f.total) }

// startEmitFn emits a header element before processing the bundle.
type startEmitFn struct{}

func (f *startEmitFn) StartBundle(emit func(string))           { emit("header") }
func (f *startEmitFn) ProcessElement(x int, emit func(string)) {}

// mismatchedEmitFn emits a KV from FinishBundle while ProcessElement returns
// a plain value, which cannot share an output collection.
type mismatchedEmitFn struct{}

func (f *mismatchedEmitFn) ProcessElement(x int) int            { return x }
func (f *mismatchedEmitFn) FinishBundle(emit func(string, int)) {}

func TestBindDoFn(t *testing.T) {
	tests := []struct {
		name    string
		fn      any
		in      Kind
		want    []Kind
		wantErr bool
	}{
		{"single to single", func(int) int { return 0 }, Single, []Kind{Single}, false},
		{"single to kv", func(string) (string, int) { return "", 0 }, Single, []Kind{KV}, false},
		{"single to sink", func(int) {}, Single, nil, false},
		{"single with emit", func(int, func(string)) {}, Single, []Kind{Single}, false},
		{"single with kv emit", func(int, func(string, int)) {}, Single, []Kind{KV}, false},
		{"single with two emits", func(int, func(string), func(string, int)) {}, Single, []Kind{Single, KV}, false},
		{"kv to single", func(string, int) int { return 0 }, KV, []Kind{Single}, false},
		{"grouped to single", func(string, func(*int) bool) int { return 0 }, Grouped, []Kind{Single}, false},
		{"single got kv fn", func(string, int) int { return 0 }, Single, nil, true},
		{"kv got single fn", func(int) int { return 0 }, KV, nil, true},
		{"grouped got single fn", func(int) int { return 0 }, Grouped, nil, true},
		{"too many returns", func(int) (int, int, int) { return 0, 0, 0 }, Single, nil, true},
		{"struct finish bundle emit", &bundleEmitFn{}, Single, []Kind{Single}, false},
		{"struct start bundle emit", &startEmitFn{}, Single, []Kind{Single}, false},
		{"struct mismatched lifecycle emit", &mismatchedEmitFn{}, Single, nil, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fn, err := NewDoFn(test.fn)
			if err != nil {
				t.Fatalf("NewDoFn failed: %v", err)
			}
			got, err := bindDoFn(fn, test.in)
			if (err != nil) != test.wantErr {
				t.Fatalf("bindDoFn error = %v, wantErr %v", err, test.wantErr)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("bindDoFn kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

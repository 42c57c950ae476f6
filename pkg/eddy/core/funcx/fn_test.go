package funcx

import (
	"context"
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		fn      any
		wantErr bool
	}{
		{"value to value", func(int) int { return 0 }, false},
		{"kv to kv", func(string, int) (string, int) { return "", 0 }, false},
		{"context and error", func(context.Context, string) (string, error) { return "", nil }, false},
		{"emitter", func(string, func(string)) {}, false},
		{"kv emitter", func(string, func(string, int)) {}, false},
		{"iterator", func(string, func(*int) bool) string { return "" }, false},
		{"sink", func(int) {}, false},
		{"error only", func(int) error { return nil }, false},
		{"lifecycle emit only", func(func(int)) {}, false},
		{"context not first", func(int, context.Context) {}, true},
		{"error not last", func(int) (error, int) { return nil, 0 }, true},
		{"value after emitter", func(func(string), int) {}, true},
		{"mixed emit and return", func(int, func(int)) int { return 0 }, true},
		{"too many errors", func(int) (error, error) { return nil, nil }, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(reflect.ValueOf(test.fn), test.name)
			if (err != nil) != test.wantErr {
				t.Errorf("New(%v) error = %v, wantErr %v", test.name, err, test.wantErr)
			}
		})
	}
}

func TestFnParams(t *testing.T) {
	fn, err := New(reflect.ValueOf(func(ctx context.Context, k string, values func(*int) bool, emit func(string)) error {
		return nil
	}), "grouped")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, ok := fn.Context(); !ok {
		t.Errorf("Context() not found")
	}
	if got, want := len(fn.Values()), 1; got != want {
		t.Errorf("len(Values()) = %v, want %v", got, want)
	}
	if got, want := len(fn.Iters()), 1; got != want {
		t.Errorf("len(Iters()) = %v, want %v", got, want)
	}
	if pos, num, ok := fn.Emits(); !ok || num != 1 {
		t.Errorf("Emits() = (%v, %v, %v), want one emitter", pos, num, ok)
	}
	if _, ok := fn.Error(); !ok {
		t.Errorf("Error() not found")
	}
	if got, want := len(fn.Returns()), 0; got != want {
		t.Errorf("len(Returns()) = %v, want %v", got, want)
	}
}

func TestIsEmitIsIter(t *testing.T) {
	if !IsEmit(reflect.TypeOf(func(string) {})) {
		t.Errorf("IsEmit(func(string)) = false, want true")
	}
	if !IsEmit(reflect.TypeOf(func(string, int) {})) {
		t.Errorf("IsEmit(func(string, int)) = false, want true")
	}
	if IsEmit(reflect.TypeOf(func(string) bool { return false })) {
		t.Errorf("IsEmit(func(string) bool) = true, want false")
	}
	if !IsIter(reflect.TypeOf(func(*int) bool { return false })) {
		t.Errorf("IsIter(func(*int) bool) = false, want true")
	}
	if IsIter(reflect.TypeOf(func(int) bool { return false })) {
		t.Errorf("IsIter(func(int) bool) = true, want false")
	}
}

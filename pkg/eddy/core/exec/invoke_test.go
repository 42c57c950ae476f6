package exec

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eddyline/eddy/pkg/eddy/core/funcx"
	"github.com/eddyline/eddy/pkg/eddy/core/graph"
)

func mustFn(t *testing.T, fn any) *funcx.Fn {
	t.Helper()
	f, err := funcx.New(reflect.ValueOf(fn), "test")
	if err != nil {
		t.Fatalf("funcx.New failed: %v", err)
	}
	return f
}

func invoke(t *testing.T, fn any, in graph.Kind, fv FullValue) []FullValue {
	t.Helper()
	var out []FullValue
	inv := NewInvoker(mustFn(t, fn), in)
	err := inv.Invoke(context.Background(), fv, func(_ int, fv FullValue) {
		out = append(out, fv)
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	return out
}

func TestInvokeReturn(t *testing.T) {
	out := invoke(t, func(x int) int { return x + 1 }, graph.Single, FullValue{Elm: 41})
	if diff := cmp.Diff([]FullValue{{Elm: 42}}, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInvokeKVReturn(t *testing.T) {
	out := invoke(t, func(w string) (string, int) { return w, len(w) }, graph.Single, FullValue{Elm: "abc"})
	if diff := cmp.Diff([]FullValue{{Elm: "abc", Elm2: 3}}, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInvokeEmit(t *testing.T) {
	out := invoke(t, func(x int, emit func(int)) {
		emit(x)
		emit(x * 10)
	}, graph.Single, FullValue{Elm: 2})
	if diff := cmp.Diff([]FullValue{{Elm: 2}, {Elm: 20}}, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInvokeKVInput(t *testing.T) {
	out := invoke(t, func(k string, v int) string { return k }, graph.KV, FullValue{Elm: "key", Elm2: 7})
	if diff := cmp.Diff([]FullValue{{Elm: "key"}}, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInvokeGroupedInput(t *testing.T) {
	out := invoke(t, func(k string, values func(*int) bool) int {
		sum := 0
		var v int
		for values(&v) {
			sum += v
		}
		return sum
	}, graph.Grouped, FullValue{Elm: "k", Elm2: []any{1, 2, 3}})
	if diff := cmp.Diff([]FullValue{{Elm: 6}}, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInvokeContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "present")

	var got any
	inv := NewInvoker(mustFn(t, func(ctx context.Context, x int) int {
		got = ctx.Value(key{})
		return x
	}), graph.Single)
	if err := inv.Invoke(ctx, FullValue{Elm: 1}, func(int, FullValue) {}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != "present" {
		t.Errorf("context value = %v, want %q", got, "present")
	}
}

func TestInvokeError(t *testing.T) {
	errBoom := errors.New("boom")
	inv := NewInvoker(mustFn(t, func(x int) error { return errBoom }), graph.Single)
	err := inv.Invoke(context.Background(), FullValue{Elm: 1}, func(int, FullValue) {})
	if !errors.Is(err, errBoom) {
		t.Errorf("Invoke error = %v, want %v", err, errBoom)
	}
}

func TestInvokeTypeMismatch(t *testing.T) {
	inv := NewInvoker(mustFn(t, func(x int) int { return x }), graph.Single)
	err := inv.Invoke(context.Background(), FullValue{Elm: "not an int"}, func(int, FullValue) {})
	if err == nil {
		t.Fatalf("Invoke succeeded, want assignability error")
	}
	if !strings.Contains(err.Error(), "not assignable") {
		t.Errorf("Invoke error = %v, want assignability error", err)
	}
}

func TestInvokeNilElement(t *testing.T) {
	out := invoke(t, func(x any) bool { return x == nil }, graph.Single, FullValue{})
	if diff := cmp.Diff([]FullValue{{Elm: true}}, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInvokeLifecycle(t *testing.T) {
	var out []FullValue
	fn := mustFn(t, func(emit func(string)) { emit("flushed") })
	err := InvokeLifecycle(context.Background(), fn, func(_ int, fv FullValue) {
		out = append(out, fv)
	})
	if err != nil {
		t.Fatalf("InvokeLifecycle failed: %v", err)
	}
	if diff := cmp.Diff([]FullValue{{Elm: "flushed"}}, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCallNoPanic(t *testing.T) {
	if err := CallNoPanic(func() error { return nil }); err != nil {
		t.Errorf("CallNoPanic(nil fn) = %v, want nil", err)
	}

	errFail := errors.New("fail")
	if err := CallNoPanic(func() error { return errFail }); !errors.Is(err, errFail) {
		t.Errorf("CallNoPanic(error fn) = %v, want %v", err, errFail)
	}

	err := CallNoPanic(func() error { panic("kaboom") })
	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("CallNoPanic(panicking fn) = %v, want panic error", err)
	}
}

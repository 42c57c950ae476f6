package dot_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/core/util/dot"
)

func TestRender(t *testing.T) {
	p, s := eddy.NewPipelineWithRoot()
	col := eddy.Create(s, "a", "b")
	kvs := eddy.ParDo(s, func(w string) (string, int) { return w, 1 }, col)
	eddy.GroupByKey(s, kvs)

	edges, nodes, err := p.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var buf bytes.Buffer
	if err := dot.Render(edges, nodes, &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"digraph execution_plan", "Impulse", "ParDo", "GBK", "->"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render output missing %q:\n%s", want, got)
		}
	}
}

package frame

import (
	"context"
	"strings"
	"testing"

	"github.com/eddyline/eddy/pkg/eddy/io/filesystem"
	_ "github.com/eddyline/eddy/pkg/eddy/io/filesystem/memfs"
	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
)

func TestWriteCSV(t *testing.T) {
	const filename = "memfs://frame/purchases.csv"

	p, s, col := ptest.Create([]any{
		purchase{Item: "pen", Price: 2},
		purchase{Item: "book", Price: 12},
	})
	f, err := ToFrame(s, col, purchase{})
	if err != nil {
		t.Fatalf("ToFrame failed: %v", err)
	}
	f.WriteCSV(s, filename)

	ptest.RunAndValidate(t, p)

	ctx := context.Background()
	fs, err := filesystem.New(ctx, filename)
	if err != nil {
		t.Fatalf("filesystem.New failed: %v", err)
	}
	defer fs.Close()

	data, err := filesystem.Read(ctx, fs, filename)
	if err != nil {
		t.Fatalf("reading %v failed: %v", filename, err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if got, want := lines[0], "item,price"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	rows := map[string]bool{}
	for _, line := range lines[1:] {
		rows[line] = true
	}
	for _, want := range []string{"pen,2", "book,12"} {
		if !rows[want] {
			t.Errorf("missing row %q in %q", want, lines)
		}
	}
	if len(rows) != 2 {
		t.Errorf("wrote %v rows, want 2: %q", len(rows), lines)
	}
}

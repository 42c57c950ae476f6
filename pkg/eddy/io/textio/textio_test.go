package textio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/io/filesystem"
	_ "github.com/eddyline/eddy/pkg/eddy/io/filesystem/local"
	"github.com/eddyline/eddy/pkg/eddy/io/filesystem/memfs"
	"github.com/eddyline/eddy/pkg/eddy/testing/passert"
	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
)

func TestMain(m *testing.M) {
	ptest.Main(m)
}

func TestRead(t *testing.T) {
	memfs.Write("memfs://textio/read/a.txt", []byte("one\ntwo\n"))
	memfs.Write("memfs://textio/read/b.txt", []byte("three"))

	p, s := eddy.NewPipelineWithRoot()
	lines := Read(s, "memfs://textio/read/*.txt")
	passert.Equals(s, lines, "one", "two", "three")

	ptest.RunAndValidate(t, p)
}

func TestReadAll(t *testing.T) {
	memfs.Write("memfs://textio/readall/a.txt", []byte("one\n"))
	memfs.Write("memfs://textio/readall/b.txt", []byte("two\n"))

	p, s := eddy.NewPipelineWithRoot()
	globs := eddy.Create(s, "memfs://textio/readall/a.txt", "memfs://textio/readall/b.txt", "")
	lines := ReadAll(s, globs)
	passert.Equals(s, lines, "one", "two")

	ptest.RunAndValidate(t, p)
}

func TestWrite(t *testing.T) {
	const filename = "memfs://textio/write/out.txt"

	p, s := eddy.NewPipelineWithRoot()
	col := eddy.Create(s, "alpha", "beta", "gamma")
	Write(s, filename, col)

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
	got := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	want := map[string]bool{"alpha": true, "beta": true, "gamma": true}
	if len(got) != len(want) {
		t.Fatalf("wrote %v lines %q, want %v", len(got), got, len(want))
	}
	for _, line := range got {
		if !want[line] {
			t.Errorf("unexpected line %q in %v", line, filename)
		}
	}
}

func TestImmediate(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(filename, []byte("x\ny\n"), 0644); err != nil {
		t.Fatalf("writing %v failed: %v", filename, err)
	}

	p, s := eddy.NewPipelineWithRoot()
	lines, err := Immediate(s, filename)
	if err != nil {
		t.Fatalf("Immediate failed: %v", err)
	}
	passert.Equals(s, lines, "x", "y")

	ptest.RunAndValidate(t, p)
}

func TestImmediateNotExist(t *testing.T) {
	_, s := eddy.NewPipelineWithRoot()
	if _, err := Immediate(s, filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("Immediate(missing file) succeeded, want error")
	}
}

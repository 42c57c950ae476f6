package memfs

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eddyline/eddy/pkg/eddy/io/filesystem"
)

func TestReadWrite(t *testing.T) {
	ctx := context.Background()
	fs, err := filesystem.New(ctx, "memfs://rw/file.txt")
	if err != nil {
		t.Fatalf("filesystem.New failed: %v", err)
	}
	defer fs.Close()

	want := []byte("hello\nworld\n")
	if err := filesystem.Write(ctx, fs, "memfs://rw/file.txt", want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := filesystem.Read(ctx, fs, "memfs://rw/file.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read mismatch (-want +got):\n%s", diff)
	}

	// The scheme prefix is optional on lookup.
	got, err = filesystem.Read(ctx, fs, "rw/file.txt")
	if err != nil {
		t.Fatalf("Read without scheme failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read without scheme mismatch (-want +got):\n%s", diff)
	}
}

func TestReadNotExist(t *testing.T) {
	ctx := context.Background()
	if _, err := filesystem.Read(ctx, instance, "memfs://missing.txt"); err == nil {
		t.Errorf("Read(missing.txt) succeeded, want error")
	}
}

func TestList(t *testing.T) {
	Write("memfs://list/a.txt", []byte("a"))
	Write("memfs://list/b.txt", []byte("b"))
	Write("memfs://list/nested/c.txt", []byte("c"))

	ctx := context.Background()
	tests := []struct {
		glob string
		want []string
	}{
		{"memfs://list/*.txt", []string{"memfs://list/a.txt", "memfs://list/b.txt"}},
		{"memfs://list/**", []string{"memfs://list/a.txt", "memfs://list/b.txt", "memfs://list/nested/c.txt"}},
		{"memfs://list/nope*", nil},
	}

	for _, test := range tests {
		got, err := instance.List(ctx, test.glob)
		if err != nil {
			t.Errorf("List(%q) failed: %v", test.glob, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("List(%q) mismatch (-want +got):\n%s", test.glob, diff)
		}
	}
}

func TestRenameCopyRemove(t *testing.T) {
	ctx := context.Background()
	Write("memfs://mv/orig.txt", []byte("data"))

	if err := filesystem.Rename(ctx, instance, "memfs://mv/orig.txt", "memfs://mv/renamed.txt"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, err := filesystem.Read(ctx, instance, "memfs://mv/orig.txt"); err == nil {
		t.Errorf("Read(orig.txt) succeeded after rename, want error")
	}

	if err := filesystem.Copy(ctx, instance, "memfs://mv/renamed.txt", "memfs://mv/copy.txt"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	for _, file := range []string{"memfs://mv/renamed.txt", "memfs://mv/copy.txt"} {
		got, err := filesystem.Read(ctx, instance, file)
		if err != nil {
			t.Fatalf("Read(%v) failed: %v", file, err)
		}
		if string(got) != "data" {
			t.Errorf("Read(%v) = %q, want %q", file, got, "data")
		}
	}

	if err := instance.Remove(ctx, "memfs://mv/copy.txt"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := filesystem.Read(ctx, instance, "memfs://mv/copy.txt"); err == nil {
		t.Errorf("Read(copy.txt) succeeded after remove, want error")
	}
}

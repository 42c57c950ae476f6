package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	data := []byte("input: memfs://in.txt\noutput: memfs://out.txt\ncsv: memfs://out.csv\navro: memfs://out.avro\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %v failed: %v", path, err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	want := jobConfig{
		Input:  "memfs://in.txt",
		Output: "memfs://out.txt",
		CSV:    "memfs://out.csv",
		Avro:   "memfs://out.avro",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("loadConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg != (jobConfig{}) {
		t.Errorf("loadConfig(\"\") = %+v, want zero config", cfg)
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte("input: in.txt\nbogus: value\n"), 0644); err != nil {
		t.Fatalf("writing %v failed: %v", path, err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Errorf("loadConfig(unknown field) succeeded, want error")
	}
}

func TestLoadConfigNotExist(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("loadConfig(missing file) succeeded, want error")
	}
}

func TestMerge(t *testing.T) {
	base := jobConfig{Input: "file.txt", Output: "file-out.txt", SQLite: "db.sqlite"}
	flags := jobConfig{Output: "flag-out.txt", CSV: "flag.csv"}

	got := base.merge(flags)
	want := jobConfig{
		Input:  "file.txt",
		Output: "flag-out.txt",
		CSV:    "flag.csv",
		SQLite: "db.sqlite",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

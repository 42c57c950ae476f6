// Package local contains a local file implementation of the file system.
package local

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/eddyline/eddy/pkg/eddy/io/filesystem"
)

func init() {
	filesystem.Register("default", New)
}

type fs struct{}

// New creates a new local filesystem.
func New(_ context.Context) filesystem.Interface {
	return &fs{}
}

func (f *fs) Close() error {
	return nil
}

func (f *fs) List(_ context.Context, glob string) ([]string, error) {
	return filepath.Glob(glob)
}

func (f *fs) OpenRead(_ context.Context, filename string) (io.ReadCloser, error) {
	return os.Open(filename)
}

func (f *fs) OpenWrite(_ context.Context, filename string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
}

// Remove the named file from the filesystem.
func (f *fs) Remove(_ context.Context, filename string) error {
	return os.Remove(filename)
}

// Rename the old path to the new path.
func (f *fs) Rename(_ context.Context, oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Copy copies from oldpath to the newpath.
func (f *fs) Copy(_ context.Context, oldpath, newpath string) error {
	srcFile, err := os.Open(oldpath)
	if err != nil {
		return err
	}
	defer srcFile.Close()
	destFile, err := os.Create(newpath)
	if err != nil {
		return err
	}
	defer destFile.Close()
	_, err = io.Copy(destFile, srcFile)
	return err
}

// Compile time check for interface implementations.
var (
	_ filesystem.Copier  = ((*fs)(nil))
	_ filesystem.Remover = ((*fs)(nil))
	_ filesystem.Renamer = ((*fs)(nil))
)

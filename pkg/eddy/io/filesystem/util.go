package filesystem

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Read fully reads the given file from the file system.
func Read(ctx context.Context, fs Interface, filename string) ([]byte, error) {
	r, err := fs.OpenRead(ctx, filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// Write writes the given content to the file system.
func Write(ctx context.Context, fs Interface, filename string, data []byte) error {
	w, err := fs.OpenWrite(ctx, filename)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Close()
}

// Copy copies the old path to the new path, using the filesystem's native
// Copier if it has one and a read/write pair otherwise.
func Copy(ctx context.Context, fs Interface, oldpath, newpath string) error {
	if copier, ok := fs.(Copier); ok {
		return copier.Copy(ctx, oldpath, newpath)
	}
	data, err := Read(ctx, fs, oldpath)
	if err != nil {
		return err
	}
	return Write(ctx, fs, newpath, data)
}

// Rename renames the old path to the new path, using the filesystem's native
// Renamer if it has one and a copy-then-remove otherwise.
func Rename(ctx context.Context, fs Interface, oldpath, newpath string) error {
	if renamer, ok := fs.(Renamer); ok {
		return renamer.Rename(ctx, oldpath, newpath)
	}
	if err := Copy(ctx, fs, oldpath, newpath); err != nil {
		return err
	}
	remover, ok := fs.(Remover)
	if !ok {
		return errors.Errorf("filesystem %T does not support removing files", fs)
	}
	return remover.Remove(ctx, oldpath)
}

// Match reports whether the filename matches the glob pattern. The pattern
// syntax follows filepath.Match, except that "**" also matches path
// separators.
func Match(pattern, filename string) (bool, error) {
	var sb strings.Builder
	sb.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				sb.WriteString(".*")
				i++
			} else {
				sb.WriteString("[^/]*")
			}
		case '?':
			sb.WriteString("[^/]")
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return false, err
	}
	return re.MatchString(filename), nil
}

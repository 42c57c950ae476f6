// Package httpfs contains a read-only file system over HTTP and HTTPS URLs,
// so a pipeline can consume a published file directly from its URL.
package httpfs

import (
	"context"
	"io"
	"net/http"
	"time"

	"gopkg.in/retry.v1"

	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
	"github.com/eddyline/eddy/pkg/eddy/io/filesystem"
)

func init() {
	filesystem.Register("http", New)
	filesystem.Register("https", New)
}

// Transient server errors and connection failures are retried with
// exponential backoff before the read is failed.
var strategy = retry.LimitCount(5, retry.Exponential{
	Initial:  250 * time.Millisecond,
	Factor:   2,
	MaxDelay: 5 * time.Second,
})

type fs struct {
	client *http.Client
}

// New creates a new HTTP filesystem.
func New(_ context.Context) filesystem.Interface {
	return &fs{client: &http.Client{Timeout: time.Minute}}
}

func (f *fs) Close() error {
	return nil
}

// List returns the URL itself. URLs are not enumerable, so globs are not
// expanded.
func (f *fs) List(_ context.Context, glob string) ([]string, error) {
	return []string{glob}, nil
}

func (f *fs) OpenRead(ctx context.Context, filename string) (io.ReadCloser, error) {
	var lastErr error
	for a := retry.StartWithCancel(strategy, nil, ctx.Done()); a.Next(); {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, filename, nil)
		if err != nil {
			return nil, err
		}
		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		switch {
		case resp.StatusCode == http.StatusOK:
			return resp.Body, nil
		case resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = errors.Errorf("GET %v: %v", filename, resp.Status)
		default:
			resp.Body.Close()
			return nil, errors.Errorf("GET %v: %v", filename, resp.Status)
		}
	}
	return nil, errors.WithContextf(lastErr, "reading %v", filename)
}

func (f *fs) OpenWrite(_ context.Context, filename string) (io.WriteCloser, error) {
	return nil, errors.Errorf("httpfs is read-only: cannot write %v", filename)
}

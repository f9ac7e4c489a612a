package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage holds the generated salary sheets and payslips. Paths are
// relative keys owned by the caller, e.g. "documents/<company>/<period>/".
type FileStorage interface {
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the client can fetch the file from.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
}

package storage

import (
	"context"
	"io"
)

// FileSystem 报表文件存储
type FileSystem interface {
	// Delete deletes the given file(s).
	Delete(ctx context.Context, file ...string) error
	// Exists determines if a file exists.
	Exists(ctx context.Context, file string) bool
	// Get gets the contents of a file.
	Get(ctx context.Context, file string) ([]byte, error)
	GetStream(ctx context.Context, file string) (io.ReadCloser, error)
	// Put writes the contents of a file.
	Put(ctx context.Context, file string, content []byte) error
	PutStream(ctx context.Context, file string, rs io.Reader) error
	// Url get the URL for the file at the given path.
	Url(file string) string
}

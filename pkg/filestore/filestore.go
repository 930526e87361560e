// Package filestore defines the two storage roles of the gateway: reading
// source files on the producer side (FileProvider) and publishing reassembled
// files on the consumer side (ReceivedFileStorage). Concrete backends live in
// the subpackages; modules/storage selects one from configuration.
package filestore

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// ErrFileFetch wraps any backend failure while locating or opening a source
// file, including plain not-found.
var ErrFileFetch = errors.New("file fetch failed")

// Request identifies a source file to serve.
type Request struct {
	SourceType       string
	StorageContainer string
	Path             string
}

// Stored reports where a published file ended up. RemoteURI is set only when
// an object-store upload succeeded.
type Stored struct {
	LocalPath string
	RemoteURI string
}

// FileProvider is the read side. Get opens the file after a metadata probe so
// the size is known up front; ValidatePath is the probe alone.
type FileProvider interface {
	Get(ctx context.Context, req Request) (io.ReadCloser, int64, error)
	ValidatePath(ctx context.Context, req Request) error
}

// ReceivedFileStorage publishes a fully assembled temp file. Implementations
// own the temp file from the moment Store is called: it must be gone (renamed
// or deleted) on every return path.
type ReceivedFileStorage interface {
	Store(ctx context.Context, tempPath, originalName, destination string) (Stored, error)
}

// Package blobstore keeps opaque article payloads (content bodies, thumbnails) addressed by a generated id.
package blobstore

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/bmwadforth/articlehub/internal/common"
)

// DefaultContentType is recorded when an upload does not declare one.
const DefaultContentType = "application/octet-stream"

// BlobStore is the byte-storage abstraction used by the article service.
type BlobStore interface {
	// Put stores the stream and returns the generated blob id.
	Put(ctx context.Context, contentType string, r io.Reader) (string, error)
	// Get opens a stored blob. Unknown ids fail with common.ErrRecordNotFound.
	Get(ctx context.Context, id string) (io.ReadCloser, string, error)
}

func newBlobID() string {
	return uuid.NewString()
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return DefaultContentType
	}
	return contentType
}

func errBlobNotFound(id string) error {
	return fmt.Errorf("blob %q: %w", id, common.ErrRecordNotFound)
}

// validBlobID rejects ids this package could not have generated before they reach a backend.
func validBlobID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

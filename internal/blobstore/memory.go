package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync"
)

type memoryBlob struct {
	data        []byte
	contentType string
}

// MemoryStore keeps blobs in process memory. It backs tests and BLOB_BACKEND=memory.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]memoryBlob)}
}

func (s *MemoryStore) Put(ctx context.Context, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	id := newBlobID()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[id] = memoryBlob{data: data, contentType: normalizeContentType(contentType)}
	return id, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (io.ReadCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[id]
	if !ok {
		return nil, "", errBlobNotFound(id)
	}

	return io.NopCloser(bytes.NewReader(b.data)), b.contentType, nil
}

// Len reports how many blobs are held, orphans included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

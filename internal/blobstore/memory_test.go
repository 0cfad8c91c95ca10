package blobstore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmwadforth/articlehub/internal/common"
)

func TestMemoryStorePutGet(t *testing.T) {
	testCases := []struct {
		name            string
		contentType     string
		payload         []byte
		wantContentType string
	}{
		{
			name:            "markdown",
			contentType:     "text/markdown",
			payload:         []byte("# Hello"),
			wantContentType: "text/markdown",
		},
		{
			name:            "binary without content type",
			contentType:     "",
			payload:         []byte{0x00, 0xff, 0x10},
			wantContentType: DefaultContentType,
		},
		{
			name:            "empty body",
			contentType:     "image/png",
			payload:         []byte{},
			wantContentType: "image/png",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewMemoryStore()
			ctx := context.Background()

			id, err := s.Put(ctx, tc.contentType, bytes.NewReader(tc.payload))
			require.NoError(t, err)
			_, err = uuid.Parse(id)
			assert.NoError(t, err)

			rc, contentType, err := s.Get(ctx, id)
			require.NoError(t, err)
			defer rc.Close()

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, tc.payload, got)
			assert.Equal(t, tc.wantContentType, contentType)
		})
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	s := NewMemoryStore()

	_, _, err := s.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestMemoryStoreGeneratesDistinctIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.Put(ctx, "text/plain", bytes.NewBufferString("same"))
	require.NoError(t, err)
	second, err := s.Put(ctx, "text/plain", bytes.NewBufferString("same"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, "text/plain", bytes.NewBufferString("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

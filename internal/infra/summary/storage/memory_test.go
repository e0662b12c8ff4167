package storage

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/nextpdf/ai-service/pkg/errors"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	s := NewMemoryStorage()
	s.Put("uploads/doc.txt", []byte("document body"))

	reader, err := s.Get(context.Background(), "uploads/doc.txt")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, "document body", string(data))
}

func TestMemoryStorageMissingKey(t *testing.T) {
	s := NewMemoryStorage()
	_, err := s.Get(context.Background(), "uploads/absent.txt")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

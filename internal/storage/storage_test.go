package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"coparent/internal/config"
)

func TestProfilePhotoKey(t *testing.T) {
	assert.Equal(t, "profile_photos/u1/abc.jpg", ProfilePhotoKey("u1", "abc", ".jpg"))
}

func TestNewS3_RequiresSettings(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewS3(context.Background(), config.StorageConfig{Bucket: "photos"}, log)
	assert.EqualError(t, err, "storage endpoint is required")

	_, err = NewS3(context.Background(), config.StorageConfig{Endpoint: "localhost:9000"}, log)
	assert.EqualError(t, err, "storage bucket is required")
}

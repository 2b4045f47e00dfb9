package storage_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wellnest/tracker-api/internal/config"
	"wellnest/tracker-api/internal/storage"
)

func TestNewS3Storage_DisabledWithoutBucket(t *testing.T) {
	fs, err := storage.NewS3Storage(context.Background(), config.S3Config{}, zap.NewNop())
	require.NoError(t, err)

	_, err = fs.GeneratePresignedUploadURL(context.Background(), "k", "image/png", time.Minute)
	assert.ErrorIs(t, err, storage.ErrStorageDisabled)
	assert.ErrorIs(t, fs.DeleteObject(context.Background(), "k"), storage.ErrStorageDisabled)
}

func TestS3Storage_PresignsPathStyleURLs(t *testing.T) {
	fs, err := storage.NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		BucketName:      "avatars",
	}, zap.NewNop())
	require.NoError(t, err)

	put, err := fs.GeneratePresignedUploadURL(context.Background(), "users/abc/avatar.png", "image/png", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(put, "http://localhost:9000/avatars/users/abc/avatar.png"), put)
	assert.Contains(t, put, "X-Amz-Signature=")

	get, err := fs.GeneratePresignedDownloadURL(context.Background(), "users/abc/avatar.png", 5*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, get, "X-Amz-Expires=300")
}

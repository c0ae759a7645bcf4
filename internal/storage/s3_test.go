package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/samueldk12/trainer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "exercise-images",
	}
}

func TestPublicBaseURL(t *testing.T) {
	cfg := testS3Config()
	assert.Equal(t, "http://localhost:9000/exercise-images", publicBaseURL(cfg))

	cfg.PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(cfg))

	cfg = config.S3Config{BucketName: "b", Region: "eu-west-1"}
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com", publicBaseURL(cfg))
}

func TestS3Storage_URLs(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), testS3Config())
	require.NoError(t, err)

	url := fs.PublicURL("exercises/e1/abc.png")
	assert.Equal(t, "http://localhost:9000/exercise-images/exercises/e1/abc.png", url)

	key, ok := fs.ObjectKey(url)
	require.True(t, ok)
	assert.Equal(t, "exercises/e1/abc.png", key)

	_, ok = fs.ObjectKey("https://elsewhere.example.com/pic.jpg")
	assert.False(t, ok)
	_, ok = fs.ObjectKey("http://localhost:9000/exercise-images/")
	assert.False(t, ok)
}

func TestS3Storage_PresignIsOffline(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), testS3Config())
	require.NoError(t, err)

	url, err := fs.GeneratePresignedUploadURL(context.Background(), "exercises/e1/abc.png", "image/png", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/exercise-images/exercises/e1/abc.png?"), url)
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=60")
}

func TestDisabledStorage(t *testing.T) {
	fs := NewDisabledStorage()
	_, err := fs.GeneratePresignedUploadURL(context.Background(), "k", "image/png", 0)
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, fs.DeleteObject(context.Background(), "k"), ErrStorageDisabled)
	_, ok := fs.ObjectKey("http://localhost/x")
	assert.False(t, ok)
}

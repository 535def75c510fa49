package objectstorage

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(context.Background(), Config{
		Bucket:          "beauty-media",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		PublicBaseURL:   "https://cdn.beauty.test/",
		UploadTTL:       15 * time.Minute,
	}, logger.NewNop())
	require.NoError(t, err)

	return client
}

func TestPresignUpload(t *testing.T) {
	client := newTestClient(t)

	upload, err := client.PresignUpload(context.Background(), "businesses/7/cover/abc.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, upload.Method)
	assert.True(t, strings.HasPrefix(upload.URL, "http://localhost:9000/beauty-media/businesses/7/cover/abc.jpg?"))
	assert.Contains(t, upload.URL, "X-Amz-Signature=")
	assert.Contains(t, upload.URL, "X-Amz-Expires=900")
	assert.True(t, upload.ExpiresAt.After(time.Now()))
}

func TestPublicURL(t *testing.T) {
	client := newTestClient(t)

	assert.Equal(t, "https://cdn.beauty.test/businesses/7/cover/abc.jpg", client.PublicURL("businesses/7/cover/abc.jpg"))
}

func TestNewClient_NotConfigured(t *testing.T) {
	_, err := NewClient(context.Background(), Config{}, logger.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

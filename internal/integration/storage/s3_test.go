package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"azhaboost/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewPhotoStore_WithoutBucket(t *testing.T) {
	store, err := NewPhotoStore(context.Background(), utils.StorageConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "k", "image/jpeg", bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestS3PhotoStore_Upload(t *testing.T) {
	var gotPath, gotType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store, err := NewS3PhotoStore(context.Background(), utils.StorageConfig{
		Endpoint:     server.URL,
		Region:       "us-east-1",
		Bucket:       "photos",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	payload := []byte("jpeg-bytes")
	url, err := store.Upload(context.Background(), "cleaning/t1/a.jpg", "image/jpeg", bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)

	assert.Equal(t, "/photos/cleaning/t1/a.jpg", gotPath)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Contains(t, string(gotBody), string(payload))
	assert.Equal(t, server.URL+"/photos/cleaning/t1/a.jpg", url)
}

func TestS3PhotoStore_PublicURL(t *testing.T) {
	store, err := NewS3PhotoStore(context.Background(), utils.StorageConfig{
		Bucket:    "photos",
		Region:    "eu-central-1",
		AccessKey: "k",
		SecretKey: "s",
		PublicURL: "https://cdn.example.com/",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", store.publicURL)

	store, err = NewS3PhotoStore(context.Background(), utils.StorageConfig{
		Bucket: "photos", Region: "eu-central-1", AccessKey: "k", SecretKey: "s",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "https://photos.s3.eu-central-1.amazonaws.com", store.publicURL)
}

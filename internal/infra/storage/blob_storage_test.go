package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"testing"

	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

const testBaseURL = "https://cdn.example.com/images"

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestBlobStorage_UploadAndDelete(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	storage := NewBlobStorage(bucket, testBaseURL+"/", 1<<20, slog.Default())
	data := pngBytes(t)

	url, err := storage.Upload(ctx, "products/abc", "saree.png", data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, testBaseURL+"/products/abc/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	key := strings.TrimPrefix(url, testBaseURL+"/")
	stored, err := bucket.ReadAll(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	attrs, err := bucket.Attributes(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)

	// Same content maps to the same key
	again, err := storage.Upload(ctx, "products/abc", "copy.png", data)
	require.NoError(t, err)
	assert.Equal(t, url, again)

	require.NoError(t, storage.Delete(ctx, url))
	exists, err := bucket.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting twice, or deleting a foreign URL, is not an error
	assert.NoError(t, storage.Delete(ctx, url))
	assert.NoError(t, storage.Delete(ctx, "https://elsewhere.example.com/a.png"))
}

func TestBlobStorage_RejectsNonImages(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	storage := NewBlobStorage(bucket, testBaseURL, 1<<20, slog.Default())

	_, err := storage.Upload(context.Background(), "products/abc", "notes.txt", []byte("just some text"))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNotAnImage)
	assert.Contains(t, err.Error(), "text/plain")
}

func TestBlobStorage_RejectsOversizedImages(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	data := pngBytes(t)
	storage := NewBlobStorage(bucket, testBaseURL, len(data)-1, slog.Default())

	_, err := storage.Upload(context.Background(), "categories/abc", "big.png", data)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrImageTooLarge)
}

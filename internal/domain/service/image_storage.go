package service

import (
	"context"

	"storefront/internal/errors"
)

var (
	// ErrNotAnImage is returned when uploaded content is not a supported image.
	ErrNotAnImage = errors.New("content is not a supported image")
	// ErrImageTooLarge is returned when uploaded content exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds the size limit")
)

// ImageStorage stores catalog images and returns their public URLs.
type ImageStorage interface {
	// Upload stores data under prefix and returns the public URL of the object.
	// Content that is not an image is rejected with ErrNotAnImage.
	Upload(ctx context.Context, prefix string, filename string, data []byte) (string, error)

	// Delete removes the object behind a URL returned by Upload. Unknown URLs are ignored.
	Delete(ctx context.Context, url string) error
}

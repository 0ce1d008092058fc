// Package storage keeps catalog images in a gocloud.dev blob bucket.
package storage

import (
	"context"
	"log/slog"
	"path"
	"slices"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

const (
	defaultBucketURL = "mem://"
	// keyHashLength is the number of checksum hex digits used in object keys.
	keyHashLength = 16
)

//nolint:gochecknoglobals
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/avif"}

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	maxBytes      int
	logger        *slog.Logger
}

// NewBlobStorage wraps an open bucket. Object URLs are publicBaseURL joined with the object key.
func NewBlobStorage(bucket *blob.Bucket, publicBaseURL string, maxBytes int, logger *slog.Logger) service.ImageStorage {
	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxBytes:      maxBytes,
		logger:        logger,
	}
}

// Upload stores an image under prefix, keyed by its content checksum so
// re-uploading the same file reuses the object.
func (s *blobStorage) Upload(ctx context.Context, prefix string, filename string, data []byte) (string, error) {
	if len(data) > s.maxBytes {
		return "", errors.Wrapf(service.ErrImageTooLarge, "%s is larger than %s",
			util.FormatBytes(int64(len(data))), util.FormatBytes(int64(s.maxBytes)))
	}

	mime := mimetype.Detect(data)
	if !slices.Contains(allowedImageTypes, mime.String()) {
		return "", errors.Wrapf(service.ErrNotAnImage, "detected %s", mime.String())
	}

	key := path.Join(prefix, util.Checksum(data)[:keyHashLength]+mime.Extension())
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: mime.String()}); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", key)
	}

	s.logger.Debug("Stored image",
		slog.String("filename", filename),
		slog.String("key", key),
		slog.String("size", util.FormatBytes(int64(len(data)))),
	)

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the object behind url. URLs outside this bucket and missing objects are ignored.
func (s *blobStorage) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.publicBaseURL+"/")
	if !ok || key == "" {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete %s", key)
	}

	return nil
}

// StorageParams holds dependencies for ImageStorage, injected by Fx
type StorageParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewImageStorage opens the configured bucket and closes it on shutdown
func NewImageStorage(params StorageParams) (service.ImageStorage, error) {
	cfg := params.Config.Storage

	bucketURL := cfg.BucketURL
	if bucketURL == "" {
		params.Logger.Warn("Storage bucket not configured, images are kept in memory")
		bucketURL = defaultBucketURL
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	params.Logger.Info("Image storage initialized",
		slog.String("bucket", bucketURL),
		slog.String("max_image_size", util.FormatBytes(int64(cfg.MaxImageBytes))),
	)

	return NewBlobStorage(bucket, cfg.PublicBaseURL, cfg.MaxImageBytes, params.Logger), nil
}

// Module provides the image storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewImageStorage),
)

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// signedURLTTL matches the one-year links the web client embeds in
// item records.
const signedURLTTL = 365 * 24 * time.Hour

// Uploader stores item images in a Cloud Storage bucket and hands out
// signed read URLs. The bucket is private; clients only ever see the
// signed links.
type Uploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
	logger     *zap.Logger
}

// NewUploader wraps an already-resolved bucket handle.
func NewUploader(bucket *gcs.BucketHandle, bucketName string, logger *zap.Logger) *Uploader {
	return &Uploader{bucket: bucket, bucketName: bucketName, logger: logger}
}

// EnsureBucket creates the bucket on first boot. Existing buckets are
// left untouched.
func (u *Uploader) EnsureBucket(ctx context.Context, projectID string) error {
	_, err := u.bucket.Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gcs.ErrBucketNotExist) {
		return fmt.Errorf("check bucket %q: %w", u.bucketName, err)
	}
	if err := u.bucket.Create(ctx, projectID, nil); err != nil {
		return fmt.Errorf("create bucket %q: %w", u.bucketName, err)
	}
	u.logger.Info("created storage bucket", zap.String("bucket", u.bucketName))
	return nil
}

// UploadItemImage writes the file under a name derived from the item
// id and returns a signed URL for it.
func (u *Uploader) UploadItemImage(ctx context.Context, itemID, filename, contentType string, file io.Reader) (string, error) {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	objectName := fmt.Sprintf("%s-%d.%s", itemID, time.Now().UnixMilli(), ext)

	writer := u.bucket.Object(objectName).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return "", fmt.Errorf("upload %q: %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize upload %q: %w", objectName, err)
	}

	url, err := u.bucket.SignedURL(objectName, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(signedURLTTL),
		Scheme:  gcs.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %q: %w", objectName, err)
	}

	u.logger.Info("item image uploaded",
		zap.String("itemId", itemID),
		zap.String("object", objectName))
	return url, nil
}

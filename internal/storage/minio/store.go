// Package minio stores listing uploads in an S3-compatible bucket.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/minio/minio-go/v7"

	"matmarket/internal/domain"
	"matmarket/internal/store"
)

// objectAPI is the slice of the MinIO client the upload store calls. Tests
// supply an in-memory bucket.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// clientAdapter narrows GetObject's *minio.Object result to io.ReadCloser so
// OpenUpload can hand the object stream straight to its caller. The other
// methods are promoted from the embedded client.
type clientAdapter struct{ *minio.Client }

func (a clientAdapter) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := a.Client.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// UploadBucketStore writes uploads as objects named after the upload file.
// Like the directory store, same-named uploads replace each other unless
// unique naming is enabled.
type UploadBucketStore struct {
	api    objectAPI
	bucket string
	unique bool
}

// New creates an UploadBucketStore using a real *minio.Client instance.
func New(ctx context.Context, client *minio.Client, bucket string, unique bool) (*UploadBucketStore, error) {
	return NewWithAPI(ctx, clientAdapter{Client: client}, bucket, unique)
}

// NewWithAPI allows injecting a mockable API (used in tests).
func NewWithAPI(ctx context.Context, api objectAPI, bucket string, unique bool) (*UploadBucketStore, error) {
	s := &UploadBucketStore{api: api, bucket: bucket, unique: unique}
	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}
	return s, nil
}

func (s *UploadBucketStore) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// StoreUploads uploads at most maxCount blobs and returns their object names
// in input order.
func (s *UploadBucketStore) StoreUploads(ctx context.Context, blobs []domain.Blob, maxCount int) ([]string, error) {
	blobs = store.LimitBlobs(blobs, maxCount)
	names := make([]string, 0, len(blobs))
	for _, b := range blobs {
		name, err := store.UploadName(b.Name, s.unique)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	for i, b := range blobs {
		opts := minio.PutObjectOptions{ContentType: mime.TypeByExtension(filepath.Ext(names[i]))}
		if _, err := s.api.PutObject(ctx, s.bucket, names[i], bytes.NewReader(b.Data), int64(len(b.Data)), opts); err != nil {
			return nil, fmt.Errorf("%w: failed to upload object %s: %w", domain.ErrUnwritable, names[i], err)
		}
	}
	return names, nil
}

// OpenUpload streams a stored object.
func (s *UploadBucketStore) OpenUpload(ctx context.Context, name string) (io.ReadCloser, error) {
	clean, err := store.UploadName(name, false)
	if err != nil || clean != name {
		return nil, domain.ErrInvalidFilename
	}
	if _, err := s.api.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", domain.ErrUploadNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}
	obj, err := s.api.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

var _ domain.UploadStore = (*UploadBucketStore)(nil)

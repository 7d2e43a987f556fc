package toolcache

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tooldock/tooldock/internal/contract"
)

// objectPrefix namespaces every cache object inside the bucket.
const objectPrefix = "tooldock/"

// S3Options configures the S3-compatible remote cache client.
type S3Options struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// S3RemoteCache stores cache bundles as objects in an S3-compatible bucket.
type S3RemoteCache struct {
	client *minio.Client
	bucket string
}

var _ contract.RemoteCache = &S3RemoteCache{} // Compile-time check

// NewS3RemoteCache connects to the endpoint and ensures the bucket exists.
func NewS3RemoteCache(ctx context.Context, opts S3Options) (*S3RemoteCache, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client for %s: %w", opts.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", opts.Bucket, err)
		}
	}

	return &S3RemoteCache{client: client, bucket: opts.Bucket}, nil
}

// objectName is the bucket key for a cache key.
func objectName(key string) string {
	return objectPrefix + key + ".tar.gz"
}

// Restore downloads the object stored under key and unpacks it into paths.
// A missing object is a miss, not an error.
func (s *S3RemoteCache) Restore(ctx context.Context, paths []string, key string) (bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to open cache object %s: %w", objectName(key), err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to download cache object %s: %w", objectName(key), err)
	}

	if err := unpackPaths(data, paths); err != nil {
		return false, err
	}
	return true, nil
}

// Save bundles paths and uploads the bundle under key.
func (s *S3RemoteCache) Save(ctx context.Context, paths []string, key string) error {
	data, err := packPaths(paths)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, objectName(key), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/gzip"})
	if err != nil {
		return fmt.Errorf("failed to upload cache object %s: %w", objectName(key), err)
	}
	return nil
}

// Clear removes every cache object under the tooldock prefix.
func (s *S3RemoteCache) Clear(ctx context.Context) error {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: objectPrefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return fmt.Errorf("failed to list cache objects: %w", obj.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove cache object %s: %w", obj.Key, err)
		}
	}
	return nil
}

// Close is a no-op; the S3 client holds no persistent connections.
func (s *S3RemoteCache) Close() error {
	return nil
}

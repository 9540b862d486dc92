package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jipsifred/Vorlesungen/internal/library"
)

// S3Store is the network-backed blob backend, speaking the S3 protocol
// through MinIO. Locators are the object's public (path-style) URL, so
// the viewer can dereference them directly and the storage key is
// recovered by splitting the URL on the bucket segment.
type S3Store struct {
	client *minio.Client
	bucket string
	region string
}

// S3Options carries the connection settings for an S3Store.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// NewS3Store creates an S3-backed blob store. No network traffic occurs
// until the first operation.
func NewS3Store(opts S3Options) (*S3Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Store{
		client: client,
		bucket: opts.Bucket,
		region: opts.Region,
	}, nil
}

func (s *S3Store) locator(key string) string {
	return s.client.EndpointURL().String() + "/" + s.bucket + "/" + key
}

// Put uploads data under key. S3 PUT overwrites by default, so upload
// is idempotent.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	opts := minio.PutObjectOptions{ContentType: "application/pdf"}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return "", fmt.Errorf("uploading object %s: %w", key, err)
	}
	return s.locator(key), nil
}

// Get fetches the blob bytes from storage.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", key, err)
	}
	return data, nil
}

// Remove deletes the given objects. S3 delete is idempotent: removing
// an absent key succeeds. The first transport failure is reported after
// all keys have been attempted.
func (s *S3Store) Remove(ctx context.Context, keys []string) error {
	var firstErr error
	for _, key := range keys {
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("removing object %s: %w", key, err)
			}
		}
	}
	return firstErr
}

// Resolve recovers the storage key from a locator by splitting on the
// bucket segment of the URL.
func (s *S3Store) Resolve(locator string) (string, error) {
	parts := strings.SplitN(locator, "/"+s.bucket+"/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("locator not issued by this store: %s", locator)
	}
	return parts[1], nil
}

// ValidateSetup makes sure the bucket exists before use, creating it
// if needed.
func (s *S3Store) ValidateSetup(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("making bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Compile-time check that S3Store implements library.BlobStore
var _ library.BlobStore = (*S3Store)(nil)

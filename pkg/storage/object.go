package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/bimta/bimta-api/pkg/config"
)

// ObjectStorage stores objects in an S3-compatible bucket and addresses them
// by public URL.
type ObjectStorage struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
}

// NewObjectStorage builds a path-style S3 client for the configured endpoint.
func NewObjectStorage(cfg config.ObjectStorageConfig) (*ObjectStorage, error) {
	awsCfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		DisableSSL:       aws.Bool(cfg.DisableSSL),
		S3ForcePathStyle: aws.Bool(true),
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create object storage session: %w", err)
	}

	return NewObjectStorageWithClient(s3.New(sess), cfg.Bucket, cfg.PublicURL), nil
}

// NewObjectStorageWithClient wraps an existing S3 client.
func NewObjectStorageWithClient(client s3iface.S3API, bucket, publicURL string) *ObjectStorage {
	return &ObjectStorage{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// Upload writes body under key and returns the object's public URL.
func (s *ObjectStorage) Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// Delete removes the object stored under key. S3 deletes are idempotent so a
// missing object is not an error.
func (s *ObjectStorage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the URL an object key is published under.
func (s *ObjectStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)
}

// KeyFromURL recovers the object key from a URL produced by PublicURL.
func (s *ObjectStorage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, fmt.Sprintf("%s/%s/", s.publicURL, s.bucket))
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

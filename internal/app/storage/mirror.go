// Package storage mirrors finished audio files to object storage.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Mirror copies local files to a remote store and removes them again.
type Mirror interface {
	// Put uploads localPath under key and returns the object URL.
	Put(ctx context.Context, localPath, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Enabled() bool
}

// NoopMirror is used when no object store is configured.
type NoopMirror struct{}

func (NoopMirror) Put(context.Context, string, string) (string, error) { return "", nil }

func (NoopMirror) Delete(context.Context, string) error { return nil }

func (NoopMirror) Enabled() bool { return false }

// MinioOptions configures NewMinioMirror.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioMirror implements Mirror using MinIO
type MinioMirror struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewMinioMirror creates a MinIO client and makes sure the bucket exists.
func NewMinioMirror(ctx context.Context, opts MinioOptions) (*MinioMirror, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	m := &MinioMirror{
		client:   client,
		bucket:   opts.Bucket,
		endpoint: opts.Endpoint,
		useSSL:   opts.UseSSL,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return m, nil
}

// Put uploads a finished audio file.
func (m *MinioMirror) Put(ctx context.Context, localPath, key string) (string, error) {
	_, err := m.client.FPutObject(ctx, m.bucket, ObjectKey(key), localPath, minio.PutObjectOptions{
		ContentType: ContentType(localPath),
		UserMetadata: map[string]string{
			"uploaded-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to MinIO: %w", err)
	}
	return m.FileURL(key), nil
}

// Delete removes the mirrored object for key.
func (m *MinioMirror) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, ObjectKey(key), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file from MinIO: %w", err)
	}
	return nil
}

func (m *MinioMirror) Enabled() bool { return true }

// FileURL returns the URL for accessing a mirrored file
func (m *MinioMirror) FileURL(key string) string {
	protocol := "http"
	if m.useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, m.endpoint, m.bucket, ObjectKey(key))
}

// ObjectKey places audio under a fixed prefix in the bucket.
func ObjectKey(name string) string {
	return "audio/" + filepath.Base(name)
}

// ContentType returns the MIME type for an output file.
func ContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

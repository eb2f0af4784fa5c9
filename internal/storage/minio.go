package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const photoBucket = "bootcamp-photos"

// PhotoBucket stores bootcamp photos in a MinIO bucket.
type PhotoBucket struct {
	client   *minio.Client
	bucket   string
	endpoint string
}

// Config holds the MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NewPhotoBucket connects to MinIO and makes sure the photo bucket exists.
func NewPhotoBucket(cfg Config) (*PhotoBucket, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, photoBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, photoBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &PhotoBucket{client: client, bucket: photoBucket, endpoint: cfg.Endpoint}, nil
}

// Put uploads a photo object and returns its public URL.
func (b *PhotoBucket) Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, b.bucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	return fmt.Sprintf("http://%s/%s/%s", b.endpoint, b.bucket, objectName), nil
}

// Remove deletes a photo object.
func (b *PhotoBucket) Remove(ctx context.Context, objectName string) error {
	return b.client.RemoveObject(ctx, b.bucket, objectName, minio.RemoveObjectOptions{})
}

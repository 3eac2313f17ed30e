package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/meetscribe/meetscribe/pkg/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	// UploadURLExpiry is how long the signed URL returned at upload time stays valid
	UploadURLExpiry = 7 * 24 * time.Hour
	// DownloadURLExpiry is how long signed URLs minted on demand stay valid
	DownloadURLExpiry = 24 * time.Hour
)

var objectKeyUnsafe = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadResult describes a stored object
type UploadResult struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
}

// MinIOClient wraps MinIO operations. An empty bucket name means storage is
// not configured: uploads soft-skip with a nil result instead of failing.
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOClient creates a new MinIO client
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	if client.bucket != "" {
		ctx := context.Background()
		if err := client.ensureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize bucket: %w", err)
		}
	}

	return client, nil
}

// ensureBucket creates the bucket when missing
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Configured reports whether a bucket is set up
func (m *MinIOClient) Configured() bool {
	return m.bucket != ""
}

// BuildObjectKey derives a collision-resistant object key from the original
// file name. Characters outside [a-zA-Z0-9.-] are replaced with underscores.
func BuildObjectKey(originalName string) string {
	safe := objectKeyUnsafe.ReplaceAllString(originalName, "_")
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), safe)
}

// Upload stores the content and returns the object key plus a signed URL
// valid for seven days. Returns (nil, nil) when no bucket is configured.
// Transport errors propagate; there are no retries.
func (m *MinIOClient) Upload(ctx context.Context, reader io.Reader, size int64, originalName, contentType string) (*UploadResult, error) {
	if m.bucket == "" {
		return nil, nil
	}

	objectKey := BuildObjectKey(originalName)
	_, err := m.client.PutObject(ctx, m.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	url, err := m.presignedURL(ctx, objectKey, UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		ObjectKey: objectKey,
		URL:       url,
		SizeBytes: size,
	}, nil
}

// DownloadURL mints a signed URL valid for 24 hours for an existing object.
// Returns ("", nil) when no bucket is configured or the object is absent.
func (m *MinIOClient) DownloadURL(ctx context.Context, objectKey string) (string, error) {
	if m.bucket == "" {
		return "", nil
	}

	// Confirm the object exists before signing a URL for it.
	if _, err := m.client.StatObject(ctx, m.bucket, objectKey, minio.StatObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat object: %w", err)
	}

	return m.presignedURL(ctx, objectKey, DownloadURLExpiry)
}

// presignedURL generates a signed GET URL, rewriting the endpoint to the
// public URL when MinIO sits behind a reverse proxy.
func (m *MinIOClient) presignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if m.publicURL != "" {
		urlStr := url.String()
		bucketPos := len(url.Scheme) + 3 + len(url.Host) // "https://" + host
		if bucketPos < len(urlStr) {
			return m.publicURL + urlStr[bucketPos:], nil
		}
	}

	return url.String(), nil
}

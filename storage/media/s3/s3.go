// Package s3 delegates media storage to an S3-compatible object store
// (AWS S3, R2, Backblaze, MinIO). Resize and format negotiation are the
// serving CDN's concern, so the one canonical object URL backs all three
// variant fields of an asset.
package s3

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mechtronglobal/backend/config"
	"github.com/mechtronglobal/backend/storage/media"
	storageutil "github.com/mechtronglobal/backend/storage/util"
)

type s3Client interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var newMinioClient = func(endpoint string, opts *minio.Options) (s3Client, error) {
	return minio.New(endpoint, opts)
}

// StoreImpl uploads media to a remote bucket and issues public URLs for it.
type StoreImpl struct {
	client     s3Client
	bucket     string
	publicBase string
}

func NewS3MediaStore(cfg *config.S3MediaStrategy) (*StoreImpl, error) {
	if cfg == nil || !cfg.Configured() {
		return nil, media.ErrNotConfigured
	}

	region := strings.TrimSpace(cfg.Region)
	if strings.EqualFold(region, "auto") {
		region = ""
	}

	endpointHost := strings.TrimSpace(cfg.Endpoint)
	if endpointHost == "" {
		if region == "" {
			endpointHost = "s3.amazonaws.com"
		} else {
			endpointHost = fmt.Sprintf("s3.%s.amazonaws.com", region)
		}
	} else {
		if parsed, err := url.Parse(endpointHost); err == nil && parsed.Host != "" {
			endpointHost = parsed.Host
		}
	}

	client, err := newMinioClient(endpointHost, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyId, cfg.SecretKeyId, ""),
		Secure:       true,
		Region:       region,
		BucketLookup: minio.BucketLookupAuto,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to verify s3 bucket %q: %w", cfg.Bucket, err)
	}

	if !exists {
		return nil, fmt.Errorf("s3 bucket %q does not exist or is not accessible", cfg.Bucket)
	}

	return &StoreImpl{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: storageutil.NormalizeBaseURL(cfg.PublicUrl),
	}, nil
}

// Save uploads the original bytes under a timestamped key and returns an
// asset whose three variant URLs all alias the canonical object URL. There
// is no local derivation under this strategy.
func (s *StoreImpl) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*media.StoredAsset, error) {
	if file == nil || header == nil {
		return nil, fmt.Errorf("file and header are required")
	}

	key := storageutil.UniqueFilename(header.Filename, header.Header.Get("Content-Type"), time.Now())
	opts := minio.PutObjectOptions{ContentType: header.Header.Get("Content-Type")}

	if _, err := s.client.PutObject(ctx, s.bucket, key, file, header.Size, opts); err != nil {
		return nil, fmt.Errorf("upload to s3 failed: %w", err)
	}

	objectURL := s.publicBase + key

	return &media.StoredAsset{
		Filename:  key,
		Original:  objectURL,
		Optimized: objectURL,
		WebP:      objectURL,
	}, nil
}

// Delete removes the object stored under key.
func (s *StoreImpl) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete from s3 failed: %w", err)
	}

	return nil
}

func (s *StoreImpl) Kind() string {
	return config.MediaStrategyS3
}

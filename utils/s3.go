package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore stores uploaded blobs and returns their public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// R2Store uploads to Cloudflare R2 through the S3 API.
type R2Store struct {
	client *s3.Client
	bucket string
	public string
}

// NewR2Store builds the store from R2_* environment variables.
func NewR2Store(ctx context.Context) (*R2Store, error) {
	accountID := os.Getenv("R2_ACCOUNT_ID")
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	bucket := os.Getenv("R2_BUCKET_NAME")
	if accountID == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME must be set")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"), // required by the SDK, R2 ignores it
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Store{
		client: client,
		bucket: bucket,
		public: os.Getenv("R2_PUBLIC_BASE_URL"),
	}, nil
}

func (s *R2Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if s.public != "" {
		return s.public + "/" + key, nil
	}
	return key, nil
}

// ProofObjectKey builds the storage key for a payment screenshot.
func ProofObjectKey(investmentID uint, filename string) string {
	return fmt.Sprintf("payment_screenshots/%d/%d%s", investmentID, time.Now().UnixNano(), path.Ext(filename))
}

// ABOUTME: S3 presigned URL generation for product attachments
// ABOUTME: Issues short-lived PUT and GET URLs so attachment bytes bypass the API server

package blob

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/calibra/calibra-api/internal/config"
)

// presignExpiry bounds how long an issued URL stays usable.
const presignExpiry = 15 * time.Minute

// Presigner issues presigned URLs for attachment storage.
type Presigner interface {
	// PresignUpload returns a fresh storage key and a presigned PUT URL
	// for uploading an attachment to that key.
	PresignUpload(ctx context.Context) (key string, url string, err error)

	// PresignDownload returns a presigned GET URL for an existing key.
	PresignDownload(ctx context.Context, key string) (url string, err error)
}

// presignAPI is the slice of the SDK presign client we use. s3.PresignClient
// satisfies it; tests substitute a stub.
type presignAPI interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Presigner issues presigned URLs against an S3-compatible bucket.
type S3Presigner struct {
	client presignAPI
	bucket string
	logger *slog.Logger
}

var _ Presigner = (*S3Presigner)(nil)

// NewS3Presigner builds a presigner from storage configuration. A custom
// endpoint makes it work against MinIO and other S3-compatible stores.
func NewS3Presigner(ctx context.Context, cfg config.StorageConfig) (*S3Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading storage credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Presigner{
		client: s3.NewPresignClient(client),
		bucket: cfg.Bucket,
		logger: slog.Default().With("component", "blob"),
	}, nil
}

// newStorageKey generates a collision-free key, sharded by date so bucket
// listings stay navigable.
func newStorageKey() string {
	now := time.Now().UTC()
	return fmt.Sprintf("products/%d/%02d/%s", now.Year(), now.Month(), uuid.NewString())
}

func (p *S3Presigner) PresignUpload(ctx context.Context) (string, string, error) {
	key := newStorageKey()

	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", fmt.Errorf("presigning upload: %w", err)
	}

	p.logger.Debug("presigned attachment upload", "key", key)
	return key, req.URL, nil
}

func (p *S3Presigner) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presigning download: %w", err)
	}

	return req.URL, nil
}

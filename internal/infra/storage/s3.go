package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

// S3AvatarStore uploads public objects to an S3-compatible bucket
// (AWS, MinIO, R2).
type S3AvatarStore struct {
	client    *s3.Client
	bucket    string
	endpoint  string
	publicURL string
}

func NewS3AvatarStore(cfg config.S3Config) *S3AvatarStore {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return &S3AvatarStore{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		endpoint:  cfg.Endpoint,
		publicURL: cfg.PublicURL,
	}
}

func (s *S3AvatarStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *S3AvatarStore) URL(key string) string {
	if s.publicURL != "" {
		return strings.TrimRight(s.publicURL, "/") + "/" + key
	}
	if s.endpoint != "" {
		return strings.TrimRight(s.endpoint, "/") + "/" + s.bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

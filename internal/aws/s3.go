// Package aws wraps the AWS clients used by the recipes.
package aws

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Lllllllleong/functionrecipes/internal/recipe"
)

// PutObjectAPI is the subset of the S3 client the store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds the bucket and credentials for an S3Store.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint, when set, targets an S3-compatible service with path-style addressing.
	Endpoint string
	// PublicDomain is the provider domain used in returned URLs.
	PublicDomain string
}

// S3Store writes text objects to a single bucket.
type S3Store struct {
	client PutObjectAPI
	config S3Config
}

// NewS3Store builds an S3 client from cfg. Static credentials are used when
// both keys are set; otherwise the SDK's default chain applies.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("NewS3Store: bucket cannot be empty")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = awssdk.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3StoreWithClient(client, cfg), nil
}

// NewS3StoreWithClient wraps an existing client.
func NewS3StoreWithClient(client PutObjectAPI, cfg S3Config) *S3Store {
	if cfg.PublicDomain == "" {
		cfg.PublicDomain = "amazonaws.com"
	}
	return &S3Store{client: client, config: cfg}
}

// Put uploads content under key and returns the object's public URL.
func (s *S3Store) Put(ctx context.Context, key, content string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(s.config.Bucket),
		Key:         awssdk.String(key),
		Body:        strings.NewReader(content),
		ContentType: awssdk.String(recipe.ContentTypeText),
	})
	if err != nil {
		slog.Error("Failed to upload object to S3", "bucket", s.config.Bucket, "key", key, "error", err)
		return "", fmt.Errorf("failed to write to S3: %w", err)
	}
	return s.URL(key), nil
}

// URL returns the unsigned URL of key: https://<bucket>.s3.<domain>/<key>.
func (s *S3Store) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s/%s", s.config.Bucket, s.config.PublicDomain, key)
}

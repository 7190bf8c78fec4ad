// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"snake-arena/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Client writes objects to a Cloudflare R2 bucket through its S3 API.
type R2Client struct {
	client     *s3.Client
	bucket     string
	cdnBaseURL string
}

// NewR2Client builds a client for cfg. The endpoint defaults to the account's
// r2.cloudflarestorage.com host.
func NewR2Client(ctx context.Context, cfg config.R2Config) (*R2Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	endpoint := r2Endpoint(cfg)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Client{
		client:     client,
		bucket:     cfg.Bucket,
		cdnBaseURL: cdnBaseURL(cfg, endpoint),
	}, nil
}

// PutObject uploads body under key and returns its public URL.
func (r *R2Client) PutObject(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=60"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to R2: %w", key, err)
	}
	return r.PublicURL(key), nil
}

// PublicURL is where key is served from, preferring the CDN when configured.
func (r *R2Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", r.cdnBaseURL, strings.TrimPrefix(key, "/"))
}

func r2Endpoint(cfg config.R2Config) string {
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/")
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
}

func cdnBaseURL(cfg config.R2Config, endpoint string) string {
	if cfg.CDNBaseURL != "" {
		return strings.TrimRight(cfg.CDNBaseURL, "/")
	}
	return endpoint + "/" + cfg.Bucket
}

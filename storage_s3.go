package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Config holds S3-compatible object storage settings read from the
// environment. The same bucket carries uploaded site images and
// database backups under different prefixes.
type s3Config struct {
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

func loadS3Config() (s3Config, error) {
	cfg := s3Config{
		Bucket:    os.Getenv("S3_BUCKET_NAME"),
		Endpoint:  os.Getenv("S3_ENDPOINT_URL"),
		AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return cfg, fmt.Errorf("S3 storage not configured (S3_BUCKET_NAME, S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY)")
	}
	return cfg, nil
}

func newS3Client(ctx context.Context, cfg s3Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return client, nil
}

// Package archive stores pre-migration snapshots of journal rows in an
// S3-compatible bucket.
package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archive writes one object per key.
type Archive interface {
	Put(ctx context.Context, key string, body []byte) error
}

// Options configures the S3 archive. Empty credentials fall back to the
// default AWS credential chain.
type Options struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// putObjectAPI is the subset of *s3.Client the archive uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archive struct {
	client putObjectAPI
	bucket string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// NewS3 builds an archive for opts.Bucket. A custom BaseEndpoint (MinIO and
// friends) switches to path-style addressing.
func NewS3(ctx context.Context, opts Options) (*S3Archive, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Archive{client: client, bucket: opts.Bucket}, nil
}

func (a *S3Archive) Put(ctx context.Context, key string, body []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", a.bucket, key, err)
	}
	return nil
}

// Noop discards every snapshot. It is used when no bucket is configured.
type Noop struct{}

func (Noop) Put(context.Context, string, []byte) error { return nil }

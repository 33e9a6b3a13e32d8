// Package s3 implements remote.Store over S3-compatible object storage
// using conditional writes: If-None-Match: * for create-if-absent and
// If-Match: <etag> for conditional update. The object ETag is the opaque
// version token. Commit messages have no S3 equivalent and are ignored.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/LorenzoDOrtona/life-logger/internal/remote"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const defaultTimeout = 30 * time.Second

// Config carries the object storage settings. BaseEndpoint supports
// MinIO-style deployments; empty means AWS proper.
type Config struct {
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	BaseEndpoint string
	Timeout      time.Duration // per-request bound; zero means the default
}

// api is the subset of the S3 client the store uses; narrowed for tests.
type api interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store reads and conditionally writes objects in one bucket.
type Store struct {
	client  api
	bucket  string
	timeout time.Duration
}

var _ remote.Store = (*Store)(nil)

// New builds a Store from static credentials; BaseEndpoint makes it work
// against MinIO and other S3-compatible servers.
func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{client: client, bucket: cfg.Bucket, timeout: timeout}, nil
}

// bound caps ctx with the configured per-request timeout.
func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) Get(ctx context.Context, path string) (*remote.Object, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) || apiErrorCode(err) == "NoSuchKey" || apiErrorCode(err) == "NotFound" {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	return &remote.Object{Data: data, Version: aws.ToString(out.ETag)}, nil
}

func (s *Store) Create(ctx context.Context, path string, data []byte, _ string) (string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		if apiErrorCode(err) == "PreconditionFailed" {
			return "", common.ErrAlreadyExists
		}
		return "", fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	return aws.ToString(out.ETag), nil
}

func (s *Store) Update(ctx context.Context, path string, data []byte, expectedVersion string, _ string) (string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:  aws.String(s.bucket),
		Key:     aws.String(path),
		Body:    bytes.NewReader(data),
		IfMatch: aws.String(expectedVersion),
	})
	if err != nil {
		switch apiErrorCode(err) {
		case "PreconditionFailed":
			return "", common.ErrVersionConflict
		case "NoSuchKey", "NotFound":
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	return aws.ToString(out.ETag), nil
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

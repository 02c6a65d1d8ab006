// Package publish uploads seed artifacts to S3-compatible object storage.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultRegion = "us-east-1"

var (
	ErrNoBucket = errors.New("s3 bucket is required")
	ErrNoRunID  = errors.New("run id is required")
	ErrNoName   = errors.New("object name is required")
)

// S3Config selects the bucket and, optionally, a non-AWS endpoint such as MinIO.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// ObjectPutter is the slice of the S3 API the publisher needs. *s3.Client satisfies it.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewClient builds an S3 client from the default AWS chain. Static keys
// override the chain; a custom endpoint switches to path-style addressing.
func NewClient(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access != "" && secret != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(access, secret, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Publisher writes artifacts under <prefix>/<runID>/<name>.
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
}

// New wraps an existing client.
func New(client ObjectPutter, bucket, prefix string) (*Publisher, error) {
	if client == nil {
		return nil, errors.New("s3 client is nil")
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, ErrNoBucket
	}
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
	}, nil
}

// NewS3Publisher builds the client from cfg and wraps it.
func NewS3Publisher(ctx context.Context, cfg S3Config) (*Publisher, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrNoBucket
	}
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(client, cfg.Bucket, cfg.Prefix)
}

// Bucket returns the target bucket.
func (p *Publisher) Bucket() string {
	return p.bucket
}

// Key returns the object key for name within runID.
func (p *Publisher) Key(runID, name string) string {
	normalized := strings.TrimLeft(strings.TrimSpace(name), "/")
	return path.Join(p.prefix, strings.TrimSpace(runID), normalized)
}

// Put uploads body and returns the object key.
func (p *Publisher) Put(ctx context.Context, runID, name string, body []byte) (string, error) {
	if p == nil {
		return "", errors.New("publisher is nil")
	}
	if strings.TrimSpace(runID) == "" {
		return "", ErrNoRunID
	}
	if strings.TrimSpace(name) == "" {
		return "", ErrNoName
	}
	if body == nil {
		body = []byte{}
	}

	key := p.Key(runID, name)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType(name)),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", p.bucket, key, err)
	}
	return key, nil
}

// PutFile uploads the file at localPath under its base name.
func (p *Publisher) PutFile(ctx context.Context, runID, localPath string) (string, error) {
	body, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read artifact: %w", err)
	}
	return p.Put(ctx, runID, filepath.Base(localPath), body)
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	case strings.HasSuffix(name, ".sz"):
		return "application/x-snappy-framed"
	default:
		return "application/octet-stream"
	}
}

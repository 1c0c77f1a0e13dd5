package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/hiccup/internal/errors"
)

// S3API is the part of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3 client built by NewS3Client.
type S3Options struct {
	// Region defaults to AWS_REGION, then us-east-1.
	Region string

	// Endpoint overrides the service endpoint, e.g. for MinIO.
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket instead of
	// bucket.endpoint.
	PathStyle bool

	// Credentials defaults to EnvCredentials.
	Credentials aws.CredentialsProvider
}

// EnvCredentials reads static credentials from AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN on every retrieval.
var EnvCredentials = aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}, nil
})

// NewS3Client builds an S3 client from opts.
func NewS3Client(opts S3Options) *s3.Client {
	region := opts.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	creds := opts.Credentials
	if creds == nil {
		creds = EnvCredentials
	}

	o := s3.Options{
		Region:       region,
		Credentials:  aws.NewCredentialsCache(creds),
		UsePathStyle: opts.PathStyle,
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return s3.New(o)
}

// S3Store uploads pages to an S3 bucket.
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store creates a store for bucket. Every key is prefixed with prefix.
func NewS3Store(client S3API, bucket, prefix string) (*S3Store, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("E081")
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Key returns the object key used for a page key.
func (s *S3Store) Key(key string) string {
	return s.prefix + key
}

// Put uploads body as an object.
func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload of %s failed: %w", s.Key(key), err)
	}
	return nil
}

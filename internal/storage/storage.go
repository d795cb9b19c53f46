// Package storage keeps exported resume documents in an S3-compatible bucket
// (AWS S3, Cloudflare R2, MinIO).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultPrefix is the key prefix used when none is configured.
const DefaultPrefix = "resumes"

// getAttempts is the number of tries for a download before giving up.
const getAttempts = 3

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Config holds bucket connection settings
type Config struct {
	Bucket       string
	Region       string
	Endpoint     string // custom endpoint for R2/MinIO; empty uses AWS
	AccessKey    string // empty uses the default credential chain
	SecretKey    string
	Prefix       string
	UsePathStyle bool
}

// ConfigFromEnv reads S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_ACCESS_KEY,
// S3_SECRET_KEY, S3_PREFIX and S3_PATH_STYLE.
func ConfigFromEnv() Config {
	cfg := Config{
		Bucket:    os.Getenv("S3_BUCKET"),
		Region:    os.Getenv("S3_REGION"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}
	if v, err := strconv.ParseBool(os.Getenv("S3_PATH_STYLE")); err == nil {
		cfg.UsePathStyle = v
	}
	return cfg
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// ObjectAPI is the subset of the S3 client used by DocumentStore
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// DocumentStore uploads and downloads rendered documents
type DocumentStore struct {
	client  ObjectAPI
	bucket  string
	prefix  string
	backoff time.Duration
}

// New builds an S3 client from cfg.
func New(ctx context.Context, cfg Config) (*DocumentStore, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client ObjectAPI, bucket, prefix string) *DocumentStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &DocumentStore{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		backoff: 500 * time.Millisecond,
	}
}

// Key returns the object key for a rendered document:
// <prefix>/<user>/<record>/<template>.<ext>
func (s *DocumentStore) Key(userID, recordID uuid.UUID, template types.TemplateID, ext string) string {
	return path.Join(s.prefix, userID.String(), recordID.String(), string(template)+"."+strings.TrimPrefix(ext, "."))
}

// URI returns the s3:// location of key.
func (s *DocumentStore) URI(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, key)
}

// Put uploads body under key.
func (s *DocumentStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// Get downloads key, retrying transient failures.
func (s *DocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	var lastErr error
	for i := 0; i < getAttempts; i++ {
		data, err := s.get(ctx, key)
		if err == nil {
			return data, nil
		}
		if errors.Is(err, ErrObjectNotFound) {
			return nil, err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.backoff * time.Duration(i+1)):
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", getAttempts, lastErr)
}

func (s *DocumentStore) get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

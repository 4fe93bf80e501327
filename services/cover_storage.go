package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/album-review-backend/config"
)

// CoverStorage keeps cover image files by name.
type CoverStorage interface {
	Put(ctx context.Context, name string, body io.Reader, contentType string) error
	Remove(ctx context.Context, name string) error
	URL(name string) string
}

// NewCoverStorage builds the storage selected by COVER_STORAGE: "local" (the
// default, under COVER_DIR) or "s3" (COVER_BUCKET, optional COVER_PUBLIC_URL).
func NewCoverStorage(ctx context.Context, cfg map[string]string) (CoverStorage, error) {
	switch strings.ToLower(config.GetString(cfg, "COVER_STORAGE", "local")) {
	case "local":
		return NewLocalCoverStorage(config.GetString(cfg, "COVER_DIR", "uploads/covers"), "/covers/")
	case "s3":
		bucket := config.GetString(cfg, "COVER_BUCKET", "")
		if bucket == "" {
			return nil, fmt.Errorf("COVER_BUCKET is required when COVER_STORAGE is s3")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		publicURL := config.GetString(cfg, "COVER_PUBLIC_URL", fmt.Sprintf("https://%s.s3.amazonaws.com/", bucket))
		return NewS3CoverStorage(s3.NewFromConfig(awsCfg), bucket, publicURL), nil
	default:
		return nil, fmt.Errorf("unsupported COVER_STORAGE %q", cfg["COVER_STORAGE"])
	}
}

// LocalCoverStorage writes covers into a directory served under baseURL.
type LocalCoverStorage struct {
	dir     string
	baseURL string
}

func NewLocalCoverStorage(dir, baseURL string) (*LocalCoverStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cover directory: %w", err)
	}
	return &LocalCoverStorage{dir: dir, baseURL: baseURL}, nil
}

// Dir is the directory the files live in.
func (s *LocalCoverStorage) Dir() string {
	return s.dir
}

func (s *LocalCoverStorage) Put(ctx context.Context, name string, body io.Reader, contentType string) error {
	f, err := os.Create(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return fmt.Errorf("create cover file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("write cover file: %w", err)
	}
	return f.Close()
}

func (s *LocalCoverStorage) Remove(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cover file: %w", err)
	}
	return nil
}

func (s *LocalCoverStorage) URL(name string) string {
	return s.baseURL + url.PathEscape(name)
}

// S3API is the part of the S3 client the cover storage uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3CoverStorage keeps covers as objects of one bucket.
type S3CoverStorage struct {
	client    S3API
	bucket    string
	publicURL string
}

func NewS3CoverStorage(client S3API, bucket, publicURL string) *S3CoverStorage {
	if !strings.HasSuffix(publicURL, "/") {
		publicURL += "/"
	}
	return &S3CoverStorage{client: client, bucket: bucket, publicURL: publicURL}
}

func (s *S3CoverStorage) Put(ctx context.Context, name string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put cover object: %w", err)
	}
	return nil
}

func (s *S3CoverStorage) Remove(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("delete cover object: %w", err)
	}
	return nil
}

func (s *S3CoverStorage) URL(name string) string {
	return s.publicURL + url.PathEscape(name)
}

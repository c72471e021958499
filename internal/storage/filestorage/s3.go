package filestorage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"portfolio/internal/storage"
)

// S3Config points the client at any S3 compatible endpoint (AWS, R2, MinIO, Supabase).
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	UsePathStyle    bool
}

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage keeps blobs in object storage buckets.
type S3Storage struct {
	client    objectAPI
	publicURL string
}

func NewS3Storage(cfg S3Config) *S3Storage {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
	})

	return newS3Storage(client, cfg.PublicURL)
}

func newS3Storage(client objectAPI, publicURL string) *S3Storage {
	return &S3Storage{
		client:    client,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3Storage) Save(ctx context.Context, obj Object) (int64, error) {
	const op = "filestorage.S3Storage.Save"

	input := &s3.PutObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
		Body:   obj.Body,
	}
	if obj.ContentType != "" {
		input.ContentType = aws.String(obj.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return obj.Size, nil
}

func (s *S3Storage) Delete(ctx context.Context, bucket, key string) error {
	const op = "filestorage.S3Storage.Delete"

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return storage.ErrFileNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *S3Storage) PublicURL(bucket, key string) string {
	return s.publicURL + "/" + bucket + "/" + key
}

func (s *S3Storage) KeyFromURL(bucket, url string) (string, bool) {
	return keyFromURL(s.publicURL, bucket, url)
}

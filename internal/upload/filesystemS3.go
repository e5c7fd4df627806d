package upload

import (
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FilesystemS3 implements the Filesystem interface for S3-compatible storage
type FilesystemS3 struct {
	client     *s3.Client
	bucketName string
	prefix     string
}

// S3Config holds the configuration for S3 filesystem
type S3Config struct {
	Endpoint        string // S3 endpoint URL (for S3-compatible services)
	Region          string // AWS region
	BucketName      string // S3 bucket name
	Prefix          string // key prefix, without surrounding slashes
	AccessKeyID     string // optional; the default credential chain is used when empty
	SecretAccessKey string
}

// NewFilesystemS3 creates a new S3 filesystem instance with the specified configuration
func NewFilesystemS3(ctx context.Context, cfg S3Config) (Filesystem, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO and other S3-compatible services
		}
	})

	return &FilesystemS3{
		client:     s3Client,
		bucketName: cfg.BucketName,
		prefix:     cfg.Prefix,
	}, nil
}

// Key returns the object key for a path relative to the prefix.
func (fs *FilesystemS3) Key(p string) string {
	if fs.prefix == "" {
		return p
	}
	return path.Join(fs.prefix, p)
}

// Write uploads reader to the bucket under the prefix.
func (fs *FilesystemS3) Write(ctx context.Context, p string, reader io.Reader, size int64) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(fs.bucketName),
		Key:         aws.String(fs.Key(p)),
		Body:        reader,
		ContentType: aws.String("text/csv; charset=utf-8"),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	_, err := fs.client.PutObject(ctx, input)
	return err
}

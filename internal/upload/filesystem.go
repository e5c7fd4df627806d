// Package upload stores the finished CSV file on a local disk, in an S3
// bucket, or in memory.
package upload

import (
	"context"
	"fmt"
	"io"

	"asana2csv/internal/config"
)

const (
	STORAGE_MODE_LOCAL = "local"
	STORAGE_MODE_S3    = "s3"
)

// Filesystem is a destination for output files. Paths are relative to the
// filesystem's base location.
type Filesystem interface {
	Write(ctx context.Context, path string, reader io.Reader, size int64) error
}

// StorageMode returns the storage mode the configured output directory selects.
func StorageMode(cfg *config.Config) string {
	if cfg.IsS3() {
		return STORAGE_MODE_S3
	}
	return STORAGE_MODE_LOCAL
}

// FromConfig creates the filesystem that cfg.OutDir points at.
func FromConfig(ctx context.Context, cfg *config.Config) (Filesystem, error) {
	switch StorageMode(cfg) {
	case STORAGE_MODE_S3:
		bucket, prefix, err := cfg.S3Location()
		if err != nil {
			return nil, err
		}
		s3cfg := S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			BucketName:      bucket,
			Prefix:          prefix,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}
		return NewFilesystemS3(ctx, s3cfg)
	case STORAGE_MODE_LOCAL:
		return NewFilesystemLocal(cfg.OutDir), nil
	default:
		return nil, fmt.Errorf("unsupported output directory: %s", cfg.OutDir)
	}
}

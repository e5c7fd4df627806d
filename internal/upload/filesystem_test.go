package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asana2csv/internal/config"
)

func TestFilesystemLocal_Write(t *testing.T) {
	dir := t.TempDir()
	fs := NewFilesystemLocal(dir)

	err := fs.Write(context.Background(), "out.csv", strings.NewReader("a,b\n"), 4)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestFilesystemLocal_Overwrites(t *testing.T) {
	dir := t.TempDir()
	fs := NewFilesystemLocal(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "out.csv"), []byte("old content that is longer"), 0644))

	require.NoError(t, fs.Write(context.Background(), "out.csv", strings.NewReader("new\n"), 4))

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

func TestFilesystemLocal_MissingDirectoryFails(t *testing.T) {
	fs := NewFilesystemLocal(filepath.Join(t.TempDir(), "does", "not", "exist"))

	err := fs.Write(context.Background(), "out.csv", strings.NewReader("x"), 1)
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilesystemMemory_WriteAndRead(t *testing.T) {
	fs := NewFilesystemMemory()

	require.NoError(t, fs.Write(context.Background(), "out.csv", strings.NewReader("hello"), 5))

	data, err := fs.ReadFile("out.csv")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = fs.ReadFile("other.csv")
	assert.Error(t, err)
}

func TestFilesystemS3_Key(t *testing.T) {
	fs, err := NewFilesystemS3(context.Background(), S3Config{
		Region:          "us-east-1",
		BucketName:      "reports",
		Prefix:          "asana/daily",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	s3fs := fs.(*FilesystemS3)
	assert.Equal(t, "asana/daily/out.csv", s3fs.Key("out.csv"))

	s3fs.prefix = ""
	assert.Equal(t, "out.csv", s3fs.Key("out.csv"))
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.OutDir = t.TempDir()
	assert.Equal(t, STORAGE_MODE_LOCAL, StorageMode(cfg))

	fs, err := FromConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &FilesystemLocal{}, fs)

	cfg.OutDir = "s3://reports/asana"
	cfg.S3AccessKeyID = "key"
	cfg.S3SecretAccessKey = "secret"
	assert.Equal(t, STORAGE_MODE_S3, StorageMode(cfg))

	fs, err = FromConfig(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &FilesystemS3{}, fs)
	s3fs := fs.(*FilesystemS3)
	assert.Equal(t, "reports", s3fs.bucketName)
	assert.Equal(t, "asana/x.csv", s3fs.Key("x.csv"))

	cfg.OutDir = "s3://"
	_, err = FromConfig(context.Background(), cfg)
	assert.Error(t, err)
}

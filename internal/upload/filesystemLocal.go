package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// FilesystemLocal implements the Filesystem interface for local file storage
type FilesystemLocal struct {
	basePath string
}

// NewFilesystemLocal creates a new local filesystem instance with the specified base path
func NewFilesystemLocal(basePath string) Filesystem {
	return &FilesystemLocal{
		basePath: basePath,
	}
}

// Write creates (or truncates) the file at path relative to the base path and
// copies reader into it. Missing directories are not created.
func (fs *FilesystemLocal) Write(ctx context.Context, path string, reader io.Reader, size int64) error {
	fullPath := filepath.Join(fs.basePath, path)

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

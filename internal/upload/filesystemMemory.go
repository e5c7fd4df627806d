package upload

import (
	"context"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// FilesystemMemory implements the Filesystem interface for in-memory file storage using go-billy's memfs
type FilesystemMemory struct {
	billy.Filesystem
}

// NewFilesystemMemory creates a new in-memory filesystem instance
func NewFilesystemMemory() *FilesystemMemory {
	return &FilesystemMemory{
		Filesystem: memfs.New(),
	}
}

// Write streams data from reader to a file at the specified path
func (fs *FilesystemMemory) Write(ctx context.Context, path string, reader io.Reader, size int64) error {
	file, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, reader)
	return err
}

// ReadFile returns the content of the file at path.
func (fs *FilesystemMemory) ReadFile(path string) ([]byte, error) {
	return util.ReadFile(fs.Filesystem, path)
}

package fs

import (
	"io"
	"os"
)

// FS abstracts the filesystem operations used by the repository engine.
// Paths are OS paths; implementations never interpret them relative to a
// process-wide working directory other than the usual OS rules.
type FS interface {
	Open(path string) (io.ReadCloser, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	MkdirTemp(dir, pattern string) (string, error)
	CreateTemp(dir, pattern string) (TempFile, error)
	Remove(path string) error
	RemoveAll(path string) error
	Rename(oldPath, newPath string) error
	Chmod(path string, mode os.FileMode) error
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	IsNotExist(err error) bool
	Exists(path string) bool
	IsDir(path string) bool
}

// TempFile is a writable file created by FS.CreateTemp.
type TempFile interface {
	io.WriteCloser
	Name() string
	Sync() error
}

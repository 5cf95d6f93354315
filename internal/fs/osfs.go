package fs

import (
	"io"
	"os"
)

// OSFS is the production implementation of FS. Every call goes through the
// package hooks so tests can inject failures.
type OSFS struct{}

func NewOSFS() *OSFS {
	return &OSFS{}
}

func (r *OSFS) Open(path string) (io.ReadCloser, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *OSFS) Stat(path string) (os.FileInfo, error) {
	return stat(path)
}

func (r *OSFS) ReadFile(path string) ([]byte, error) {
	return readFile(path)
}

func (r *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return readDir(path)
}

func (r *OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return writeFile(path, data, perm)
}

func (r *OSFS) MkdirAll(path string, perm os.FileMode) error {
	return mkdirAll(path, perm)
}

func (r *OSFS) MkdirTemp(dir, pattern string) (string, error) {
	return mkdirTemp(dir, pattern)
}

func (r *OSFS) Remove(path string) error {
	return remove(path)
}

func (r *OSFS) RemoveAll(path string) error {
	return removeAll(path)
}

func (r *OSFS) Rename(oldPath, newPath string) error {
	return rename(oldPath, newPath)
}

func (r *OSFS) Chmod(path string, mode os.FileMode) error {
	return chmod(path, mode)
}

func (r *OSFS) CreateTemp(dir, pattern string) (TempFile, error) {
	f, err := createTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *OSFS) IsNotExist(err error) bool {
	return isNotExist(err)
}

func (r *OSFS) IsDir(path string) bool {
	return IsDir(path)
}

func (r *OSFS) Exists(path string) bool {
	return exists(path)
}

package mount

import (
	"errors"
	"os"
	"syscall"

	"github.com/zeebo/xxh3"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/repo"
)

// View answers the questions the mounted tree asks about a repository.
// Every call reads the repository afresh so the mount follows new commits.
type View struct {
	Repo *repo.Repository
}

// Head returns the HEAD id followed by a newline.
func (v *View) Head() ([]byte, error) {
	id, err := v.Repo.Meta.ReadHead()
	if err != nil {
		return nil, err
	}
	return []byte(id + "\n"), nil
}

func (v *View) Branches() ([]string, error) {
	branches, err := v.Repo.Meta.ListBranches()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}
	return names, nil
}

// Branch returns the id name points at followed by a newline.
func (v *View) Branch(name string) ([]byte, error) {
	id, err := v.Repo.Meta.ReadBranch(name)
	if err != nil {
		return nil, err
	}
	return []byte(id + "\n"), nil
}

func (v *View) Commits() ([]string, error) {
	return v.Repo.Meta.ListCommits()
}

// Record returns the stored commit record of id as it is on disk.
func (v *View) Record(id string) ([]byte, error) {
	if !v.Repo.Meta.CommitExists(id) {
		return nil, errs.ErrCommitNotFound
	}
	path := v.Repo.Meta.CommitPath(id)
	data, err := v.Repo.FS.ReadFile(path)
	if err != nil {
		return nil, errs.FS("read", path, err)
	}
	return data, nil
}

// Snapshot returns the snapshot directory of id.
func (v *View) Snapshot(id string) (string, error) {
	if !v.Repo.Meta.CommitExists(id) {
		return "", errs.ErrCommitNotFound
	}
	return v.Repo.Meta.SnapshotPath(id), nil
}

// errno maps engine errors onto FUSE status codes.
func errno(err error) syscall.Errno {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errs.ErrNoCommit),
		errors.Is(err, errs.ErrBranchNotFound),
		errors.Is(err, errs.ErrCommitNotFound),
		errors.Is(err, os.ErrNotExist):
		return syscall.ENOENT
	}
	return syscall.EIO
}

// ino derives a stable inode number from a path inside the mount.
func ino(path string) uint64 {
	return xxh3.HashString(path)
}

// window returns the part of data a read of len(dest) bytes at off sees.
func window(data []byte, size int, off int64) []byte {
	if off < 0 || off >= int64(len(data)) {
		return nil
	}
	end := off + int64(size)
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return data[off:end]
}

// Package errs defines the error kinds reported by the wit engine.
//
// Every kind is a sentinel matched with errors.Is. Operating-system failures
// are wrapped in *FSError so that callers can test for ErrFilesystem while the
// underlying cause (os.ErrNotExist, os.ErrPermission, ...) stays reachable.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryNotFound = errors.New("no wit repository found (run \"wit init\")")
	ErrPathNotFound       = errors.New("no such file or directory")
	ErrBranchExists       = errors.New("branch already exists")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrInvalidBranchName  = errors.New("invalid branch name")
	ErrCommitNotFound     = errors.New("commit not found")
	ErrNoCommit           = errors.New("no commit found")
	ErrNoCommonAncestor   = errors.New("no common ancestor")
	ErrMergeConflict      = errors.New("merge conflict")
	ErrUncommittedChanges = errors.New("uncommitted changes")
	ErrFilesystem         = errors.New("filesystem error")
	ErrNoChange           = errors.New("no changes since the last commit")
	ErrAborted            = errors.New("aborted by user")
)

// FSError records a failed filesystem operation.
type FSError struct {
	Op   string
	Path string
	Err  error
}

func (e *FSError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FSError) Unwrap() error { return e.Err }

// Is reports ErrFilesystem as matching so callers need not know the concrete type.
func (e *FSError) Is(target error) bool { return target == ErrFilesystem }

// FS wraps err as a filesystem failure of op on path. A nil err stays nil,
// and errors that already carry a filesystem kind are returned unchanged.
func FS(op, path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrFilesystem) {
		return err
	}
	return &FSError{Op: op, Path: path, Err: err}
}

// Conflict describes a positional merge conflict.
type Conflict struct {
	Path string
	Line int
}

func (c *Conflict) Error() string {
	if c.Path == "" {
		return fmt.Sprintf("same line changed on both sides at line %d", c.Line+1)
	}
	return fmt.Sprintf("%s: same line changed on both sides at line %d", c.Path, c.Line+1)
}

func (c *Conflict) Is(target error) bool { return target == ErrMergeConflict }

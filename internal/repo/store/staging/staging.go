// Package staging manages the staging area: the mutable mirror tree that
// becomes the next commit.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/prompt"
	"github.com/keshon/wit/internal/repo/store/tree"
)

// StagingContext ties the working tree to its staging directory.
type StagingContext struct {
	WorkTree string
	Dir      string
	Tree     *tree.Engine
	FS       fs.FS
	Confirm  prompt.Confirmer
}

func NewStagingContext(workTree, dir string, engine *tree.Engine, confirm prompt.Confirmer) *StagingContext {
	return &StagingContext{WorkTree: workTree, Dir: dir, Tree: engine, FS: engine.FS, Confirm: confirm}
}

// Status holds the three change sets reported by status.
type Status struct {
	Staged    []string
	Unstaged  []string
	Untracked []string
}

// Clean reports whether nothing is staged and nothing is modified.
func (s Status) Clean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0
}

// clean validates a path relative to the working tree root.
func clean(rel string) (string, error) {
	rel = filepath.Clean(rel)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside the repository", errs.ErrPathNotFound, rel)
	}
	first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	if first == config.RepoDir {
		return "", fmt.Errorf("%w: %s is repository metadata", errs.ErrPathNotFound, rel)
	}
	return rel, nil
}

// Add copies rel from the working tree into the staging area. Overwriting an
// already staged file asks for confirmation; on refusal nothing changes and
// Add returns false. Directories are merged in recursively.
func (sc *StagingContext) Add(rel string) (bool, error) {
	rel, err := clean(rel)
	if err != nil {
		return false, err
	}
	src := filepath.Join(sc.WorkTree, rel)
	dst := filepath.Join(sc.Dir, rel)

	info, err := sc.FS.Stat(src)
	if err != nil {
		if sc.FS.IsNotExist(err) {
			return false, fmt.Errorf("%w: %s", errs.ErrPathNotFound, rel)
		}
		return false, errs.FS("stat", src, err)
	}

	if !info.IsDir() {
		if existing, err := sc.FS.Stat(dst); err == nil && !existing.IsDir() {
			ok, err := sc.ask(fmt.Sprintf("%s is already staged. Overwrite it?", filepath.ToSlash(rel)))
			if err != nil || !ok {
				return false, err
			}
		}
		if err := sc.FS.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return false, errs.FS("mkdir", filepath.Dir(dst), err)
		}
	}

	if err := sc.Tree.Copy(src, dst, nil); err != nil {
		return false, fmt.Errorf("stage %s: %w", rel, err)
	}
	log.Debug().Str("path", rel).Bool("dir", info.IsDir()).Msg("staged")
	return true, nil
}

// Remove deletes rel from the staging area only. Removing a directory asks
// for confirmation; refusal returns errs.ErrAborted.
func (sc *StagingContext) Remove(rel string) error {
	rel, err := clean(rel)
	if err != nil {
		return err
	}
	dst := filepath.Join(sc.Dir, rel)

	info, err := sc.FS.Stat(dst)
	if err != nil {
		if sc.FS.IsNotExist(err) {
			return fmt.Errorf("%w: %s is not staged", errs.ErrPathNotFound, rel)
		}
		return errs.FS("stat", dst, err)
	}

	if !info.IsDir() {
		if err := sc.FS.Remove(dst); err != nil {
			return errs.FS("remove", dst, err)
		}
		return nil
	}

	ok, err := sc.ask(fmt.Sprintf("Remove directory %s from the staging area?", filepath.ToSlash(rel)))
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrAborted
	}
	if rel == "." {
		return sc.clear()
	}
	if err := sc.FS.RemoveAll(dst); err != nil {
		return errs.FS("remove", dst, err)
	}
	return nil
}

func (sc *StagingContext) clear() error {
	entries, err := sc.FS.ReadDir(sc.Dir)
	if err != nil {
		return errs.FS("readdir", sc.Dir, err)
	}
	for _, e := range entries {
		p := filepath.Join(sc.Dir, e.Name())
		if err := sc.FS.RemoveAll(p); err != nil {
			return errs.FS("remove", p, err)
		}
	}
	return nil
}

func (sc *StagingContext) ask(question string) (bool, error) {
	if sc.Confirm == nil {
		return false, nil
	}
	ok, err := sc.Confirm.Confirm(question)
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// Status compares the staging area against headSnapshot and the working tree.
func (sc *StagingContext) Status(headSnapshot string) (Status, error) {
	var st Status
	var err error
	if st.Staged, err = sc.Tree.DiffPresence(headSnapshot, sc.Dir); err != nil {
		return Status{}, fmt.Errorf("staged changes: %w", err)
	}
	if st.Unstaged, err = sc.Tree.DiffContent(sc.Dir, sc.WorkTree); err != nil {
		return Status{}, fmt.Errorf("unstaged changes: %w", err)
	}
	if st.Untracked, err = sc.Tree.DiffPresence(sc.Dir, sc.WorkTree); err != nil {
		return Status{}, fmt.Errorf("untracked files: %w", err)
	}
	return st, nil
}

// Replace swaps the staging area for a copy of src. The copy is built in a
// temp directory next to the staging area and renamed into place.
func (sc *StagingContext) Replace(src string) error {
	parent := filepath.Dir(sc.Dir)
	tmp, err := sc.FS.MkdirTemp(parent, ".staging-*")
	if err != nil {
		return errs.FS("mkdirtemp", parent, err)
	}
	if err := sc.Tree.Copy(src, tmp, nil); err != nil {
		sc.FS.RemoveAll(tmp)
		return err
	}
	if err := sc.FS.Chmod(tmp, 0o755); err != nil {
		sc.FS.RemoveAll(tmp)
		return errs.FS("chmod", tmp, err)
	}

	old := tmp + ".old"
	if err := sc.FS.Rename(sc.Dir, old); err != nil && !sc.FS.IsNotExist(err) {
		sc.FS.RemoveAll(tmp)
		return errs.FS("rename", sc.Dir, err)
	}
	if err := sc.FS.Rename(tmp, sc.Dir); err != nil {
		sc.FS.Rename(old, sc.Dir)
		sc.FS.RemoveAll(tmp)
		return errs.FS("rename", tmp, err)
	}
	if err := sc.FS.RemoveAll(old); err != nil {
		return errs.FS("remove", old, err)
	}
	return nil
}

// CopyIn copies rel from another tree root (a snapshot) into the staging
// area, overwriting whatever is staged there.
func (sc *StagingContext) CopyIn(root, rel string) error {
	dst := filepath.Join(sc.Dir, rel)
	if err := sc.FS.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errs.FS("mkdir", filepath.Dir(dst), err)
	}
	return sc.Tree.Copy(filepath.Join(root, rel), dst, nil)
}

// Write stores data at rel inside the staging area, creating parent directories.
func (sc *StagingContext) Write(rel string, data []byte, perm os.FileMode) error {
	dst := filepath.Join(sc.Dir, rel)
	if err := sc.FS.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errs.FS("mkdir", filepath.Dir(dst), err)
	}
	if err := sc.FS.WriteFile(dst, data, perm); err != nil {
		return errs.FS("write", dst, err)
	}
	return nil
}

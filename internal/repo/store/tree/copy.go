package tree

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/keshon/wit/internal/errs"
)

// Copy copies src recursively onto dst. Existing files are overwritten,
// file/directory kind mismatches at the destination are replaced, and
// permission bits are carried over. Any relative path equal to or beneath an
// entry of skip is left alone on both sides.
func (e *Engine) Copy(src, dst string, skip []string) error {
	info, err := e.FS.Stat(src)
	if err != nil {
		return errs.FS("stat", src, err)
	}
	if !info.IsDir() {
		return e.copyFile(src, dst, info)
	}
	return e.copyDir(src, dst, "", true, info, skip)
}

func (e *Engine) copyDir(src, dst, rel string, top bool, info os.FileInfo, skip []string) error {
	if err := e.ensureDir(dst, info.Mode().Perm()); err != nil {
		return err
	}
	entries, _, err := e.list(src, top)
	if err != nil {
		return err
	}
	for _, en := range entries {
		r := path.Join(rel, en.name)
		if Skipped(r, skip) {
			continue
		}
		from, to := filepath.Join(src, en.name), filepath.Join(dst, en.name)
		if en.isDir() {
			err = e.copyDir(from, to, r, false, en.info, skip)
		} else {
			err = e.copyFile(from, to, en.info)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) ensureDir(dst string, perm os.FileMode) error {
	if fi, err := e.FS.Stat(dst); err == nil {
		if fi.IsDir() {
			return nil
		}
		if err := e.FS.Remove(dst); err != nil {
			return errs.FS("remove", dst, err)
		}
	}
	if err := e.FS.MkdirAll(dst, perm|0o700); err != nil {
		return errs.FS("mkdir", dst, err)
	}
	if err := e.FS.Chmod(dst, perm|0o700); err != nil {
		return errs.FS("chmod", dst, err)
	}
	return nil
}

func (e *Engine) copyFile(src, dst string, info os.FileInfo) error {
	if fi, err := e.FS.Stat(dst); err == nil {
		switch {
		case fi.IsDir():
			if err := e.FS.RemoveAll(dst); err != nil {
				return errs.FS("remove", dst, err)
			}
		case fi.Mode().Perm()&0o200 == 0:
			if err := e.FS.Chmod(dst, fi.Mode().Perm()|0o200); err != nil {
				return errs.FS("chmod", dst, err)
			}
		}
	}
	data, err := e.FS.ReadFile(src)
	if err != nil {
		return errs.FS("read", src, err)
	}
	perm := info.Mode().Perm()
	if err := e.FS.WriteFile(dst, data, perm); err != nil {
		return errs.FS("write", dst, err)
	}
	if err := e.FS.Chmod(dst, perm); err != nil {
		return errs.FS("chmod", dst, err)
	}
	return nil
}

// Skipped reports whether rel equals or lies beneath one of skip.
func Skipped(rel string, skip []string) bool {
	for _, s := range skip {
		s = strings.TrimSuffix(filepath.ToSlash(s), "/")
		if rel == s || strings.HasPrefix(rel, s+"/") {
			return true
		}
	}
	return false
}

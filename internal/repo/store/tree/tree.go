// Package tree compares and copies directory trees.
//
// Results are relative slash-separated paths. Entries are visited in name
// order, each level's own entries before its subdirectories, so output is
// deterministic.
package tree

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/zeebo/xxh3"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
)

// Engine runs tree operations over an FS. Names in Ignore are skipped at the
// top level of every tree it reads.
type Engine struct {
	FS     fs.FS
	Ignore []string
}

func New(fsys fs.FS, ignore ...string) *Engine {
	if fsys == nil {
		fsys = fs.NewOSFS()
	}
	return &Engine{FS: fsys, Ignore: ignore}
}

type entry struct {
	name string
	info os.FileInfo
}

func (e entry) isDir() bool { return e.info.IsDir() }

// list returns the entries of dir sorted by name. Symlinks are resolved.
func (e *Engine) list(dir string, top bool) ([]entry, map[string]entry, error) {
	des, err := e.FS.ReadDir(dir)
	if err != nil {
		return nil, nil, errs.FS("readdir", dir, err)
	}
	out := make([]entry, 0, len(des))
	byName := make(map[string]entry, len(des))
	for _, de := range des {
		if top && e.ignored(de.Name()) {
			continue
		}
		var info os.FileInfo
		if de.Type()&os.ModeSymlink != 0 {
			info, err = e.FS.Stat(filepath.Join(dir, de.Name()))
		} else {
			info, err = de.Info()
		}
		if err != nil {
			return nil, nil, errs.FS("stat", filepath.Join(dir, de.Name()), err)
		}
		en := entry{name: de.Name(), info: info}
		out = append(out, en)
		byName[en.name] = en
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, byName, nil
}

func (e *Engine) ignored(name string) bool {
	for _, ig := range e.Ignore {
		if name == ig {
			return true
		}
	}
	return false
}

// DiffPresence returns the paths present in b but not in a. A missing
// directory is reported once, not file by file.
func (e *Engine) DiffPresence(a, b string) ([]string, error) {
	var out []string
	err := e.diff(a, b, "", true, false, &out)
	return out, err
}

// DiffContent returns the paths present in both a and b whose content
// differs. A name that is a file on one side and a directory on the other is
// reported as changed.
func (e *Engine) DiffContent(a, b string) ([]string, error) {
	var out []string
	err := e.diff(a, b, "", true, true, &out)
	return out, err
}

func (e *Engine) diff(a, b, rel string, top, byContent bool, out *[]string) error {
	_, inA, err := e.list(a, top)
	if err != nil {
		return err
	}
	listB, _, err := e.list(b, top)
	if err != nil {
		return err
	}

	var common []string
	for _, eb := range listB {
		ea, ok := inA[eb.name]
		name := path.Join(rel, eb.name)
		switch {
		case !ok:
			if !byContent {
				*out = append(*out, name)
			}
		case ea.isDir() && eb.isDir():
			common = append(common, eb.name)
		case ea.isDir() != eb.isDir():
			if byContent {
				*out = append(*out, name)
			}
		case byContent:
			same, err := e.sameFile(filepath.Join(a, eb.name), ea.info, filepath.Join(b, eb.name), eb.info)
			if err != nil {
				return err
			}
			if !same {
				*out = append(*out, name)
			}
		}
	}

	for _, name := range common {
		if err := e.diff(filepath.Join(a, name), filepath.Join(b, name), path.Join(rel, name), false, byContent, out); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) sameFile(pa string, ia os.FileInfo, pb string, ib os.FileInfo) (bool, error) {
	if ia.Size() != ib.Size() {
		return false, nil
	}
	ha, err := e.Digest(pa)
	if err != nil {
		return false, err
	}
	hb, err := e.Digest(pb)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// Digest returns the xxh3-128 digest of a file's content.
func (e *Engine) Digest(p string) (xxh3.Uint128, error) {
	f, err := e.FS.Open(p)
	if err != nil {
		return xxh3.Uint128{}, errs.FS("open", p, err)
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return xxh3.Uint128{}, errs.FS("read", p, err)
	}
	return h.Sum128(), nil
}

// Equal reports whether a and b hold the same names, kinds and bytes.
func (e *Engine) Equal(a, b string) (bool, error) {
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		extra, err := e.DiffPresence(pair[0], pair[1])
		if err != nil {
			return false, err
		}
		if len(extra) > 0 {
			return false, nil
		}
	}
	changed, err := e.DiffContent(a, b)
	if err != nil {
		return false, err
	}
	return len(changed) == 0, nil
}

// WalkFunc is called for every entry below the walk root except the root itself.
type WalkFunc func(rel string, info os.FileInfo) error

// Walk visits root in the same deterministic order as the diff operations.
func (e *Engine) Walk(root string, fn WalkFunc) error {
	return e.walk(root, "", true, fn)
}

func (e *Engine) walk(dir, rel string, top bool, fn WalkFunc) error {
	entries, _, err := e.list(dir, top)
	if err != nil {
		return err
	}
	var dirs []entry
	for _, en := range entries {
		if err := fn(path.Join(rel, en.name), en.info); err != nil {
			return err
		}
		if en.isDir() {
			dirs = append(dirs, en)
		}
	}
	for _, d := range dirs {
		if err := e.walk(filepath.Join(dir, d.name), path.Join(rel, d.name), false, fn); err != nil {
			return err
		}
	}
	return nil
}

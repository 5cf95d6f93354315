package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MemoryFS is a pure in-memory filesystem for tests.
type MemoryFS struct {
	files map[string]*memFile
	dirs  map[string]os.FileMode
	seq   int
}

type memFile struct {
	data []byte
	mode os.FileMode
}

func NewMemoryFS() *MemoryFS {
	f := &MemoryFS{
		files: make(map[string]*memFile),
		dirs:  make(map[string]os.FileMode),
	}
	f.dirs["/"] = 0o755
	f.dirs["."] = 0o755
	return f
}

// normalize paths
func clean(p string) string {
	if p == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(p))
}

func isRoot(p string) bool { return p == "/" || p == "." }

func (f *MemoryFS) ensureDirExists(p string) error {
	if _, ok := f.dirs[clean(p)]; !ok {
		return fs.ErrNotExist
	}
	return nil
}

// under reports whether p is equal to or beneath dir.
func under(p, dir string) bool {
	if p == dir {
		return true
	}
	if dir == "/" {
		return strings.HasPrefix(p, "/")
	}
	return strings.HasPrefix(p, dir+"/")
}

func pathErr(op, p string, err error) error {
	return &fs.PathError{Op: op, Path: p, Err: err}
}

func (f *MemoryFS) Open(p string) (io.ReadCloser, error) {
	file, ok := f.files[clean(p)]
	if !ok {
		return nil, pathErr("open", p, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), file.data...))), nil
}

func (f *MemoryFS) ReadFile(p string) ([]byte, error) {
	file, ok := f.files[clean(p)]
	if !ok {
		return nil, pathErr("read", p, fs.ErrNotExist)
	}
	return append([]byte(nil), file.data...), nil
}

func (f *MemoryFS) WriteFile(p string, data []byte, perm os.FileMode) error {
	p = clean(p)
	if err := f.ensureDirExists(path.Dir(p)); err != nil {
		return pathErr("write", p, err)
	}
	if _, ok := f.dirs[p]; ok {
		return pathErr("write", p, fmt.Errorf("is a directory"))
	}
	if existing, ok := f.files[p]; ok {
		existing.data = append([]byte(nil), data...)
		return nil
	}
	f.files[p] = &memFile{data: append([]byte(nil), data...), mode: perm.Perm()}
	return nil
}

func (f *MemoryFS) MkdirAll(p string, perm os.FileMode) error {
	p = clean(p)
	var chain []string
	for cur := p; !isRoot(cur); cur = path.Dir(cur) {
		if _, ok := f.files[cur]; ok {
			return pathErr("mkdir", cur, fmt.Errorf("not a directory"))
		}
		chain = append(chain, cur)
	}
	for _, dir := range chain {
		if _, ok := f.dirs[dir]; !ok {
			f.dirs[dir] = perm.Perm()
		}
	}
	return nil
}

func (f *MemoryFS) nextName(dir, pattern string) string {
	f.seq++
	name := strings.Replace(pattern, "*", fmt.Sprintf("%d", f.seq), 1)
	if !strings.Contains(pattern, "*") {
		name = fmt.Sprintf("%s%d", pattern, f.seq)
	}
	return path.Join(clean(dir), name)
}

func (f *MemoryFS) MkdirTemp(dir, pattern string) (string, error) {
	if err := f.ensureDirExists(dir); err != nil {
		return "", pathErr("mkdirtemp", dir, err)
	}
	name := f.nextName(dir, pattern)
	f.dirs[name] = 0o700
	return name, nil
}

func (f *MemoryFS) CreateTemp(dir, pattern string) (TempFile, error) {
	if err := f.ensureDirExists(dir); err != nil {
		return nil, pathErr("createtemp", dir, err)
	}
	name := f.nextName(dir, pattern)
	f.files[name] = &memFile{mode: 0o600}
	return &memTempFile{fs: f, name: name}, nil
}

type memTempFile struct {
	fs   *MemoryFS
	name string
	buf  bytes.Buffer
}

func (m *memTempFile) Write(p []byte) (int, error) { return m.buf.Write(p) }
func (m *memTempFile) Name() string                { return m.name }
func (m *memTempFile) Sync() error                 { return m.flush() }
func (m *memTempFile) Close() error                { return m.flush() }

func (m *memTempFile) flush() error {
	file, ok := m.fs.files[m.name]
	if !ok {
		return pathErr("sync", m.name, fs.ErrNotExist)
	}
	file.data = append([]byte(nil), m.buf.Bytes()...)
	return nil
}

func (f *MemoryFS) Remove(p string) error {
	p = clean(p)
	if _, ok := f.files[p]; ok {
		delete(f.files, p)
		return nil
	}
	if _, ok := f.dirs[p]; ok {
		for other := range f.dirs {
			if other != p && under(other, p) {
				return pathErr("remove", p, fmt.Errorf("directory not empty"))
			}
		}
		for other := range f.files {
			if under(other, p) {
				return pathErr("remove", p, fmt.Errorf("directory not empty"))
			}
		}
		delete(f.dirs, p)
		return nil
	}
	return pathErr("remove", p, fs.ErrNotExist)
}

func (f *MemoryFS) RemoveAll(p string) error {
	p = clean(p)
	for name := range f.files {
		if under(name, p) {
			delete(f.files, name)
		}
	}
	for name := range f.dirs {
		if under(name, p) && !isRoot(name) {
			delete(f.dirs, name)
		}
	}
	return nil
}

// Rename moves a file or a whole directory tree. An existing file target is
// replaced; an existing directory target must be empty.
func (f *MemoryFS) Rename(oldp, newp string) error {
	oldp, newp = clean(oldp), clean(newp)
	if err := f.ensureDirExists(path.Dir(newp)); err != nil {
		return pathErr("rename", newp, err)
	}

	if file, ok := f.files[oldp]; ok {
		if _, isDir := f.dirs[newp]; isDir {
			return pathErr("rename", newp, fmt.Errorf("is a directory"))
		}
		delete(f.files, oldp)
		f.files[newp] = file
		return nil
	}

	if _, ok := f.dirs[oldp]; !ok {
		return pathErr("rename", oldp, fs.ErrNotExist)
	}
	if under(newp, oldp) {
		return pathErr("rename", newp, fmt.Errorf("invalid argument"))
	}
	if _, ok := f.files[newp]; ok {
		return pathErr("rename", newp, fmt.Errorf("not a directory"))
	}
	if _, ok := f.dirs[newp]; ok {
		if err := f.Remove(newp); err != nil {
			return pathErr("rename", newp, fmt.Errorf("directory not empty"))
		}
	}

	for name, file := range f.files {
		if under(name, oldp) {
			delete(f.files, name)
			f.files[newp+strings.TrimPrefix(name, oldp)] = file
		}
	}
	for name, mode := range f.dirs {
		if under(name, oldp) {
			delete(f.dirs, name)
			f.dirs[newp+strings.TrimPrefix(name, oldp)] = mode
		}
	}
	return nil
}

func (f *MemoryFS) Chmod(p string, mode os.FileMode) error {
	p = clean(p)
	if file, ok := f.files[p]; ok {
		file.mode = mode.Perm()
		return nil
	}
	if _, ok := f.dirs[p]; ok {
		f.dirs[p] = mode.Perm()
		return nil
	}
	return pathErr("chmod", p, fs.ErrNotExist)
}

func (f *MemoryFS) Stat(p string) (os.FileInfo, error) {
	p = clean(p)
	if file, ok := f.files[p]; ok {
		return &fakeInfo{name: path.Base(p), size: int64(len(file.data)), mode: file.mode}, nil
	}
	if mode, ok := f.dirs[p]; ok {
		return &fakeInfo{name: path.Base(p), mode: mode | fs.ModeDir}, nil
	}
	return nil, pathErr("stat", p, fs.ErrNotExist)
}

// ReadDir returns the direct children of p sorted by name, like os.ReadDir.
func (f *MemoryFS) ReadDir(p string) ([]os.DirEntry, error) {
	p = clean(p)
	if _, ok := f.dirs[p]; !ok {
		return nil, pathErr("readdir", p, fs.ErrNotExist)
	}

	var out []os.DirEntry
	for name, mode := range f.dirs {
		if !isRoot(name) && name != p && path.Dir(name) == p {
			out = append(out, fakeDirEntry{info: &fakeInfo{name: path.Base(name), mode: mode | fs.ModeDir}})
		}
	}
	for name, file := range f.files {
		if path.Dir(name) == p {
			out = append(out, fakeDirEntry{info: &fakeInfo{name: path.Base(name), size: int64(len(file.data)), mode: file.mode}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (f *MemoryFS) IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
func (f *MemoryFS) IsDir(p string) bool       { _, ok := f.dirs[clean(p)]; return ok }
func (f *MemoryFS) Exists(p string) bool {
	p = clean(p)
	_, f1 := f.files[p]
	_, d1 := f.dirs[p]
	return f1 || d1
}

// Helpers

type fakeInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func (f *fakeInfo) Name() string       { return f.name }
func (f *fakeInfo) Size() int64        { return f.size }
func (f *fakeInfo) Mode() fs.FileMode  { return f.mode }
func (f *fakeInfo) ModTime() time.Time { return time.Time{} }
func (f *fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *fakeInfo) Sys() interface{}   { return nil }

type fakeDirEntry struct {
	info *fakeInfo
}

func (d fakeDirEntry) Name() string               { return d.info.name }
func (d fakeDirEntry) IsDir() bool                { return d.info.IsDir() }
func (d fakeDirEntry) Type() fs.FileMode          { return d.info.mode.Type() }
func (d fakeDirEntry) Info() (os.FileInfo, error) { return d.info, nil }

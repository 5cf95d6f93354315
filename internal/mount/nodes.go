package mount

import (
	"context"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	gofs "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/keshon/wit/internal/fs"
)

const (
	dirMode  = 0o555
	fileMode = 0o444
)

// rootNode holds HEAD, branches/ and commits/.
type rootNode struct {
	gofs.Inode
	view *View
}

var _ = (gofs.NodeOnAdder)((*rootNode)(nil))
var _ = (gofs.NodeGetattrer)((*rootNode)(nil))

func (r *rootNode) OnAdd(ctx context.Context) {
	head := &bytesFile{key: "HEAD", content: r.view.Head}
	r.AddChild("HEAD", r.NewPersistentInode(ctx, head, gofs.StableAttr{Mode: syscall.S_IFREG, Ino: ino("HEAD")}), true)

	branches := &branchesDir{view: r.view}
	r.AddChild("branches", r.NewPersistentInode(ctx, branches, gofs.StableAttr{Mode: syscall.S_IFDIR, Ino: ino("branches")}), true)

	commits := &commitsDir{view: r.view}
	r.AddChild("commits", r.NewPersistentInode(ctx, commits, gofs.StableAttr{Mode: syscall.S_IFDIR, Ino: ino("commits")}), true)
}

func (r *rootNode) Getattr(ctx context.Context, fh gofs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = dirMode
	out.Ino = ino("/")
	return gofs.OK
}

// bytesFile is a small read-only file whose content is computed on access.
type bytesFile struct {
	gofs.Inode
	key     string
	content func() ([]byte, error)
}

var _ = (gofs.NodeGetattrer)((*bytesFile)(nil))
var _ = (gofs.NodeOpener)((*bytesFile)(nil))
var _ = (gofs.NodeReader)((*bytesFile)(nil))

func (f *bytesFile) fill(out *fuse.Attr) syscall.Errno {
	data, err := f.content()
	if err != nil {
		return errno(err)
	}
	out.Mode = fileMode
	out.Size = uint64(len(data))
	out.Ino = ino(f.key)
	return gofs.OK
}

func (f *bytesFile) Getattr(ctx context.Context, fh gofs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	return f.fill(&out.Attr)
}

func (f *bytesFile) Open(ctx context.Context, flags uint32) (gofs.FileHandle, uint32, syscall.Errno) {
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}
	return nil, fuse.FOPEN_DIRECT_IO, gofs.OK
}

func (f *bytesFile) Read(ctx context.Context, fh gofs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	data, err := f.content()
	if err != nil {
		return nil, errno(err)
	}
	return fuse.ReadResultData(window(data, len(dest), off)), gofs.OK
}

// branchesDir lists one file per branch.
type branchesDir struct {
	gofs.Inode
	view *View
}

var _ = (gofs.NodeLookuper)((*branchesDir)(nil))
var _ = (gofs.NodeReaddirer)((*branchesDir)(nil))
var _ = (gofs.NodeGetattrer)((*branchesDir)(nil))

func (d *branchesDir) Getattr(ctx context.Context, fh gofs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = dirMode
	out.Ino = ino("branches")
	return gofs.OK
}

func (d *branchesDir) Readdir(ctx context.Context) (gofs.DirStream, syscall.Errno) {
	names, err := d.view.Branches()
	if err != nil {
		return nil, errno(err)
	}
	entries := make([]fuse.DirEntry, len(names))
	for i, name := range names {
		entries[i] = fuse.DirEntry{Name: name, Mode: syscall.S_IFREG, Ino: ino("branches/" + name)}
	}
	return gofs.NewListDirStream(entries), gofs.OK
}

func (d *branchesDir) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofs.Inode, syscall.Errno) {
	f := &bytesFile{
		key:     "branches/" + name,
		content: func() ([]byte, error) { return d.view.Branch(name) },
	}
	if st := f.fill(&out.Attr); st != gofs.OK {
		return nil, st
	}
	return d.NewInode(ctx, f, gofs.StableAttr{Mode: syscall.S_IFREG, Ino: ino(f.key)}), gofs.OK
}

// commitsDir lists <id>/ and <id>.txt for every stored commit.
type commitsDir struct {
	gofs.Inode
	view *View
}

var _ = (gofs.NodeLookuper)((*commitsDir)(nil))
var _ = (gofs.NodeReaddirer)((*commitsDir)(nil))
var _ = (gofs.NodeGetattrer)((*commitsDir)(nil))

func (d *commitsDir) Getattr(ctx context.Context, fh gofs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = dirMode
	out.Ino = ino("commits")
	return gofs.OK
}

func (d *commitsDir) Readdir(ctx context.Context) (gofs.DirStream, syscall.Errno) {
	ids, err := d.view.Commits()
	if err != nil {
		return nil, errno(err)
	}
	entries := make([]fuse.DirEntry, 0, 2*len(ids))
	for _, id := range ids {
		entries = append(entries,
			fuse.DirEntry{Name: id, Mode: syscall.S_IFDIR, Ino: ino("commits/" + id)},
			fuse.DirEntry{Name: id + ".txt", Mode: syscall.S_IFREG, Ino: ino("commits/" + id + ".txt")},
		)
	}
	return gofs.NewListDirStream(entries), gofs.OK
}

func (d *commitsDir) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofs.Inode, syscall.Errno) {
	key := "commits/" + name
	if id, ok := strings.CutSuffix(name, ".txt"); ok {
		f := &bytesFile{key: key, content: func() ([]byte, error) { return d.view.Record(id) }}
		if st := f.fill(&out.Attr); st != gofs.OK {
			return nil, st
		}
		return d.NewInode(ctx, f, gofs.StableAttr{Mode: syscall.S_IFREG, Ino: ino(key)}), gofs.OK
	}

	dir, err := d.view.Snapshot(name)
	if err != nil {
		return nil, errno(err)
	}
	node := &snapshotDir{fs: d.view.Repo.FS, path: dir, key: key}
	node.fill(&out.Attr)
	return d.NewInode(ctx, node, gofs.StableAttr{Mode: syscall.S_IFDIR, Ino: ino(key)}), gofs.OK
}

// snapshotDir exposes a directory inside a snapshot.
type snapshotDir struct {
	gofs.Inode
	fs   fs.FS
	path string
	key  string
}

var _ = (gofs.NodeLookuper)((*snapshotDir)(nil))
var _ = (gofs.NodeReaddirer)((*snapshotDir)(nil))
var _ = (gofs.NodeGetattrer)((*snapshotDir)(nil))

func (d *snapshotDir) fill(out *fuse.Attr) {
	out.Mode = dirMode
	out.Ino = ino(d.key)
}

func (d *snapshotDir) Getattr(ctx context.Context, fh gofs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	d.fill(&out.Attr)
	return gofs.OK
}

func (d *snapshotDir) Readdir(ctx context.Context) (gofs.DirStream, syscall.Errno) {
	list, err := d.fs.ReadDir(d.path)
	if err != nil {
		return nil, errno(err)
	}
	entries := make([]fuse.DirEntry, 0, len(list))
	for _, e := range list {
		mode := uint32(syscall.S_IFREG)
		if e.IsDir() {
			mode = syscall.S_IFDIR
		}
		entries = append(entries, fuse.DirEntry{Name: e.Name(), Mode: mode, Ino: ino(path.Join(d.key, e.Name()))})
	}
	return gofs.NewListDirStream(entries), gofs.OK
}

func (d *snapshotDir) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofs.Inode, syscall.Errno) {
	p := filepath.Join(d.path, name)
	info, err := d.fs.Stat(p)
	if err != nil {
		return nil, errno(err)
	}
	key := path.Join(d.key, name)
	if info.IsDir() {
		child := &snapshotDir{fs: d.fs, path: p, key: key}
		child.fill(&out.Attr)
		return d.NewInode(ctx, child, gofs.StableAttr{Mode: syscall.S_IFDIR, Ino: ino(key)}), gofs.OK
	}
	f := &bytesFile{key: key, content: func() ([]byte, error) { return d.fs.ReadFile(p) }}
	if st := f.fill(&out.Attr); st != gofs.OK {
		return nil, st
	}
	return d.NewInode(ctx, f, gofs.StableAttr{Mode: syscall.S_IFREG, Ino: ino(key)}), gofs.OK
}

package meta

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
)

// NoParent is written in place of a parent list for a root commit.
const NoParent = "None"

// Records are line based, so messages are kept on one line.
var flatten = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Commit is the record stored next to a snapshot as <id>.txt.
type Commit struct {
	ID      string
	Parents []string
	Date    time.Time
	Message string
}

// CommitPath returns where the record of id lives.
func (mc *MetaContext) CommitPath(id string) string {
	return filepath.Join(mc.Paths.Images, id+".txt")
}

// SnapshotPath returns the snapshot directory of id.
func (mc *MetaContext) SnapshotPath(id string) string {
	return filepath.Join(mc.Paths.Images, id)
}

// Encode renders the record in its on-disk form.
func (c *Commit) Encode() []byte {
	parent := NoParent
	if len(c.Parents) > 0 {
		parent = strings.Join(c.Parents, ",")
	}
	msg := flatten.Replace(c.Message)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "parent=%s\n", parent)
	fmt.Fprintf(&buf, "date=%s\n", c.Date.Format(time.ANSIC))
	fmt.Fprintf(&buf, "message=%s\n", msg)
	return buf.Bytes()
}

// DecodeCommit parses a record written by Encode.
func DecodeCommit(id string, data []byte) (*Commit, error) {
	c := &Commit{ID: id}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "parent":
			if value != NoParent && value != "" {
				c.Parents = strings.Split(value, ",")
			}
		case "date":
			t, err := time.ParseInLocation(time.ANSIC, value, time.Local)
			if err != nil {
				return nil, fmt.Errorf("commit %s: bad date %q: %w", id, value, err)
			}
			c.Date = t
		case "message":
			c.Message = value
		}
	}
	return c, nil
}

// WriteCommit stores the record of c.
func (mc *MetaContext) WriteCommit(c *Commit) error {
	path := mc.CommitPath(c.ID)
	if err := fs.SafeWrite(mc.FS, path, c.Encode(), 0o644); err != nil {
		return errs.FS("write", path, fmt.Errorf("commit record: %w", err))
	}
	return nil
}

// GetCommit reads a commit record by id.
func (mc *MetaContext) GetCommit(id string) (*Commit, error) {
	if id == "" || strings.ContainsAny(id, "/\\") {
		return nil, fmt.Errorf("%w: %q", errs.ErrCommitNotFound, id)
	}
	path := mc.CommitPath(id)
	data, err := mc.FS.ReadFile(path)
	if err != nil {
		if mc.FS.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrCommitNotFound, id)
		}
		return nil, errs.FS("read", path, err)
	}
	return DecodeCommit(id, data)
}

// CommitExists reports whether both the record and the snapshot of id exist.
func (mc *MetaContext) CommitExists(id string) bool {
	if id == "" || strings.ContainsAny(id, "/\\") {
		return false
	}
	return mc.FS.Exists(mc.CommitPath(id)) && mc.FS.IsDir(mc.SnapshotPath(id))
}

// ListCommits returns the ids of all stored commits in name order.
func (mc *MetaContext) ListCommits() ([]string, error) {
	entries, err := mc.FS.ReadDir(mc.Paths.Images)
	if err != nil {
		return nil, errs.FS("readdir", mc.Paths.Images, err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == config.RefsFile || !strings.HasSuffix(name, ".txt") {
			continue
		}
		if id := strings.TrimSuffix(name, ".txt"); mc.CommitExists(id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

package meta

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
)

// Reference maps a name (HEAD or a branch) to a commit id.
type Reference struct {
	Name string
	ID   string
}

// readRefs returns the reference set in file order. A missing file yields
// errs.ErrNoCommit: the set is created by the first commit.
func (mc *MetaContext) readRefs() ([]Reference, error) {
	data, err := mc.FS.ReadFile(mc.Paths.Refs)
	if err != nil {
		if mc.FS.IsNotExist(err) {
			return nil, errs.ErrNoCommit
		}
		return nil, errs.FS("read", mc.Paths.Refs, err)
	}

	var refs []Reference
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, id, ok := strings.Cut(line, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%s:%d: malformed reference %q", mc.Paths.Refs, i+1, line)
		}
		refs = append(refs, Reference{Name: name, ID: id})
	}
	if len(refs) == 0 || refs[0].Name != config.HeadRef {
		return nil, fmt.Errorf("%s: first reference must be %s", mc.Paths.Refs, config.HeadRef)
	}
	return refs, nil
}

func (mc *MetaContext) writeRefs(refs []Reference) error {
	var buf bytes.Buffer
	for _, r := range refs {
		fmt.Fprintf(&buf, "%s=%s\n", r.Name, r.ID)
	}
	if err := fs.SafeWrite(mc.FS, mc.Paths.Refs, buf.Bytes(), 0o644); err != nil {
		return errs.FS("write", mc.Paths.Refs, err)
	}
	return nil
}

// HasReferences reports whether at least one commit was made.
func (mc *MetaContext) HasReferences() bool {
	return mc.FS.Exists(mc.Paths.Refs)
}

// ReadHead returns the commit HEAD points at.
func (mc *MetaContext) ReadHead() (string, error) {
	refs, err := mc.readRefs()
	if err != nil {
		return "", err
	}
	return refs[0].ID, nil
}

// InitReferences writes the reference set of the very first commit.
func (mc *MetaContext) InitReferences(id, branch string) error {
	refs := []Reference{{Name: config.HeadRef, ID: id}}
	if branch != "" && branch != config.HeadRef {
		refs = append(refs, Reference{Name: branch, ID: id})
	}
	return mc.writeRefs(refs)
}

// Update points HEAD at id and advances branch when it already exists.
// Every other entry keeps its position and value.
func (mc *MetaContext) Update(id, branch string) error {
	refs, err := mc.readRefs()
	if err != nil {
		return err
	}
	for i := range refs {
		if refs[i].Name == config.HeadRef || (branch != "" && refs[i].Name == branch) {
			refs[i].ID = id
		}
	}
	return mc.writeRefs(refs)
}

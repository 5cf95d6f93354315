// Package meta keeps the repository's small metadata files: the reference
// set (HEAD and branches), the activated branch marker and commit records.
package meta

import (
	"fmt"
	"strings"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
)

// MetaContext gives access to the metadata of one repository.
type MetaContext struct {
	Paths config.Paths
	FS    fs.FS
}

// NewMeta returns a MetaContext over an existing layout. It does not create anything.
func NewMeta(paths config.Paths, fsys fs.FS) *MetaContext {
	if fsys == nil {
		fsys = fs.NewOSFS()
	}
	return &MetaContext{Paths: paths, FS: fsys}
}

// CreateStructure lays out a fresh .wit directory and activates branch.
func (mc *MetaContext) CreateStructure(branch string) error {
	for _, d := range []string{mc.Paths.Meta, mc.Paths.Images, mc.Paths.Staging} {
		if err := mc.FS.MkdirAll(d, 0o755); err != nil {
			return errs.FS("mkdir", d, err)
		}
	}
	return mc.SetActivatedBranch(branch)
}

// IsMetaExists reports whether the .wit directory is present.
func (mc *MetaContext) IsMetaExists() bool {
	return mc.FS.IsDir(mc.Paths.Meta)
}

// ActivatedBranch returns the branch recorded by the last checkout (or init).
// An empty name means HEAD was last set to a raw commit id.
func (mc *MetaContext) ActivatedBranch() (string, error) {
	data, err := mc.FS.ReadFile(mc.Paths.Activated)
	if err != nil {
		if mc.FS.IsNotExist(err) {
			return "", nil
		}
		return "", errs.FS("read", mc.Paths.Activated, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetActivatedBranch records name as the activated branch; "" clears it.
func (mc *MetaContext) SetActivatedBranch(name string) error {
	if err := fs.SafeWrite(mc.FS, mc.Paths.Activated, []byte(name), 0o644); err != nil {
		return errs.FS("write", mc.Paths.Activated, fmt.Errorf("activated branch: %w", err))
	}
	return nil
}

package snapshot

import (
	"time"

	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/repo/meta"
	"github.com/keshon/wit/internal/repo/store/tree"
)

// SnapshotContext stores commits: a full copy of the staging area under
// images/<id>/ plus the record images/<id>.txt.
type SnapshotContext struct {
	Meta *meta.MetaContext
	Tree *tree.Engine
	FS   fs.FS
	Now  func() time.Time
}

func NewSnapshotContext(mc *meta.MetaContext, engine *tree.Engine) *SnapshotContext {
	return &SnapshotContext{Meta: mc, Tree: engine, FS: mc.FS, Now: time.Now}
}

// Exists reports whether id names a stored commit.
func (sc *SnapshotContext) Exists(id string) bool {
	return sc.Meta.CommitExists(id)
}

// Path returns the snapshot directory of id.
func (sc *SnapshotContext) Path(id string) string {
	return sc.Meta.SnapshotPath(id)
}

package snapshot

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/repo/meta"
)

// CreateCommit snapshots stagingDir as a new commit with the given parents.
// When the staging tree equals the first parent's snapshot it returns
// errs.ErrNoChange and allocates nothing. The snapshot is built in a temp
// directory and published with a rename.
func (sc *SnapshotContext) CreateCommit(stagingDir, message string, parents []string) (*meta.Commit, error) {
	if len(parents) > 0 {
		same, err := sc.Tree.Equal(sc.Path(parents[0]), stagingDir)
		if err != nil {
			return nil, fmt.Errorf("compare with %s: %w", parents[0], err)
		}
		if same {
			return nil, errs.ErrNoChange
		}
	}

	digest, err := sc.TreeDigest(stagingDir)
	if err != nil {
		return nil, fmt.Errorf("digest staging area: %w", err)
	}
	date := sc.now().Truncate(time.Second)
	id, err := ComputeID(digest, parents, date, message)
	if err != nil {
		return nil, err
	}

	target := sc.Path(id)
	if sc.FS.Exists(target) || sc.FS.Exists(sc.Meta.CommitPath(id)) {
		return nil, errs.FS("publish", target, os.ErrExist)
	}

	if err := sc.publish(stagingDir, target); err != nil {
		return nil, err
	}

	c := &meta.Commit{ID: id, Parents: parents, Date: date, Message: message}
	if err := sc.Meta.WriteCommit(c); err != nil {
		return nil, err
	}
	log.Debug().Str("id", id).Strs("parents", parents).Msg("commit created")
	return c, nil
}

func (sc *SnapshotContext) publish(src, target string) error {
	tmp, err := sc.FS.MkdirTemp(sc.Meta.Paths.Images, ".tmp-*")
	if err != nil {
		return errs.FS("mkdirtemp", sc.Meta.Paths.Images, err)
	}
	if err := sc.Tree.Copy(src, tmp, nil); err != nil {
		sc.FS.RemoveAll(tmp)
		return err
	}
	if err := sc.FS.Chmod(tmp, 0o755); err != nil {
		sc.FS.RemoveAll(tmp)
		return errs.FS("chmod", tmp, err)
	}
	if err := sc.FS.Rename(tmp, target); err != nil {
		sc.FS.RemoveAll(tmp)
		return errs.FS("rename", target, err)
	}
	return nil
}

func (sc *SnapshotContext) now() time.Time {
	if sc.Now != nil {
		return sc.Now()
	}
	return time.Now()
}

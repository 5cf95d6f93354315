package repo

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/keshon/wit/internal/errs"
)

// Checkout materializes target (a branch or a commit id) in the working tree
// and the staging area. It refuses when anything is staged or modified.
// Untracked paths in the working tree are never overwritten. A failed copy
// is reported without rolling back what was already written.
func (r *Repository) Checkout(target string) (id, branch string, err error) {
	st, err := r.Status()
	if err != nil {
		return "", "", err
	}
	if !st.HasCommit {
		return "", "", errs.ErrNoCommit
	}
	if !st.Clean() {
		return "", "", fmt.Errorf("%w: commit or discard them before checkout", errs.ErrUncommittedChanges)
	}

	id, branch, err = r.Resolve(target)
	if err != nil {
		return "", "", err
	}
	snap := r.Store.SnapshotCtx.Path(id)

	if err := r.Store.Tree.Copy(snap, r.Paths.Root, st.Untracked); err != nil {
		return "", "", fmt.Errorf("update working tree: %w", err)
	}
	if err := r.Store.StagingCtx.Replace(snap); err != nil {
		return "", "", fmt.Errorf("update staging area: %w", err)
	}

	if err := r.Meta.Update(id, branch); err != nil {
		return "", "", err
	}
	if err := r.Meta.SetActivatedBranch(branch); err != nil {
		return "", "", err
	}

	log.Debug().Str("id", id).Str("branch", branch).Strs("untracked", st.Untracked).Msg("checked out")
	return id, branch, nil
}

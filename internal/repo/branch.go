package repo

import (
	"fmt"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/repo/meta"
	"github.com/keshon/wit/internal/repo/store/snapshot"
)

// CreateBranch adds a branch pointing at HEAD.
func (r *Repository) CreateBranch(name string) (meta.Branch, error) {
	return r.Meta.CreateBranch(name)
}

// ListBranches returns the branches in creation order and the activated one.
func (r *Repository) ListBranches() ([]meta.Branch, string, error) {
	active, err := r.Meta.ActivatedBranch()
	if err != nil {
		return nil, "", err
	}
	if !r.Meta.HasReferences() {
		return nil, active, nil
	}
	branches, err := r.Meta.ListBranches()
	if err != nil {
		return nil, "", err
	}
	return branches, active, nil
}

// Resolve turns a branch name or a raw commit id into a commit id. branch is
// empty when target was an id.
func (r *Repository) Resolve(target string) (id, branch string, err error) {
	if r.Meta.HasReferences() {
		ok, err := r.Meta.BranchExists(target)
		if err != nil {
			return "", "", err
		}
		if ok {
			id, err := r.Meta.ReadBranch(target)
			return id, target, err
		}
	}
	if snapshot.ValidID(target) && r.Store.SnapshotCtx.Exists(target) {
		return target, "", nil
	}
	return "", "", fmt.Errorf("%w: %s", errs.ErrCommitNotFound, target)
}

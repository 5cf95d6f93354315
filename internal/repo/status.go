package repo

import (
	"github.com/keshon/wit/internal/repo/store/staging"
)

// Status is the state reported by the status command.
type Status struct {
	HasCommit bool
	Head      string
	Branch    string
	staging.Status
}

// Status compares HEAD, the staging area and the working tree. Before the
// first commit it reports HasCommit=false and empty change sets.
func (r *Repository) Status() (Status, error) {
	branch, err := r.Meta.ActivatedBranch()
	if err != nil {
		return Status{}, err
	}
	if !r.Meta.HasReferences() {
		return Status{Branch: branch}, nil
	}

	head, err := r.Meta.ReadHead()
	if err != nil {
		return Status{}, err
	}
	st, err := r.Store.StagingCtx.Status(r.Store.SnapshotCtx.Path(head))
	if err != nil {
		return Status{}, err
	}
	return Status{HasCommit: true, Head: head, Branch: branch, Status: st}, nil
}

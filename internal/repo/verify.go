package repo

import (
	"fmt"

	"github.com/keshon/wit/internal/errs"
)

// VerifyReferences checks that HEAD and every branch name a stored commit.
// A repository without commits passes.
func (r *Repository) VerifyReferences() error {
	if !r.Meta.HasReferences() {
		return nil
	}
	head, err := r.Meta.ReadHead()
	if err != nil {
		return err
	}
	if !r.Meta.CommitExists(head) {
		return fmt.Errorf("%w: HEAD points at %s", errs.ErrCommitNotFound, head)
	}
	branches, err := r.Meta.ListBranches()
	if err != nil {
		return err
	}
	for _, b := range branches {
		if !r.Meta.CommitExists(b.ID) {
			return fmt.Errorf("%w: branch %s points at %s", errs.ErrCommitNotFound, b.Name, b.ID)
		}
	}
	return nil
}

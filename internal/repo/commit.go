package repo

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/keshon/wit/internal/repo/meta"
)

// Commit records the staging area as a new commit on top of HEAD and
// advances the activated branch. It returns errs.ErrNoChange when staging
// matches HEAD.
func (r *Repository) Commit(message string) (*meta.Commit, error) {
	var parents []string
	if r.Meta.HasReferences() {
		head, err := r.Meta.ReadHead()
		if err != nil {
			return nil, err
		}
		parents = []string{head}
	}
	return r.commit(message, parents)
}

func (r *Repository) commit(message string, parents []string) (*meta.Commit, error) {
	c, err := r.Store.SnapshotCtx.CreateCommit(r.Paths.Staging, message, parents)
	if err != nil {
		return nil, err
	}

	branch, err := r.Meta.ActivatedBranch()
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		if branch == "" {
			branch = r.Config.DefaultBranch
		}
		err = r.Meta.InitReferences(c.ID, branch)
	} else {
		err = r.Meta.Update(c.ID, branch)
	}
	if err != nil {
		return nil, fmt.Errorf("commit %s stored but references not updated: %w", c.ID, err)
	}

	log.Debug().Str("id", c.ID).Str("branch", branch).Msg("references updated")
	return c, nil
}

package repo

import (
	"github.com/keshon/wit/internal/repo/meta"
)

// Log returns the commits reachable from HEAD in history order.
func (r *Repository) Log() ([]*meta.Commit, error) {
	head, err := r.Meta.ReadHead()
	if err != nil {
		return nil, err
	}
	return r.LogFrom(head)
}

// LogFrom returns the commits reachable from target (a branch or commit id).
func (r *Repository) LogFrom(target string) ([]*meta.Commit, error) {
	id, _, err := r.Resolve(target)
	if err != nil {
		return nil, err
	}
	ids, err := r.Store.SnapshotCtx.CollectHistory(id, r.History)
	if err != nil {
		return nil, err
	}
	commits := make([]*meta.Commit, 0, len(ids))
	for _, id := range ids {
		c, err := r.Meta.GetCommit(id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

package repo

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/repo/merge"
	"github.com/keshon/wit/internal/repo/meta"
	"github.com/keshon/wit/internal/repo/store/tree"
)

// MergeResult describes a completed merge.
type MergeResult struct {
	Commit *meta.Commit
	Base   string
	Plan   *merge.Plan
	// Kept lists merged paths left alone in the working tree because they
	// were untracked or modified there.
	Kept []string
}

// Merge brings the changes made on source (a branch or commit id) since the
// merge base into the staging area and commits them with source as second
// parent. The plan is computed before staging is touched, so a conflict
// leaves staging and history unchanged. Merged paths are then copied into the
// working tree unless the user has untracked or modified content there.
func (r *Repository) Merge(source string) (*MergeResult, error) {
	if !r.Meta.HasReferences() {
		return nil, errs.ErrNoCommit
	}
	head, err := r.Meta.ReadHead()
	if err != nil {
		return nil, err
	}
	src, _, err := r.Resolve(source)
	if err != nil {
		return nil, err
	}

	snapshots := r.Store.SnapshotCtx
	headHist, err := snapshots.CollectHistory(head, r.History)
	if err != nil {
		return nil, err
	}
	srcHist, err := snapshots.CollectHistory(src, r.History)
	if err != nil {
		return nil, err
	}
	base, err := merge.BaseOrError(head, src, headHist, srcHist)
	if err != nil {
		return nil, err
	}

	plan, err := r.Merger.Plan(snapshots.Path(base), snapshots.Path(head), snapshots.Path(src))
	if err != nil {
		return nil, fmt.Errorf("merge %s into %s: %w", src, head, err)
	}
	log.Debug().Str("base", base).Strs("paths", plan.Paths()).Msg("merge planned")

	before, err := r.Store.StagingCtx.Status(snapshots.Path(head))
	if err != nil {
		return nil, err
	}
	keep := append(slices.Clone(before.Untracked), before.Unstaged...)

	stage := r.Store.StagingCtx
	for _, rel := range plan.Copies {
		if err := stage.CopyIn(snapshots.Path(src), rel); err != nil {
			return nil, fmt.Errorf("stage %s: %w", rel, err)
		}
	}
	for _, m := range plan.Merged {
		if err := stage.Write(m.Path, m.Data, m.Perm); err != nil {
			return nil, fmt.Errorf("stage %s: %w", m.Path, err)
		}
	}

	c, err := r.commit(fmt.Sprintf("Merge of %s and %s", head, src), []string{head, src})
	if err != nil {
		return nil, err
	}

	res := &MergeResult{Commit: c, Base: base, Plan: plan}
	for _, rel := range plan.Paths() {
		if tree.Skipped(rel, keep) {
			res.Kept = append(res.Kept, rel)
			continue
		}
		nested := nestedUnder(rel, keep)
		for _, k := range nested {
			res.Kept = append(res.Kept, path.Join(rel, k))
		}
		if err := r.materialize(rel, nested); err != nil {
			return res, fmt.Errorf("merge %s committed, working tree not updated: %w", c.ID, err)
		}
	}
	return res, nil
}

// nestedUnder returns the entries of keep lying strictly beneath dir,
// relative to dir.
func nestedUnder(dir string, keep []string) []string {
	var out []string
	for _, k := range keep {
		k = filepath.ToSlash(k)
		if rest, ok := strings.CutPrefix(k, dir+"/"); ok && rest != "" {
			out = append(out, rest)
		}
	}
	return out
}

// materialize copies rel from the staging area onto the working tree,
// leaving the paths in skip (relative to rel) untouched.
func (r *Repository) materialize(rel string, skip []string) error {
	native := filepath.FromSlash(rel)
	dst := filepath.Join(r.Paths.Root, native)
	if err := r.FS.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errs.FS("mkdir", filepath.Dir(dst), err)
	}
	return r.Store.Tree.Copy(filepath.Join(r.Paths.Staging, native), dst, skip)
}

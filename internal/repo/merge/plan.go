package merge

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/repo/store/tree"
)

// Merged is a file whose content was produced by a Strategy.
type Merged struct {
	Path string
	Data []byte
	Perm os.FileMode
}

// Plan is the full set of staging edits for one merge, computed before any
// of them is applied.
type Plan struct {
	// Copies are copied from the source snapshot unchanged.
	Copies []string
	// Merged were edited on both sides and reconciled.
	Merged []Merged
}

// Paths lists every path the plan touches, in application order.
func (p *Plan) Paths() []string {
	out := slices.Clone(p.Copies)
	for _, m := range p.Merged {
		out = append(out, m.Path)
	}
	return out
}

// Empty reports whether the plan changes nothing.
func (p *Plan) Empty() bool {
	return len(p.Copies) == 0 && len(p.Merged) == 0
}

// Planner computes merge plans between snapshot directories.
type Planner struct {
	Tree     *tree.Engine
	FS       fs.FS
	Strategy Strategy
}

func NewPlanner(engine *tree.Engine, strategy Strategy) *Planner {
	if strategy == nil {
		strategy = Positional{}
	}
	return &Planner{Tree: engine, FS: engine.FS, Strategy: strategy}
}

// Plan collects what changed from base to src. Added paths and changed files
// are copied from src, except files that head changed too: those go through
// the strategy. The first conflict aborts planning.
func (p *Planner) Plan(base, head, src string) (*Plan, error) {
	added, err := p.Tree.DiffPresence(base, src)
	if err != nil {
		return nil, fmt.Errorf("added on source: %w", err)
	}
	changed, err := p.Tree.DiffContent(base, src)
	if err != nil {
		return nil, fmt.Errorf("changed on source: %w", err)
	}
	headChanged, err := p.Tree.DiffContent(base, head)
	if err != nil {
		return nil, fmt.Errorf("changed on head: %w", err)
	}

	plan := &Plan{Copies: added}
	for _, rel := range changed {
		if !slices.Contains(headChanged, rel) {
			plan.Copies = append(plan.Copies, rel)
			continue
		}
		m, ok, err := p.reconcile(base, head, src, rel)
		if err != nil {
			return nil, err
		}
		if !ok {
			plan.Copies = append(plan.Copies, rel)
			continue
		}
		plan.Merged = append(plan.Merged, m)
	}
	return plan, nil
}

// reconcile runs the strategy on rel. ok is false when rel is not a regular
// file on all three sides, in which case the source version wins.
func (p *Planner) reconcile(base, head, src, rel string) (Merged, bool, error) {
	native := filepath.FromSlash(rel)
	var contents [3][]byte
	var perm os.FileMode
	for i, root := range []string{base, head, src} {
		path := filepath.Join(root, native)
		info, err := p.FS.Stat(path)
		if err != nil {
			return Merged{}, false, errs.FS("stat", path, err)
		}
		if info.IsDir() {
			return Merged{}, false, nil
		}
		if i == 1 {
			perm = info.Mode().Perm()
		}
		if contents[i], err = p.FS.ReadFile(path); err != nil {
			return Merged{}, false, errs.FS("read", path, err)
		}
	}

	var split [3][]string
	for i, data := range contents {
		lines, err := splitLines(data)
		if err != nil {
			return Merged{}, false, fmt.Errorf("%s: %w", rel, err)
		}
		split[i] = lines
	}

	lines, err := p.Strategy.Merge(split[0], split[1], split[2])
	if err != nil {
		return Merged{}, false, withPath(err, rel)
	}

	data := strings.Join(lines, "\n")
	if len(lines) > 0 && bytes.HasSuffix(contents[1], []byte("\n")) {
		data += "\n"
	}
	return Merged{Path: rel, Data: []byte(data), Perm: perm}, true, nil
}

func splitLines(data []byte) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("split lines: %w", err)
	}
	return lines, nil
}

package snapshot

import (
	"fmt"

	"github.com/keshon/wit/internal/config"
)

// HistoryMode selects how CollectHistory treats commits reachable by more
// than one path.
type HistoryMode int

const (
	// HistoryDedup lists every reachable commit once.
	HistoryDedup HistoryMode = iota
	// HistoryCompat keeps duplicates: a commit appears once per path reaching it.
	HistoryCompat
)

// ParseHistoryMode maps a config value to a mode.
func ParseHistoryMode(s string) (HistoryMode, error) {
	switch s {
	case "", config.HistoryDedup:
		return HistoryDedup, nil
	case config.HistoryCompat:
		return HistoryCompat, nil
	}
	return HistoryDedup, fmt.Errorf("unknown history mode %q", s)
}

// GetParents returns the parents of id; empty for a root commit.
func (sc *SnapshotContext) GetParents(id string) ([]string, error) {
	c, err := sc.Meta.GetCommit(id)
	if err != nil {
		return nil, err
	}
	return c.Parents, nil
}

// CollectHistory lists id and its ancestors pre-order: a commit, then each of
// its parents' histories in parent order.
func (sc *SnapshotContext) CollectHistory(id string, mode HistoryMode) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if mode == HistoryDedup {
			if seen[cur] {
				continue
			}
			seen[cur] = true
		}
		out = append(out, cur)

		parents, err := sc.GetParents(cur)
		if err != nil {
			return nil, fmt.Errorf("history of %s: %w", id, err)
		}
		for i := len(parents) - 1; i >= 0; i-- {
			stack = append(stack, parents[i])
		}
	}
	return out, nil
}

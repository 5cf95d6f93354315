package merge

import (
	"errors"
	"fmt"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
)

// Strategy reconciles one file edited on both sides of a merge. Inputs and
// output are lines without terminators.
type Strategy interface {
	Merge(base, head, branch []string) ([]string, error)
}

// ByName returns the strategy configured under merge.strategy.
func ByName(name string) (Strategy, error) {
	switch name {
	case "", config.StrategyPositional:
		return Positional{}, nil
	}
	return nil, fmt.Errorf("unknown merge strategy %q", name)
}

// Positional merges line by line on index alone; lines are never realigned
// after insertions or deletions.
//
// At each index up to the longer side: a line present on one side only is
// taken; a base line that differs from both sides (or is missing) is a
// conflict; a base line equal to head but not branch takes branch; anything
// else takes head.
type Positional struct{}

func (Positional) Merge(base, head, branch []string) ([]string, error) {
	n := max(len(head), len(branch))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(branch):
			out = append(out, head[i])
		case i >= len(head):
			out = append(out, branch[i])
		case i >= len(base):
			return nil, &errs.Conflict{Line: i}
		case base[i] != head[i] && base[i] != branch[i]:
			return nil, &errs.Conflict{Line: i}
		case base[i] == head[i] && base[i] != branch[i]:
			out = append(out, branch[i])
		default:
			out = append(out, head[i])
		}
	}
	return out, nil
}

// withPath attaches path to a conflict reported by a strategy.
func withPath(err error, path string) error {
	var c *errs.Conflict
	if errors.As(err, &c) {
		return &errs.Conflict{Path: path, Line: c.Line}
	}
	return fmt.Errorf("%s: %w", path, err)
}

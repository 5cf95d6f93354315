// Package merge finds merge bases and plans the staging changes of a
// three-way merge.
package merge

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/keshon/wit/internal/errs"
)

// FindBase returns the first commit of srcHist that also appears anywhere in
// headHist. Both histories are in CollectHistory order.
func FindBase(headHist, srcHist []string) (string, error) {
	seen := make(map[string]bool, len(headHist))
	for _, id := range headHist {
		seen[id] = true
	}
	idx := slices.IndexFunc(srcHist, func(id string) bool { return seen[id] })
	if idx < 0 {
		return "", errs.ErrNoCommonAncestor
	}
	return srcHist[idx], nil
}

// BaseOrError is FindBase with the two tips named in the error.
func BaseOrError(head, src string, headHist, srcHist []string) (string, error) {
	base, err := FindBase(headHist, srcHist)
	if err != nil {
		return "", fmt.Errorf("%w between %s and %s", err, head, src)
	}
	return base, nil
}

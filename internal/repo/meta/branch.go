package meta

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
)

// Branch is a named reference other than HEAD.
type Branch struct {
	Name string
	ID   string
}

// ListBranches returns all branches in the order they were created.
func (mc *MetaContext) ListBranches() ([]Branch, error) {
	refs, err := mc.readRefs()
	if err != nil {
		return nil, err
	}
	branches := make([]Branch, 0, len(refs)-1)
	for _, r := range refs[1:] {
		branches = append(branches, Branch{Name: r.Name, ID: r.ID})
	}
	return branches, nil
}

// ReadBranch returns the commit a branch points at.
func (mc *MetaContext) ReadBranch(name string) (string, error) {
	refs, err := mc.readRefs()
	if err != nil {
		if errors.Is(err, errs.ErrNoCommit) {
			return "", fmt.Errorf("%w: %s", errs.ErrBranchNotFound, name)
		}
		return "", err
	}
	for _, r := range refs[1:] {
		if r.Name == name {
			return r.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", errs.ErrBranchNotFound, name)
}

// BranchExists reports whether name is a branch.
func (mc *MetaContext) BranchExists(name string) (bool, error) {
	_, err := mc.ReadBranch(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errs.ErrBranchNotFound) {
		return false, nil
	}
	return false, err
}

// CreateBranch appends name pointing at the current HEAD commit.
func (mc *MetaContext) CreateBranch(name string) (Branch, error) {
	if err := ValidateBranchName(name); err != nil {
		return Branch{}, err
	}
	refs, err := mc.readRefs()
	if err != nil {
		return Branch{}, err
	}
	for _, r := range refs {
		if r.Name == name {
			return Branch{}, fmt.Errorf("%w: %s", errs.ErrBranchExists, name)
		}
	}

	b := Branch{Name: name, ID: refs[0].ID}
	refs = append(refs, Reference{Name: b.Name, ID: b.ID})
	if err := mc.writeRefs(refs); err != nil {
		return Branch{}, err
	}
	return b, nil
}

// ValidateBranchName rejects names that cannot round-trip through the
// references file or be told apart from HEAD.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrInvalidBranchName)
	}
	if name == config.HeadRef {
		return fmt.Errorf("%w: %s", errs.ErrBranchExists, name)
	}
	if strings.ContainsAny(name, "=,/\\") || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", errs.ErrInvalidBranchName, name)
	}
	return nil
}

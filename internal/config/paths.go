package config

import (
	"os"
	"path/filepath"
)

const (
	RepoDir       = ".wit"
	ImagesDir     = "images"
	StagingDir    = "staging_area"
	ActivatedFile = "activated.txt"
	ConfigFile    = "config.yaml"
	RefsFile      = "references.txt"
	HeadRef       = "HEAD"
)

const (
	DefaultBranch  = "master"
	DefaultLogFile = "wit_log.txt"
)

// IgnoredNames are never treated as part of the working tree.
var IgnoredNames = []string{RepoDir}

// Paths holds the absolute locations inside one repository.
type Paths struct {
	Root      string
	Meta      string
	Images    string
	Staging   string
	Refs      string
	Activated string
	Config    string
}

// NewPaths derives every repository location from the working tree root.
func NewPaths(root string) Paths {
	meta := filepath.Join(root, RepoDir)
	images := filepath.Join(meta, ImagesDir)
	return Paths{
		Root:      root,
		Meta:      meta,
		Images:    images,
		Staging:   filepath.Join(meta, StagingDir),
		Refs:      filepath.Join(images, RefsFile),
		Activated: filepath.Join(meta, ActivatedFile),
		Config:    filepath.Join(meta, ConfigFile),
	}
}

// FindRoot walks up from start until it finds a directory holding a .wit
// directory. It returns "" when no repository encloses start.
func FindRoot(start string) string {
	cur, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		if fi, err := os.Stat(filepath.Join(cur, RepoDir)); err == nil && fi.IsDir() {
			return cur
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			break // reached filesystem root
		}
		cur = parent
	}
	return ""
}

// Package repo is the entry point of the engine: a Repository handle bound
// to one working tree, resolved once and passed to every operation.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/prompt"
	"github.com/keshon/wit/internal/repo/merge"
	"github.com/keshon/wit/internal/repo/meta"
	"github.com/keshon/wit/internal/repo/store"
	"github.com/keshon/wit/internal/repo/store/snapshot"
)

// Repository represents an opened repository.
type Repository struct {
	Paths   config.Paths
	Config  config.Config
	FS      fs.FS
	Meta    *meta.MetaContext
	Store   *store.StoreContext
	Merger  *merge.Planner
	History snapshot.HistoryMode
}

type options struct {
	fs      fs.FS
	confirm prompt.Confirmer
	now     func() time.Time
}

// Option customizes how a Repository is opened.
type Option func(*options)

// WithFS replaces the OS filesystem.
func WithFS(fsys fs.FS) Option { return func(o *options) { o.fs = fsys } }

// WithConfirmer sets who answers overwrite and delete questions. Without one
// every question is declined.
func WithConfirmer(c prompt.Confirmer) Option { return func(o *options) { o.confirm = c } }

// WithClock sets the time source used for commit dates.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

func buildOptions(opts []Option) options {
	o := options{fs: fs.NewOSFS(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Init creates a repository in dir. Re-initializing fails with an error
// wrapping os.ErrExist.
func Init(dir string, cfg config.Config, opts ...Option) (*Repository, error) {
	o := buildOptions(opts)
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	paths := config.NewPaths(root)
	mc := meta.NewMeta(paths, o.fs)
	if mc.IsMetaExists() {
		return nil, fmt.Errorf("repository already exists at %s: %w", root, os.ErrExist)
	}
	if err := mc.CreateStructure(cfg.DefaultBranch); err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := fs.SafeWrite(o.fs, paths.Config, data, 0o644); err != nil {
		return nil, errs.FS("write", paths.Config, err)
	}

	log.Debug().Str("root", root).Msg("repository initialized")
	return newRepository(paths, cfg, o)
}

// Open finds the repository enclosing start and opens it.
func Open(start string, opts ...Option) (*Repository, error) {
	root := config.FindRoot(start)
	if root == "" {
		return nil, errs.ErrRepositoryNotFound
	}
	return OpenAt(root, opts...)
}

// OpenAt opens the repository whose working tree root is root.
func OpenAt(root string, opts ...Option) (*Repository, error) {
	o := buildOptions(opts)
	paths := config.NewPaths(root)
	if !o.fs.IsDir(paths.Meta) {
		return nil, errs.ErrRepositoryNotFound
	}

	cfg := config.Default()
	data, err := o.fs.ReadFile(paths.Config)
	switch {
	case err == nil:
		if cfg, err = config.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", paths.Config, err)
		}
	case !o.fs.IsNotExist(err):
		return nil, errs.FS("read", paths.Config, err)
	}
	return newRepository(paths, cfg, o)
}

func newRepository(paths config.Paths, cfg config.Config, o options) (*Repository, error) {
	mode, err := snapshot.ParseHistoryMode(cfg.History.Mode)
	if err != nil {
		return nil, err
	}
	strategy, err := merge.ByName(cfg.Merge.Strategy)
	if err != nil {
		return nil, err
	}

	mc := meta.NewMeta(paths, o.fs)
	st := store.NewStore(mc, &store.NewStoreOptions{FS: o.fs, Confirm: o.confirm})
	st.SnapshotCtx.Now = o.now

	return &Repository{
		Paths:   paths,
		Config:  cfg,
		FS:      o.fs,
		Meta:    mc,
		Store:   st,
		Merger:  merge.NewPlanner(st.Tree, strategy),
		History: mode,
	}, nil
}

// LogPath returns the diagnostic log location.
func (r *Repository) LogPath() string {
	if filepath.IsAbs(r.Config.Log.File) {
		return r.Config.Log.File
	}
	return filepath.Join(r.Paths.Meta, r.Config.Log.File)
}

// Rel converts a path given relative to dir (usually the process working
// directory) into a path relative to the working tree root.
func (r *Repository) Rel(dir, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	rel, err := filepath.Rel(r.Paths.Root, p)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrPathNotFound, p)
	}
	return rel, nil
}

package store

import (
	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/prompt"
	"github.com/keshon/wit/internal/repo/meta"
	"github.com/keshon/wit/internal/repo/store/snapshot"
	"github.com/keshon/wit/internal/repo/store/staging"
	"github.com/keshon/wit/internal/repo/store/tree"
)

// StoreContext is the high-level store abstraction that unifies the snapshot
// store, the staging area and the tree engine they share.
type StoreContext struct {
	Paths       config.Paths
	Tree        *tree.Engine
	SnapshotCtx *snapshot.SnapshotContext
	StagingCtx  *staging.StagingContext
}

// NewStoreOptions allows optional dependency injection.
type NewStoreOptions struct {
	FS      fs.FS
	Confirm prompt.Confirmer
	Tree    *tree.Engine
}

// NewStoreDefault creates a store on the OS filesystem that declines every
// confirmation.
func NewStoreDefault(mc *meta.MetaContext) *StoreContext {
	return NewStore(mc, nil)
}

// NewStore creates a store with optional dependencies.
func NewStore(mc *meta.MetaContext, opts *NewStoreOptions) *StoreContext {
	fsys := mc.FS
	if opts != nil && opts.FS != nil {
		fsys = opts.FS
	}

	engine := tree.New(fsys, config.IgnoredNames...)
	if opts != nil && opts.Tree != nil {
		engine = opts.Tree
	}

	var confirm prompt.Confirmer
	if opts != nil {
		confirm = opts.Confirm
	}

	return &StoreContext{
		Paths:       mc.Paths,
		Tree:        engine,
		SnapshotCtx: snapshot.NewSnapshotContext(mc, engine),
		StagingCtx:  staging.NewStagingContext(mc.Paths.Root, mc.Paths.Staging, engine, confirm),
	}
}

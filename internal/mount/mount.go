// Package mount serves a read-only FUSE view of a repository:
//
//	HEAD                 current head id
//	branches/<name>      id a branch points at
//	commits/<id>/...     snapshot tree of a commit
//	commits/<id>.txt     commit record
package mount

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gofs "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/rs/zerolog/log"

	"github.com/keshon/wit/internal/repo"
)

// Mount mounts the view of r at mountpoint. Call Wait on the returned server
// to block and Unmount to stop.
func Mount(mountpoint string, r *repo.Repository, debug bool) (*fuse.Server, error) {
	root := &rootNode{view: &View{Repo: r}}
	opts := &gofs.Options{
		MountOptions: fuse.MountOptions{
			FsName:        "wit",
			Name:          "wit",
			Options:       []string{"ro"},
			DisableXAttrs: true,
			Debug:         debug,
		},
	}
	server, err := gofs.Mount(mountpoint, root, opts)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", mountpoint, err)
	}
	return server, nil
}

// Serve mounts r at mountpoint and blocks until ctx is done or the process
// receives SIGINT or SIGTERM, then unmounts.
func Serve(ctx context.Context, mountpoint string, r *repo.Repository, debug bool) error {
	server, err := Mount(mountpoint, r, debug)
	if err != nil {
		return err
	}
	log.Debug().Str("mountpoint", mountpoint).Msg("mounted")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		server.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
	}
	if err := server.Unmount(); err != nil {
		return fmt.Errorf("unmount %s: %w", mountpoint, err)
	}
	<-done
	return nil
}

package mount

import (
	"context"
	"flag"
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/middleware"
	witmount "github.com/keshon/wit/internal/mount"
)

type Command struct{}

func (c *Command) Name() string      { return "mount" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "mount <dir>" }
func (c *Command) Brief() string     { return "Mount a read-only view of the repository" }
func (c *Command) Help() string {
	return `Mount the repository at <dir> through FUSE, read-only:

  <dir>/HEAD              current commit id
  <dir>/branches/<name>   commit id of a branch
  <dir>/commits/<id>/     snapshot of a commit
  <dir>/commits/<id>.txt  commit record

Runs until interrupted (Ctrl+C), then unmounts.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("expected a mount point (usage: %s)", c.Usage())
	}
	dir := ctx.Args[0]

	ctx.Out.Info("Mounting at %s. Press Ctrl+C to unmount.", dir)
	return witmount.Serve(context.Background(), dir, ctx.Repo, config.DebugEnabled())
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithRepository(),
		),
	)
}

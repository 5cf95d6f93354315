package rm

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "rm" }
func (c *Command) Aliases() []string { return []string{"remove"} }
func (c *Command) Usage() string     { return "rm <file|dir>..." }
func (c *Command) Brief() string     { return "Remove paths from the staging area" }
func (c *Command) Help() string {
	return `Remove files or directories from the staging area only.
The working tree is not touched.

Usage:
  rm <path>  - unstage a file, or a directory after confirmation`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return fmt.Errorf("nothing specified, nothing removed (usage: %s)", c.Usage())
	}

	r := ctx.Repo
	for _, arg := range ctx.Args {
		rel, err := r.Rel(ctx.WorkDir, arg)
		if err != nil {
			return err
		}
		if err := r.Store.StagingCtx.Remove(rel); err != nil {
			return err
		}
		ctx.Out.Success("%s removed from the staging area.", filepath.ToSlash(rel))
	}
	return nil
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

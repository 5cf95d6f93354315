package add

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "add" }
func (c *Command) Aliases() []string { return []string{"a"} }
func (c *Command) Usage() string     { return "add <file|dir|.>..." }
func (c *Command) Brief() string     { return "Stage files or directories for the next commit" }
func (c *Command) Help() string {
	return `Copy files or directories from the working tree into the staging area.

Usage:
  add <path>  - stage a file or a directory (recursively)
  add .       - stage the whole working tree

Overwriting a file that is already staged asks for confirmation.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return fmt.Errorf("nothing specified, nothing added (usage: %s)", c.Usage())
	}

	r := ctx.Repo
	for _, arg := range ctx.Args {
		rel, err := r.Rel(ctx.WorkDir, arg)
		if err != nil {
			return err
		}
		added, err := r.Store.StagingCtx.Add(rel)
		if err != nil {
			return err
		}
		if !added {
			ctx.Out.Info("Copy of %s aborted by user.", filepath.ToSlash(rel))
			continue
		}
		ctx.Out.Success("%s added to staging area.", filepath.ToSlash(rel))
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

package checkout

import (
	"flag"
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "checkout" }
func (c *Command) Aliases() []string { return []string{"co"} }
func (c *Command) Usage() string     { return "checkout <branch|commit-id>" }
func (c *Command) Brief() string     { return "Switch the working tree to a branch or commit" }
func (c *Command) Help() string {
	return `Restore a branch or a commit into the working tree and the staging area.

Usage:
  checkout <branch>     - switch to a branch and make it active
  checkout <commit-id>  - move HEAD to a commit; no branch stays active

Refused while anything is staged or modified. Untracked files are never overwritten.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("expected exactly one target (usage: %s)", c.Usage())
	}

	id, branch, err := ctx.Repo.Checkout(ctx.Args[0])
	if err != nil {
		return err
	}
	if branch != "" {
		ctx.Out.Success("Switched to branch %q at %s.", branch, id)
		return nil
	}
	ctx.Out.Success("HEAD is now at %s.", id)
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithRepository(),
			middleware.WithReferenceCheck(),
		),
	)
}

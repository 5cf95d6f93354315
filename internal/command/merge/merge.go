package merge

import (
	"flag"
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "merge" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "merge <branch|commit-id>" }
func (c *Command) Brief() string     { return "Merge a branch or commit into HEAD" }
func (c *Command) Help() string {
	return `Bring the changes made on a branch (or commit) since the common ancestor
into HEAD and record them as a merge commit with two parents.

Files changed on one side only are taken from that side. Text files changed
on both sides are reconciled line by line; a line changed differently on both
sides is a conflict and nothing is written.

Usage:
  merge <branch>
  merge <commit-id>`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("expected exactly one source (usage: %s)", c.Usage())
	}

	res, err := ctx.Repo.Merge(ctx.Args[0])
	if res != nil {
		ctx.Out.List(fmt.Sprintf("Changed/added files merged to commit %s:", res.Commit.ID), res.Plan.Paths())
		for _, p := range res.Kept {
			ctx.Out.Warn("%s has local changes; merged version is staged only", p)
		}
	}
	return err
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

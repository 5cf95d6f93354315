package branch

import (
	"flag"
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "branch" }
func (c *Command) Aliases() []string { return []string{"br"} }
func (c *Command) Usage() string     { return "branch [<branch-name>]" }
func (c *Command) Brief() string     { return "List all branches or create a new one" }

func (c *Command) Help() string {
	return `List all branches or create a new one.

Usage:
  branch        - list all branches (active one marked with '*')
  branch <name> - create a branch pointing at the current commit`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	r := ctx.Repo

	// case 1: create new branch
	if len(ctx.Args) > 0 {
		name := ctx.Args[0]
		b, err := r.CreateBranch(name)
		if err != nil {
			return fmt.Errorf("create branch %q: %w", name, err)
		}
		ctx.Out.Success("Branch %q created at %s.", b.Name, b.ID)
		return nil
	}

	// case 2: list branches
	branches, active, err := r.ListBranches()
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		ctx.Out.Info("No branches yet (the first commit creates %q).", active)
		return nil
	}
	for _, b := range branches {
		if b.Name == active {
			ctx.Out.Print("* %s %s\n", ctx.Out.Styles.Success.Render(b.Name), ctx.Out.Styles.Dim.Render(b.ID))
			continue
		}
		ctx.Out.Print("  %s %s\n", b.Name, ctx.Out.Styles.Dim.Render(b.ID))
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

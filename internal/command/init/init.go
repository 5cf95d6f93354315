package init

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
	"github.com/keshon/wit/internal/repo/meta"
)

type Command struct{}

func (c *Command) Name() string      { return "init" }
func (c *Command) Aliases() []string { return []string{"initialize"} }
func (c *Command) Usage() string     { return "init [-b <branch>] [-q]" }
func (c *Command) Brief() string     { return "Initialize a new repository" }
func (c *Command) Help() string {
	return `Initialize a new repository in the current directory.

Options:
  -b <name>   Initial branch name (default: master).
  -q          Suppress normal output.

Usage:
  wit init
  wit init -b main`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.String("b", config.DefaultBranch, "initial branch name")
	fs.Bool("q", false, "suppress normal output")
}

func (c *Command) Run(ctx *command.Context) error {
	branch := ctx.Flags.Lookup("b").Value.String()
	quiet := ctx.Flags.Lookup("q").Value.(flag.Getter).Get().(bool)

	if err := meta.ValidateBranchName(branch); err != nil {
		return fmt.Errorf("initial branch %q: %w", branch, err)
	}
	cfg := config.Default()
	cfg.DefaultBranch = branch

	r, err := repo.Init(ctx.WorkDir, cfg)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			if !quiet {
				ctx.Out.Info("Repository already exists in %q, nothing to do.", ctx.WorkDir)
			}
			return nil
		}
		return err
	}

	if !quiet {
		ctx.Out.Success("Initialized empty repository in %q", r.Paths.Meta)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}

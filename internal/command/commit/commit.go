package commit

import (
	"flag"
	"fmt"
	"strings"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "commit" }
func (c *Command) Brief() string { return "Record the staging area as a new commit" }
func (c *Command) Usage() string { return `commit <message> | commit -m "<message>"` }
func (c *Command) Help() string {
	return `Create a new commit from the staging area and advance the active branch.

Usage:
  commit <message>       - commit with the given message
  commit -m "<message>"  - same, message given as a flag

Nothing is committed when the staging area matches the last commit.`
}
func (c *Command) Aliases() []string              { return []string{"ci"} }
func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.String("m", "", "commit message")
}

func (c *Command) Run(ctx *command.Context) error {
	message := ctx.Flags.Lookup("m").Value.String()
	if message == "" {
		message = strings.Join(ctx.Args, " ")
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("commit message required (usage: %s)", c.Usage())
	}

	commit, err := ctx.Repo.Commit(message)
	if err != nil {
		return err
	}
	ctx.Out.Success("Commit %s created.", commit.ID)
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

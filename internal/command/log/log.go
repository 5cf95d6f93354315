package log

import (
	"flag"
	"strings"
	"time"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/output"
	"github.com/keshon/wit/internal/repo/meta"
)

type Command struct{}

func (c *Command) Name() string      { return "log" }
func (c *Command) Aliases() []string { return []string{"commits"} }
func (c *Command) Usage() string     { return "log [options] [branch|commit-id]" }
func (c *Command) Brief() string     { return "Show commit history (HEAD by default)" }
func (c *Command) Help() string {
	return `Show the commits reachable from HEAD, or from the given branch or commit.

Options:
      --oneline   Show each commit as a single line (ID + message).
  -n <count>      Limit to the first N commits.

Examples:
  wit log
  wit log --oneline -n 10
  wit log dev`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.Bool("oneline", false, "show each commit on one line")
	fs.Int("n", 0, "limit number of commits")
}

func (c *Command) Run(ctx *command.Context) error {
	oneline := ctx.Flags.Lookup("oneline").Value.(flag.Getter).Get().(bool)
	n := ctx.Flags.Lookup("n").Value.(flag.Getter).Get().(int)

	var (
		commits []*meta.Commit
		err     error
	)
	if len(ctx.Args) > 0 {
		commits, err = ctx.Repo.LogFrom(ctx.Args[0])
	} else {
		commits, err = ctx.Repo.Log()
	}
	if err != nil {
		return err
	}

	if n > 0 && n < len(commits) {
		commits = commits[:n]
	}
	Print(ctx.Out, commits, oneline)
	return nil
}

// Print renders commits in history order.
func Print(p *output.Printer, commits []*meta.Commit, oneline bool) {
	if oneline {
		for _, c := range commits {
			p.Print("%s %s\n", p.Styles.Key.Render(c.ID), c.Message)
		}
		return
	}
	for _, c := range commits {
		p.KeyValue("Commit", c.ID, 6)
		if len(c.Parents) > 0 {
			p.KeyValue("Parent", strings.Join(c.Parents, " "), 6)
		}
		p.KeyValue("Date", c.Date.Format(time.ANSIC), 6)
		p.Println()
		p.Print("    %s\n\n", c.Message)
	}
	p.Print("Total commits: %d\n", len(commits))
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

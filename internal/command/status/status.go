package status

import (
	"flag"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/output"
	"github.com/keshon/wit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "status" }
func (c *Command) Aliases() []string { return []string{"st"} }
func (c *Command) Usage() string     { return "status [-s]" }
func (c *Command) Brief() string     { return "Show working tree and staging area status" }

func (c *Command) Help() string {
	return `Show the current commit and three change sets:

  Changes to commit              staging differs from the last commit
  Changes not staged for commit  working tree differs from staging
  Untracked files                present in the working tree only

Options:
  -s   Short output, one "XY path" line per entry (S = staged, M = modified, ?? = untracked).`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.Bool("s", false, "short output")
}

func (c *Command) Run(ctx *command.Context) error {
	short := ctx.Flags.Lookup("s").Value.(flag.Getter).Get().(bool)

	st, err := ctx.Repo.Status()
	if err != nil {
		return err
	}
	if short {
		Short(ctx.Out, st)
		return nil
	}
	Long(ctx.Out, st)
	return nil
}

// Long prints the full status report.
func Long(p *output.Printer, st repo.Status) {
	switch {
	case st.Branch != "":
		p.KeyValue("On branch", st.Branch, 9)
	case st.HasCommit:
		p.KeyValue("Detached", st.Head, 9)
	}
	if !st.HasCommit {
		p.Info("No commit was found.")
		return
	}
	p.KeyValue("Commit ID", st.Head, 9)
	p.Println()
	p.List("Changes to commit:", st.Staged)
	p.List("Changes not staged for commit:", st.Unstaged)
	p.List("Untracked files:", st.Untracked)
}

// Short prints one line per path.
func Short(p *output.Printer, st repo.Status) {
	for _, path := range st.Staged {
		p.Print("%s  %s\n", p.Styles.Success.Render("S"), path)
	}
	for _, path := range st.Unstaged {
		p.Print("%s  %s\n", p.Styles.Warning.Render("M"), path)
	}
	for _, path := range st.Untracked {
		p.Print("%s %s\n", p.Styles.Error.Render("??"), path)
	}
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

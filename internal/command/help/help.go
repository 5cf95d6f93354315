package help

import (
	"flag"
	"fmt"
	"strings"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/output"
)

type Command struct{}

func (c *Command) Name() string      { return "help" }
func (c *Command) Aliases() []string { return []string{"h", "?"} }
func (c *Command) Usage() string     { return "help [command]" }
func (c *Command) Brief() string     { return "Show help for commands" }
func (c *Command) Help() string {
	return `Display help information for commands.

Usage:
  help          List all commands.
  help <name>   Show detailed help for a specific command.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) > 0 {
		return runCommandHelp(ctx.Out, strings.ToLower(ctx.Args[0]))
	}
	runListAllCommands(ctx.Out)
	return nil
}

// runCommandHelp shows detailed help for a specific command
func runCommandHelp(p *output.Printer, name string) error {
	cmd, ok := command.GetCommand(name)
	if !ok {
		return fmt.Errorf("%w: %q", command.ErrUnknownCommand, name)
	}

	if usage := cmd.Usage(); usage != "" {
		p.Print("%s wit %s\n\n", p.Styles.Dim.Render("Usage:"), usage)
	}
	p.Print("%s\n\n", cmd.Help())

	if aliases := cmd.Aliases(); len(aliases) > 0 {
		p.Print("Aliases: %s\n", strings.Join(aliases, ", "))
	}
	return nil
}

// runListAllCommands lists all commands in a Git-style layout
func runListAllCommands(p *output.Printer) {
	commands := command.AllCommands()

	p.Print("Available commands:\n\n")
	longest := 0
	for _, cmd := range commands {
		if l := len(cmd.Name()); l > longest {
			longest = l
		}
	}

	for _, cmd := range commands {
		name := cmd.Name()
		desc := cmd.Brief()
		if desc == "" {
			desc = "-"
		}

		padding := strings.Repeat(" ", longest-len(name)+2)
		p.Print("  %s%s%s\n", p.Styles.Bold.Render(name), padding, desc)
	}

	p.Println("\nType 'wit help <command>' to see detailed information about a specific command.")
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}

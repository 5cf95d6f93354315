package command

import (
	"flag"
	"io"

	"github.com/keshon/wit/internal/output"
	"github.com/keshon/wit/internal/prompt"
	"github.com/keshon/wit/internal/repo"
)

// Command represents a cli command
type Command interface {
	Name() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Subcommands() []Command
	Flags(fs *flag.FlagSet)
	Run(ctx *Context) error
}

// Context carries everything a command needs for one invocation.
type Context struct {
	Args    []string
	Flags   *flag.FlagSet
	WorkDir string
	Out     *output.Printer
	Stderr  io.Writer
	Confirm prompt.Confirmer
	// Repo is set by middleware.WithRepository.
	Repo *repo.Repository
}

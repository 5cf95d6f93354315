package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/logger"
	"github.com/keshon/wit/internal/output"
	"github.com/keshon/wit/internal/prompt"
)

// Runner executes one command line against the given process streams.
type Runner struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	WorkDir string
	// Confirm overrides the prompt built from Stdin and Stdout.
	Confirm prompt.Confirmer
}

// RunCLI is the main entrypoint for executing commands. It returns the
// process exit status.
func RunCLI(args []string) int {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	r := &Runner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, WorkDir: wd}
	return r.Run(args)
}

// Run parses arguments, resolves subcommands, applies flags, and runs the
// target command. Failures are printed, appended to the diagnostic log and
// turned into exit status 1.
func (r *Runner) Run(args []string) int {
	logger.Setup(r.Stderr, config.DebugEnabled())
	out := output.NewPrinter(r.Stdout, output.IsTTY(r.Stdout)).WithStderr(r.Stderr)

	if len(args) == 0 {
		args = []string{"help"}
	}
	node, remaining, err := ResolveCommand(args)
	if err != nil {
		out.Error(fmt.Errorf("%w: %q (see \"wit help\")", err, args[0]))
		return 1
	}
	cmd := node.Cmd

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(r.Stderr)
	cmd.Flags(fs)
	if err := fs.Parse(remaining); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		out.Error(err)
		return 1
	}

	confirm := r.Confirm
	if confirm == nil {
		confirm = prompt.New(r.Stdin, r.Stdout)
	}
	ctx := &Context{
		Args:    fs.Args(),
		Flags:   fs,
		WorkDir: r.WorkDir,
		Out:     out,
		Stderr:  r.Stderr,
		Confirm: confirm,
	}
	return r.report(ctx, cmd.Run(ctx))
}

func (r *Runner) report(ctx *Context, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errs.ErrNoChange):
		ctx.Out.Info("No changes made since the last commit. Commit aborted.")
		return 0
	case errors.Is(err, errs.ErrAborted):
		ctx.Out.Info("Aborted by user.")
		return 0
	}

	log.Debug().Err(err).Msg("command failed")
	ctx.Out.Error(err)
	d := logger.NewDiagnostic(r.diagnosticPath(ctx))
	d.Stderr = r.Stderr
	d.Record(err)
	return 1
}

// diagnosticPath prefers the repository's log file and falls back to the
// working directory when no repository is involved.
func (r *Runner) diagnosticPath(ctx *Context) string {
	if ctx.Repo != nil {
		return ctx.Repo.LogPath()
	}
	if root := config.FindRoot(r.WorkDir); root != "" {
		return filepath.Join(root, config.RepoDir, config.DefaultLogFile)
	}
	return filepath.Join(r.WorkDir, config.DefaultLogFile)
}

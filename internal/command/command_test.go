package command

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/prompt"
)

type fakeCmd struct {
	name    string
	aliases []string
	subs    []Command
	run     func(ctx *Context) error
	got     *Context
}

func (f *fakeCmd) Name() string           { return f.name }
func (f *fakeCmd) Aliases() []string      { return f.aliases }
func (f *fakeCmd) Usage() string          { return f.name }
func (f *fakeCmd) Brief() string          { return "" }
func (f *fakeCmd) Help() string           { return "" }
func (f *fakeCmd) Subcommands() []Command { return f.subs }
func (f *fakeCmd) Flags(fs *flag.FlagSet) { fs.Bool("x", false, "") }
func (f *fakeCmd) Run(ctx *Context) error {
	f.got = ctx
	if f.run != nil {
		return f.run(ctx)
	}
	return nil
}

func TestTree_ResolveAliasesAndSubcommands(t *testing.T) {
	sub := &fakeCmd{name: "list"}
	parent := &fakeCmd{name: "remote", aliases: []string{"rem"}, subs: []Command{sub}}
	tr := NewTree()
	tr.Register(parent)

	node, rest, err := tr.Resolve([]string{"rem", "list", "arg"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if node.Cmd != sub || len(rest) != 1 || rest[0] != "arg" {
		t.Fatalf("got %v %v", node.Cmd.Name(), rest)
	}

	if _, _, err := tr.Resolve([]string{"nope"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if c, ok := tr.Get("remote"); !ok || c != parent {
		t.Fatal("Get by name failed")
	}
}

func TestApplyMiddlewares_Order(t *testing.T) {
	var trace []string
	mw := func(name string) Middleware {
		return func(cmd Command) Command {
			return &WrappedCommand{Command: cmd, Wrap: func(ctx *Context) error {
				trace = append(trace, name)
				return cmd.Run(ctx)
			}}
		}
	}
	base := &fakeCmd{name: "base", run: func(*Context) error {
		trace = append(trace, "run")
		return nil
	}}

	cmd := ApplyMiddlewares(base, mw("outer"), mw("inner"))
	if err := cmd.Run(&Context{}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(trace, ",") != "outer,inner,run" {
		t.Fatalf("trace = %v", trace)
	}
	if cmd.Name() != "base" {
		t.Fatal("wrapped command must keep its name")
	}
}

func newRunner(t *testing.T) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	return &Runner{
		Stdin:   strings.NewReader(""),
		Stdout:  &out,
		Stderr:  &errOut,
		WorkDir: t.TempDir(),
		Confirm: prompt.Always(true),
	}, &out, &errOut
}

func TestRunner_Success(t *testing.T) {
	cmd := &fakeCmd{name: "test-ok"}
	RegisterCommand(cmd)
	r, _, _ := newRunner(t)

	if code := r.Run([]string{"test-ok", "-x", "a", "b"}); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if got := cmd.got.Args; len(got) != 2 || got[0] != "a" {
		t.Fatalf("args = %v", got)
	}
	if cmd.got.WorkDir != r.WorkDir || cmd.got.Confirm == nil {
		t.Fatalf("context not filled: %+v", cmd.got)
	}
}

func TestRunner_FailureIsReportedAndLogged(t *testing.T) {
	RegisterCommand(&fakeCmd{name: "test-fail", run: func(*Context) error {
		return errs.ErrMergeConflict
	}})
	r, _, errOut := newRunner(t)

	if code := r.Run([]string{"test-fail"}); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(errOut.String(), "Error: merge conflict") {
		t.Fatalf("stderr = %q", errOut.String())
	}
	data, err := os.ReadFile(filepath.Join(r.WorkDir, "wit_log.txt"))
	if err != nil {
		t.Fatalf("diagnostic log: %v", err)
	}
	if !strings.Contains(string(data), "merge conflict") {
		t.Fatalf("log = %q", data)
	}
}

func TestRunner_NoChangeIsInformational(t *testing.T) {
	RegisterCommand(&fakeCmd{name: "test-nochange", run: func(*Context) error {
		return errs.ErrNoChange
	}})
	r, out, errOut := newRunner(t)

	if code := r.Run([]string{"test-nochange"}); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "No changes") || errOut.Len() != 0 {
		t.Fatalf("stdout=%q stderr=%q", out.String(), errOut.String())
	}
	if _, err := os.Stat(filepath.Join(r.WorkDir, "wit_log.txt")); !os.IsNotExist(err) {
		t.Fatal("informational result must not be logged")
	}
}

func TestRunner_UnknownCommandAndBadFlag(t *testing.T) {
	RegisterCommand(&fakeCmd{name: "test-flags"})
	r, _, errOut := newRunner(t)

	if code := r.Run([]string{"definitely-not-a-command"}); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(errOut.String(), "unknown command") {
		t.Fatalf("stderr = %q", errOut.String())
	}
	if code := r.Run([]string{"test-flags", "--bogus"}); code != 1 {
		t.Fatalf("exit %d", code)
	}
}

func TestAllCommands_SortedAndUnique(t *testing.T) {
	RegisterCommand(&fakeCmd{name: "test-zz", aliases: []string{"test-z"}})
	RegisterCommand(&fakeCmd{name: "test-aa"})

	var names []string
	for _, c := range AllCommands() {
		names = append(names, c.Name())
	}
	count := 0
	for i, n := range names {
		if i > 0 && names[i-1] > n {
			t.Fatalf("not sorted: %v", names)
		}
		if n == "test-zz" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("aliased command listed %d times", count)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/prompt"
)

type cli struct {
	root string
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (c *cli) run(t *testing.T, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	r := &command.Runner{
		Stdin:   strings.NewReader(""),
		Stdout:  &out,
		Stderr:  &errOut,
		WorkDir: c.root,
		Confirm: prompt.Always(true),
	}
	code := r.Run(args)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func (c *cli) ok(t *testing.T, args ...string) string {
	t.Helper()
	res := c.run(t, args...)
	require.Equal(t, 0, res.code, "wit %v: %s", args, res.stderr)
	return res.stdout
}

func (c *cli) write(t *testing.T, rel, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(c.root, rel), []byte(content), 0o644))
}

var commitLine = regexp.MustCompile(`Commit (\S+) created\.`)

func (c *cli) commit(t *testing.T, msg string) string {
	t.Helper()
	out := c.ok(t, "commit", "-m", msg)
	m := commitLine.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestCLI_Workflow(t *testing.T) {
	c := &cli{root: t.TempDir()}

	assert.Contains(t, c.ok(t, "init"), "Initialized empty repository")
	assert.DirExists(t, filepath.Join(c.root, ".wit", "images"))
	assert.Contains(t, c.ok(t, "status"), "No commit was found.")

	c.write(t, "a.txt", "alpha\n")
	assert.Contains(t, c.ok(t, "add", "a.txt"), "a.txt added to staging area.")
	first := c.commit(t, "first")

	res := c.run(t, "commit", "again")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "No changes made since the last commit")

	c.ok(t, "branch", "dev")
	branches := c.ok(t, "branch")
	assert.Contains(t, branches, "* master "+first)
	assert.Contains(t, branches, "  dev "+first)

	c.write(t, "b.txt", "bravo\n")
	c.ok(t, "add", "b.txt")
	c.commit(t, "second")

	assert.Contains(t, c.ok(t, "checkout", "dev"), `Switched to branch "dev"`)
	c.write(t, "c.txt", "charlie\n")
	c.ok(t, "add", "c.txt")
	c.commit(t, "on dev")

	c.ok(t, "checkout", "master")
	merged := c.ok(t, "merge", "dev")
	assert.Contains(t, merged, "Changed/added files merged to commit")
	assert.Contains(t, merged, "  c.txt\n")

	log := c.ok(t, "log", "--oneline")
	assert.Contains(t, log, "Merge of ")
	assert.Contains(t, log, " first\n")

	short := c.ok(t, "status", "-s")
	assert.NotContains(t, short, "S  ")
}

func TestCLI_FailuresAreReportedAndLogged(t *testing.T) {
	c := &cli{root: t.TempDir()}

	res := c.run(t, "status")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "no wit repository found")

	c.ok(t, "init")
	c.write(t, "a.txt", "1\n")
	c.ok(t, "add", "a.txt")
	c.commit(t, "one")
	c.ok(t, "branch", "dev")

	c.write(t, "a.txt", "2\n")
	res = c.run(t, "checkout", "dev")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "uncommitted changes")

	data, err := os.ReadFile(filepath.Join(c.root, ".wit", "wit_log.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "uncommitted changes")

	res = c.run(t, "merge", "nowhere")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "commit not found")
}

func TestCLI_RemoveAndHelp(t *testing.T) {
	c := &cli{root: t.TempDir()}
	c.ok(t, "init")
	c.write(t, "a.txt", "1\n")
	c.ok(t, "add", ".")

	assert.Contains(t, c.ok(t, "rm", "a.txt"), "a.txt removed from the staging area.")
	res := c.run(t, "rm", "a.txt")
	assert.Equal(t, 1, res.code)

	help := c.ok(t)
	for _, name := range []string{"add", "branch", "checkout", "commit", "init", "log", "merge", "mount", "rm", "status"} {
		assert.Contains(t, help, "  "+name)
	}
	assert.Contains(t, c.ok(t, "help", "merge"), "Usage: wit merge <branch|commit-id>")
}

package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func containsANSI(s string) bool {
	return bytes.Contains([]byte(s), []byte("\033["))
}

func TestIsTTY_Buffer(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestPrinter_PlainWhenNotTTY(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, false).WithStderr(&errOut)

	p.Success("Commit %s created.", "abc")
	p.List("Untracked files:", []string{"a.txt"})
	p.List("Changes to commit:", nil)
	p.KeyValue("HEAD", "abc", 6)
	p.Error(errors.New("boom"))
	p.Warn("careful")

	assert.Equal(t,
		"Commit abc created.\nUntracked files:\n  a.txt\nChanges to commit:\n  (none)\nHEAD:   abc\n",
		out.String())
	assert.Equal(t, "Error: boom\nWarning: careful\n", errOut.String())
	assert.False(t, containsANSI(out.String()+errOut.String()))
}

func TestPrinter_ColorStyles(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, true)
	assert.True(t, p.IsTTY())
	assert.NotEqual(t, lipgloss.NewStyle().GetForeground(), p.Styles.Error.GetForeground())

	plain := NewPrinter(&bytes.Buffer{}, false)
	assert.Equal(t, lipgloss.NewStyle().GetForeground(), plain.Styles.Error.GetForeground())
}

package prompt

import (
	"bytes"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlways(t *testing.T) {
	ok, err := Always(true).Confirm("?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Always(false).Confirm("?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLine(t *testing.T) {
	var out bytes.Buffer
	l := NewLine(strings.NewReader("y\nno\n YES \n"), &out)

	for _, want := range []bool{true, false, true, false} {
		got, err := l.Confirm("Overwrite?")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Contains(t, out.String(), "Overwrite? [y/N] ")
}

func TestNew_NonTerminalUsesLine(t *testing.T) {
	c := New(strings.NewReader(""), &bytes.Buffer{})
	_, ok := c.(*Line)
	assert.True(t, ok)
}

func TestNew_RegularFileUsesLine(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "answers")
	require.NoError(t, err)
	defer f.Close()

	c := New(f, f)
	_, ok := c.(*Line)
	assert.True(t, ok)
}

func press(m model, k tea.KeyMsg) (model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(model), cmd
}

func TestModel(t *testing.T) {
	m, cmd := press(newModel("Remove dir?"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.True(t, m.done)
	assert.True(t, m.answer)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Remove dir? yes\n", m.View())

	m, _ = press(newModel("Remove dir?"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.done)
	assert.False(t, m.answer)

	m, _ = press(newModel("Remove dir?"), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.aborted)

	m, cmd = press(newModel("Remove dir?"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, m.done)
	assert.Nil(t, cmd)
	assert.Equal(t, "Remove dir? [y/N] ", m.View())
}

// Package prompt asks the user yes/no questions. On a terminal the question
// is rendered with bubbletea and answered with a single key; otherwise one
// line is read from the input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/output"
)

// Confirmer answers a yes/no question. The staging area asks one before
// overwriting a staged file or removing a staged directory.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Always answers every question with the same value.
type Always bool

func (a Always) Confirm(string) (bool, error) { return bool(a), nil }

// New picks the interactive prompt when both ends are terminals and the
// line prompt otherwise.
func New(in io.Reader, out io.Writer) Confirmer {
	if f, ok := in.(*os.File); ok && output.IsTTY(f) && output.IsTTY(out) {
		return &Interactive{In: in, Out: out}
	}
	return NewLine(in, out)
}

// Line reads answers one line at a time. End of input declines.
type Line struct {
	r   *bufio.Reader
	out io.Writer
}

func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{r: bufio.NewReader(in), out: out}
}

func (l *Line) Confirm(question string) (bool, error) {
	fmt.Fprintf(l.out, "%s [y/N] ", question)
	s, err := l.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && s == "" {
		fmt.Fprintln(l.out)
	}
	return yes(s), nil
}

func yes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// Interactive runs a small bubbletea program per question.
type Interactive struct {
	In  io.Reader
	Out io.Writer
}

func (p *Interactive) Confirm(question string) (bool, error) {
	final, err := tea.NewProgram(newModel(question), tea.WithInput(p.In), tea.WithOutput(p.Out)).Run()
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	m := final.(model)
	if m.aborted {
		return false, errs.ErrAborted
	}
	return m.answer, nil
}

type model struct {
	question string
	answer   bool
	done     bool
	aborted  bool
}

func newModel(question string) model { return model{question: question} }

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.answer, m.done = true, true
	case "n", "N", "enter", "esc":
		m.done = true
	case "ctrl+c":
		m.aborted, m.done = true, true
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m model) View() string {
	if !m.done {
		return m.question + " [y/N] "
	}
	if m.answer {
		return m.question + " yes\n"
	}
	return m.question + " no\n"
}

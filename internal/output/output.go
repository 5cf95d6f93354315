// Package output renders command results for humans. Colors are enabled only
// when the writer is a terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used by a Printer.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Title   lipgloss.Style
	Key     lipgloss.Style
}

func newStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Printer writes results to w and errors to errW.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	isTTY  bool
	Styles Styles
}

func NewPrinter(w io.Writer, isTTY bool) *Printer {
	return &Printer{w: w, errW: w, isTTY: isTTY, Styles: newStyles(isTTY)}
}

// Stdout returns a printer on os.Stdout with errors on os.Stderr.
func Stdout() *Printer {
	return NewPrinter(os.Stdout, IsTTY(os.Stdout)).WithStderr(os.Stderr)
}

// WithStderr sets a separate writer for errors and warnings.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

func (p *Printer) IsTTY() bool { return p.isTTY }

// Writer exposes the result writer for callers that stream text.
func (p *Printer) Writer() io.Writer { return p.w }

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.Styles.Success.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, fmt.Sprintf(format, args...))
}

func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.errW, "%s: %s\n", p.Styles.Warning.Render("Warning"), fmt.Sprintf(format, args...))
}

func (p *Printer) Error(err error) {
	fmt.Fprintf(p.errW, "%s: %v\n", p.Styles.Error.Render("Error"), err)
}

func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.w, args...)
}

// KeyValue prints an aligned "key: value" line.
func (p *Printer) KeyValue(key, value string, width int) {
	pad := ""
	if n := width - len(key); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(p.w, "%s:%s %s\n", p.Styles.Key.Render(key), pad, value)
}

// List prints a titled list of items, or "(none)" when empty.
func (p *Printer) List(title string, items []string) {
	fmt.Fprintln(p.w, p.Styles.Title.Render(title))
	if len(items) == 0 {
		fmt.Fprintf(p.w, "  %s\n", p.Styles.Dim.Render("(none)"))
		return
	}
	for _, it := range items {
		fmt.Fprintf(p.w, "  %s\n", it)
	}
}

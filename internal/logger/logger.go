// Package logger wires zerolog for wit: a console debug logger on stderr and
// the append-only diagnostic log kept inside the repository.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global debug logger. With debug off only warnings and
// errors reach stderr.
func Setup(w io.Writer, debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// Diagnostic appends one line per failure to a log file:
//
//	<ANSI C timestamp> <error description>
type Diagnostic struct {
	Path   string
	Stderr io.Writer
	Now    func() time.Time
}

func NewDiagnostic(path string) *Diagnostic {
	return &Diagnostic{Path: path, Stderr: os.Stderr, Now: time.Now}
}

// Record writes err to the diagnostic log. A failure to write is reported on
// Stderr only; the caller keeps reporting its original error.
func (d *Diagnostic) Record(err error) {
	if d == nil || err == nil || d.Path == "" {
		return
	}
	if werr := d.append(err.Error()); werr != nil {
		fmt.Fprintf(d.stderr(), "wit: cannot write diagnostic log %s: %v\n", d.Path, werr)
	}
}

func (d *Diagnostic) append(msg string) error {
	f, err := os.OpenFile(d.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open for append: %w", err)
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	w := zerolog.ConsoleWriter{
		Out:        f,
		NoColor:    true,
		TimeFormat: time.ANSIC,
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.MessageFieldName},
	}
	l := zerolog.New(w)
	l.Log().Time(zerolog.TimestampFieldName, now()).Msg(msg)

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("append fsync: %w", err)
	}
	return f.Close()
}

func (d *Diagnostic) stderr() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}

package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color codes
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"
	Red   = "\033[31m"
	Green = "\033[32m"
	Cyan  = "\033[36m"
)

// Printer writes the human readable diagnostic lines of a run.
type Printer struct {
	Out      io.Writer
	Err      io.Writer
	UseColor bool
}

// NewPrinter returns a Printer that colors its output when err is a terminal
// and NO_COLOR is not set.
func NewPrinter(out, err io.Writer) *Printer {
	return &Printer{Out: out, Err: err, UseColor: ColorSupported(err)}
}

// ColorSupported reports whether w is a terminal that should receive colors.
func ColorSupported(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) paint(color, msg string) string {
	if !p.UseColor {
		return msg
	}
	return color + msg + Reset
}

// Info prints a plain line on the output stream.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.Out, msg)
}

// Field prints "label value" on the output stream with a highlighted value.
func (p *Printer) Field(label, value string) {
	fmt.Fprintf(p.Out, "%s %s\n", label, p.paint(Cyan, value))
}

// Success prints a status line in green on the output stream.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.Out, p.paint(Green, msg))
}

// Failure prints a status line in red on the error stream.
func (p *Printer) Failure(msg string) {
	fmt.Fprintln(p.Err, p.paint(Bold+Red, msg))
}

// Detail prints a secondary line on the error stream.
func (p *Printer) Detail(msg string) {
	fmt.Fprintln(p.Err, msg)
}

// Detailf is the formatted variant of Detail.
func (p *Printer) Detailf(format string, args ...interface{}) {
	fmt.Fprintf(p.Err, format+"\n", args...)
}

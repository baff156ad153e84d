// Package progress writes human-readable stage messages for batch commands.
package progress

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Reporter prints stage and detail lines with locale-aware number formatting.
type Reporter struct {
	out     io.Writer
	printer *message.Printer
}

// New returns a Reporter writing to out. A nil out discards all output.
func New(out io.Writer) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{out: out, printer: message.NewPrinter(language.English)}
}

// Writer returns the underlying destination.
func (r *Reporter) Writer() io.Writer {
	if r == nil {
		return io.Discard
	}
	return r.out
}

// Stepf prints a top-level progress line.
func (r *Reporter) Stepf(format string, args ...any) {
	if r == nil {
		return
	}
	_, _ = r.printer.Fprintf(r.out, format+"\n", args...)
}

// Detailf prints an indented progress line under the current step.
func (r *Reporter) Detailf(format string, args ...any) {
	if r == nil {
		return
	}
	_, _ = r.printer.Fprintf(r.out, "  "+format+"\n", args...)
}

// Package output provides consistent CLI output formatting with optional
// color when writing to a terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Writer provides formatted output for the CLI.
type Writer struct {
	out      io.Writer
	useColor bool
}

// New creates a Writer. Color is enabled only when out is the process
// stdout and stdout is a terminal.
func New(out io.Writer) *Writer {
	useColor := false
	if f, ok := out.(*os.File); ok && f == os.Stdout {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{out: out, useColor: useColor}
}

func (w *Writer) render(style lipgloss.Style, s string) string {
	if !w.useColor {
		return s
	}
	return style.Render(s)
}

// Printf writes formatted plain text.
// Write errors are intentionally ignored for console output.
func (w *Writer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format, args...)
}

// Println writes a plain line.
func (w *Writer) Println(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Title writes a bold line.
func (w *Writer) Title(msg string) {
	_, _ = fmt.Fprintln(w.out, w.render(titleStyle, msg))
}

// Score writes a score value in the score color.
func (w *Writer) Score(score float64) string {
	return w.render(scoreStyle, fmt.Sprintf("%.4f", score))
}

// Muted writes secondary information.
func (w *Writer) Muted(msg string) {
	_, _ = fmt.Fprintln(w.out, w.render(mutedStyle, msg))
}

// Success writes a success line.
func (w *Writer) Success(msg string) {
	_, _ = fmt.Fprintln(w.out, w.render(successStyle, msg))
}

// Successf writes a formatted success line.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Error writes an error line.
func (w *Writer) Error(msg string) {
	_, _ = fmt.Fprintln(w.out, w.render(errorStyle, msg))
}

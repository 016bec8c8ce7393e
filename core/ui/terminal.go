// Package ui - Terminal user interface
// Rich CLI output with tables, boxes and colors.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Colors for terminal output
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Line writes s verbatim followed by a newline
func (w *Writer) Line(s string) {
	fmt.Fprintln(w.out, s)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Line("")
	w.Line(w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Line("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Line(w.color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Line(w.color(Green, "✓ ") + msg)
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Line(w.color(Yellow, "⚠ ") + msg)
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Line(w.color(Blue, "ℹ ") + msg)
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Line(w.color(Dim, "  "+msg))
}

// Table renders a table. Widths are measured in terminal cells, so CJK
// text and emoji line up.
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := runewidth.StringWidth(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Width is the rendered width of a line of the table
func (t *Table) Width() int {
	total := 0
	for i, w := range t.widths {
		if i > 0 {
			total += 3
		}
		total += w
	}
	return total
}

// Render prints the table
func (t *Table) Render() {
	t.w.Line(t.w.color(Bold, t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Line(strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Line(t.line(row))
	}
}

func (t *Table) line(cells []string) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = runewidth.FillRight(cell, t.widths[i])
	}
	return strings.TrimRight(strings.Join(padded, " │ "), " ")
}

// Summary renders a boxed list of labelled values
type Summary struct {
	w      *Writer
	title  string
	labels []string
	values []string
}

// NewSummary creates a summary box
func (w *Writer) NewSummary(title string) *Summary {
	return &Summary{w: w, title: title}
}

// Add appends a labelled value; blank values are skipped
func (s *Summary) Add(label, value string) {
	if value == "" {
		return
	}
	s.labels = append(s.labels, label)
	s.values = append(s.values, value)
}

// Render prints the summary box
func (s *Summary) Render() {
	s.w.Header(s.title)

	labelWidth := 0
	for _, l := range s.labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}
	lines := make([]string, len(s.labels))
	inner := 0
	for i := range s.labels {
		lines[i] = "  " + runewidth.FillRight(s.labels[i], labelWidth) + "  " + s.values[i] + "  "
		inner = max(inner, runewidth.StringWidth(lines[i]))
	}

	s.w.Line(s.w.color(Bold, "╭"+strings.Repeat("─", inner)+"╮"))
	for _, l := range lines {
		s.w.Line(s.w.color(Bold, "│") + s.w.color(Green, runewidth.FillRight(l, inner)) + s.w.color(Bold, "│"))
	}
	s.w.Line(s.w.color(Bold, "╰"+strings.Repeat("─", inner)+"╯"))
}

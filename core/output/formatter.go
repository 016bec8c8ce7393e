// Package output provides report writers.
// Each writer serializes the abstract report; none of them change it.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"quote-report/core/report"
	"quote-report/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable terminal table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatCSV is a flat spreadsheet export
	FormatCSV Format = "csv"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report to w
	Render(w io.Writer, r *report.Report) error
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding the given formatters
func NewRegistry(formatters ...Formatter) *Registry {
	reg := &Registry{formatters: make(map[Format]Formatter)}
	for _, f := range formatters {
		// duplicates in a literal list are a programming error
		if err := reg.Register(f); err != nil {
			panic(err)
		}
	}
	return reg
}

// DefaultRegistry holds every built-in formatter. verbosity applies to
// the table formatter (0=quiet, 1=normal, 2=verbose).
func DefaultRegistry(noColor bool, verbosity int) *Registry {
	return NewRegistry(NewTableFormatter(noColor, verbosity), NewJSONFormatter(), NewCSVFormatter())
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeInternal, "formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format name
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[Format(strings.ToLower(name))]
	if !ok {
		return nil, errors.Input(fmt.Sprintf("unknown output format %q (have %s)", name, strings.Join(r.Names(), ", ")))
	}
	return f, nil
}

// Names lists registered format names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

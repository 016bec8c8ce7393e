package report

import (
	"strconv"
)

// CellKind tells a document writer how to store a cell
type CellKind string

const (
	CellText   CellKind = "text"
	CellNumber CellKind = "number"
)

// Cell is a typed cell value
type Cell struct {
	Kind   CellKind `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Number int      `json:"number,omitempty"`
}

// Text returns a text cell
func Text(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// Number returns an integer cell
func Number(n int) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// String renders the cell as display text
func (c Cell) String() string {
	if c.Kind == CellNumber {
		return strconv.Itoa(c.Number)
	}
	return c.Text
}

// RowKind classifies rows of a section
type RowKind string

const (
	// RowBand is the category title spanning every column
	RowBand RowKind = "band"

	// RowHeader holds the column names
	RowHeader RowKind = "header"

	// RowData is one model spec
	RowData RowKind = "data"

	// RowSpacer separates categories
	RowSpacer RowKind = "spacer"
)

// Row is one rendered row
type Row struct {
	Kind  RowKind `json:"kind"`
	Cells []Cell  `json:"cells,omitempty"`

	// Span is the number of columns a band row covers
	Span int `json:"span,omitempty"`
}

// Strings returns the display text of every cell
func (r Row) Strings() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.String()
	}
	return out
}

func textCells(values []string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return cells
}

package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a cell value. Loaders decide the kind once at load
// time so downstream checks compare tags instead of reflecting on the
// runtime value.
type Kind string

const (
	Integer Kind = "integer"
	Float   Kind = "float"
	String  Kind = "string"
	Boolean Kind = "boolean"
	Missing Kind = "missing"
)

// Cell is a single value at a (row, column) position.
type Cell struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func IntCell(v int64) Cell     { return Cell{Kind: Integer, Int: v} }
func FloatCell(v float64) Cell { return Cell{Kind: Float, Float: v} }
func StringCell(v string) Cell { return Cell{Kind: String, Str: v} }
func BoolCell(v bool) Cell     { return Cell{Kind: Boolean, Bool: v} }
func MissingCell() Cell        { return Cell{Kind: Missing} }

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool { return c.Kind == Missing || c.Kind == "" }

// Value returns the cell value as an untyped Go value, nil when missing.
func (c Cell) Value() any {
	switch c.Kind {
	case Integer:
		return c.Int
	case Float:
		return c.Float
	case String:
		return c.Str
	case Boolean:
		return c.Bool
	default:
		return nil
	}
}

// Text renders the cell the way writers serialize it: the empty string
// for a missing cell.
func (c Cell) Text() string {
	switch c.Kind {
	case Integer:
		return fmt.Sprintf("%d", c.Int)
	case Float:
		// Shortest form that parses back to the same float64, so
		// saving never corrupts the value.
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case String:
		return c.Str
	case Boolean:
		return fmt.Sprintf("%t", c.Bool)
	default:
		return ""
	}
}

type Column struct {
	Name  string
	Cells []Cell
}

// Dataset is an in-memory table: named columns of equal length.
type Dataset struct {
	Columns []Column
}

func (d *Dataset) ColumnCount() int { return len(d.Columns) }

func (d *Dataset) RowCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Cells)
}

func (d *Dataset) ColumnNames() []string {
	names := make([]string, 0, len(d.Columns))
	for _, col := range d.Columns {
		names = append(names, col.Name)
	}
	return names
}

// Row returns the cells of row i in column order.
func (d *Dataset) Row(i int) []Cell {
	row := make([]Cell, 0, len(d.Columns))
	for _, col := range d.Columns {
		row = append(row, col.Cells[i])
	}
	return row
}

// Validate enforces the loader contract: every column has the same
// number of cells. The diagnostics engine assumes this already holds.
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return nil
	}
	n := len(d.Columns[0].Cells)
	for _, col := range d.Columns {
		if len(col.Cells) != n {
			return fmt.Errorf("column %q has %d cells, want %d", col.Name, len(col.Cells), n)
		}
	}
	return nil
}

// PlaceholderPrefix is the name prefix loaders use for columns when the
// source had no header row.
const PlaceholderPrefix = "Column_"

// PlaceholderName returns the synthetic header for column index i.
func PlaceholderName(i int) string {
	return fmt.Sprintf("%s%d", PlaceholderPrefix, i)
}

// IsPlaceholderName reports whether a column name came from a loader
// rather than the source file.
func IsPlaceholderName(name string) bool {
	return strings.HasPrefix(name, PlaceholderPrefix)
}

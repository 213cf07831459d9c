package source

import (
	"strconv"
	"strings"

	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

// InferCell classifies one raw text value into a typed cell. The empty
// string is a missing cell. Kinds are tried strictly in the order
// integer, float, boolean, string, so "3" is an integer while "3.5" is
// a float and "three" is a string. strconv is deliberate here: the
// checks need integer and float kept apart, which looser coercion
// helpers blur.
func InferCell(raw string) tabular.Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return tabular.MissingCell()
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return tabular.IntCell(v)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return tabular.FloatCell(v)
	}
	switch strings.ToLower(s) {
	case "true":
		return tabular.BoolCell(true)
	case "false":
		return tabular.BoolCell(false)
	}
	return tabular.StringCell(raw)
}

// headerNames turns a raw header record into column names, assigning
// placeholder names to blank header cells. With noHeader set every
// column gets a placeholder.
func headerNames(record []string, noHeader bool) []string {
	names := make([]string, len(record))
	for i, h := range record {
		h = strings.TrimSpace(h)
		if noHeader || h == "" {
			names[i] = tabular.PlaceholderName(i)
		} else {
			names[i] = h
		}
	}
	return names
}

// datasetFromRecords builds a column-major dataset out of row-major
// records, padding short rows with missing cells so the result is
// rectangular.
func datasetFromRecords(names []string, rows [][]string) *tabular.Dataset {
	ds := &tabular.Dataset{}
	for i, name := range names {
		cells := make([]tabular.Cell, 0, len(rows))
		for _, row := range rows {
			if i < len(row) {
				cells = append(cells, InferCell(row[i]))
			} else {
				cells = append(cells, tabular.MissingCell())
			}
		}
		ds.Columns = append(ds.Columns, tabular.Column{Name: name, Cells: cells})
	}
	return ds
}

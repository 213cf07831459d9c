package diagnose

import (
	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

// Report is the result of one diagnostic run. The per-check pointers
// are nil when the corresponding check was disabled, so callers can
// tell "no issues found" apart from "not checked".
type Report struct {
	RowCount    int      `json:"row_count"`
	ColumnCount int      `json:"column_count"`
	ColumnNames []string `json:"column_names"`

	EmptyColumns   *EmptyColumnsResult   `json:"empty_columns,omitempty"`
	EmptyRows      *EmptyRowsResult      `json:"empty_rows,omitempty"`
	MixedTypes     *MixedTypesResult     `json:"mixed_types,omitempty"`
	MissingHeaders *MissingHeadersResult `json:"missing_headers,omitempty"`
}

// EmptyColumnsResult lists the columns whose every cell is missing, in
// source order. A zero-row dataset reports every column here.
type EmptyColumnsResult struct {
	Columns []string `json:"columns"`
}

// EmptyRowsResult counts the rows whose every cell is missing.
type EmptyRowsResult struct {
	Count int `json:"count"`
}

// MixedTypesResult maps column name to a kind histogram, restricted to
// columns whose non-missing cells span more than one kind.
type MixedTypesResult struct {
	Columns map[string]map[tabular.Kind]int `json:"columns"`
}

// MissingHeadersResult flags datasets where any column carries a
// loader-synthesized placeholder name.
type MissingHeadersResult struct {
	Suspected bool `json:"suspected"`
}

// Diagnose inspects a dataset and runs the enabled checks. It never
// mutates the dataset and is total over any rectangular dataset,
// including zero rows or zero columns.
func Diagnose(ds *tabular.Dataset, checks Checks) *Report {
	report := &Report{
		RowCount:    ds.RowCount(),
		ColumnCount: ds.ColumnCount(),
		ColumnNames: ds.ColumnNames(),
	}

	if checks.EmptyColumns {
		report.EmptyColumns = &EmptyColumnsResult{Columns: emptyColumns(ds)}
	}
	if checks.EmptyRows {
		report.EmptyRows = &EmptyRowsResult{Count: countEmptyRows(ds)}
	}
	if checks.MixedTypes {
		report.MixedTypes = &MixedTypesResult{Columns: mixedTypeColumns(ds)}
	}
	if checks.MissingHeaders {
		report.MissingHeaders = &MissingHeadersResult{Suspected: headersSuspect(ds)}
	}
	return report
}

// emptyColumns returns the names of fully-missing columns. With zero
// rows every column is vacuously empty; that is deliberate, not a
// special case.
func emptyColumns(ds *tabular.Dataset) []string {
	names := []string{}
	for _, col := range ds.Columns {
		if columnEmpty(col) {
			names = append(names, col.Name)
		}
	}
	return names
}

func columnEmpty(col tabular.Column) bool {
	for _, c := range col.Cells {
		if !c.IsMissing() {
			return false
		}
	}
	return true
}

// countEmptyRows counts rows where every cell across all columns is
// missing. A zero-column dataset has no rows, so the count is zero.
func countEmptyRows(ds *tabular.Dataset) int {
	count := 0
	for i := 0; i < ds.RowCount(); i++ {
		if rowEmpty(ds, i) {
			count++
		}
	}
	return count
}

func rowEmpty(ds *tabular.Dataset, i int) bool {
	if len(ds.Columns) == 0 {
		return false
	}
	for _, col := range ds.Columns {
		if !col.Cells[i].IsMissing() {
			return false
		}
	}
	return true
}

// mixedTypeColumns builds a kind histogram per column over non-missing
// cells and keeps the columns where more than one kind occurs. A
// fully-missing column has an empty census and never appears here.
func mixedTypeColumns(ds *tabular.Dataset) map[string]map[tabular.Kind]int {
	mixed := map[string]map[tabular.Kind]int{}
	for _, col := range ds.Columns {
		hist := map[tabular.Kind]int{}
		for _, c := range col.Cells {
			if c.IsMissing() {
				continue
			}
			hist[c.Kind]++
		}
		if len(hist) > 1 {
			mixed[col.Name] = hist
		}
	}
	return mixed
}

func headersSuspect(ds *tabular.Dataset) bool {
	for _, col := range ds.Columns {
		if tabular.IsPlaceholderName(col.Name) {
			return true
		}
	}
	return false
}

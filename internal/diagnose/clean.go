package diagnose

import (
	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

// Clean returns a new dataset with fully-missing rows and fully-missing
// columns removed. Both removals are judged against the original
// dataset, so dropping rows never changes which columns get dropped.
// Surviving rows and columns keep their relative order; the input is
// not modified.
func Clean(ds *tabular.Dataset) *tabular.Dataset {
	keepRows := []int{}
	for i := 0; i < ds.RowCount(); i++ {
		if !rowEmpty(ds, i) {
			keepRows = append(keepRows, i)
		}
	}

	out := &tabular.Dataset{}
	for _, col := range ds.Columns {
		if columnEmpty(col) {
			continue
		}
		cells := make([]tabular.Cell, 0, len(keepRows))
		for _, i := range keepRows {
			cells = append(cells, col.Cells[i])
		}
		out.Columns = append(out.Columns, tabular.Column{Name: col.Name, Cells: cells})
	}
	return out
}

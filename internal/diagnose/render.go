package diagnose

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

// kindOrder fixes the histogram print order so reports are stable.
var kindOrder = []tabular.Kind{tabular.Integer, tabular.Float, tabular.String, tabular.Boolean}

// WriteText renders the report as the human-readable log the
// presentation layer shows: one line per field, with the literal
// "None" when a collection-valued check found nothing. Disabled checks
// produce no line at all.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder

	b.WriteString("=== Data Diagnostics ===\n")
	fmt.Fprintf(&b, "Shape: (%d, %d)\n", r.RowCount, r.ColumnCount)
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(r.ColumnNames, ", "))

	if r.EmptyColumns != nil {
		if len(r.EmptyColumns.Columns) == 0 {
			b.WriteString("Empty columns: None\n")
		} else {
			fmt.Fprintf(&b, "Empty columns: %s\n", strings.Join(r.EmptyColumns.Columns, ", "))
		}
	}
	if r.EmptyRows != nil {
		fmt.Fprintf(&b, "Empty rows: %d\n", r.EmptyRows.Count)
	}
	if r.MixedTypes != nil {
		if len(r.MixedTypes.Columns) == 0 {
			b.WriteString("Mixed-type columns: None\n")
		} else {
			b.WriteString("Mixed-type columns:\n")
			for _, name := range r.ColumnNames {
				hist, ok := r.MixedTypes.Columns[name]
				if !ok {
					continue
				}
				fmt.Fprintf(&b, "  %s: %s\n", name, formatHistogram(hist))
			}
		}
	}
	if r.MissingHeaders != nil {
		if r.MissingHeaders.Suspected {
			b.WriteString("Potential missing headers detected.\n")
		} else {
			b.WriteString("Headers appear present.\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatHistogram(hist map[tabular.Kind]int) string {
	parts := []string{}
	for _, k := range kindOrder {
		if n, ok := hist[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	return strings.Join(parts, ", ")
}

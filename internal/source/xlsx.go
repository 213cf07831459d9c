package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

// XLSXLoader reads the first sheet of an Excel workbook. Header and
// cell-inference rules match the CSV loader; excelize trims trailing
// blank cells per row, so rows are padded back to the widest row.
type XLSXLoader struct {
	NoHeader bool
	Sheet    string // optional; first sheet when empty
}

func (l *XLSXLoader) Name() string { return "xlsx" }

func (l *XLSXLoader) Load(ctx context.Context, path string) (*tabular.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return &tabular.Dataset{}, nil
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &tabular.Dataset{}, nil
	}

	var header []string
	var rows [][]string
	if l.NoHeader {
		rows = records
	} else {
		header, rows = records[0], records[1:]
	}

	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for len(header) < width {
		header = append(header, "")
	}

	ds := datasetFromRecords(headerNames(header, l.NoHeader), rows)
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// XLSXWriter serializes a dataset to a single-sheet workbook, missing
// cells as blank cells.
type XLSXWriter struct{}

func (w *XLSXWriter) Name() string { return "xlsx" }

func (w *XLSXWriter) Write(ctx context.Context, ds *tabular.Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, 0, ds.ColumnCount())
	for _, name := range ds.ColumnNames() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < ds.RowCount(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := make([]any, 0, ds.ColumnCount())
		for _, cell := range ds.Row(i) {
			row = append(row, cell.Value())
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

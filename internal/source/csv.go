package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

// CSVLoader reads a comma-separated file. The first record is the
// header row; blank header cells get placeholder names. With NoHeader
// set the first record is data and every column gets a placeholder.
type CSVLoader struct {
	NoHeader bool
}

func (l *CSVLoader) Name() string { return "csv" }

func (l *CSVLoader) Load(ctx context.Context, path string) (*tabular.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &tabular.Dataset{}, nil
	}

	// Excel and friends prefix exports with a UTF-8 BOM; without this
	// the first column would be named "U+FEFFName".
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	}

	var header []string
	var rows [][]string
	if l.NoHeader {
		rows = records
	} else {
		header, rows = records[0], records[1:]
	}

	// Ragged files happen; size the table to the widest record and let
	// extra columns pick up placeholder names.
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

// CSVWriter serializes a dataset to a comma-separated file, missing
// cells as empty fields.
type CSVWriter struct{}

func (w *CSVWriter) Name() string { return "csv" }

func (w *CSVWriter) Write(ctx context.Context, ds *tabular.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(ds.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < ds.RowCount(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		record := make([]string, 0, ds.ColumnCount())
		for _, cell := range ds.Row(i) {
			record = append(record, cell.Text())
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

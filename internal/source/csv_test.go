package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVLoader_Load(t *testing.T) {
	path := writeFile(t, "people.csv", "Name,Age,City\nAlice,25,NYC\nBob,30,LA\nCharlie,35,Chi\n")

	ds, err := (&CSVLoader{}).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age", "City"}, ds.ColumnNames())
	assert.Equal(t, 3, ds.RowCount())
	assert.Equal(t, tabular.String, ds.Columns[0].Cells[0].Kind)
	assert.Equal(t, tabular.Integer, ds.Columns[1].Cells[0].Kind)
	assert.Equal(t, int64(25), ds.Columns[1].Cells[0].Int)
}

func TestCSVLoader_MissingCellsAndMixedKinds(t *testing.T) {
	path := writeFile(t, "mixed.csv", "ID,Score\n1,3.5\n2,\nthree,true\n")

	ds, err := (&CSVLoader{}).Load(context.Background(), path)
	require.NoError(t, err)

	id := ds.Columns[0].Cells
	assert.Equal(t, tabular.Integer, id[0].Kind)
	assert.Equal(t, tabular.Integer, id[1].Kind)
	assert.Equal(t, tabular.String, id[2].Kind)

	score := ds.Columns[1].Cells
	assert.Equal(t, tabular.Float, score[0].Kind)
	assert.True(t, score[1].IsMissing())
	assert.Equal(t, tabular.Boolean, score[2].Kind)
}

func TestCSVLoader_BlankHeaderCellsGetPlaceholders(t *testing.T) {
	path := writeFile(t, "partial.csv", "Name,,City\nAlice,25,NYC\n")

	ds, err := (&CSVLoader{}).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", tabular.PlaceholderName(1), "City"}, ds.ColumnNames())
}

func TestCSVLoader_StripsByteOrderMark(t *testing.T) {
	path := writeFile(t, "bom.csv", "\uFEFFName,Age\nAlice,25\n")

	ds, err := (&CSVLoader{}).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age"}, ds.ColumnNames())
}

func TestCSVLoader_NoHeader(t *testing.T) {
	path := writeFile(t, "raw.csv", "a,b,c\nd,e,f\n")

	ds, err := (&CSVLoader{NoHeader: true}).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Column_0", "Column_1", "Column_2"}, ds.ColumnNames())
	assert.Equal(t, 2, ds.RowCount())
}

func TestCSVLoader_RaggedRowsArePadded(t *testing.T) {
	path := writeFile(t, "ragged.csv", "a,b\n1,2,3\n4\n")

	ds, err := (&CSVLoader{}).Load(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Equal(t, []string{"a", "b", tabular.PlaceholderName(2)}, ds.ColumnNames())
	assert.True(t, ds.Columns[1].Cells[1].IsMissing())
	assert.True(t, ds.Columns[2].Cells[1].IsMissing())
}

func TestCSVLoader_AbsentFile(t *testing.T) {
	_, err := (&CSVLoader{}).Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCSVWriter_RoundTrip(t *testing.T) {
	ds := &tabular.Dataset{Columns: []tabular.Column{
		{Name: "Name", Cells: []tabular.Cell{tabular.StringCell("Alice"), tabular.MissingCell()}},
		{Name: "Age", Cells: []tabular.Cell{tabular.IntCell(25), tabular.FloatCell(3.5)}},
	}}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, (&CSVWriter{}).Write(context.Background(), ds, path))

	back, err := (&CSVLoader{}).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age"}, back.ColumnNames())
	assert.True(t, back.Columns[0].Cells[1].IsMissing())
	assert.Equal(t, int64(25), back.Columns[1].Cells[0].Int)
	assert.Equal(t, 3.5, back.Columns[1].Cells[1].Float)
}

func TestCSVWriter_FloatsSurviveRoundTrip(t *testing.T) {
	values := []float64{3.14159265358979, 1e-7, 0.1 + 0.2, 12345.678901234567}
	cells := make([]tabular.Cell, 0, len(values))
	for _, v := range values {
		cells = append(cells, tabular.FloatCell(v))
	}
	ds := &tabular.Dataset{Columns: []tabular.Column{{Name: "v", Cells: cells}}}

	path := filepath.Join(t.TempDir(), "floats.csv")
	require.NoError(t, (&CSVWriter{}).Write(context.Background(), ds, path))

	back, err := (&CSVLoader{}).Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, len(values), back.RowCount())
	for i, v := range values {
		cell := back.Columns[0].Cells[i]
		assert.Equal(t, tabular.Float, cell.Kind, "row %d", i)
		assert.Equal(t, v, cell.Float, "row %d", i)
	}
}

func TestForPath(t *testing.T) {
	l, err := ForPath("data/report.CSV")
	require.NoError(t, err)
	assert.Equal(t, "csv", l.Name())

	l, err = ForPath("book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", l.Name())

	_, err = ForPath("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupported)
}

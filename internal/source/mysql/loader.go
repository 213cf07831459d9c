package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cast"

	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

// Loader materializes a MySQL table into a dataset, so database tables
// get the same diagnostics as CSV and Excel files. The "path" handed
// to Load is the table name.
type Loader struct {
	db      *sql.DB
	timeout time.Duration
}

func NewLoader(dsn string) (*Loader, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	return &Loader{
		db:      db,
		timeout: 30 * time.Second,
	}, nil
}

func (l *Loader) Name() string { return "mysql" }

func (l *Loader) Close() error { return l.db.Close() }

func (l *Loader) Load(ctx context.Context, table string) (*tabular.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	query := fmt.Sprintf("SELECT * FROM `%s`", strings.ReplaceAll(table, "`", "``"))
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", table, err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	ds := &tabular.Dataset{}
	kinds := make([]tabular.Kind, len(colTypes))
	for i, ct := range colTypes {
		kinds[i] = kindForDBType(ct.DatabaseTypeName())
		ds.Columns = append(ds.Columns, tabular.Column{Name: ct.Name()})
	}

	values := make([]any, len(colTypes))
	ptrs := make([]any, len(colTypes))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan table %s: %w", table, err)
		}
		for i, v := range values {
			ds.Columns[i].Cells = append(ds.Columns[i].Cells, cellFromValue(v, kinds[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

// kindForDBType maps MySQL column types onto the closed kind
// vocabulary. Unknown types land on string.
func kindForDBType(dbType string) tabular.Kind {
	switch strings.ToUpper(dbType) {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT",
		"UNSIGNED TINYINT", "UNSIGNED SMALLINT", "UNSIGNED INT", "UNSIGNED BIGINT", "YEAR":
		return tabular.Integer
	case "FLOAT", "DOUBLE", "DECIMAL":
		return tabular.Float
	case "BIT", "BOOL", "BOOLEAN":
		return tabular.Boolean
	default:
		return tabular.String
	}
}

// cellFromValue coerces a driver value into a cell of the column's
// kind. The text protocol hands most values back as []byte, so the
// coercion is deliberately loose; anything that will not coerce keeps
// its string form.
func cellFromValue(v any, kind tabular.Kind) tabular.Cell {
	if v == nil {
		return tabular.MissingCell()
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	switch kind {
	case tabular.Integer:
		if n, err := cast.ToInt64E(v); err == nil {
			return tabular.IntCell(n)
		}
	case tabular.Float:
		if f, err := cast.ToFloat64E(v); err == nil {
			return tabular.FloatCell(f)
		}
	case tabular.Boolean:
		if b, err := cast.ToBoolE(v); err == nil {
			return tabular.BoolCell(b)
		}
	}
	s := cast.ToString(v)
	if s == "" {
		return tabular.MissingCell()
	}
	return tabular.StringCell(s)
}

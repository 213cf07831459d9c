package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

func TestKindForDBType(t *testing.T) {
	cases := []struct {
		dbType string
		kind   tabular.Kind
	}{
		{"INT", tabular.Integer},
		{"BIGINT", tabular.Integer},
		{"UNSIGNED BIGINT", tabular.Integer},
		{"DECIMAL", tabular.Float},
		{"DOUBLE", tabular.Float},
		{"BOOL", tabular.Boolean},
		{"VARCHAR", tabular.String},
		{"DATETIME", tabular.String},
		{"int", tabular.Integer},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, kindForDBType(c.dbType), "dbType=%s", c.dbType)
	}
}

func TestCellFromValue(t *testing.T) {
	assert.True(t, cellFromValue(nil, tabular.Integer).IsMissing())

	c := cellFromValue([]byte("42"), tabular.Integer)
	assert.Equal(t, tabular.Integer, c.Kind)
	assert.Equal(t, int64(42), c.Int)

	c = cellFromValue([]byte("3.25"), tabular.Float)
	assert.Equal(t, tabular.Float, c.Kind)
	assert.Equal(t, 3.25, c.Float)

	c = cellFromValue([]byte("1"), tabular.Boolean)
	assert.Equal(t, tabular.Boolean, c.Kind)
	assert.True(t, c.Bool)

	// Values that will not coerce keep their string form.
	c = cellFromValue([]byte("n/a"), tabular.Integer)
	assert.Equal(t, tabular.String, c.Kind)
	assert.Equal(t, "n/a", c.Str)

	// Empty text from the driver counts as missing.
	assert.True(t, cellFromValue([]byte(""), tabular.String).IsMissing())
}

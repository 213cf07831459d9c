package source

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

// ErrUnsupported is returned when no loader or writer handles the
// file's extension.
var ErrUnsupported = errors.New("unsupported file format")

// Loader parses one file into a dataset. Load guarantees the returned
// dataset is rectangular; a failure here surfaces to the caller before
// any diagnostics run.
type Loader interface {
	Name() string
	Load(ctx context.Context, path string) (*tabular.Dataset, error)
}

// Writer serializes a dataset back to a file. The target is left
// untouched when the write fails partway on open.
type Writer interface {
	Name() string
	Write(ctx context.Context, ds *tabular.Dataset, path string) error
}

// ForPath selects a loader by file extension.
func ForPath(path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVLoader{}, nil
	case ".xlsx":
		return &XLSXLoader{}, nil
	default:
		return nil, ErrUnsupported
	}
}

// WriterForPath selects a writer by file extension.
func WriterForPath(path string) (Writer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVWriter{}, nil
	case ".xlsx":
		return &XLSXWriter{}, nil
	default:
		return nil, ErrUnsupported
	}
}

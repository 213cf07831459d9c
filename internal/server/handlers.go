package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/alexanderjulianmartinez/preptura/internal/diagnose"
	"github.com/alexanderjulianmartinez/preptura/internal/source"
	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

type errResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log.Error("request failed", "status", status, "error", err)
	render.Status(r, status)
	render.JSON(w, r, errResponse{Error: err.Error()})
}

// statusForLoadError maps the load failure taxonomy onto HTTP codes:
// absent file 404, unsupported or unparseable input 422.
func statusForLoadError(err error) int {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, source.ErrUnsupported):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusUnprocessableEntity
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":    "ok",
		"service":   "preptura",
		"timestamp": time.Now().UTC(),
	})
}

type fileEntry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = s.snapshot().DefaultFolder
	}
	if folder == "" {
		s.writeError(w, r, http.StatusBadRequest, errors.New("no folder selected and no default_folder configured"))
		return
	}

	files, err := source.ListSupportedFiles(folder)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}

	entries := []fileEntry{}
	for _, f := range files {
		entries = append(entries, fileEntry{Name: f.Name, Path: f.Path, Size: f.Size, ModTime: f.ModTime})
	}
	render.JSON(w, r, map[string]any{"folder": folder, "files": entries})
}

type diagnoseRequest struct {
	Path   string           `json:"path"`
	Checks *diagnose.Checks `json:"checks,omitempty"`
}

func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	var req diagnoseRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Path == "" {
		s.writeError(w, r, http.StatusBadRequest, errors.New("path is required"))
		return
	}

	ds, err := s.load(r, req.Path)
	if err != nil {
		s.writeError(w, r, statusForLoadError(err), err)
		return
	}

	checks := s.snapshot().Checks
	if req.Checks != nil {
		checks = *req.Checks
	}

	report := diagnose.Diagnose(ds, checks)
	s.log.Info("diagnostics run",
		"path", req.Path,
		"rows", report.RowCount,
		"columns", report.ColumnCount,
	)
	render.JSON(w, r, report)
}

type cleanRequest struct {
	Path   string `json:"path"`
	Output string `json:"output,omitempty"`
}

type cleanResponse struct {
	Output         string `json:"output"`
	RowsDropped    int    `json:"rows_dropped"`
	ColumnsDropped int    `json:"columns_dropped"`
	RowCount       int    `json:"row_count"`
	ColumnCount    int    `json:"column_count"`
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	var req cleanRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Path == "" {
		s.writeError(w, r, http.StatusBadRequest, errors.New("path is required"))
		return
	}

	ds, err := s.load(r, req.Path)
	if err != nil {
		s.writeError(w, r, statusForLoadError(err), err)
		return
	}

	cleaned := diagnose.Clean(ds)

	out := req.Output
	if out == "" {
		out = cleanedPath(req.Path)
	}
	writer, err := source.WriterForPath(out)
	if err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if err := writer.Write(r.Context(), cleaned, out); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, fmt.Errorf("save cleaned file: %w", err))
		return
	}

	s.log.Info("cleaned file saved",
		"path", req.Path,
		"output", out,
		"rows_dropped", ds.RowCount()-cleaned.RowCount(),
		"columns_dropped", ds.ColumnCount()-cleaned.ColumnCount(),
	)
	render.JSON(w, r, cleanResponse{
		Output:         out,
		RowsDropped:    ds.RowCount() - cleaned.RowCount(),
		ColumnsDropped: ds.ColumnCount() - cleaned.ColumnCount(),
		RowCount:       cleaned.RowCount(),
		ColumnCount:    cleaned.ColumnCount(),
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.snapshot()
	render.JSON(w, r, cfg)
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	// Decode over a copy of the current config so fields absent from
	// the body keep their current values instead of zeroing out.
	next := s.snapshot()
	if err := render.DecodeJSON(r.Body, &next); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	if err := next.Save(s.cfgPath); err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.mu.Lock()
	*s.cfg = next
	s.mu.Unlock()

	s.log.Info("config saved", "path", s.cfgPath)
	render.JSON(w, r, next)
}

// load resolves the loader by extension and materializes the dataset.
func (s *Server) load(r *http.Request, path string) (*tabular.Dataset, error) {
	loader, err := source.ForPath(path)
	if err != nil {
		return nil, err
	}
	return loader.Load(r.Context(), path)
}

// cleanedPath derives a default output path next to the source file.
// A short unique suffix keeps repeated cleans from clobbering each
// other.
func cleanedPath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s-cleaned-%s%s", stem, uuid.NewString()[:8], ext)
}

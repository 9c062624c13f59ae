package web

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gridray/gridray/internal/core"
	"github.com/gridray/gridray/internal/logging"
	"github.com/gridray/gridray/internal/tabular"
)

// handleIndex serves the single-page UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// handleListProfiles returns all registered validation profiles.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.ListProfiles())
}

// handleValidate accepts a multipart spreadsheet upload, validates it with
// the named profile, and returns the finished report.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	profileKey := chi.URLParam(r, "profileKey")
	if profileKey == "" {
		writeError(w, http.StatusBadRequest, "missing profile key")
		return
	}

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	report, err := s.service.Run(r.Context(), profileKey, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnknownProfile):
			s.respondError(w, r, err, http.StatusNotFound)
		case isLoadError(err):
			s.respondError(w, r, err, http.StatusBadRequest)
		default:
			s.respondError(w, r, err, http.StatusInternalServerError)
		}
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info("validation completed",
		"report_id", report.ID,
		"profile", profileKey,
		"file", header.Filename,
		"rows", report.Summary.TotalRows,
		"errors", len(report.Errors),
	)

	writeJSON(w, report)
}

// handleGetReport returns a stored report by ID.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reportFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, report)
}

// handleExportReport downloads a report's error list as a CSV file.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reportFromRequest(w, r)
	if !ok {
		return
	}

	base := strings.TrimSuffix(report.FileName, filepath.Ext(report.FileName))
	filename := base + "_errors.csv"

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	csvWriter := csv.NewWriter(w)
	csvWriter.Write([]string{"Row", "Field", "Value", "Error"})
	for _, rec := range report.Errors {
		csvWriter.Write([]string{
			strconv.Itoa(rec.Row),
			rec.Field,
			rec.Value,
			rec.Message,
		})
	}
	csvWriter.Flush()
}

// handleDownloadTemplate returns a CSV template with headers for a profile.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	profileKey := chi.URLParam(r, "profileKey")
	if profileKey == "" {
		writeError(w, http.StatusBadRequest, "missing profile key")
		return
	}

	profile, ok := core.Get(profileKey)
	if !ok {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	// Set headers for CSV download
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_template.csv"`, profileKey))

	// Write CSV with just headers
	csvWriter := csv.NewWriter(w)
	csvWriter.Write(profile.Info.Columns)
	csvWriter.Flush()
}

// reportFromRequest resolves the {reportID} URL param to a stored report,
// writing the error response itself when the report cannot be served.
func (s *Server) reportFromRequest(w http.ResponseWriter, r *http.Request) (*core.Report, bool) {
	reportID := chi.URLParam(r, "reportID")
	if reportID == "" {
		writeError(w, http.StatusBadRequest, "missing report ID")
		return nil, false
	}

	report, ok := s.service.Report(reportID)
	if !ok {
		writeError(w, http.StatusNotFound, "report not found or expired")
		return nil, false
	}
	return report, true
}

// isLoadError reports whether err came from reading or parsing the
// uploaded file.
func isLoadError(err error) bool {
	var le *tabular.LoadError
	return errors.As(err, &le)
}

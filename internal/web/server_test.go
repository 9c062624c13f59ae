package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gridray/gridray/internal/config"
	"github.com/gridray/gridray/internal/core"
	"github.com/gridray/gridray/internal/tabular"
	"github.com/gridray/gridray/internal/validate"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	core.Clear()
	t.Cleanup(core.Clear)
	core.Register(core.Profile{
		Info: core.ProfileInfo{
			Key:     "test",
			Label:   "Test",
			Columns: []string{"Value"},
		},
		Validate: func(table *tabular.Table) []validate.ErrorRecord {
			var records []validate.ErrorRecord
			for i := 0; i < table.RowCount(); i++ {
				if table.Cell(i, "Value") == "bad" {
					records = append(records, validate.ErrorRecord{
						Row:     i + validate.HeaderOffset,
						Field:   "Value",
						Value:   "bad",
						Message: "flagged",
					})
				}
			}
			return records
		},
	})

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           0,
			RequestTimeout: 10 * time.Second,
		},
		Upload: config.UploadConfig{
			MaxFileSize: 1 << 20,
			PreviewRows: 5,
			ReportTTL:   time.Hour,
		},
		Rate:    config.RateLimitConfig{Enabled: false},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}

	service := core.NewService(cfg.Upload.PreviewRows, cfg.Upload.ReportTTL)
	return NewServer(cfg, service)
}

// multipartBody builds a multipart form with one CSV file field.
func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

// runValidate posts a CSV through the API and returns the decoded report.
func runValidate(t *testing.T, srv *Server, profileKey, filename, content string) *core.Report {
	t.Helper()

	body, contentType := multipartBody(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/api/validate/"+profileKey, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/validate/%s status = %d, body = %s", profileKey, rec.Code, rec.Body.String())
	}

	var report core.Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	return &report
}

// ----------------------------------------------------------------------------
// Route Tests
// ----------------------------------------------------------------------------

func TestHandleIndex(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "GridRay") {
		t.Error("index page missing GridRay branding")
	}
}

func TestHandleListProfiles(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/profiles status = %d, want 200", rec.Code)
	}

	var profiles []core.ProfileInfo
	if err := json.NewDecoder(rec.Body).Decode(&profiles); err != nil {
		t.Fatalf("decode profiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Key != "test" {
		t.Errorf("profiles = %+v, want single test profile", profiles)
	}
}

func TestHandleValidate(t *testing.T) {
	srv := testServer(t)

	report := runValidate(t, srv, "test", "data.csv", "Value\ngood\nbad\n")

	if report.ID == "" {
		t.Error("report has empty ID")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(report.Errors))
	}
	if report.Errors[0].Row != 3 {
		t.Errorf("Errors[0].Row = %d, want 3", report.Errors[0].Row)
	}
	if report.Summary.TotalRows != 2 || report.Summary.InvalidRows != 1 {
		t.Errorf("Summary = %+v, want 2 total / 1 invalid", report.Summary)
	}
}

func TestHandleValidateUnknownProfile(t *testing.T) {
	srv := testServer(t)

	body, contentType := multipartBody(t, "data.csv", "Value\n")
	req := httptest.NewRequest(http.MethodPost, "/api/validate/nope", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleValidateBadFile(t *testing.T) {
	srv := testServer(t)

	// Blank file has no header row
	body, contentType := multipartBody(t, "data.csv", ",,\n")
	req := httptest.NewRequest(http.MethodPost, "/api/validate/test", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleValidateNoFile(t *testing.T) {
	srv := testServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("other", "value")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/validate/test", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleGetReport(t *testing.T) {
	srv := testServer(t)
	report := runValidate(t, srv, "test", "data.csv", "Value\ngood\n")

	req := httptest.NewRequest(http.MethodGet, "/api/report/"+report.ID, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/report status = %d, want 200", rec.Code)
	}

	var fetched core.Report
	if err := json.NewDecoder(rec.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if fetched.ID != report.ID {
		t.Errorf("fetched ID = %q, want %q", fetched.ID, report.ID)
	}
}

func TestHandleGetReportNotFound(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/report/no-such-id", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleExportReport(t *testing.T) {
	srv := testServer(t)
	report := runValidate(t, srv, "test", "products.csv", "Value\nbad\n")

	req := httptest.NewRequest(http.MethodGet, "/api/report/"+report.ID+"/export", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "products_errors.csv") {
		t.Errorf("Content-Disposition = %q, want products_errors.csv", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want 2", len(lines))
	}
	if lines[0] != "Row,Field,Value,Error" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2,Value,bad,") {
		t.Errorf("error line = %q", lines[1])
	}
}

func TestHandleDownloadTemplate(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/template/test", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("template status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "Value" {
		t.Errorf("template body = %q, want %q", got, "Value")
	}
}

func TestHandleDownloadTemplateUnknown(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/template/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

// ----------------------------------------------------------------------------
// Helper Tests
// ----------------------------------------------------------------------------

func TestSanitizeErrorMessage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain message unchanged",
			input: "profile not found",
			want:  "profile not found",
		},
		{
			name:  "absolute path masked",
			input: "open /var/data/uploads/file.xlsx: no such file",
			want:  "open [path] no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeErrorMessage(tt.input); got != tt.want {
				t.Errorf("sanitizeErrorMessage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

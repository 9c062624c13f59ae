package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gridray/gridray/internal/tabular"
	"github.com/gridray/gridray/internal/validate"
)

// ErrUnknownProfile is returned by Run for a profile key that is not
// registered.
var ErrUnknownProfile = errors.New("unknown profile")

// Service runs validations and keeps finished reports in memory for
// later retrieval. Reports are never persisted; each one is evicted
// after the configured TTL.
type Service struct {
	previewRows int
	reportTTL   time.Duration

	mu      sync.RWMutex
	reports map[string]*Report
}

// NewService creates a Service. previewRows caps the number of data rows
// copied into each report's preview; reportTTL <= 0 disables eviction.
func NewService(previewRows int, reportTTL time.Duration) *Service {
	return &Service{
		previewRows: previewRows,
		reportTTL:   reportTTL,
		reports:     make(map[string]*Report),
	}
}

// ListProfiles returns information about all registered profiles.
func (s *Service) ListProfiles() []ProfileInfo {
	profiles := All()
	infos := make([]ProfileInfo, len(profiles))
	for i, p := range profiles {
		infos[i] = p.Info
	}
	return infos
}

// Run loads the spreadsheet from r, validates it with the named profile,
// and stores the finished report. The run is synchronous; the returned
// report is complete. fileName selects the format (.xlsx, .xlsm, .csv)
// and labels errors.
func (s *Service) Run(ctx context.Context, profileKey, fileName string, r io.Reader) (*Report, error) {
	profile, ok := Get(profileKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, profileKey)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	table, err := tabular.LoadReader(r, fileName)
	if err != nil {
		return nil, err
	}

	records := profile.Validate(table)

	report := &Report{
		ID:         uuid.New().String(),
		ProfileKey: profileKey,
		FileName:   fileName,
		Columns:    table.Columns,
		Preview:    previewRows(table, s.previewRows),
		Errors:     records,
		Summary:    validate.Summarize(table.RowCount(), records),
		ElapsedMS:  time.Since(start).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.reports[report.ID] = report
	s.mu.Unlock()

	if s.reportTTL > 0 {
		time.AfterFunc(s.reportTTL, func() {
			s.mu.Lock()
			delete(s.reports, report.ID)
			s.mu.Unlock()
		})
	}

	return report, nil
}

// Report returns a stored report by ID.
// Returns false if the ID is unknown or the report has expired.
func (s *Service) Report(id string) (*Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	return report, ok
}

// ReportCount returns the number of reports currently held in memory.
func (s *Service) ReportCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// previewRows copies the first n data rows for the UI preview.
func previewRows(table *tabular.Table, n int) []tabular.Row {
	if n <= 0 || table.RowCount() == 0 {
		return []tabular.Row{}
	}
	if n > table.RowCount() {
		n = table.RowCount()
	}

	rows := make([]tabular.Row, n)
	copy(rows, table.Rows[:n])
	return rows
}

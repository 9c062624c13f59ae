package core

import (
	"errors"
	"fmt"
	"testing"
)

// ----------------------------------------------------------------------------
// MapError Tests
// ----------------------------------------------------------------------------

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "unsupported file type",
			err:      errors.New(`load report.pdf: unsupported file type ".pdf" (expected .xlsx, .xlsm, or .csv)`),
			wantCode: "FILE001",
		},
		{
			name:     "missing header",
			err:      errors.New("load data.csv: no header row found"),
			wantCode: "FILE002",
		},
		{
			name:     "empty workbook",
			err:      errors.New("load data.xlsx: workbook has no sheets"),
			wantCode: "FILE003",
		},
		{
			name:     "corrupt workbook",
			err:      errors.New("load data.xlsx: zip: not a valid zip file"),
			wantCode: "FILE005",
		},
		{
			name:     "unknown profile",
			err:      fmt.Errorf("%w: nope", ErrUnknownProfile),
			wantCode: "PRO001",
		},
		{
			name:     "expired report",
			err:      errors.New("report not found or expired"),
			wantCode: "REP001",
		},
		{
			name:     "rate limited",
			err:      errors.New("rate limit exceeded"),
			wantCode: "RATE001",
		},
		{
			name:     "unmatched error falls back",
			err:      errors.New("something strange happened"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%q).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if got.Message == "" {
				t.Errorf("MapError(%q) has empty message", tt.err)
			}
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	if got := MapError(nil); got != (UserMessage{}) {
		t.Errorf("MapError(nil) = %+v, want zero value", got)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(errors.New("rate limit exceeded"))
	want := "Too many requests (Code: RATE001). Please wait a moment before trying again"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}

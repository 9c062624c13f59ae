package core

import (
	"time"

	"github.com/gridray/gridray/internal/tabular"
	"github.com/gridray/gridray/internal/validate"
)

// ProfileInfo contains display information about a validation profile.
type ProfileInfo struct {
	// Key is the unique identifier: "generic", "pricing".
	Key string `json:"key"`

	// Label is the display name: "Generic Data".
	Label string `json:"label"`

	// Description is a one-line summary of what the profile checks.
	Description string `json:"description"`

	// Columns lists the column headers the profile expects, in
	// template order.
	Columns []string `json:"columns"`
}

// Profile pairs display information with the rule function that
// implements it.
type Profile struct {
	Info ProfileInfo

	// Validate runs the profile's rules against a loaded table and
	// returns the error records in row order.
	Validate func(table *tabular.Table) []validate.ErrorRecord
}

// Report is the complete outcome of one validation run.
type Report struct {
	ID         string                 `json:"id"`
	ProfileKey string                 `json:"profileKey"`
	FileName   string                 `json:"fileName"`
	Columns    []string               `json:"columns"`
	Preview    []tabular.Row          `json:"preview"`
	Errors     []validate.ErrorRecord `json:"errors"`
	Summary    validate.Summary       `json:"summary"`
	ElapsedMS  int64                  `json:"elapsedMs"`
	CreatedAt  time.Time              `json:"createdAt"`
}

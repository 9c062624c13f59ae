package tabular

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ----------------------------------------------------------------------------
// LoadReader CSV Tests
// ----------------------------------------------------------------------------

func TestLoadReaderCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols []string
		wantRows []Row
		wantErr  bool
	}{
		{
			name:     "simple file",
			input:    "Email,Age\na@b.co,30\nc@d.co,41\n",
			wantCols: []string{"Email", "Age"},
			wantRows: []Row{
				{"Email": "a@b.co", "Age": "30"},
				{"Email": "c@d.co", "Age": "41"},
			},
		},
		{
			name:     "utf8 bom stripped from first header",
			input:    "\xEF\xBB\xBFEmail,Age\na@b.co,30\n",
			wantCols: []string{"Email", "Age"},
			wantRows: []Row{{"Email": "a@b.co", "Age": "30"}},
		},
		{
			name:     "short row padded with empty cells",
			input:    "Email,Age\na@b.co\n",
			wantCols: []string{"Email", "Age"},
			wantRows: []Row{{"Email": "a@b.co", "Age": ""}},
		},
		{
			name:     "cells trimmed",
			input:    "Email , Age\n  a@b.co ,  30 \n",
			wantCols: []string{"Email", "Age"},
			wantRows: []Row{{"Email": "a@b.co", "Age": "30"}},
		},
		{
			name:     "blank leading rows skipped before header",
			input:    ",\n,\nEmail,Age\na@b.co,30\n",
			wantCols: []string{"Email", "Age"},
			wantRows: []Row{{"Email": "a@b.co", "Age": "30"}},
		},
		{
			name:     "header only",
			input:    "Email,Age\n",
			wantCols: []string{"Email", "Age"},
			wantRows: []Row{},
		},
		{
			name:    "entirely blank file",
			input:   ",,\n,,\n",
			wantErr: true,
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := LoadReader(strings.NewReader(tt.input), "test.csv")
			if tt.wantErr {
				if err == nil {
					t.Fatal("LoadReader() error = nil, want error")
				}
				var le *LoadError
				if !errors.As(err, &le) {
					t.Errorf("LoadReader() error type = %T, want *LoadError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadReader() error = %v", err)
			}
			if !reflect.DeepEqual(table.Columns, tt.wantCols) {
				t.Errorf("Columns = %v, want %v", table.Columns, tt.wantCols)
			}
			if !reflect.DeepEqual(table.Rows, tt.wantRows) {
				t.Errorf("Rows = %v, want %v", table.Rows, tt.wantRows)
			}
		})
	}
}

func TestLoadReaderUnsupportedExtension(t *testing.T) {
	_, err := LoadReader(strings.NewReader("data"), "report.pdf")
	if err == nil {
		t.Fatal("LoadReader() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("LoadReader() error = %q, want mention of unsupported file type", err)
	}
}

// ----------------------------------------------------------------------------
// LoadReader Excel Tests
// ----------------------------------------------------------------------------

func TestLoadReaderExcel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	cells := [][]string{
		{"Email", "Phone", "Age"},
		{"a@b.co", "+15551234567", "30"},
		{"c@d.co", "+15559876543", "41"},
	}
	for i, row := range cells {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	table, err := LoadReader(buf, "contacts.xlsx")
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}

	wantCols := []string{"Email", "Phone", "Age"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", table.Columns, wantCols)
	}
	if table.RowCount() != 2 {
		t.Fatalf("RowCount() = %d, want 2", table.RowCount())
	}
	if got := table.Cell(1, "Email"); got != "c@d.co" {
		t.Errorf("Cell(1, Email) = %q, want %q", got, "c@d.co")
	}
}

func TestLoadReaderExcelGarbage(t *testing.T) {
	_, err := LoadReader(strings.NewReader("this is not a zip archive"), "broken.xlsx")
	if err == nil {
		t.Fatal("LoadReader() error = nil, want error")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Errorf("LoadReader() error type = %T, want *LoadError", err)
	}
}

// ----------------------------------------------------------------------------
// Table Tests
// ----------------------------------------------------------------------------

func TestTableCell(t *testing.T) {
	table := &Table{
		Columns: []string{"A"},
		Rows:    []Row{{"A": "x"}},
	}

	if got := table.Cell(0, "A"); got != "x" {
		t.Errorf("Cell(0, A) = %q, want %q", got, "x")
	}
	if got := table.Cell(0, "Missing"); got != "" {
		t.Errorf("Cell(0, Missing) = %q, want empty", got)
	}
	if got := table.Cell(5, "A"); got != "" {
		t.Errorf("Cell(5, A) = %q, want empty", got)
	}
	if table.HasColumn("Missing") {
		t.Error("HasColumn(Missing) = true, want false")
	}
}

func TestNewTableDropsBlankHeaderColumns(t *testing.T) {
	table := newTable([]string{"A", "", "C"}, [][]string{{"1", "2", "3"}})

	wantCols := []string{"A", "C"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", table.Columns, wantCols)
	}
	if got := table.Cell(0, "C"); got != "3" {
		t.Errorf("Cell(0, C) = %q, want %q", got, "3")
	}
}

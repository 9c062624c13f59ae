package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadError indicates the source file could not be read or parsed.
// Load failures are fatal for the run: no validation is attempted.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the spreadsheet at path into a Table.
// The format is chosen by file extension: .xlsx/.xlsm via excelize,
// .csv via encoding/csv.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: filepath.Base(path), Err: err}
	}
	defer f.Close()

	return LoadReader(f, filepath.Base(path))
}

// LoadReader reads spreadsheet data from r into a Table.
// The filename is used only to pick the format and to label errors.
func LoadReader(r io.Reader, filename string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return loadExcel(r, filename)
	case ".csv":
		return loadCSV(r, filename)
	default:
		return nil, &LoadError{
			Source: filename,
			Err:    fmt.Errorf("unsupported file type %q (expected .xlsx, .xlsm, or .csv)", filepath.Ext(filename)),
		}
	}
}

// loadExcel reads the first sheet of an Excel workbook.
func loadExcel(r io.Reader, filename string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Source: filename, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Source: filename, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Source: filename, Err: err}
	}

	return fromRecords(rows, filename)
}

// loadCSV reads comma-separated data. Ragged rows are tolerated; the
// tabular model pads short rows with empty cells.
func loadCSV(r io.Reader, filename string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: filename, Err: err}
	}

	// Strip a UTF-8 BOM so the first header name matches exactly.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &LoadError{Source: filename, Err: err}
	}

	return fromRecords(records, filename)
}

// fromRecords turns raw records into a Table. The first non-empty row is
// the header; everything after it is data.
func fromRecords(records [][]string, filename string) (*Table, error) {
	headerIdx := -1
	for i, row := range records {
		if !isEmptyRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, &LoadError{Source: filename, Err: fmt.Errorf("no header row found")}
	}

	return newTable(records[headerIdx], records[headerIdx+1:]), nil
}

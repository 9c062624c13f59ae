// Package tabular loads spreadsheet files into an in-memory table.
// It supports Excel workbooks (.xlsx, .xlsm) and CSV files and normalizes
// both into the same Table shape so validation code never cares about the
// source format.
package tabular

import "strings"

// Table is an immutable, in-memory view of one sheet of tabular data.
// Columns preserves header order; each row maps a column name to the raw
// cell string. A missing or empty cell is the empty string.
type Table struct {
	Columns []string
	Rows    []Row
}

// Row maps column names to cell values for a single data row.
type Row map[string]string

// HasColumn reports whether the table's header contains the given column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Cell returns the value of the named column in the given row.
// Returns the empty string for cells that are absent.
func (t *Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][column]
}

// RowCount returns the number of data rows (excluding the header).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// newTable builds a Table from a header row and raw data rows.
// Cell values are trimmed; rows shorter than the header get empty strings
// for the missing trailing cells, and columns with blank header names are
// dropped.
func newTable(header []string, data [][]string) *Table {
	var columns []string
	var indices []int
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		columns = append(columns, name)
		indices = append(indices, i)
	}

	rows := make([]Row, 0, len(data))
	for _, raw := range data {
		row := make(Row, len(columns))
		for j, name := range columns {
			idx := indices[j]
			if idx < len(raw) {
				row[name] = strings.TrimSpace(raw[idx])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}
}

// isEmptyRow reports whether every cell in the raw row is blank.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

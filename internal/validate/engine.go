package validate

import "github.com/gridray/gridray/internal/tabular"

// ErrorRecord reports one failed constraint instance.
type ErrorRecord struct {
	// Row is the 1-based spreadsheet row number. Data rows start at 2
	// because row 1 is the header.
	Row int `json:"row"`

	// Field is the column name for field rules, or the error type
	// ("Price Error", "Tax Error", "Data Error") for domain rules.
	Field string `json:"field"`

	// Value is the offending cell value, or "N/A" when the cell does
	// not exist.
	Value string `json:"value"`

	// Message describes the failed constraint.
	Message string `json:"message"`
}

// Summary counts rows by validation outcome. A row is invalid if it
// contributed at least one error record.
type Summary struct {
	TotalRows   int `json:"totalRows"`
	ValidRows   int `json:"validRows"`
	InvalidRows int `json:"invalidRows"`
}

// HeaderOffset converts a zero-based table row index to a spreadsheet
// row number: rows are 1-based and row 1 is the header.
const HeaderOffset = 2

// Validate applies every field rule to every row of the table and returns
// the error records in discovery order: row by row, then rule by rule in
// RuleSet order. It is pure — same inputs produce the identical sequence,
// and each call returns a fresh slice.
//
// Per rule and row:
//   - a column missing from the table yields a "Column not found" record
//     with value "N/A" and no further checks for that rule;
//   - an empty cell yields a "Required field is empty" record when the
//     rule is required, nothing otherwise, and never runs constraints;
//   - otherwise every constraint runs independently, so one cell can
//     accumulate several records.
func Validate(table *tabular.Table, rules RuleSet) []ErrorRecord {
	var records []ErrorRecord

	for i := 0; i < table.RowCount(); i++ {
		rowNum := i + HeaderOffset

		for _, rule := range rules {
			if !table.HasColumn(rule.Column) {
				records = append(records, ErrorRecord{
					Row:     rowNum,
					Field:   rule.Column,
					Value:   "N/A",
					Message: "Column not found",
				})
				continue
			}

			value := table.Cell(i, rule.Column)

			if value == "" {
				if rule.Required {
					records = append(records, ErrorRecord{
						Row:     rowNum,
						Field:   rule.Column,
						Value:   value,
						Message: "Required field is empty",
					})
				}
				continue
			}

			// Collapse identical messages for the same cell: a Range on a
			// non-numeric cell reports "Not a valid number" just like a
			// numeric TypeCheck, and one record is enough.
			seen := make(map[string]bool)
			for _, check := range rule.Checks {
				for _, msg := range check.apply(value) {
					if seen[msg] {
						continue
					}
					seen[msg] = true
					records = append(records, ErrorRecord{
						Row:     rowNum,
						Field:   rule.Column,
						Value:   value,
						Message: msg,
					})
				}
			}
		}
	}

	return records
}

// Summarize derives summary counts from the error list. InvalidRows is
// the number of distinct row numbers that appear in records.
func Summarize(totalRows int, records []ErrorRecord) Summary {
	seen := make(map[int]bool)
	for _, r := range records {
		seen[r.Row] = true
	}
	return Summary{
		TotalRows:   totalRows,
		ValidRows:   totalRows - len(seen),
		InvalidRows: len(seen),
	}
}

// Package pricing implements the e-commerce pricing and tax rule set.
//
// Unlike the generic rule engine, these checks are cross-field: each row's
// MAP, MRP, and sale price are compared against each other, and the tax
// rate is checked against the tier the sale price falls into. The column
// set is fixed; this rule set is not configurable.
package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gridray/gridray/internal/tabular"
	"github.com/gridray/gridray/internal/validate"
)

// Fixed column names for product listing spreadsheets.
const (
	ColMAP       = "MAP"
	ColMRP       = "MRP (O)"
	ColSalePrice = "Sale Price (inc tax)"
	ColTaxRate   = "Tax Rate"
)

// Columns lists the columns the pricing rules read, in template order.
var Columns = []string{ColMAP, ColMRP, ColSalePrice, ColTaxRate}

// Error type labels used in the Field of emitted records.
const (
	errPrice = "Price Error"
	errTax   = "Tax Error"
	errData  = "Data Error"
)

// Tax tiers: sale prices above the threshold carry the higher GST rate.
const (
	taxTierThreshold = 999
	taxRateHigh      = 18
	taxRateLow       = 12
)

// ParsePrice converts a currency cell to a float. Thousands separators
// and the rupee glyph are stripped first.
func ParsePrice(s string) (float64, error) {
	cleaned := strings.ReplaceAll(s, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "₹", "")
	cleaned = strings.TrimSpace(cleaned)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return v, nil
}

// ParseTaxRate converts a tax-rate cell to a percentage. Both "18%" and
// "0.18" normalize to 18: a percent glyph is stripped, and values below 1
// are treated as fractions and scaled up.
func ParseTaxRate(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, "%", ""))

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid tax rate %q", s)
	}
	if v < 1 {
		v *= 100
	}
	return v, nil
}

// Validate runs the pricing and tax checks on every row.
//
// Per row: MAP >= MRP yields a Price Error, and a tax rate whose truncated
// integer value differs from the expected tier yields a Tax Error. If any
// of the four cells is missing or unparseable, the row yields a single
// Data Error instead and the two structured checks are skipped.
func Validate(table *tabular.Table) []validate.ErrorRecord {
	var records []validate.ErrorRecord

	for i := 0; i < table.RowCount(); i++ {
		rowNum := i + validate.HeaderOffset

		mapPrice, mrp, salePrice, taxRate, err := parseRow(table, i)
		if err != nil {
			records = append(records, validate.ErrorRecord{
				Row:     rowNum,
				Field:   errData,
				Value:   "N/A",
				Message: "Invalid data in row: " + err.Error(),
			})
			continue
		}

		if mapPrice >= mrp {
			records = append(records, validate.ErrorRecord{
				Row:   rowNum,
				Field: errPrice,
				Value: table.Cell(i, ColMAP),
				Message: fmt.Sprintf("MAP (₹%s) is greater than or equal to MRP (₹%s)",
					formatMoney(mapPrice), formatMoney(mrp)),
			})
		}

		expected := taxRateLow
		if salePrice > taxTierThreshold {
			expected = taxRateHigh
		}
		if int(taxRate) != expected {
			records = append(records, validate.ErrorRecord{
				Row:   rowNum,
				Field: errTax,
				Value: table.Cell(i, ColTaxRate),
				Message: fmt.Sprintf("Incorrect tax rate %d%% for Sale Price ₹%s (should be %d%%)",
					int(taxRate), formatMoney(salePrice), expected),
			})
		}
	}

	return records
}

// parseRow extracts and converts the four pricing cells for one row.
func parseRow(table *tabular.Table, row int) (mapPrice, mrp, salePrice, taxRate float64, err error) {
	for _, col := range Columns {
		if !table.HasColumn(col) {
			return 0, 0, 0, 0, fmt.Errorf("column %q not found", col)
		}
	}

	if mapPrice, err = ParsePrice(table.Cell(row, ColMAP)); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%s: %v", ColMAP, err)
	}
	if mrp, err = ParsePrice(table.Cell(row, ColMRP)); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%s: %v", ColMRP, err)
	}
	if salePrice, err = ParsePrice(table.Cell(row, ColSalePrice)); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%s: %v", ColSalePrice, err)
	}
	if taxRate, err = ParseTaxRate(table.Cell(row, ColTaxRate)); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%s: %v", ColTaxRate, err)
	}
	return mapPrice, mrp, salePrice, taxRate, nil
}

// formatMoney renders an amount with two decimals and thousands
// separators: 1234567.8 -> "1,234,567.80".
func formatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteString(frac)
	return b.String()
}

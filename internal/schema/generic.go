// Package schema holds the static rule sets for the built-in validation
// profiles.
package schema

import "github.com/gridray/gridray/internal/validate"

// GenericRules defines the expected columns for generic contact-style
// spreadsheets: Email, Phone, Age, and Status.
var GenericRules = validate.RuleSet{
	{
		Column:   "Email",
		Required: true,
		Checks:   []validate.Constraint{validate.TypeCheck{Kind: validate.TypeEmail}},
	},
	{
		Column:   "Phone",
		Required: true,
		Checks:   []validate.Constraint{validate.TypeCheck{Kind: validate.TypePhone}},
	},
	{
		Column:   "Age",
		Required: true,
		Checks: []validate.Constraint{
			validate.TypeCheck{Kind: validate.TypeNumeric},
			validate.Range{Min: validate.Bound(0), Max: validate.Bound(120)},
		},
	},
	{
		Column:   "Status",
		Required: true,
		Checks: []validate.Constraint{
			validate.Membership{Values: []string{"Active", "Inactive", "Pending"}},
		},
	},
}

// Columns returns the column names of a rule set in declaration order,
// used for CSV header templates.
func Columns(rules validate.RuleSet) []string {
	cols := make([]string, len(rules))
	for i, r := range rules {
		cols[i] = r.Column
	}
	return cols
}

package validate

import (
	"strconv"
	"strings"
)

// TypeKind identifies which format predicate a TypeCheck applies.
type TypeKind int

const (
	TypeNone TypeKind = iota
	TypeEmail
	TypePhone
	TypeNumeric
)

// Constraint is one independently evaluated check on a single cell value.
// Constraints never see empty cells; the engine handles required/empty
// gating before any constraint runs. A single cell may fail several
// constraints and accumulate one error message per failure.
type Constraint interface {
	// apply returns error messages for the value, or nil if it passes.
	apply(value string) []string
}

// TypeCheck validates a cell against one of the format predicates.
type TypeCheck struct {
	Kind TypeKind
}

func (c TypeCheck) apply(value string) []string {
	switch c.Kind {
	case TypeEmail:
		if !IsValidEmail(value) {
			return []string{"Invalid email format"}
		}
	case TypePhone:
		if !IsValidPhone(value) {
			return []string{"Invalid phone number format"}
		}
	case TypeNumeric:
		if !IsNumericString(value) {
			return []string{"Not a valid number"}
		}
	}
	return nil
}

// Range validates a cell against optional numeric bounds. Both bounds are
// checked independently, so a rule with Min and Max can emit two messages.
// A cell that does not parse as a number yields a single "Not a valid
// number" message instead of aborting the run; the engine collapses it
// with the identical message a numeric TypeCheck may have produced.
type Range struct {
	Min *float64
	Max *float64
}

func (c Range) apply(value string) []string {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return []string{"Not a valid number"}
	}

	var msgs []string
	if c.Min != nil && v < *c.Min {
		msgs = append(msgs, "Value below minimum ("+formatBound(*c.Min)+")")
	}
	if c.Max != nil && v > *c.Max {
		msgs = append(msgs, "Value above maximum ("+formatBound(*c.Max)+")")
	}
	return msgs
}

// Membership validates a cell against a fixed set of allowed values.
// Comparison is exact string equality.
type Membership struct {
	Values []string
}

func (c Membership) apply(value string) []string {
	for _, v := range c.Values {
		if value == v {
			return nil
		}
	}
	return []string{"Value not in allowed list: " + strings.Join(c.Values, ", ")}
}

// FieldRule binds one column name to a required flag and a list of
// independently evaluated constraints.
type FieldRule struct {
	Column   string
	Required bool
	Checks   []Constraint
}

// RuleSet is the ordered collection of field rules for one validation
// profile. Order determines the order of error records within a row;
// it has no other meaning.
type RuleSet []FieldRule

// Bound returns a pointer to v, for populating optional Range bounds.
func Bound(v float64) *float64 {
	return &v
}

// formatBound renders a range bound the way it was configured: integral
// bounds print without a decimal part.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

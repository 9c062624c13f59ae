// Package profiles registers the built-in validation profiles with the
// core registry. Import this package to ensure all profiles are
// registered.
package profiles

import (
	"github.com/gridray/gridray/internal/core"
	"github.com/gridray/gridray/internal/pricing"
	"github.com/gridray/gridray/internal/schema"
	"github.com/gridray/gridray/internal/tabular"
	"github.com/gridray/gridray/internal/validate"
)

func init() {
	registerGeneric()
	registerPricing()
}

func registerGeneric() {
	core.Register(core.Profile{
		Info: core.ProfileInfo{
			Key:         "generic",
			Label:       "Generic Data",
			Description: "Field-level checks for contact-style sheets: email and phone formats, age range, and status values.",
			Columns:     schema.Columns(schema.GenericRules),
		},
		Validate: func(table *tabular.Table) []validate.ErrorRecord {
			return validate.Validate(table, schema.GenericRules)
		},
	})
}

func registerPricing() {
	core.Register(core.Profile{
		Info: core.ProfileInfo{
			Key:         "pricing",
			Label:       "Product Pricing",
			Description: "Cross-field checks for product listings: MAP against MRP and GST tax rates against sale price tiers.",
			Columns:     pricing.Columns,
		},
		Validate: pricing.Validate,
	})
}

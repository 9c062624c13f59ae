// Package core provides the business logic for spreadsheet validation.
//
// This package contains all domain logic independent of any UI or
// transport layer. It can be used by web handlers, CLI tools, or tests
// without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Profiles: Registered via the registry, each profile pairs display
//     information with the rule function that validates a loaded table.
//   - Service: The main entry point for running validations and
//     retrieving finished reports.
//   - Reports: Immutable outcomes of one validation run, held in memory
//     until their TTL expires.
//
// # Profile Registry
//
// Profiles are registered at init time using [Register]. Each [Profile]
// contains everything needed to validate one kind of spreadsheet:
//
//	core.Register(Profile{
//	    Info: ProfileInfo{Key: "generic", Label: "Generic Data"},
//	    Validate: func(table *tabular.Table) []validate.ErrorRecord {
//	        return validate.Validate(table, rules)
//	    },
//	})
//
// The built-in profiles live in the core/profiles subpackage; import it
// for its side effects to make them available.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE005: File errors (type, header, size, format)
//   - PRO001: Unknown profile
//   - REP001: Missing or expired report
//   - RATE001: Rate limiting
package core

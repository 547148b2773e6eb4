// Package utils provides common utility functions shared across features.
// Its main job is lenient numeric coercion: every monetary or count input in
// the application (manual entry, spreadsheet import) is funneled through
// ToDecimal, which falls back to zero instead of returning an error.
package utils

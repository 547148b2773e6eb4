// Package models defines the daily-update data shapes: per-member ledger
// entries with their cylinder lines and cash denomination breakdown, and the
// persisted batch wrapper. All money fields are decimals; derived fields are
// never edited directly, only rederived via Recompute.
package models

// Package dailyupdate implements the daily cash-and-cylinder reconciliation
// workflow: an in-memory engine that keeps one ledger entry per delivery man
// with all derived totals recomputed on every edit, an xlsx codec for the
// fixed "Daily Updates" sheet layout, roster reconciliation for imported
// sheets, and persistence of whole batches as single documents.
package dailyupdate

// Package database handles the MySQL connection used by the document store.
//
// It provides a thin wrapper around GORM that applies connection pooling,
// timeouts, and DSN construction from the application configuration. The
// schema itself is owned by core/docstore, which auto-migrates the single
// documents table it needs.
package database

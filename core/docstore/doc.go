// Package docstore implements a generic key-value document collection on top
// of the relational database.
//
// Every record in the system (daily update batches, members, attendance,
// roles) is stored as one opaque JSON document in a named collection, keyed
// by an opaque UUID id. Create returns a new id; Get, Update and Delete take
// an existing one. Features decode the JSON payload into their own record
// types and do any ordering or filtering in memory, which matches the small
// per-collection volumes of a single gas agency.
//
// Store failures are surfaced as ErrPersistence so callers can distinguish
// "the save failed, keep the form state and retry" from validation problems.
package docstore

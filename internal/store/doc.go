// Package store persists detail records as write-once JSON artifacts.
//
// Each application gets exactly one file, keyed by its id. An existing file
// is never rewritten: the ledger's details-known set gates re-fetching, and
// the sink's skip-if-present behavior backs that guarantee on disk.
//
// Design decision: Records are written to a temporary file and renamed into
// place so a crash mid-write never leaves a truncated artifact behind. A
// partial write is invisible; the id only enters the ledger after the
// rename succeeds.
package store

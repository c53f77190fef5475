// Package ledger provides SQLite-based storage for crawl progress sets.
//
// The ledger tracks every named deduplication set the crawler relies on:
// which apps already have a persisted detail record, which apps and
// developers are pending or done for relation expansion, and which
// categories have been fully traversed. All sets are reloaded into memory
// on open, so membership tests never touch the database.
//
// Design decision: We use SQLite (via modernc.org/sqlite) rather than one
// plain-text file per set because:
//  1. A transactional insert gives the persist-before-acknowledge guarantee
//     for free; a crash can never surface an id the caller was not told about
//  2. Moving an id between a pending and a done set is a single transaction,
//     so the two sets can never both contain the same id on disk
//  3. No external dependencies - the ledger is a single CGO-free file
//
// Writes are serialized behind one mutex. Write volume is I/O-bound on the
// network fetches, not on the ledger, so a single mutual-exclusion domain
// is sufficient.
package ledger

// Package crawler drives the catalog traversal across its four relation
// kinds: category listings, cluster listings, similar-apps lists, and
// developer app lists.
//
// # Architecture
//
// The Crawler coordinates three stages, each run to quiescence in order:
//
//   - CategoryStage: every category, its direct items, and its clusters
//   - SimilarStage: transitive closure over each app's similar-apps list
//   - DeveloperStage: each discovered developer's published apps (optional)
//
// All discovered ids flow through one detail pipeline that deduplicates
// against the ledger, batch-fetches records, persists them write-once, and
// seeds the other stages' frontiers.
//
// # Concurrency
//
// Each stage drains its frontier with a bounded errgroup. Frontiers are
// always snapshotted before dispatch: tasks enqueue newly discovered ids
// into the same sets they were spawned from, and iterating a live set
// while tasks mutate it is designed out rather than locked around.
//
// # Failure isolation
//
// A failed task (fetch error, timeout) is logged and its id stays in the
// pending set; siblings and the run continue. The id is retried on a later
// run, not within the current one, so a persistently failing id cannot
// hot-loop a pass.
package crawler

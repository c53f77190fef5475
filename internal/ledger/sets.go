package ledger

// Set names a durable id set tracked by the ledger.
type Set string

// The named sets the crawler relies on. Relation kinds come in
// pending/done pairs; DetailsKnown and CategoriesDone stand alone.
const (
	// DetailsKnown holds app ids with a persisted detail record.
	// Membership is monotonic: once an id is added it is never re-fetched.
	DetailsKnown Set = "details-known"

	// SimilarPending holds app ids discovered but not yet expanded
	// through their similar-apps list. This is the similar-stage frontier.
	SimilarPending Set = "similar-pending"

	// SimilarDone holds app ids whose similar-apps list has been expanded.
	SimilarDone Set = "similar-done"

	// DevelopersPending holds developer ids discovered but not yet expanded.
	DevelopersPending Set = "developers-pending"

	// DevelopersDone holds developer ids whose app list has been expanded.
	DevelopersDone Set = "developers-done"

	// CategoriesDone holds fully traversed category ids.
	CategoriesDone Set = "categories-done"
)

// Sets lists every named set in a stable order.
// Load and Counts iterate this list so new sets only need to be added here.
var Sets = []Set{
	DetailsKnown,
	SimilarPending,
	SimilarDone,
	DevelopersPending,
	DevelopersDone,
	CategoriesDone,
}

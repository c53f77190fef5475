package model

// Category is a top-level store category discovered from the store front page.
//
// Categories are ephemeral: they are produced by a listing call, traversed,
// and only their visited status survives in the ledger.
type Category struct {
	// ID is the opaque category identifier, e.g. "GAME" or "PRODUCTIVITY".
	ID string `json:"category_id"`

	// Name is the human-readable category name.
	Name string `json:"name"`

	// URL is the category listing page URL.
	URL string `json:"url"`
}

// Cluster is a named app collection inside a category, e.g. "Top Free".
// The handle is the opaque token that addresses the cluster listing page.
type Cluster struct {
	// Title is the cluster heading as rendered on the category page.
	Title string `json:"title"`

	// Handle is the opaque cluster token ("gsr" query parameter).
	Handle string `json:"handle"`
}

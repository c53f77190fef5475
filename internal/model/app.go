package model

import "errors"

// ErrMissingAppID is returned when a detail record has no application id.
// Records without an id cannot be keyed on disk or tracked in the ledger,
// so they are dropped by the caller.
var ErrMissingAppID = errors.New("detail record has no app id")

// AppDetail is a fully fetched catalog entry for a single application.
//
// Design decision: We use an explicit struct with named optional fields
// rather than a map keyed by attribute name. Only AppID is mandatory; every
// other field may be absent depending on what the store page exposes.
// DeveloperID in particular is frequently empty for older listings.
type AppDetail struct {
	// AppID is the opaque application identifier, e.g. "com.nintendo.zaaa".
	AppID string `json:"app_id"`

	// URL is the canonical detail page URL the record was fetched from.
	URL string `json:"url,omitempty"`

	// Title is the application's display name.
	Title string `json:"title,omitempty"`

	// Description is the plain-text application description.
	Description string `json:"description,omitempty"`

	// IconURL is the application icon image URL.
	IconURL string `json:"icon,omitempty"`

	// DeveloperID identifies the publishing developer. May be empty when the
	// store page does not link the developer by id.
	DeveloperID string `json:"developer_id,omitempty"`

	// DeveloperName is the developer's display name.
	DeveloperName string `json:"developer,omitempty"`

	// CategoryIDs lists the category identifiers the app is filed under.
	CategoryIDs []string `json:"category,omitempty"`

	// Score is the review score as rendered on the page (e.g. "4.3").
	// Kept as a string because the store localizes the decimal format.
	Score string `json:"score,omitempty"`

	// Price is the rendered price string. Empty for free apps.
	Price string `json:"price,omitempty"`

	// Free reports whether the app is listed without an upfront price.
	Free bool `json:"free"`

	// ContentRating is the age rating label, e.g. "Everyone".
	ContentRating string `json:"content_rating,omitempty"`
}

// Validate checks that the record can be persisted and tracked.
// It returns ErrMissingAppID when the application id is empty.
func (a *AppDetail) Validate() error {
	if a.AppID == "" {
		return ErrMissingAppID
	}
	return nil
}

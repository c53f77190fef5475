package catalog

import "errors"

// Package-level sentinel errors. Callers use errors.Is to distinguish
// transient fetch failures from configuration mistakes.
var (
	// ErrFetchFailed wraps any failure to retrieve or parse a store page.
	// The crawler treats it as transient and leaves the affected id pending.
	ErrFetchFailed = errors.New("catalog fetch failed")

	// ErrInvalidLanguage is returned when the interface language code is not
	// a valid BCP 47 language tag (e.g. "en", "pt-BR").
	ErrInvalidLanguage = errors.New("invalid language interface code")

	// ErrInvalidCountry is returned when the geolocation code is not a valid
	// ISO 3166-1 region (e.g. "us", "de").
	ErrInvalidCountry = errors.New("invalid geolocation country code")
)

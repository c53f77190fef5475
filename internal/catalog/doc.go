// Package catalog fetches and parses Google Play store pages.
//
// The Client is the crawler's external collaborator: it turns listing pages
// into app ids and detail pages into structured records. The crawl engine
// itself never sees HTML; everything page-shaped stays inside this package.
//
// # Components
//
//   - Client: HTTP fetching with per-call context, batch detail fetching
//   - URL builders: detail, similar, developer, category, and cluster pages
//   - Parsers: goquery-based extraction behind the Client's methods
//
// # Failure model
//
// Every fetch failure, regardless of cause (transport error, non-2xx status,
// unparseable page), is reported wrapped in ErrFetchFailed. The crawler
// treats these as transient: the affected id stays pending and is retried
// on a later run. Batch detail fetching is best-effort; ids whose fetch
// fails are simply omitted from the result.
package catalog

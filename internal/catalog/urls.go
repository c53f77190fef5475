package catalog

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the store origin all page URLs are built against.
const DefaultBaseURL = "https://play.google.com"

// Store page paths.
const (
	frontPath     = "/store/apps"
	detailsPath   = "/store/apps/details"
	similarPath   = "/store/apps/similar"
	developerPath = "/store/apps/developer"
	categoryPath  = "/store/apps/category/"
	clusterPath   = "/store/apps/collection/cluster"
)

// pageURL joins a path onto the base URL with the hl/gl parameters plus any
// extra query values.
func (c *Client) pageURL(path string, extra url.Values) string {
	q := url.Values{}
	q.Set("hl", c.language)
	q.Set("gl", c.country)
	for key, vals := range extra {
		for _, v := range vals {
			q.Add(key, v)
		}
	}
	return strings.TrimSuffix(c.baseURL, "/") + path + "?" + q.Encode()
}

// frontURL returns the store front page listing all categories.
func (c *Client) frontURL() string {
	return c.pageURL(frontPath, nil)
}

// detailsURL returns the detail page URL for an application id.
func (c *Client) detailsURL(appID string) string {
	return c.pageURL(detailsPath, url.Values{"id": {appID}})
}

// similarURL returns the similar-apps listing URL for an application id.
// The store answers with a redirect to a cluster page; the HTTP client
// follows it.
func (c *Client) similarURL(appID string) string {
	return c.pageURL(similarPath, url.Values{"id": {appID}})
}

// developerURL returns the listing URL for a developer's published apps.
func (c *Client) developerURL(developerID string) string {
	return c.pageURL(developerPath, url.Values{"id": {developerID}})
}

// categoryURL returns the listing page URL for a category id.
func (c *Client) categoryURL(categoryID string) string {
	return c.pageURL(categoryPath+url.PathEscape(categoryID), nil)
}

// clusterURL returns the listing page URL for a cluster handle.
func (c *Client) clusterURL(handle string) string {
	return c.pageURL(clusterPath, url.Values{"gsr": {handle}})
}

// queryParam extracts a single query parameter from an href attribute.
// Returns "" when the href does not parse or lacks the parameter.
func queryParam(href, key string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get(key)
}

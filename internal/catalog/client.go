package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/soheilrt/play-scraper/internal/model"
)

// Client fetches store pages and turns them into ids and records.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (timeouts, redirects) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with httptest servers
type Client struct {
	// client is the HTTP client used for all requests. Redirect following
	// matters: the similar-apps endpoint answers with a redirect.
	client *http.Client

	// baseURL is the store origin. Overridden in tests.
	baseURL string

	// language is the interface language code sent as the hl parameter.
	language string

	// country is the geolocation code sent as the gl parameter.
	country string

	// userAgent is the User-Agent header to use for requests.
	userAgent string

	// maxBodySize limits the response body size to prevent memory exhaustion.
	maxBodySize int64

	// fetchConcurrency bounds the parallel page fetches inside Details.
	fetchConcurrency int

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the store origin. Used by tests to point the
// client at a local server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithLanguage sets the interface language code (hl parameter).
func WithLanguage(hl string) Option {
	return func(c *Client) {
		c.language = hl
	}
}

// WithCountry sets the geolocation country code (gl parameter).
func WithCountry(gl string) Option {
	return func(c *Client) {
		c.country = gl
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size. Non-positive
// values keep the default.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithFetchConcurrency bounds the parallel fetches of a batch detail call.
func WithFetchConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.fetchConcurrency = n
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client using the given HTTP client. The language and
// country codes are validated against BCP 47 / ISO 3166-1; an unknown code
// is a configuration error, not a transient fetch failure.
func New(httpClient *http.Client, opts ...Option) (*Client, error) {
	c := &Client{
		client:           httpClient,
		baseURL:          DefaultBaseURL,
		language:         "en",
		country:          "us",
		userAgent:        "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
		maxBodySize:      5 * 1024 * 1024, // 5MB
		fetchConcurrency: 15,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if _, err := language.Parse(c.language); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, c.language)
	}
	if _, err := language.ParseRegion(c.country); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCountry, c.country)
	}

	return c, nil
}

// Categories lists all store categories from the front page.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	body, err := c.fetch(ctx, c.frontURL())
	if err != nil {
		return nil, err
	}
	return parseCategories(body, c.baseURL)
}

// CategoryItems lists the app ids shown directly on a category page.
func (c *Client) CategoryItems(ctx context.Context, categoryID string) ([]string, error) {
	body, err := c.fetch(ctx, c.categoryURL(categoryID))
	if err != nil {
		return nil, err
	}
	return parseItemIDs(body)
}

// Clusters lists the app collections advertised on a category page.
func (c *Client) Clusters(ctx context.Context, categoryID string) ([]model.Cluster, error) {
	body, err := c.fetch(ctx, c.categoryURL(categoryID))
	if err != nil {
		return nil, err
	}
	return parseClusters(body)
}

// ClusterItems lists the app ids on a cluster page.
func (c *Client) ClusterItems(ctx context.Context, handle string) ([]string, error) {
	body, err := c.fetch(ctx, c.clusterURL(handle))
	if err != nil {
		return nil, err
	}
	return parseItemIDs(body)
}

// Similar lists the app ids the store considers similar to appID.
func (c *Client) Similar(ctx context.Context, appID string) ([]string, error) {
	body, err := c.fetch(ctx, c.similarURL(appID))
	if err != nil {
		return nil, err
	}
	return parseItemIDs(body)
}

// Detail fetches and parses the full detail record for one application.
func (c *Client) Detail(ctx context.Context, appID string) (*model.AppDetail, error) {
	pageURL := c.detailsURL(appID)
	body, err := c.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	detail, err := parseAppDetail(body)
	if err != nil {
		return nil, err
	}
	detail.AppID = appID
	detail.URL = pageURL
	return detail, nil
}

// Details fetches detail records for a batch of app ids with bounded
// concurrency. The call is best-effort: ids whose fetch fails are logged
// and omitted from the result, leaving them un-fetched for a later attempt.
func (c *Client) Details(ctx context.Context, appIDs []string) ([]model.AppDetail, error) {
	if len(appIDs) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		details = make([]model.AppDetail, 0, len(appIDs))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fetchConcurrency)

	for _, appID := range appIDs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			detail, err := c.Detail(ctx, appID)
			if err != nil {
				c.logger.Debug("detail fetch failed, leaving id for a later attempt",
					"appID", appID,
					"error", err,
				)
				return nil
			}

			mu.Lock()
			details = append(details, *detail)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return details, err
	}
	return details, nil
}

// DeveloperApps fetches full detail records for a developer's published
// apps, capped at maxResults ids.
func (c *Client) DeveloperApps(ctx context.Context, developerID string, maxResults int) ([]model.AppDetail, error) {
	body, err := c.fetch(ctx, c.developerURL(developerID))
	if err != nil {
		return nil, err
	}

	ids, err := parseItemIDs(body)
	if err != nil {
		return nil, err
	}
	if maxResults > 0 && len(ids) > maxResults {
		ids = ids[:maxResults]
	}

	return c.Details(ctx, ids)
}

// fetch performs a single GET request and returns the (size-limited) body.
// Any transport failure or non-2xx status is wrapped in ErrFetchFailed.
func (c *Client) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, pageURL, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", c.language)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", ErrFetchFailed, pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, pageURL, err)
	}
	return body, nil
}

package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/soheilrt/play-scraper/internal/ledger"
	"github.com/soheilrt/play-scraper/internal/model"
	"github.com/soheilrt/play-scraper/internal/store"
)

// Source lists catalog entities and fetches detail records. It is the
// crawler's external collaborator; implementations own all transport and
// page-parsing concerns.
//
// Every method may fail transiently. The crawler isolates such failures:
// the affected id stays in its pending set and the run continues.
type Source interface {
	// Categories lists all store categories.
	Categories(ctx context.Context) ([]model.Category, error)

	// CategoryItems lists the app ids shown directly on a category page.
	CategoryItems(ctx context.Context, categoryID string) ([]string, error)

	// Clusters lists the app collections advertised on a category page.
	Clusters(ctx context.Context, categoryID string) ([]model.Cluster, error)

	// ClusterItems lists the app ids on a cluster page.
	ClusterItems(ctx context.Context, handle string) ([]string, error)

	// Details fetches detail records for a batch of app ids. The call is
	// best-effort: ids whose fetch fails are omitted from the result.
	Details(ctx context.Context, appIDs []string) ([]model.AppDetail, error)

	// Similar lists the app ids similar to appID.
	Similar(ctx context.Context, appID string) ([]string, error)

	// DeveloperApps fetches detail records for a developer's published
	// apps, capped at maxResults.
	DeveloperApps(ctx context.Context, developerID string, maxResults int) ([]model.AppDetail, error)
}

// Crawler materializes one detail record per discovered app while keeping
// the ledger consistent, so an interrupted crawl resumes where it stopped.
type Crawler struct {
	// source is the external collaborator for listings and detail fetches.
	source Source

	// ledger tracks deduplication and per-relation progress.
	ledger *ledger.Ledger

	// sink persists one write-once detail record per app id.
	sink *store.Sink

	// logger for structured logging.
	logger *slog.Logger

	// categoryWorkers bounds concurrent category traversals.
	categoryWorkers int

	// similarWorkers bounds concurrent similar-apps expansions.
	similarWorkers int

	// developerWorkers bounds concurrent developer expansions.
	developerWorkers int

	// maxDeveloperResults caps the apps fetched per developer.
	maxDeveloperResults int

	// excludedCategories are category ids skipped during traversal.
	excludedCategories map[string]struct{}
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets a custom logger for the crawler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithCategoryWorkers bounds concurrent category traversals.
func WithCategoryWorkers(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.categoryWorkers = n
		}
	}
}

// WithSimilarWorkers bounds concurrent similar-apps expansions.
func WithSimilarWorkers(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.similarWorkers = n
		}
	}
}

// WithDeveloperWorkers bounds concurrent developer expansions.
func WithDeveloperWorkers(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.developerWorkers = n
		}
	}
}

// WithMaxDeveloperResults caps the apps fetched per developer.
func WithMaxDeveloperResults(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.maxDeveloperResults = n
		}
	}
}

// WithExcludedCategories skips the given category ids during traversal.
func WithExcludedCategories(ids []string) Option {
	return func(c *Crawler) {
		for _, id := range ids {
			c.excludedCategories[id] = struct{}{}
		}
	}
}

// New creates a Crawler over the given collaborators.
func New(source Source, ldg *ledger.Ledger, sink *store.Sink, opts ...Option) *Crawler {
	c := &Crawler{
		source:              source,
		ledger:              ldg,
		sink:                sink,
		categoryWorkers:     15,
		similarWorkers:      15,
		developerWorkers:    4,
		maxDeveloperResults: 120,
		excludedCategories:  make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Stats reads the current per-set counts from the ledger.
func (c *Crawler) Stats() *model.CrawlStats {
	counts := c.ledger.Counts()
	return &model.CrawlStats{
		DetailsKnown:      counts[ledger.DetailsKnown],
		SimilarPending:    counts[ledger.SimilarPending],
		SimilarDone:       counts[ledger.SimilarDone],
		DevelopersPending: counts[ledger.DevelopersPending],
		DevelopersDone:    counts[ledger.DevelopersDone],
		CategoriesDone:    counts[ledger.CategoriesDone],
		CollectedAt:       time.Now(),
	}
}

// logProgress emits the periodic progress summary.
func (c *Crawler) logProgress() {
	counts := c.ledger.Counts()
	c.logger.Info("crawl progress",
		"detailsKnown", counts[ledger.DetailsKnown],
		"similarPending", counts[ledger.SimilarPending],
		"similarDone", counts[ledger.SimilarDone],
		"developersPending", counts[ledger.DevelopersPending],
		"developersDone", counts[ledger.DevelopersDone],
		"categoriesDone", counts[ledger.CategoriesDone],
	)
}

// fetchDetails routes candidate app ids through the detail pipeline:
// deduplicate against details-known, batch-fetch the remainder, persist
// each record, and seed the other frontiers.
//
// Candidate lists may contain duplicates and already-known ids; only
// genuinely new ids reach the Source, which bounds the fan-out of its
// internal batching. The returned error is always a persistence failure;
// fetch failures inside the best-effort batch simply leave ids un-fetched
// for a later attempt.
func (c *Crawler) fetchDetails(ctx context.Context, appIDs []string) error {
	fresh := make([]string, 0, len(appIDs))
	seen := make(map[string]struct{}, len(appIDs))
	for _, id := range appIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if !c.ledger.Contains(ledger.DetailsKnown, id) {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	records, err := c.source.Details(ctx, fresh)
	if err != nil {
		return fmt.Errorf("fetch details: %w", err)
	}

	c.logger.Debug("detail batch fetched",
		"requested", len(fresh),
		"received", len(records),
	)

	for i := range records {
		if err := c.land(ctx, &records[i]); err != nil {
			if errors.Is(err, model.ErrMissingAppID) {
				c.logger.Warn("dropping malformed detail record", "title", records[i].Title)
				continue
			}
			return err
		}
	}
	return nil
}

// land persists one detail record and updates the ledger: the id joins
// details-known, enters the similar frontier unless already expanded, and
// seeds the developer frontier when the record names a new developer.
//
// Persistence failures abort only this record; the id stays out of
// details-known so a later run fetches it again.
func (c *Crawler) land(ctx context.Context, record *model.AppDetail) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if c.ledger.Contains(ledger.DetailsKnown, record.AppID) {
		return nil
	}

	if _, err := c.sink.Write(record); err != nil {
		return fmt.Errorf("persist detail %s: %w", record.AppID, err)
	}
	if err := c.ledger.Add(ctx, ledger.DetailsKnown, record.AppID); err != nil {
		return err
	}

	if !c.ledger.Contains(ledger.SimilarDone, record.AppID) {
		if err := c.ledger.Add(ctx, ledger.SimilarPending, record.AppID); err != nil {
			return err
		}
	}

	if record.DeveloperID != "" && !c.ledger.Contains(ledger.DevelopersDone, record.DeveloperID) {
		if err := c.ledger.Add(ctx, ledger.DevelopersPending, record.DeveloperID); err != nil {
			return err
		}
	}

	return nil
}

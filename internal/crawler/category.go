package crawler

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/soheilrt/play-scraper/internal/ledger"
	"github.com/soheilrt/play-scraper/internal/model"
)

// CategoryStage traverses every store category: the items listed directly
// on the category page, then every cluster's items. A category is marked
// done only after all of its clusters have been routed; any failure leaves
// it unmarked so the next run retries it from the top.
type CategoryStage struct {
	c *Crawler
}

// CategoryStage returns the category traversal stage.
func (c *Crawler) CategoryStage() *CategoryStage {
	return &CategoryStage{c: c}
}

// Name returns the stage name.
func (s *CategoryStage) Name() string {
	return "categories"
}

// Run lists all categories and traverses the unvisited ones with bounded
// concurrency. Listing the categories themselves is the only stage-fatal
// failure; everything after is isolated per category.
func (s *CategoryStage) Run(ctx context.Context) error {
	categories, err := s.c.source.Categories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	s.c.logger.Info("categories listed", "total", len(categories))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.c.categoryWorkers)

	for _, category := range categories {
		if _, excluded := s.c.excludedCategories[category.ID]; excluded {
			s.c.logger.Debug("category excluded", "category", category.ID)
			continue
		}
		if s.c.ledger.Contains(ledger.CategoriesDone, category.ID) {
			continue
		}

		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err := s.c.crawlCategory(ctx, category); err != nil {
				// Category left unmarked; the next run retries it.
				s.c.logger.Warn("category traversal failed",
					"category", category.ID,
					"error", err,
				)
				return nil
			}

			s.c.logger.Info("category done", "category", category.ID)
			s.c.logProgress()
			return nil
		})
	}

	return g.Wait()
}

// crawlCategory traverses one category to completion: direct items first,
// then each cluster's items, then the done marker.
func (c *Crawler) crawlCategory(ctx context.Context, category model.Category) error {
	items, err := c.source.CategoryItems(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("list category items: %w", err)
	}
	c.logger.Debug("category items listed", "category", category.ID, "items", len(items))

	if err := c.fetchDetails(ctx, items); err != nil {
		return err
	}

	clusters, err := c.source.Clusters(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("list clusters: %w", err)
	}
	c.logger.Debug("clusters listed", "category", category.ID, "clusters", len(clusters))

	for _, cluster := range clusters {
		items, err := c.source.ClusterItems(ctx, cluster.Handle)
		if err != nil {
			return fmt.Errorf("list cluster items %q: %w", cluster.Title, err)
		}
		c.logger.Debug("cluster items listed",
			"category", category.ID,
			"cluster", cluster.Title,
			"items", len(items),
		)

		if err := c.fetchDetails(ctx, items); err != nil {
			return err
		}
	}

	return c.ledger.Add(ctx, ledger.CategoriesDone, category.ID)
}

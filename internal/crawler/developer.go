package crawler

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/soheilrt/play-scraper/internal/ledger"
	"github.com/soheilrt/play-scraper/internal/model"
)

// DeveloperStage expands each discovered developer into their published
// apps. It runs only after the category and similar stages quiesce and
// can be disabled entirely without affecting the other stages.
type DeveloperStage struct {
	c *Crawler
}

// DeveloperStage returns the developer expansion stage.
func (c *Crawler) DeveloperStage() *DeveloperStage {
	return &DeveloperStage{c: c}
}

// Name returns the stage name.
func (s *DeveloperStage) Name() string {
	return "developers"
}

// Run drains the developers-pending frontier in snapshot batches with
// bounded concurrency. Landed apps may seed the similar frontier; those
// ids are picked up by the next run's similar stage.
func (s *DeveloperStage) Run(ctx context.Context) error {
	attempted := make(map[string]struct{})

	for {
		frontier := make([]string, 0)
		for _, id := range s.c.ledger.Snapshot(ledger.DevelopersPending) {
			if _, done := attempted[id]; !done {
				frontier = append(frontier, id)
			}
		}
		if len(frontier) == 0 {
			return nil
		}
		for _, id := range frontier {
			attempted[id] = struct{}{}
		}

		s.c.logger.Info("expanding developer frontier", "size", len(frontier))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.c.developerWorkers)

		for _, developerID := range frontier {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if err := s.c.expandDeveloper(gctx, developerID); err != nil {
					s.c.logger.Warn("developer expansion failed",
						"developerID", developerID,
						"error", err,
					)
					return nil
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		s.c.logProgress()
	}
}

// expandDeveloper fetches one developer's apps, lands each record, and
// moves the developer from pending to done.
func (c *Crawler) expandDeveloper(ctx context.Context, developerID string) error {
	records, err := c.source.DeveloperApps(ctx, developerID, c.maxDeveloperResults)
	if err != nil {
		return err
	}
	c.logger.Debug("developer apps fetched", "developerID", developerID, "apps", len(records))

	for i := range records {
		if err := c.land(ctx, &records[i]); err != nil {
			if errors.Is(err, model.ErrMissingAppID) {
				c.logger.Warn("dropping malformed developer record",
					"developerID", developerID,
					"title", records[i].Title,
				)
				continue
			}
			return err
		}
	}

	return c.ledger.Move(ctx, ledger.DevelopersPending, ledger.DevelopersDone, developerID)
}

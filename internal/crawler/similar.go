package crawler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/soheilrt/play-scraper/internal/ledger"
)

// SimilarStage computes the transitive closure of the similar-apps
// relation: expanding an app's similar list lands new detail records,
// which in turn join the frontier, until no pass discovers anything new.
type SimilarStage struct {
	c *Crawler
}

// SimilarStage returns the similar-apps closure stage.
func (c *Crawler) SimilarStage() *SimilarStage {
	return &SimilarStage{c: c}
}

// Name returns the stage name.
func (s *SimilarStage) Name() string {
	return "similar-apps"
}

// Run drains the similar-pending frontier in snapshot batches. Each pass
// snapshots the frontier, expands every id with bounded concurrency, and
// loops while newly landed apps refill it. Ids whose expansion fails are
// attempted once per run: they stay pending for the next run instead of
// hot-looping this one.
func (s *SimilarStage) Run(ctx context.Context) error {
	attempted := make(map[string]struct{})

	for {
		frontier := make([]string, 0)
		for _, id := range s.c.ledger.Snapshot(ledger.SimilarPending) {
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

		s.c.logger.Info("expanding similar-apps frontier", "size", len(frontier))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.c.similarWorkers)

		for _, appID := range frontier {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if err := s.c.expandSimilar(gctx, appID); err != nil {
					// Still pending; retried on a future run.
					s.c.logger.Warn("similar expansion failed",
						"appID", appID,
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

// expandSimilar fetches one app's similar list, routes the results through
// the detail pipeline, and moves the app from pending to done. The move
// happens last: an interruption before it leaves the app pending, and
// re-expanding it later is harmless because the pipeline deduplicates.
func (c *Crawler) expandSimilar(ctx context.Context, appID string) error {
	similar, err := c.source.Similar(ctx, appID)
	if err != nil {
		return err
	}
	c.logger.Debug("similar apps listed", "appID", appID, "similar", len(similar))

	if err := c.fetchDetails(ctx, similar); err != nil {
		return err
	}

	return c.ledger.Move(ctx, ledger.SimilarPending, ledger.SimilarDone, appID)
}

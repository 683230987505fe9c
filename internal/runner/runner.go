// Package runner drives a batch scrape over the configured URL list.
package runner

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sarjtakip/tarife-cli/internal/model"
)

// Scraper produces a page result for one URL.
type Scraper interface {
	Scrape(ctx context.Context, url string) model.PageResult
}

// Runner fans URLs out over a bounded worker pool.
type Runner struct {
	scraper Scraper
	workers int
	logger  *zap.Logger
}

// New creates a Runner. workers below 1 is treated as 1.
func New(scraper Scraper, workers int, logger *zap.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{scraper: scraper, workers: workers, logger: logger}
}

// Run scrapes every URL and returns results in input order along with batch
// counts. Individual failures never abort the batch; cancellation of ctx does.
func (r *Runner) Run(ctx context.Context, urls []string) ([]model.PageResult, model.BatchSummary) {
	results := make([]model.PageResult, len(urls))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, u := range urls {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				results[i] = model.PageResult{URL: u, Status: model.StatusFetchError, Error: err.Error()}
				return nil
			}
			results[i] = r.scraper.Scrape(gCtx, u)
			r.logger.Info("page scraped",
				zap.String("url", u),
				zap.String("status", string(results[i].Status)),
				zap.Int("observations", len(results[i].Observations)))
			return nil
		})
	}
	_ = g.Wait()

	summary := summarize(results)
	r.logger.Info("batch complete",
		zap.Int("total", summary.Total),
		zap.Int("success", summary.Success),
		zap.Int("no_prices", summary.NoPrices),
		zap.Int("failed", summary.Failed))
	return results, summary
}

func summarize(results []model.PageResult) model.BatchSummary {
	s := model.BatchSummary{Total: len(results)}
	for _, res := range results {
		switch res.Status {
		case model.StatusSuccess:
			s.Success++
		case model.StatusNoPrices:
			s.NoPrices++
		default:
			s.Failed++
		}
	}
	return s
}

package runner

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sarjtakip/tarife-cli/internal/model"
)

type fakeScraper struct {
	mu      sync.Mutex
	active  int
	peak    int
	results map[string]model.PageResult
}

func (f *fakeScraper) Scrape(_ context.Context, url string) model.PageResult {
	f.mu.Lock()
	f.active++
	if f.active > f.peak {
		f.peak = f.active
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	if res, ok := f.results[url]; ok {
		return res
	}
	return model.PageResult{URL: url, Status: model.StatusNoPrices}
}

func TestRun_ResultsInInputOrder(t *testing.T) {
	ac := decimal.NewFromFloat(8.5)
	scraper := &fakeScraper{results: map[string]model.PageResult{
		"https://esarj.com": {
			URL: "https://esarj.com", Status: model.StatusSuccess,
			Observations: []model.PriceObservation{{Value: ac, Type: model.ChargingAC}},
		},
		"https://bozuk.com": {URL: "https://bozuk.com", Status: model.StatusFetchError, Error: "timeout"},
	}}

	urls := []string{"https://esarj.com", "https://zes.net", "https://bozuk.com"}
	results, summary := New(scraper, 2, zap.NewNop()).Run(context.Background(), urls)

	require.Len(t, results, 3)
	for i, u := range urls {
		assert.Equal(t, u, results[i].URL)
	}

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 1, summary.NoPrices)
	assert.Equal(t, 1, summary.Failed)
}

func TestRun_RespectsWorkerLimit(t *testing.T) {
	scraper := &fakeScraper{}
	urls := make([]string, 20)
	for i := range urls {
		urls[i] = "https://example.com"
	}

	_, summary := New(scraper, 2, zap.NewNop()).Run(context.Background(), urls)
	assert.Equal(t, 20, summary.Total)
	assert.LessOrEqual(t, scraper.peak, 2)
}

func TestRun_CanceledContextMarksRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scraper := &fakeScraper{}
	results, summary := New(scraper, 1, zap.NewNop()).Run(ctx, []string{"https://esarj.com", "https://zes.net"})

	require.Len(t, results, 2)
	assert.Equal(t, 2, summary.Failed)
	for _, res := range results {
		assert.Equal(t, model.StatusFetchError, res.Status)
	}
}

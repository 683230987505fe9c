package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarjtakip/tarife-cli/internal/dataset"
	"github.com/sarjtakip/tarife-cli/internal/extract"
	"github.com/sarjtakip/tarife-cli/internal/fallback"
	"github.com/sarjtakip/tarife-cli/internal/fetch"
	"github.com/sarjtakip/tarife-cli/internal/page"
	"github.com/sarjtakip/tarife-cli/internal/reconcile"
	"github.com/sarjtakip/tarife-cli/internal/runner"
)

var runURLs []string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape all configured operator pages and write the merged dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger := zap.L()

		urls := runURLs
		if len(urls) == 0 {
			var err error
			urls, err = dataset.LoadURLs(cfg.Dataset.URLsPath)
			if err != nil {
				return err
			}
		}
		if len(urls) == 0 {
			return fmt.Errorf("no urls to scrape")
		}

		previous, err := dataset.Load(cfg.Output.DatasetPath)
		if err != nil {
			return err
		}
		logos, err := dataset.LoadLogoMap(cfg.Dataset.LogosPath)
		if err != nil {
			return err
		}

		resolver := fallback.New(manualPrices(), logger)
		resolver.Hydrate(previous,
			decimal.NewFromFloat(cfg.Fallback.MinPrice),
			decimal.NewFromFloat(cfg.Fallback.MaxPrice))

		ex := extract.NewExtractor(
			decimal.NewFromFloat(cfg.Extract.MinPrice),
			decimal.NewFromFloat(cfg.Extract.MaxPrice))
		pool := page.NewPool(ex, logger)

		static := fetch.NewStaticFetcher(cfg.Fetch.Timeout(), cfg.Fetch.Interval())
		var rendered fetch.Fetcher
		if cfg.Render.Enabled {
			rf := fetch.NewRenderedFetcher(cfg.Render.Timeout(), cfg.Render.ScrollPasses)
			defer rf.Close()
			rendered = rf
		}
		selector := fetch.NewSelector(static, rendered, cfg.Render.ForceDomains, pool.Extract, logger)

		results, summary := runner.New(selector, cfg.Batch.Workers, logger).Run(ctx, urls)

		engine := reconcile.NewEngine(cfg.Batch.Country, cfg.Batch.Currency, logos, logger)
		records := engine.Merge(results, resolver, previous)

		if err := dataset.SaveResults(cfg.Output.ResultsPath, results); err != nil {
			return err
		}
		if err := dataset.Save(cfg.Output.DatasetPath, records); err != nil {
			return err
		}

		fmt.Printf("scraped %d pages: %d with prices, %d without, %d failed; %d companies written to %s\n",
			summary.Total, summary.Success, summary.NoPrices, summary.Failed,
			len(records), cfg.Output.DatasetPath)
		return nil
	},
}

// manualPrices converts the config's manual fallback entries to resolver input.
func manualPrices() map[string]fallback.Prices {
	out := make(map[string]fallback.Prices, len(cfg.Fallback.Manual))
	for domain, entry := range cfg.Fallback.Manual {
		var p fallback.Prices
		for _, v := range entry.AC {
			p.AC = append(p.AC, decimal.NewFromFloat(v))
		}
		for _, v := range entry.DC {
			p.DC = append(p.DC, decimal.NewFromFloat(v))
		}
		out[domain] = p
	}
	return out
}

func init() {
	runCmd.Flags().StringSliceVar(&runURLs, "url", nil, "scrape only these urls instead of the configured list")
	rootCmd.AddCommand(runCmd)
}

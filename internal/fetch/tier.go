package fetch

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sarjtakip/tarife-cli/internal/model"
)

// ExtractFunc turns a fetched document into price observations.
type ExtractFunc func(doc *goquery.Document, domain string) []model.PriceObservation

// Selector runs the static fetcher first and escalates to the rendered one
// when the static document yields nothing. Domains listed in forceRender skip
// the static pass entirely.
type Selector struct {
	static      Fetcher
	rendered    Fetcher
	forceRender map[string]struct{}
	extract     ExtractFunc
	logger      *zap.Logger
}

// NewSelector builds a Selector. rendered may be nil, in which case escalation
// is disabled and forced domains fail as fetch errors.
func NewSelector(static, rendered Fetcher, forceRenderDomains []string, extract ExtractFunc, logger *zap.Logger) *Selector {
	forced := make(map[string]struct{}, len(forceRenderDomains))
	for _, d := range forceRenderDomains {
		forced[model.NormalizeDomain(d)] = struct{}{}
	}
	return &Selector{
		static:      static,
		rendered:    rendered,
		forceRender: forced,
		extract:     extract,
		logger:      logger,
	}
}

// Scrape fetches one URL through the tiers and returns its extraction result.
// It never returns an error; failures are encoded in the result status so a
// batch can keep going.
func (s *Selector) Scrape(ctx context.Context, url string) model.PageResult {
	domain := model.NormalizeDomain(url)
	_, forced := s.forceRender[domain]

	if !forced {
		doc, err := s.static.Fetch(ctx, url)
		if err != nil {
			s.logger.Warn("static fetch failed, escalating",
				zap.String("url", url),
				zap.Error(err))
		} else if obs := s.extract(doc, domain); len(obs) > 0 {
			return model.PageResult{URL: url, Status: model.StatusSuccess, Observations: obs}
		} else {
			s.logger.Debug("static document had no prices, escalating",
				zap.String("url", url))
		}
		if s.rendered == nil {
			if err != nil {
				return model.PageResult{URL: url, Status: model.StatusFetchError, Error: err.Error()}
			}
			return model.PageResult{URL: url, Status: model.StatusNoPrices}
		}
	}

	if s.rendered == nil {
		return model.PageResult{URL: url, Status: model.StatusFetchError, Error: "no renderer configured"}
	}

	doc, err := s.rendered.Fetch(ctx, url)
	if err != nil {
		return model.PageResult{URL: url, Status: model.StatusRenderErr, Error: err.Error()}
	}
	obs := s.extract(doc, domain)
	if len(obs) == 0 {
		return model.PageResult{URL: url, Status: model.StatusNoPrices}
	}
	return model.PageResult{URL: url, Status: model.StatusSuccess, Observations: obs}
}

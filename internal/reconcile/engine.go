// Package reconcile merges freshly scraped observations with fallback prices
// and the previous dataset into one company record per domain.
package reconcile

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sarjtakip/tarife-cli/internal/fallback"
	"github.com/sarjtakip/tarife-cli/internal/model"
)

// Engine builds the output dataset for a batch run.
type Engine struct {
	Country  string
	Currency string
	Logos    map[string]string
	logger   *zap.Logger
}

// NewEngine creates an Engine emitting records for the given country and
// currency labels. logos maps normalized domains to logo URLs and may be nil.
func NewEngine(country, currency string, logos map[string]string, logger *zap.Logger) *Engine {
	return &Engine{Country: country, Currency: currency, Logos: logos, logger: logger}
}

// Merge reconciles page results into company records.
//
// Per domain the cheapest AC observation and the most expensive DC observation
// win. Domains without a usable observation take fallback prices, then the
// previous run's values, and finally a record with null prices so the company
// never drops out of the dataset. When several URLs share a domain the latest
// result that actually carries prices replaces earlier ones. Previous-run
// records for domains not scraped this time are copied forward untouched.
func (e *Engine) Merge(results []model.PageResult, resolver *fallback.Resolver, previous []model.CompanyRecord) []model.CompanyRecord {
	prevByDomain := lo.KeyBy(previous, func(r model.CompanyRecord) string { return r.Domain() })

	byDomain := make(map[string]model.CompanyRecord)
	var order []string

	for _, res := range results {
		domain := model.NormalizeDomain(res.URL)
		if domain == "" {
			continue
		}
		rec := e.buildRecord(res, domain, resolver, prevByDomain)

		existing, seen := byDomain[domain]
		if !seen {
			byDomain[domain] = rec
			order = append(order, domain)
			continue
		}
		if rec.HasPrices() {
			byDomain[domain] = rec
		} else if !existing.HasPrices() {
			// Neither has prices, keep the later one for its status.
			byDomain[domain] = rec
		}
	}

	out := make([]model.CompanyRecord, 0, len(order)+len(previous))
	for _, domain := range order {
		out = append(out, byDomain[domain])
	}

	// Companies from the previous dataset that were not scraped this run.
	carried := 0
	for _, prev := range previous {
		if _, ok := byDomain[prev.Domain()]; ok {
			continue
		}
		out = append(out, prev)
		carried++
	}
	if carried > 0 {
		e.logger.Info("carried forward unscraped records", zap.Int("count", carried))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Firma < out[j].Firma })
	return out
}

func (e *Engine) buildRecord(res model.PageResult, domain string, resolver *fallback.Resolver, prev map[string]model.CompanyRecord) model.CompanyRecord {
	rec := model.CompanyRecord{
		Firma:      model.CompanyName(res.URL),
		Ulke:       e.Country,
		WebSitesi:  res.URL,
		ACCurrency: e.Currency,
		DCCurrency: e.Currency,
	}
	if logo, ok := e.Logos[domain]; ok {
		rec.LogoURL = &logo
	}

	rec.ACFiyat = minOf(res.ACValues())
	rec.DCFiyat = maxOf(res.DCValues())

	if rec.ACFiyat == nil || rec.DCFiyat == nil {
		if fb, ok := resolver.Resolve(domain); ok {
			if rec.ACFiyat == nil {
				rec.ACFiyat = minOf(fb.AC)
			}
			if rec.DCFiyat == nil {
				rec.DCFiyat = maxOf(fb.DC)
			}
		}
	}

	// Nothing new at all: keep the previous record exactly as it was, so a
	// curated name or per-record country and currency labels survive a
	// failed scrape.
	if rec.ACFiyat == nil && rec.DCFiyat == nil {
		if p, ok := prev[domain]; ok {
			if !p.HasPrices() {
				e.logger.Warn("no prices resolved for domain", zap.String("domain", domain))
			}
			return p
		}
	}

	// Partial result: fill the one missing side from the previous run rather
	// than regress it to null.
	if p, ok := prev[domain]; ok {
		if rec.ACFiyat == nil && p.ACFiyat != nil {
			v := *p.ACFiyat
			rec.ACFiyat = &v
		}
		if rec.DCFiyat == nil && p.DCFiyat != nil {
			v := *p.DCFiyat
			rec.DCFiyat = &v
		}
		if rec.LogoURL == nil && p.LogoURL != nil {
			rec.LogoURL = p.LogoURL
		}
	}

	if !rec.HasPrices() {
		e.logger.Warn("no prices resolved for domain", zap.String("domain", domain))
	}
	return rec
}

func minOf(vals []decimal.Decimal) *decimal.Decimal {
	if len(vals) == 0 {
		return nil
	}
	m := lo.MinBy(vals, func(a, b decimal.Decimal) bool { return a.LessThan(b) })
	return &m
}

func maxOf(vals []decimal.Decimal) *decimal.Decimal {
	if len(vals) == 0 {
		return nil
	}
	m := lo.MaxBy(vals, func(a, b decimal.Decimal) bool { return a.GreaterThan(b) })
	return &m
}

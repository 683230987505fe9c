// Package fallback supplies known per-domain prices for operators whose pages
// resist automated extraction.
package fallback

import (
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sarjtakip/tarife-cli/internal/model"
)

// Prices holds hand-curated or carried-over tariff values for one domain.
type Prices struct {
	AC []decimal.Decimal
	DC []decimal.Decimal
}

func (p Prices) clone() Prices {
	return Prices{AC: slices.Clone(p.AC), DC: slices.Clone(p.DC)}
}

// Resolver maps normalized domains to fallback prices. Manual entries always
// win over hydrated ones. The table is built before a batch starts and is
// read-only from then on, so concurrent lookups need no locking.
type Resolver struct {
	table  map[string]Prices
	manual map[string]struct{}
	logger *zap.Logger
}

// New creates a Resolver seeded with manual entries. Keys may be raw URLs or
// bare domains; they are normalized either way.
func New(manual map[string]Prices, logger *zap.Logger) *Resolver {
	r := &Resolver{
		table:  make(map[string]Prices, len(manual)),
		manual: make(map[string]struct{}, len(manual)),
		logger: logger,
	}
	for key, p := range manual {
		domain := model.NormalizeDomain(key)
		r.table[domain] = p.clone()
		r.manual[domain] = struct{}{}
	}
	return r
}

// Hydrate adds prices from a previous run's records, skipping domains with a
// manual entry and values outside [min, max]. Out-of-range values usually mean
// the earlier extraction latched onto a power rating or date fragment.
func (r *Resolver) Hydrate(records []model.CompanyRecord, min, max decimal.Decimal) {
	for _, rec := range records {
		domain := rec.Domain()
		if domain == "" {
			continue
		}
		if _, isManual := r.manual[domain]; isManual {
			continue
		}
		var p Prices
		if rec.ACFiyat != nil && inRange(*rec.ACFiyat, min, max) {
			p.AC = append(p.AC, *rec.ACFiyat)
		}
		if rec.DCFiyat != nil && inRange(*rec.DCFiyat, min, max) {
			p.DC = append(p.DC, *rec.DCFiyat)
		}
		if len(p.AC) == 0 && len(p.DC) == 0 {
			continue
		}
		r.table[domain] = p
	}
	r.logger.Info("fallback table hydrated", zap.Int("domains", len(r.table)))
}

// Resolve returns the fallback prices for a domain. The returned slices are
// copies, safe for the caller to mutate.
func (r *Resolver) Resolve(domain string) (Prices, bool) {
	p, ok := r.table[model.NormalizeDomain(domain)]
	if !ok {
		return Prices{}, false
	}
	return p.clone(), true
}

func inRange(v, min, max decimal.Decimal) bool {
	return v.GreaterThanOrEqual(min) && v.LessThanOrEqual(max)
}

package page

import (
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sarjtakip/tarife-cli/internal/extract"
	"github.com/sarjtakip/tarife-cli/internal/model"
)

const maxObservations = 20

// Pool runs every registered strategy against a document and merges their
// candidates into a deduplicated, ascending observation list.
type Pool struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewPool builds the default strategy set. Order matters only for which
// duplicate's description survives, not for which prices are found.
func NewPool(ex *extract.Extractor, logger *zap.Logger) *Pool {
	return &Pool{
		strategies: []Strategy{
			NewTableStrategy(ex),
			NewTaggedSectionStrategy(ex),
			NewKeywordStrategy(ex),
			NewListStrategy(ex),
			NewCombinedStrategy(ex),
		},
		logger: logger,
	}
}

// Extract scans doc with every strategy and assembles the merged observations.
func (p *Pool) Extract(doc *goquery.Document, domain string) []model.PriceObservation {
	var all []Candidate
	for _, s := range p.strategies {
		found := s.Scan(doc)
		if len(found) > 0 && p.logger != nil {
			p.logger.Debug("strategy matched",
				zap.String("strategy", s.Name()),
				zap.String("domain", domain),
				zap.Int("candidates", len(found)))
		}
		all = append(all, found...)
	}

	obs := lo.FilterMap(all, func(c Candidate, _ int) (model.PriceObservation, bool) {
		desc := extract.TruncateDescription(c.Context)
		if desc == "" {
			return model.PriceObservation{}, false
		}
		return model.PriceObservation{
			Value:        c.Value,
			Unit:         "TL/kWh",
			Type:         c.Type,
			Power:        c.Power,
			SourceText:   desc,
			OriginDomain: domain,
		}, true
	})

	obs = dedupe(obs)
	sort.Slice(obs, func(i, j int) bool { return obs[i].Value.LessThan(obs[j].Value) })
	if len(obs) > maxObservations {
		obs = obs[:maxObservations]
	}
	return obs
}

// dedupe keeps the first observation per identity key. Observations that carry
// a charging type or power rating are keyed on those, untyped ones fall back
// to the description prefix so distinct tariffs at the same price survive.
func dedupe(obs []model.PriceObservation) []model.PriceObservation {
	seen := make(map[string]struct{}, len(obs))
	out := obs[:0:0]
	for _, o := range obs {
		key := o.Value.Round(2).String()
		if o.Type != model.ChargingUnknown || o.Power != "" {
			key += "|" + string(o.Type) + "|" + o.Power
		} else {
			desc := []rune(o.SourceText)
			if len(desc) > 50 {
				desc = desc[:50]
			}
			key += "|" + string(desc)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, o)
	}
	return out
}

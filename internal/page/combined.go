package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sarjtakip/tarife-cli/internal/extract"
	"github.com/sarjtakip/tarife-cli/internal/model"
)

// CombinedStrategy targets blocks mentioning both a charging-type token and a
// currency or unit token. It collects every anchored price in the block, so a
// single element listing AC and DC tariffs together yields both.
type CombinedStrategy struct {
	ex *extract.Extractor
}

// NewCombinedStrategy returns a combined AC/DC block scanner.
func NewCombinedStrategy(ex *extract.Extractor) *CombinedStrategy {
	return &CombinedStrategy{ex: ex}
}

func (s *CombinedStrategy) Name() string { return "combined_block" }

func (s *CombinedStrategy) Scan(doc *goquery.Document) []Candidate {
	var out []Candidate
	doc.Find("div, span, p, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "ac") && !strings.Contains(lower, "dc") {
			return
		}
		if !containsAny(lower, unitOrCurrencyTokens) {
			return
		}
		for _, m := range s.ex.CurrencyAnchored(text) {
			if perMinute(text, m.End) {
				continue
			}
			ct := extract.ClassifyTypeAt(text, m.Start)
			if ct == model.ChargingUnknown {
				ct = extract.ClassifyType(text)
			}
			out = append(out, Candidate{
				Value:   m.Value,
				Type:    ct,
				Power:   extract.Power(text),
				Context: contextAround(text, m.Start, m.End),
			})
		}
	})
	return out
}

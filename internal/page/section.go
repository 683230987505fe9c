package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sarjtakip/tarife-cli/internal/extract"
)

// TaggedSectionStrategy scans container elements whose class/id tokens or
// visible text match the pricing vocabulary, and extracts every
// currency-anchored price inside with positional type attribution.
type TaggedSectionStrategy struct {
	ex *extract.Extractor
}

// NewTaggedSectionStrategy returns a section scanner using the given extractor.
func NewTaggedSectionStrategy(ex *extract.Extractor) *TaggedSectionStrategy {
	return &TaggedSectionStrategy{ex: ex}
}

func (s *TaggedSectionStrategy) Name() string { return "tagged_section" }

func (s *TaggedSectionStrategy) Scan(doc *goquery.Document) []Candidate {
	var out []Candidate
	doc.Find("div, section, article").Each(func(_ int, sel *goquery.Selection) {
		if !s.tagged(sel) {
			return
		}
		out = append(out, s.scanSection(sel.Text())...)
	})
	return out
}

func (s *TaggedSectionStrategy) tagged(sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	id, _ := sel.Attr("id")
	if containsAny(strings.ToLower(class+" "+id), sectionClassKeywords) {
		return true
	}
	return containsAny(strings.ToLower(sel.Text()), sectionTextMarkers)
}

// scanSection pulls every currency-anchored price from the section text,
// skipping per-minute fees, and classifies each at its own offset so one
// section can yield both an AC and a DC observation.
func (s *TaggedSectionStrategy) scanSection(text string) []Candidate {
	var out []Candidate
	for _, m := range s.ex.CurrencyAnchored(text) {
		if perMinute(text, m.End) {
			continue
		}
		out = append(out, Candidate{
			Value:   m.Value,
			Type:    extract.ClassifyTypeAt(text, m.Start),
			Power:   extract.Power(contextAround(text, m.Start, m.End)),
			Context: contextAround(text, m.Start, m.End),
		})
	}
	return out
}

// contextAround returns the type-attribution window: deep before the price,
// shallow after.
func contextAround(text string, start, end int) string {
	from := start - 200
	if from < 0 {
		from = 0
	}
	to := end + 50
	if to > len(text) {
		to = len(text)
	}
	return text[from:to]
}

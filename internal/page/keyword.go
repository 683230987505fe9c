package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/sarjtakip/tarife-cli/internal/extract"
)

// KeywordStrategy finds elements whose own text nodes mention a pricing
// keyword and scans the element's full text for a single best price.
type KeywordStrategy struct {
	ex *extract.Extractor
}

// NewKeywordStrategy returns a keyword-anchored scanner.
func NewKeywordStrategy(ex *extract.Extractor) *KeywordStrategy {
	return &KeywordStrategy{ex: ex}
}

func (s *KeywordStrategy) Name() string { return "keyword" }

func (s *KeywordStrategy) Scan(doc *goquery.Document) []Candidate {
	var out []Candidate
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if !containsAny(strings.ToLower(ownText(sel)), anchorKeywords) {
			return
		}
		text := sel.Text()
		val, ok := s.ex.First(text)
		if !ok {
			return
		}
		out = append(out, Candidate{
			Value:   val,
			Type:    extract.ClassifyType(text),
			Power:   extract.Power(text),
			Context: text,
		})
	})
	return out
}

// ownText is the element's direct text content, excluding descendants.
// Anchoring on it keeps the match local instead of lighting up every
// ancestor of a price table.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return b.String()
}

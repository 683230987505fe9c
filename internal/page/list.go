package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sarjtakip/tarife-cli/internal/extract"
)

// ListStrategy scans top-level items of list containers whose text carries a
// pricing keyword.
type ListStrategy struct {
	ex *extract.Extractor
}

// NewListStrategy returns a list-item scanner.
func NewListStrategy(ex *extract.Extractor) *ListStrategy {
	return &ListStrategy{ex: ex}
}

func (s *ListStrategy) Name() string { return "list_item" }

func (s *ListStrategy) Scan(doc *goquery.Document) []Candidate {
	var out []Candidate
	doc.Find("ul, ol, dl").Each(func(_ int, list *goquery.Selection) {
		list.ChildrenFiltered("li, dd").Each(func(_ int, item *goquery.Selection) {
			text := item.Text()
			if !containsAny(strings.ToLower(text), rowKeywords) {
				return
			}
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
	})
	return out
}

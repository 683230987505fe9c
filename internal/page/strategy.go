// Package page scans a fetched DOM for price observations using a set of
// independent, order-insensitive strategies whose findings are pooled and
// deduplicated.
package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/sarjtakip/tarife-cli/internal/model"
)

// Candidate is a price found by one strategy, before observation assembly.
type Candidate struct {
	Value   decimal.Decimal
	Type    model.ChargingType
	Power   string
	Context string // surrounding text, kept raw until assembly
}

// Strategy scans a document for price candidates. Strategies are independent
// of each other; the pool owns deduplication.
type Strategy interface {
	Name() string
	Scan(doc *goquery.Document) []Candidate
}

// Pricing vocabulary. Turkish first, English second, matching the corpus.
var (
	rowKeywords = []string{
		"fiyat", "tarife", "ücret", "ucret", "price", "kwh", "kw",
	}
	anchorKeywords = []string{
		"fiyat", "tarife", "ücret", "ucret", "price", "pricing",
		"kwh", "kw/h", "kilowatt", "kilovat",
	}
	sectionClassKeywords = []string{
		"price", "fiyat", "tarife", "pricing", "plan", "paket",
		"hizmet", "fiyatlandırma", "fiyatlandirma", "cost", "amount",
	}
	sectionTextMarkers = []string{
		"fiyat tarifeleri", "fiyat tarife", "tarife", "fiyatlandırma",
	}
	unitOrCurrencyTokens = []string{"kwh", "kw", "tl", "₺", "fiyat", "socket", "soket"}
)

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// perMinute reports whether the 30 chars after a match advertise a
// per-minute fee ("dk", "min") rather than a per-kWh tariff.
func perMinute(text string, end int) bool {
	to := end + 30
	if to > len(text) {
		to = len(text)
	}
	after := strings.ToLower(text[end:to])
	return strings.Contains(after, "dk") || strings.Contains(after, "min")
}

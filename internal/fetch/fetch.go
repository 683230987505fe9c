// Package fetch retrieves tariff pages, escalating from a plain HTTP fetch to
// a headless browser render when the static document carries no usable prices.
package fetch

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves a single URL as a parsed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
	Name() string
}

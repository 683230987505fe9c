package model

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// ChargingType tags a price with the charging mode it applies to.
type ChargingType string

const (
	ChargingAC      ChargingType = "AC"
	ChargingDC      ChargingType = "DC"
	ChargingUnknown ChargingType = ""
)

// PriceObservation is a single per-kWh price found on a page. Observations
// are immutable once produced; they live for one scrape pass only.
type PriceObservation struct {
	Value        decimal.Decimal `json:"price"`
	Unit         string          `json:"unit"`
	Type         ChargingType    `json:"charging_type,omitempty"`
	Power        string          `json:"power,omitempty"`
	SourceText   string          `json:"description,omitempty"`
	OriginDomain string          `json:"source"`
}

// PageStatus is the terminal outcome of one fetch attempt.
type PageStatus string

const (
	StatusSuccess    PageStatus = "success"
	StatusNoPrices   PageStatus = "no_prices"
	StatusFetchError PageStatus = "fetch_error"
	StatusRenderErr  PageStatus = "render_error"
)

// PageResult holds everything one URL produced during a batch.
type PageResult struct {
	URL          string             `json:"url"`
	Status       PageStatus         `json:"status"`
	Observations []PriceObservation `json:"prices,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// ACValues returns the values of all AC-typed observations.
func (r PageResult) ACValues() []decimal.Decimal {
	return valuesOfType(r.Observations, ChargingAC)
}

// DCValues returns the values of all DC-typed observations.
func (r PageResult) DCValues() []decimal.Decimal {
	return valuesOfType(r.Observations, ChargingDC)
}

func valuesOfType(obs []PriceObservation, t ChargingType) []decimal.Decimal {
	var out []decimal.Decimal
	for _, o := range obs {
		if o.Type == t {
			out = append(out, o.Value)
		}
	}
	return out
}

// BatchSummary is the per-run outcome count reported to the CLI layer.
type BatchSummary struct {
	Total    int `json:"total"`
	Success  int `json:"success"`
	NoPrices int `json:"no_prices"`
	Failed   int `json:"failed"`
}

// NormalizeDomain reduces a URL to its dedup key: host without scheme or
// leading www., lower-cased.
func NormalizeDomain(rawURL string) string {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Hostname()
	} else {
		host, _, _ = strings.Cut(host, "/")
	}
	return strings.ToLower(strings.TrimPrefix(host, "www."))
}

// CompanyName derives a display name from a URL: the first label of the
// domain, title-cased. "https://www.esarj.com/x" -> "Esarj".
func CompanyName(rawURL string) string {
	domain := NormalizeDomain(rawURL)
	label, _, _ := strings.Cut(domain, ".")
	if label == "" {
		return domain
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

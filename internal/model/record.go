package model

import "github.com/shopspring/decimal"

// CompanyRecord is the canonical, persisted per-company row. The dataset
// holds exactly one record per normalized domain. Nil prices are a valid
// terminal state, not an error.
//
// The JSON field names are the wire contract of the downstream API and must
// not be changed.
type CompanyRecord struct {
	Firma      string           `json:"firma"`
	Ulke       string           `json:"ulke"`
	WebSitesi  string           `json:"webSitesi"`
	ACCurrency string           `json:"acCurrency"`
	DCCurrency string           `json:"dcCurrency"`
	LogoURL    *string          `json:"logoUrl"`
	ACFiyat    *decimal.Decimal `json:"acFiyat"`
	DCFiyat    *decimal.Decimal `json:"dcFiyat"`
}

// HasPrices reports whether at least one of the two prices is set.
func (r CompanyRecord) HasPrices() bool {
	return r.ACFiyat != nil || r.DCFiyat != nil
}

// Domain returns the record's dedup key.
func (r CompanyRecord) Domain() string {
	return NormalizeDomain(r.WebSitesi)
}

package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.esarj.com/tarifeler", "esarj.com"},
		{"http://esarj.com", "esarj.com"},
		{"esarj.com", "esarj.com"},
		{"esarj.com/tarifeler", "esarj.com"},
		{"www.Esarj.COM", "esarj.com"},
		{"https://sarj.voltrun.com/fiyatlar", "sarj.voltrun.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDomain(tt.in), tt.in)
	}
}

func TestCompanyName(t *testing.T) {
	assert.Equal(t, "Esarj", CompanyName("https://www.esarj.com/tarifeler"))
	assert.Equal(t, "Trugo", CompanyName("trugo.com.tr"))
	assert.Equal(t, "Sarj", CompanyName("https://sarj.voltrun.com"))
}

func TestPageResultTypedValues(t *testing.T) {
	res := PageResult{
		Observations: []PriceObservation{
			{Value: decimal.NewFromFloat(8.5), Type: ChargingAC},
			{Value: decimal.NewFromFloat(12.9), Type: ChargingDC},
			{Value: decimal.NewFromFloat(9.1), Type: ChargingUnknown},
			{Value: decimal.NewFromFloat(7.2), Type: ChargingAC},
		},
	}
	assert.Len(t, res.ACValues(), 2)
	assert.Len(t, res.DCValues(), 1)
}

func TestCompanyRecordHasPrices(t *testing.T) {
	var rec CompanyRecord
	assert.False(t, rec.HasPrices())

	ac := decimal.NewFromFloat(8.5)
	rec.ACFiyat = &ac
	assert.True(t, rec.HasPrices())
}

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarjtakip/tarife-cli/internal/model"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "charging_prices.json")

	ac := decimal.NewFromFloat(8.5)
	logo := "https://cdn.example/esarj.png"
	records := []model.CompanyRecord{{
		Firma:      "Esarj",
		Ulke:       "TR",
		WebSitesi:  "https://esarj.com",
		ACCurrency: "TRY",
		DCCurrency: "TRY",
		LogoURL:    &logo,
		ACFiyat:    &ac,
	}}

	require.NoError(t, Save(path, records))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Esarj", got[0].Firma)
	require.NotNil(t, got[0].ACFiyat)
	assert.True(t, got[0].ACFiyat.Equal(ac))
	assert.Nil(t, got[0].DCFiyat)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "yok.json"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSave_WireFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	ac := decimal.NewFromFloat(8.5)
	require.NoError(t, Save(path, []model.CompanyRecord{{
		Firma: "Esarj", WebSitesi: "https://esarj.com", ACFiyat: &ac,
	}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	for _, field := range []string{`"firma"`, `"ulke"`, `"webSitesi"`, `"acCurrency"`, `"dcCurrency"`, `"logoUrl"`, `"acFiyat"`, `"dcFiyat"`} {
		assert.Contains(t, body, field)
	}
	// Prices are bare JSON numbers and absent prices are null.
	assert.Contains(t, body, `"acFiyat": 8.5`)
	assert.Contains(t, body, `"dcFiyat": null`)
}

func TestLoadLogoMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logos.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"https://www.esarj.com": "https://cdn.example/esarj.png"}`), 0o644))

	logos, err := LoadLogoMap(path)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/esarj.png", logos["esarj.com"])

	empty, err := LoadLogoMap(filepath.Join(t.TempDir(), "yok.json"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://zes.net\n\n# yorum satırı\nhttps://esarj.com/tarifeler\nhttps://zes.net\n  https://voltrun.com  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := LoadURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://esarj.com/tarifeler",
		"https://voltrun.com",
		"https://zes.net",
	}, urls)
}

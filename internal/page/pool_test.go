package page

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sarjtakip/tarife-cli/internal/extract"
	"github.com/sarjtakip/tarife-cli/internal/model"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func testPool() *Pool {
	return NewPool(extract.DefaultExtractor(), zap.NewNop())
}

func hasObservation(obs []model.PriceObservation, value string, typ model.ChargingType) bool {
	for _, o := range obs {
		if o.Value.Round(2).String() == value && o.Type == typ {
			return true
		}
	}
	return false
}

func TestPoolExtract_RowTable(t *testing.T) {
	html := `<html><body><table>
		<tr><td>AC Soket (11 - 22 kW)</td><td>8,50 TL/kWh</td></tr>
		<tr><td>DC Soket (60 - 180 kW)</td><td>12,90 TL/kWh</td></tr>
	</table></body></html>`

	obs := testPool().Extract(doc(t, html), "esarj.com")
	assert.True(t, hasObservation(obs, "8.5", model.ChargingAC))
	assert.True(t, hasObservation(obs, "12.9", model.ChargingDC))

	for i := 1; i < len(obs); i++ {
		assert.False(t, obs[i].Value.LessThan(obs[i-1].Value), "observations must be ascending")
	}
	for _, o := range obs {
		assert.Equal(t, "esarj.com", o.OriginDomain)
		assert.NotEmpty(t, o.SourceText)
	}
}

func TestPoolExtract_ColumnTable(t *testing.T) {
	html := `<html><body><table>
		<tr><th>Şarj Fiyatı</th><th>AC Tip 2</th><th>DC CCS</th></tr>
		<tr><td>Standart Tarife</td><td>8,50 TL</td><td>12,90 TL</td></tr>
	</table></body></html>`

	obs := testPool().Extract(doc(t, html), "voltrun.com")
	assert.True(t, hasObservation(obs, "8.5", model.ChargingAC))
	assert.True(t, hasObservation(obs, "12.9", model.ChargingDC))

	// Header digits ("AC Tip 2") must not leak in as prices.
	assert.False(t, hasObservation(obs, "2", model.ChargingAC))
	assert.False(t, hasObservation(obs, "2", model.ChargingUnknown))
}

func TestPoolExtract_RowWithoutPricingKeyword(t *testing.T) {
	// A label + number row with no pricing keyword carries counts, not
	// prices; typing the label AC must not turn "4" into a tariff.
	html := `<html><body><table>
		<tr><td>AC soket adedi</td><td>4 istasyon noktası</td></tr>
		<tr><td>DC istasyon sayısı</td><td>12 lokasyon</td></tr>
	</table></body></html>`

	assert.Empty(t, testPool().Extract(doc(t, html), "esarj.com"))
}

func TestPoolExtract_TaggedSection(t *testing.T) {
	html := `<html><body><div class="price-box">
		<h3>Şarj Tarifeleri</h3>
		<p>11 - 22 kW AC soketler 8,50 TL/kWh</p>
		<p>60 - 180 kW DC soketler 12,90 TL/kWh</p>
	</div></body></html>`

	obs := testPool().Extract(doc(t, html), "zes.net")
	assert.True(t, hasObservation(obs, "8.5", model.ChargingAC))
	assert.True(t, hasObservation(obs, "12.9", model.ChargingDC))
}

func TestPoolExtract_ListItems(t *testing.T) {
	html := `<html><body><ul>
		<li>AC şarj fiyatı: 8,50 TL/kWh</li>
		<li>İstasyon haritası ve üyelik koşulları</li>
	</ul></body></html>`

	obs := testPool().Extract(doc(t, html), "esarj.com")
	assert.True(t, hasObservation(obs, "8.5", model.ChargingAC))
}

func TestPoolExtract_PerMinuteFeeSkipped(t *testing.T) {
	html := `<html><body><div class="price-info">
		<p>Dakika başına 5,50 TL/dk otopark bedeli</p>
	</div></body></html>`

	obs := testPool().Extract(doc(t, html), "esarj.com")
	assert.False(t, hasObservation(obs, "5.5", model.ChargingUnknown))
	assert.False(t, hasObservation(obs, "5.5", model.ChargingAC))
}

func TestPoolExtract_NoPrices(t *testing.T) {
	html := `<html><body><p>İstasyon ağı haritası ve iletişim bilgileri</p></body></html>`
	assert.Empty(t, testPool().Extract(doc(t, html), "esarj.com"))
}

func TestDedupe(t *testing.T) {
	v := decimal.NewFromFloat(8.5)
	obs := []model.PriceObservation{
		{Value: v, Type: model.ChargingAC, Power: "22kW", SourceText: "birinci kaynak"},
		{Value: v, Type: model.ChargingAC, Power: "22kW", SourceText: "ikinci kaynak"},
		{Value: v, Type: model.ChargingDC, SourceText: "farklı tip aynı fiyat"},
		{Value: v, SourceText: "tipi bilinmeyen gözlem"},
		{Value: v, SourceText: "tipi bilinmeyen gözlem"},
	}

	got := dedupe(obs)
	require.Len(t, got, 3)
	assert.Equal(t, "birinci kaynak", got[0].SourceText, "first duplicate wins")
}

func TestDedupe_UntypedKeyedByDescription(t *testing.T) {
	v := decimal.NewFromFloat(8.5)
	obs := []model.PriceObservation{
		{Value: v, SourceText: "standart soket tarifesi"},
		{Value: v, SourceText: "kampanyalı gece tarifesi"},
	}
	assert.Len(t, dedupe(obs), 2, "distinct tariffs at the same price survive")
}

func TestPoolExtract_CapsObservationCount(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for i := 0; i < 30; i++ {
		b.WriteString("<li>Tarife seçeneği fiyatı: ")
		b.WriteString(decimal.NewFromInt(int64(5 + i)).String())
		b.WriteString(",10 TL/kWh</li>")
	}
	b.WriteString("</ul></body></html>")

	obs := testPool().Extract(doc(t, b.String()), "esarj.com")
	assert.LessOrEqual(t, len(obs), maxObservations)
	assert.NotEmpty(t, obs)
}

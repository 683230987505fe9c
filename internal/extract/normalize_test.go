package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StripsMarkupNoise(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keep []string
		drop []string
	}{
		{
			name: "script body",
			in:   `Tarife 8,50 TL/kWh <script>var track = "9999";</script> soket`,
			keep: []string{"8,50 TL/kWh", "soket"},
			drop: []string{"9999", "track"},
		},
		{
			name: "css rule block",
			in:   `fiyat 10,99 TL .price-box{font-size:14px;color:#333} devam`,
			keep: []string{"10,99 TL", "devam"},
			drop: []string{"font-size", "14px"},
		},
		{
			name: "template markers",
			in:   `__PRICE_SLOT__ 8,50 TL/kWh`,
			keep: []string{"8,50 TL/kWh"},
			drop: []string{"__PRICE_SLOT__"},
		},
		{
			name: "data attributes",
			in:   `<div data-price="99999" aria-label="tarife">8,50 TL</div>`,
			keep: []string{"8,50 TL"},
			drop: []string{"99999"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			for _, s := range tt.keep {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.drop {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestNormalize_KeepsDecimalFractions(t *testing.T) {
	// Selector stripping must not eat the fraction of a dot-decimal price.
	got := Normalize("Fiyat 8.50 TL/kWh")
	assert.Contains(t, got, "8.50")
}

func TestNormalize_DropsOversizedTokens(t *testing.T) {
	blob := strings.Repeat("YWJjZA", 20)
	got := Normalize("önce " + blob + " sonra 8,50 TL")
	assert.NotContains(t, got, blob)
	assert.Contains(t, got, "8,50 TL")
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`Tarife 8,50 TL/kWh <script>var a = 1;</script> .cls{x:y} __M__ sonu`,
		"AC 8,50 TL/kWh DC 12,90 TL/kWh",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("AC   soket\n\n 8,50 \t TL")
	assert.Equal(t, "AC soket 8,50 TL", got)
}

func TestTruncateDescription(t *testing.T) {
	long := strings.Repeat("şarj tarifesi ", 30)
	got := TruncateDescription(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), 153)

	assert.Equal(t, "", TruncateDescription("kısa"), "too short to describe anything")
	assert.Equal(t, "AC soket 8,50 TL/kWh", TruncateDescription("AC soket 8,50 TL/kWh"))
}

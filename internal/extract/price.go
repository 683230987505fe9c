package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Rule families, highest priority first. Currency-and-unit anchored numbers
// are the most trustworthy; bare integers the least. The first family that
// yields at least one surviving match wins and lower families are never
// consulted for that text.
type ruleFamily struct {
	name     string
	patterns []*regexp.Regexp
}

var priceFamilies = []ruleFamily{
	{
		name: "currency_unit",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d+[.,]\d{1,2})\s*(?:TL|₺|TRY)\s*/?\s*kWh?`),
			regexp.MustCompile(`(?i)(?:₺|TL|TRY)\s*(\d+[.,]\d{1,2})\s*/?\s*kWh?`),
			regexp.MustCompile(`(?i)(\d+)\s*(?:TL|₺|TRY)\s*/?\s*kWh?`),
			regexp.MustCompile(`(?i)(?:₺|TL|TRY)\s*(\d+)\s*/?\s*kWh?`),
		},
	},
	{
		name: "currency",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d+[.,]\d{1,2})\s*(?:TL|₺|TRY)`),
			regexp.MustCompile(`(?i)(?:₺|TL|TRY)\s*(\d+[.,]\d{1,2})`),
			regexp.MustCompile(`(?i)(\d+)\s*(?:TL|₺|TRY)`),
			regexp.MustCompile(`(?i)(?:₺|TL|TRY)\s*(\d+)`),
		},
	},
	{
		name: "unit",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d+[.,]\d{1,2})\s*/?\s*kWh?`),
			regexp.MustCompile(`(?i)(\d+)\s*/\s*kWh?`),
		},
	},
	{
		name: "bare_decimal",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(\d+[.,]\d{1,2})`),
		},
	},
	{
		name: "bare_integer",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(\d+)`),
		},
	},
}

var (
	dateRe = regexp.MustCompile(`\b0?[0-3]?\d\.(0[1-9]|1[0-2])\.20\d{2}\b`)
	// Effective-date vocabulary near a low value marks it as a truncated
	// date ("01.07" read as 1.07), not a tariff.
	dateKeywords = []string{
		"tarih", "itibariyle", "geçerli", "yürürlük", "yürürlüğ",
		"başlayan", "başlama", "yapılmıştır", "yapılması",
		"efektif", "effective", "since", "from",
	}
	monthRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec|ocak|şub|nisan|mayıs|haz|tem|ağu|eyl|eki|kas|ara)\b`)

	currencyMarkers = []string{"tl", "₺", "try"}
	unitMarkers     = []string{"kwh", "/kwh", "/kw"}
)

// contextWindow is how far around a numeric match the rejection predicates
// look for dates and markers.
const contextWindow = 50

// Match is one surviving numeric candidate with its span in the source text.
type Match struct {
	Value decimal.Decimal
	Start int
	End   int
}

// Extractor scans normalized text for plausible per-kWh prices inside a
// configured inclusive range.
type Extractor struct {
	min decimal.Decimal
	max decimal.Decimal
}

// NewExtractor returns an Extractor for the given inclusive price range.
func NewExtractor(min, max decimal.Decimal) *Extractor {
	return &Extractor{min: min, max: max}
}

// DefaultExtractor uses the plausible range for per-kWh tariffs.
func DefaultExtractor() *Extractor {
	return NewExtractor(decimal.NewFromFloat(0.5), decimal.NewFromInt(50))
}

// Prices returns every surviving candidate value, sorted ascending and
// deduplicated by rounded value. A page offering only power ratings and no
// currency-anchored numbers yields nothing: failing closed here is what lets
// the fallback table take over.
func (e *Extractor) Prices(text string) []decimal.Decimal {
	matches := e.scan(Normalize(text))
	vals := make([]decimal.Decimal, len(matches))
	for i, m := range matches {
		vals[i] = m.Value
	}
	return dedupeSorted(vals)
}

// First returns the single most trustworthy price in the text.
func (e *Extractor) First(text string) (decimal.Decimal, bool) {
	matches := e.scan(Normalize(text))
	if len(matches) == 0 {
		return decimal.Decimal{}, false
	}
	return matches[0].Value, true
}

// CurrencyAnchored returns all currency-adjacent matches with their spans,
// for callers that need positional context (charging-type attribution,
// per-minute fee rejection). The text is matched as given, without
// normalization, so spans index into the caller's string.
func (e *Extractor) CurrencyAnchored(text string) []Match {
	power := PowerValues(text)
	var out []Match
	for _, fam := range priceFamilies[:2] { // currency_unit, currency
		for _, re := range fam.patterns {
			out = append(out, e.matchAll(re, text, power)...)
		}
		if len(out) > 0 {
			break
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// scan runs the rule families in priority order against the text.
func (e *Extractor) scan(text string) []Match {
	if text == "" {
		return nil
	}
	power := PowerValues(text)
	for _, fam := range priceFamilies {
		var matches []Match
		for _, re := range fam.patterns {
			matches = append(matches, e.matchAll(re, text, power)...)
		}
		if len(matches) > 0 {
			sort.Slice(matches, func(i, j int) bool {
				return matches[i].Value.LessThan(matches[j].Value)
			})
			return matches
		}
	}
	return nil
}

func (e *Extractor) matchAll(re *regexp.Regexp, text string, power map[float64]struct{}) []Match {
	var out []Match
	for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := idx[2], idx[3]
		raw := text[start:end]
		val, ok := parseNumber(raw)
		if !ok {
			continue
		}
		if e.rejected(text, val, start, end, power) {
			continue
		}
		out = append(out, Match{Value: val, Start: start, End: end})
	}
	return out
}

// rejected applies the skip predicates: date context, truncated-date
// heuristic, power-rating collision, and the plausible range.
func (e *Extractor) rejected(text string, val decimal.Decimal, start, end int, power map[float64]struct{}) bool {
	ctx := window(text, start, end, contextWindow)

	if dateRe.MatchString(ctx) {
		return true
	}

	// Values in [1.0, 2.0) next to date vocabulary are truncated dates.
	if val.GreaterThanOrEqual(decimal.NewFromInt(1)) && val.LessThan(decimal.NewFromInt(2)) {
		lower := strings.ToLower(ctx)
		for _, kw := range dateKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		if monthRe.MatchString(ctx) {
			return true
		}
	}

	if f, _ := val.Float64(); power != nil {
		if _, isPower := power[f]; isPower && powerRejected(text, start, end) {
			return true
		}
	}

	return val.LessThan(e.min) || val.GreaterThan(e.max)
}

// powerRejected decides whether a number that collides with a recorded power
// rating is actually that rating. It survives only when immediately bounded
// by a currency or kWh marker, and not when a trailing bare "kW" lacks a
// preceding currency.
func powerRejected(text string, start, end int) bool {
	after := strings.ToLower(slice(text, end, end+30))
	bounded := false
	for _, m := range append(currencyMarkers, unitMarkers...) {
		if strings.Contains(after, m) {
			bounded = true
			break
		}
	}
	if !bounded {
		return true
	}

	immediate := strings.TrimSpace(strings.ToLower(slice(text, end, end+5)))
	if strings.HasPrefix(immediate, "kw") {
		before := strings.ToLower(slice(text, start-30, start))
		for _, c := range currencyMarkers {
			if strings.Contains(before, c) {
				return false
			}
		}
		return true
	}
	return false
}

// parseNumber handles Turkish decimal notation: a lone comma is the decimal
// separator; with both separators present the right-most one is decimal and
// the other is a thousands mark.
func parseNumber(raw string) (decimal.Decimal, bool) {
	comma := strings.LastIndex(raw, ",")
	dot := strings.LastIndex(raw, ".")
	switch {
	case comma >= 0 && dot < 0:
		raw = strings.ReplaceAll(raw, ",", ".")
	case comma >= 0 && dot >= 0 && comma > dot:
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	case comma >= 0 && dot >= 0:
		raw = strings.ReplaceAll(raw, ",", "")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func dedupeSorted(vals []decimal.Decimal) []decimal.Decimal {
	sort.Slice(vals, func(i, j int) bool { return vals[i].LessThan(vals[j]) })
	seen := make(map[string]struct{}, len(vals))
	out := vals[:0]
	for _, v := range vals {
		key := v.Round(2).String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func window(text string, start, end, radius int) string {
	return slice(text, start-radius, end+radius)
}

func slice(text string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(text) {
		to = len(text)
	}
	if from >= to {
		return ""
	}
	return text[from:to]
}

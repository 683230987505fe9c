package extract

import (
	"regexp"
	"strconv"
)

var (
	powerRe      = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*kW\b`)
	powerValueRe = regexp.MustCompile(`(?i)\b(\d+)\s*kW\b`)
	powerRangeRe = regexp.MustCompile(`(?i)\b(\d+)\s*-\s*(\d+)\s*kW\b`)
)

// Power returns the first power rating in the text formatted like "22kW",
// or "" when none is present.
func Power(text string) string {
	m := powerRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1] + "kW"
}

// PowerValues collects every integer power rating in the text, including both
// ends of range labels ("11 - 22 kW"). Numbers in this set are provisionally
// disqualified as prices.
func PowerValues(text string) map[float64]struct{} {
	vals := make(map[float64]struct{})
	add := func(raw string) {
		if n, err := strconv.Atoi(raw); err == nil {
			vals[float64(n)] = struct{}{}
		}
	}
	for _, m := range powerValueRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range powerRangeRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
		add(m[2])
	}
	return vals
}

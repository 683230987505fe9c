// Package extract turns free-form page text into qualified per-kWh price
// candidates and charging-type labels. It operates on text only; DOM walking
// lives in internal/page.
package extract

import (
	"regexp"
	"strings"
)

// Noise stripped by Normalize. These target the artifacts of naive
// DOM-to-text conversion: inline script/style bodies, CSS rules and selector
// chains, oversized attribute values, and encoded blobs.
var (
	scriptRe   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe    = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	cssBlockRe = regexp.MustCompile(`\{[^}]*}`)
	jsVarRe    = regexp.MustCompile(`var\s+\w+\s*=.*?;`)
	jsFuncRe   = regexp.MustCompile(`(?s)function\s+\w+.*?\{.*?}`)
	markerRe   = regexp.MustCompile(`__\w+__`)
	// Class/id names start with a letter, which keeps decimal fractions
	// like the ".50" in "8.50" intact.
	selectorRe = regexp.MustCompile(`(?i)[.#][a-z][a-z0-9\-_:]*(\s*[>,+~]\s*[.#]?[a-z][a-z0-9\-_:]*)*`)
	longAttrRe = regexp.MustCompile(`(?i)(class|id)=["'][^"']{80,}["']`)
	attrRe     = regexp.MustCompile(`(?i)\s+(data-|aria-|on)[a-z-]*=["'][^"']*["']`)
)

// maxTokenLen is the longest word kept by Normalize; anything longer is
// treated as encoded noise (base64 blobs, selector strings).
const maxTokenLen = 50

// Normalize strips markup noise from raw text and collapses whitespace.
// It is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// Removing one kind of noise can expose another (a CSS block hiding a
	// selector chain), so run passes until the text stops changing.
	for range 4 {
		next := normalizeOnce(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func normalizeOnce(text string) string {
	text = scriptRe.ReplaceAllString(text, "")
	text = styleRe.ReplaceAllString(text, "")
	text = cssBlockRe.ReplaceAllString(text, "")
	text = jsFuncRe.ReplaceAllString(text, "")
	text = jsVarRe.ReplaceAllString(text, "")
	text = markerRe.ReplaceAllString(text, "")
	text = selectorRe.ReplaceAllString(text, "")
	text = longAttrRe.ReplaceAllString(text, "")
	text = attrRe.ReplaceAllString(text, "")

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if len(w) < maxTokenLen {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// TruncateDescription bounds observation source text the way the dataset
// stores it: at most 150 chars plus an ellipsis, and at least 10 chars to
// count as a description at all.
func TruncateDescription(text string) string {
	clean := Normalize(text)
	if r := []rune(clean); len(r) > 150 {
		clean = string(r[:150]) + "..."
	}
	if len([]rune(clean)) < 10 {
		return ""
	}
	return clean
}

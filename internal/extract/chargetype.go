package extract

import (
	"regexp"

	"github.com/sarjtakip/tarife-cli/internal/model"
)

// Power-range labels ("11 - 22 kW AC", "60 - 180 kW DC") are the most
// reliable charging-type signal and are tested before keyword families.
var (
	acRangeRe = regexp.MustCompile(`(?i)\d+\s*-\s*\d+\s*kW\s*AC`)
	dcRangeRe = regexp.MustCompile(`(?i)\d+\s*-\s*\d+\s*kW\s*DC`)

	// AC is tested before DC: it is the more frequent true positive on this
	// corpus and its keywords collide less with unrelated text.
	acPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+\s*-\s*\d+\s*kW\s*AC`),
		regexp.MustCompile(`(?i)ac\s*soket|ac\s*söket|ac\s*tip|ac\s*type|ac\s*şarj`),
		regexp.MustCompile(`(?i)\bac\s*[<>=]`),
		regexp.MustCompile(`(?i)ac\s*istasyon|ac\s*cihaz`),
		// \b is ASCII-only in Go and would match inside "açık"; bound the
		// bare token with any-letter classes instead.
		regexp.MustCompile(`(?i)(^|[^\p{L}])ac([^\p{L}]|$)`),
		regexp.MustCompile(`(?i)alternating\s*current|alternatif\s*akım`),
	}

	dcPatterns = []*regexp.Regexp{
		// Uppercase only: "DC 60 kW" is a label, "dc 60 kw" in prose is not.
		regexp.MustCompile(`DC\s+\d+\s*kW`),
		regexp.MustCompile(`(?i)\d+\s*-\s*\d+\s*kW\s*DC`),
		regexp.MustCompile(`(?i)dc[12]\s*soket|dc[12]\s*tarifesi`),
		regexp.MustCompile(`(?i)dc\s*soket|dc\s*söket|dc\s*şarj|dc\s*hızlı|dc\s*combo|dc\s*chademo`),
		regexp.MustCompile(`(?i)\bdc\s*[<>=]`),
		regexp.MustCompile(`(?i)dc\s*istasyon|dc\s*cihaz`),
		regexp.MustCompile(`(?i)(^|[^\p{L}])dc([^\p{L}]|$)`),
		regexp.MustCompile(`(?i)direct\s*current|doğru\s*akım`),
	}
)

// Context window around a price offset. Type labels conventionally precede
// the price, so the window is deep before and shallow after.
const (
	typeWindowBefore = 200
	typeWindowAfter  = 20
)

// ClassifyType infers AC/DC from a text span with no positional hint.
func ClassifyType(text string) model.ChargingType {
	return classify(text)
}

// ClassifyTypeAt infers AC/DC for a price at the given character offset
// within text. When both an AC and a DC power-range label appear in the
// window, the one whose end sits closer to the price wins.
func ClassifyTypeAt(text string, offset int) model.ChargingType {
	ctxStart := offset - typeWindowBefore
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctx := slice(text, ctxStart, offset+typeWindowAfter)
	offsetInCtx := offset - ctxStart

	acLoc := acRangeRe.FindStringIndex(ctx)
	dcLoc := dcRangeRe.FindStringIndex(ctx)
	switch {
	case acLoc != nil && dcLoc != nil:
		acDist := abs(acLoc[1] - offsetInCtx)
		dcDist := abs(dcLoc[1] - offsetInCtx)
		if acDist < dcDist {
			return model.ChargingAC
		}
		return model.ChargingDC
	case acLoc != nil:
		return model.ChargingAC
	case dcLoc != nil:
		return model.ChargingDC
	}

	return classify(ctx)
}

func classify(ctx string) model.ChargingType {
	for _, re := range acPatterns {
		if re.MatchString(ctx) {
			return model.ChargingAC
		}
	}
	for _, re := range dcPatterns {
		if re.MatchString(ctx) {
			return model.ChargingDC
		}
	}
	return model.ChargingUnknown
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

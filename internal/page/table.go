package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sarjtakip/tarife-cli/internal/extract"
	"github.com/sarjtakip/tarife-cli/internal/model"
)

// Markers that identify a pricing table organized by socket-type columns
// (one column AC, one DC) rather than by row labels.
var columnTableMarkers = []string{"şarj fiyatı", "soket tipi", "ac tip", "dc ccs"}

// TableStrategy scans <table> rows for pricing keywords. Tables with a clear
// AC/DC column header attribute prices to the column's declared type instead
// of inferring from local text.
type TableStrategy struct {
	ex *extract.Extractor
}

// NewTableStrategy returns a table scanner using the given price extractor.
func NewTableStrategy(ex *extract.Extractor) *TableStrategy {
	return &TableStrategy{ex: ex}
}

func (s *TableStrategy) Name() string { return "table" }

func (s *TableStrategy) Scan(doc *goquery.Document) []Candidate {
	var out []Candidate
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if containsAny(strings.ToLower(table.Text()), columnTableMarkers) {
			if cands := s.scanColumnTable(rows); len(cands) > 0 {
				out = append(out, cands...)
				return
			}
		}
		out = append(out, s.scanRows(rows)...)
	})
	return out
}

// scanColumnTable handles two-column socket-typed tables: find the header
// row declaring AC/DC columns, then attribute every price in the data rows
// below it to its column's type.
func (s *TableStrategy) scanColumnTable(rows *goquery.Selection) []Candidate {
	headerIdx := -1
	var headers []string
	var acCols, dcCols map[int]bool

	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := cellTexts(row)
		lower := strings.ToLower(strings.Join(cells, " "))
		if !containsAny(lower, []string{"ac tip", "dc ccs", "soket tipi"}) {
			return true
		}
		headerIdx = i
		headers = cells
		acCols, dcCols = classifyColumns(cells)
		return false
	})
	if headerIdx < 0 || len(acCols)+len(dcCols) == 0 {
		return nil
	}

	var out []Candidate
	rows.Each(func(i int, row *goquery.Selection) {
		if i <= headerIdx {
			return
		}
		for col, cell := range cellTexts(row) {
			val, ok := s.ex.First(cell)
			if !ok {
				continue
			}
			typ := model.ChargingUnknown
			switch {
			case acCols[col]:
				typ = model.ChargingAC
			case dcCols[col]:
				typ = model.ChargingDC
			default:
				typ = extract.ClassifyType(cell)
			}
			// Prefix the column header so the observation's description
			// says which socket the price belongs to.
			ctx := cell
			if col < len(headers) {
				ctx = headers[col] + " " + cell
			}
			out = append(out, Candidate{
				Value:   val,
				Type:    typ,
				Power:   extract.Power(ctx),
				Context: ctx,
			})
		}
	})
	return out
}

// scanRows is the generic path: any row whose concatenated cell text carries
// a pricing keyword contributes its best price.
func (s *TableStrategy) scanRows(rows *goquery.Selection) []Candidate {
	var out []Candidate
	rows.Each(func(_ int, row *goquery.Selection) {
		// Header rows carry column labels like "AC Tip 2" whose digits are
		// not prices.
		if row.Find("th").Length() > 0 {
			return
		}
		cells := cellTexts(row)
		rowText := strings.Join(cells, " ")
		if !containsAny(strings.ToLower(rowText), rowKeywords) {
			return
		}

		// Two-cell rows are usually label + price; classify from the label
		// so an adjacent row's type cannot bleed in.
		if len(cells) >= 2 {
			if val, ok := s.ex.First(cells[1]); ok {
				out = append(out, Candidate{
					Value:   val,
					Type:    extract.ClassifyType(cells[0]),
					Power:   extract.Power(cells[0]),
					Context: cells[0] + " " + cells[1],
				})
			}
		}
		val, ok := s.ex.First(rowText)
		if !ok {
			return
		}
		out = append(out, Candidate{
			Value:   val,
			Type:    extract.ClassifyType(rowText),
			Power:   extract.Power(rowText),
			Context: rowText,
		})
	})
	return out
}

func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}

func classifyColumns(headerCells []string) (ac, dc map[int]bool) {
	ac = make(map[int]bool)
	dc = make(map[int]bool)
	for i, cell := range headerCells {
		lower := strings.ToLower(cell)
		switch {
		case strings.Contains(lower, "ac") && strings.Contains(lower, "tip"):
			ac[i] = true
		case strings.Contains(lower, "dc") || strings.Contains(lower, "ccs"):
			dc[i] = true
		}
	}
	return ac, dc
}

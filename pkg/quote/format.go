package quote

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/influencegraph/pkg/graph"
)

// CurrencySuffix is appended to formatted prices.
const CurrencySuffix = "원"

// View is a quote formatted for display.
type View struct {
	Symbol    string // e.g. "005490"
	Price     string // e.g. "385,000원"
	Change    string // e.g. "+5,500" or "-350"
	Percent   string // e.g. "+1.45%" or "-1.47%"
	Direction string // graph.DirectionUp or graph.DirectionDown
}

// Text returns the change line as shown in tooltips, e.g. "+5,500(+1.45%)".
func (v View) Text() string { return v.Change + "(" + v.Percent + ")" }

// Up reports whether the view gets "up" styling.
func (v View) Up() bool { return v.Direction == graph.DirectionUp }

// Format renders q for display.
func Format(q graph.StockQuote) View {
	return View{
		Symbol:    q.Symbol,
		Price:     FormatPrice(q.Price),
		Change:    FormatChange(q.Change),
		Percent:   FormatPercent(q.ChangePercent),
		Direction: q.Direction(),
	}
}

// FormatPrice formats a price with thousands separators and the currency suffix.
func FormatPrice(price float64) string {
	return humanize.Commaf(price) + CurrencySuffix
}

// FormatChange formats an absolute change with thousands separators. Only
// strictly positive values get a "+" sign; negatives keep their own.
func FormatChange(change float64) string {
	s := humanize.Commaf(change)
	if change > 0 {
		return "+" + s
	}
	return s
}

// FormatPercent formats a percentage with two decimals and a "+" sign for
// strictly positive values.
func FormatPercent(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', 2, 64) + "%"
	if pct > 0 {
		return "+" + s
	}
	return s
}

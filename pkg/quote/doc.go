// Package quote provides the static stock quote book and quote formatting.
//
// Quotes are not fetched live. A [Book] is loaded from a TOML file:
//
//	[[quote]]
//	company = "POSCO"
//	symbol = "005490"
//	price = 385000
//	change = 5500
//	change_percent = 1.45
//
// or taken from the built-in [Sample]. The report builder attaches book
// entries to enterprise nodes, and the preview server answers stock-price
// lookups from it.
//
// [Format] renders a quote the way tooltips display it: the price with
// thousands separators and a currency suffix, the change with an explicit
// plus sign only when positive, and the percentage with two decimals. The
// up/down styling follows the sign of the change alone; zero is down.
package quote

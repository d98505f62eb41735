package quote

// Sample returns the built-in quote book used for demos and tests.
func Sample() *Book {
	return NewBook(
		Entry{Company: "Korea Electric Power Corporation (KEPCO)", Symbol: "015760", Price: 23450, Change: -350, ChangePercent: -1.47},
		Entry{Company: "POSCO", Symbol: "005490", Price: 385000, Change: 5500, ChangePercent: 1.45},
		Entry{Company: "Seongnam Development Co.", Symbol: "N/A", Price: 0, Change: 0, ChangePercent: 0},
		Entry{Company: "Celltrion Healthcare", Symbol: "091990", Price: 67800, Change: 2100, ChangePercent: 3.2},
		Entry{Company: "SK Group", Symbol: "034730", Price: 156000, Change: -2300, ChangePercent: -1.45},
		Entry{Company: "Local SMEs/Retail", Symbol: "INDEX", Price: 100, Change: 2.5, ChangePercent: 2.5},
		Entry{Company: "동신건설 (025950)", Symbol: "025950", Price: 8920, Change: 450, ChangePercent: 5.31},
	)
}

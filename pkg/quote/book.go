package quote

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/influencegraph/pkg/graph"
)

// Entry is one company's quote as stored in a book file.
type Entry struct {
	Company       string  `toml:"company"`
	Symbol        string  `toml:"symbol"`
	Price         float64 `toml:"price"`
	Change        float64 `toml:"change"`
	ChangePercent float64 `toml:"change_percent"`
}

// Quote converts the entry to the graph payload type.
func (e Entry) Quote() graph.StockQuote {
	return graph.StockQuote{
		Symbol:        e.Symbol,
		Price:         e.Price,
		Change:        e.Change,
		ChangePercent: e.ChangePercent,
	}
}

type bookFile struct {
	Quotes []Entry `toml:"quote"`
}

// Book is an immutable company → quote lookup table.
type Book struct {
	quotes map[string]graph.StockQuote
}

// NewBook builds a book from entries. Later entries win on duplicate
// company names.
func NewBook(entries ...Entry) *Book {
	b := &Book{quotes: make(map[string]graph.StockQuote, len(entries))}
	for _, e := range entries {
		b.quotes[normalize(e.Company)] = e.Quote()
	}
	return b
}

// Load reads a TOML quote book from path.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a TOML quote book from r.
func Read(r io.Reader) (*Book, error) {
	var file bookFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode quote book: %w", err)
	}
	for i, e := range file.Quotes {
		if strings.TrimSpace(e.Company) == "" {
			return nil, fmt.Errorf("quote %d: company is required", i+1)
		}
	}
	return NewBook(file.Quotes...), nil
}

// Lookup returns the quote for company. Matching ignores surrounding
// whitespace and falls back to a case-insensitive comparison.
func (b *Book) Lookup(company string) (graph.StockQuote, bool) {
	if b == nil {
		return graph.StockQuote{}, false
	}
	key := normalize(company)
	if q, ok := b.quotes[key]; ok {
		return q, true
	}
	for name, q := range b.quotes {
		if strings.EqualFold(name, key) {
			return q, true
		}
	}
	return graph.StockQuote{}, false
}

// Companies returns the company names in the book, sorted.
func (b *Book) Companies() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.quotes))
	for name := range b.quotes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Entries returns the book's quotes sorted by company.
func (b *Book) Entries() []Entry {
	names := b.Companies()
	entries := make([]Entry, len(names))
	for i, name := range names {
		q := b.quotes[name]
		entries[i] = Entry{
			Company:       name,
			Symbol:        q.Symbol,
			Price:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
		}
	}
	return entries
}

// Write encodes the book as TOML, one [[quote]] table per company.
func (b *Book) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(bookFile{Quotes: b.Entries()}); err != nil {
		return fmt.Errorf("encode quote book: %w", err)
	}
	return nil
}

// Len returns the number of companies in the book.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.quotes)
}

func normalize(company string) string { return strings.TrimSpace(company) }

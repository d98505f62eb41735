package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/influencegraph/pkg/cache"
	"github.com/matzehuels/influencegraph/pkg/errors"
	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/quote"
	"github.com/matzehuels/influencegraph/pkg/report"
)

// Input sources.
const (
	SourceGraph  = "graph"
	SourceReport = "report"
)

// Loaded is the result of the load stage.
type Loaded struct {
	Data     graph.Data `json:"data"`
	Source   string     `json:"source"`
	Title    string     `json:"title,omitempty"`
	Subtitle string     `json:"subtitle,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// ReadInput returns the raw input bytes.
func ReadInput(opts Options) ([]byte, error) {
	if len(opts.InputData) > 0 {
		return opts.InputData, nil
	}
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", opts.Input)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.Input)
	}
	return data, nil
}

// LoadBook returns the quote book: opts.Book, the file at opts.Quotes, or
// the built-in sample.
func LoadBook(opts Options) (*quote.Book, error) {
	if opts.Book != nil {
		return opts.Book, nil
	}
	if opts.Quotes == "" {
		return quote.Sample(), nil
	}
	b, err := quote.Load(opts.Quotes)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "quote book not found: %s", opts.Quotes)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "load quote book %s", opts.Quotes)
	}
	return b, nil
}

// Decode turns input bytes into graph data. Reports are detected by content
// and built with book; graph files keep the quotes they carry.
func Decode(data []byte, book *quote.Book) (Loaded, error) {
	if report.IsReport(data) {
		r, err := report.Decode(data)
		if err != nil {
			return Loaded{}, err
		}
		if err := report.Validate(r); err != nil {
			return Loaded{}, err
		}
		return Loaded{
			Data:     report.Build(r, book),
			Source:   SourceReport,
			Title:    r.Title,
			Subtitle: r.TimeRange,
			Notes:    r.Notes,
		}, nil
	}

	var (
		d   graph.Data
		err error
	)
	if isJSON(data) {
		d, err = graph.Unmarshal(data)
	} else {
		d, err = graph.ReadYAML(bytes.NewReader(data))
	}
	if err != nil {
		return Loaded{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return Loaded{Data: d, Source: SourceGraph}, nil
}

// Load reads and decodes the input described by opts.
func Load(ctx context.Context, opts Options) (Loaded, error) {
	if err := ctx.Err(); err != nil {
		return Loaded{}, err
	}
	data, err := ReadInput(opts)
	if err != nil {
		return Loaded{}, err
	}
	book, err := LoadBook(opts)
	if err != nil {
		return Loaded{}, err
	}
	return Decode(data, book)
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// bookHash identifies the quotes a report is built with.
func bookHash(b *quote.Book) string {
	type entry struct {
		Company string           `json:"company"`
		Quote   graph.StockQuote `json:"quote"`
	}
	entries := make([]entry, 0, b.Len())
	for _, c := range b.Companies() {
		q, _ := b.Lookup(c)
		entries = append(entries, entry{Company: c, Quote: q})
	}
	data, _ := json.Marshal(entries)
	return cache.Hash(data)
}

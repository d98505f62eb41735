package quote

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/influencegraph/pkg/graph"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name      string
		q         graph.StockQuote
		price     string
		text      string
		direction string
	}{
		{
			name:      "up",
			q:         graph.StockQuote{Symbol: "005490", Price: 385000, Change: 5500, ChangePercent: 1.45},
			price:     "385,000원",
			text:      "+5,500(+1.45%)",
			direction: graph.DirectionUp,
		},
		{
			name:      "down",
			q:         graph.StockQuote{Symbol: "015760", Price: 23450, Change: -350, ChangePercent: -1.47},
			price:     "23,450원",
			text:      "-350(-1.47%)",
			direction: graph.DirectionDown,
		},
		{
			name:      "zero is down",
			q:         graph.StockQuote{Symbol: "N/A"},
			price:     "0원",
			text:      "0(0.00%)",
			direction: graph.DirectionDown,
		},
		{
			name:      "fractional",
			q:         graph.StockQuote{Symbol: "INDEX", Price: 100, Change: 2.5, ChangePercent: 2.5},
			price:     "100원",
			text:      "+2.5(+2.50%)",
			direction: graph.DirectionUp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Format(tt.q)
			if v.Price != tt.price {
				t.Errorf("Price = %q, want %q", v.Price, tt.price)
			}
			if v.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", v.Text(), tt.text)
			}
			if v.Direction != tt.direction {
				t.Errorf("Direction = %q, want %q", v.Direction, tt.direction)
			}
			if v.Up() != (tt.direction == graph.DirectionUp) {
				t.Errorf("Up() = %v, want %v", v.Up(), !v.Up())
			}
		})
	}
}

func TestRead(t *testing.T) {
	const book = `
[[quote]]
company = "POSCO"
symbol = "005490"
price = 385000
change = 5500
change_percent = 1.45

[[quote]]
company = "  SK Group "
symbol = "034730"
price = 156000
change = -2300
change_percent = -1.45
`
	b, err := Read(strings.NewReader(book))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}

	q, ok := b.Lookup("POSCO")
	if !ok {
		t.Fatal("POSCO not found")
	}
	if q.Symbol != "005490" || q.ChangePercent != 1.45 {
		t.Errorf("POSCO = %+v", q)
	}

	if _, ok := b.Lookup("sk group"); !ok {
		t.Error("case-insensitive lookup failed")
	}
	if _, ok := b.Lookup("Samsung"); ok {
		t.Error("unexpected match for Samsung")
	}

	got := b.Companies()
	if len(got) != 2 || got[0] != "POSCO" || got[1] != "SK Group" {
		t.Errorf("Companies() = %v", got)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", "[[quote]\ncompany ="},
		{"missing company", "[[quote]]\nsymbol = \"X\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.toml")
	data := "[[quote]]\ncompany = \"POSCO\"\nsymbol = \"005490\"\nprice = 1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := b.Lookup("POSCO"); !ok {
		t.Error("POSCO not found")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNilBook(t *testing.T) {
	var b *Book
	if _, ok := b.Lookup("POSCO"); ok {
		t.Error("nil book should not match")
	}
	if b.Len() != 0 || b.Companies() != nil {
		t.Error("nil book should be empty")
	}
}

func TestRespond(t *testing.T) {
	b := Sample()
	tests := []struct {
		company string
		want    Response
	}{
		{"POSCO", Response{Success: true, Price: "385,000", Change: "5,500", ChangePercent: "+1.45%", Direction: "up"}},
		{"Korea Electric Power Corporation (KEPCO)", Response{Success: true, Price: "23,450", Change: "350", ChangePercent: "-1.47%", Direction: "down"}},
		{"Nobody", Response{Error: MsgNotFound}},
		{"  ", Response{Error: MsgCompanyRequired}},
		{"POS\x00CO", Response{Error: MsgInvalidCompany}},
		{strings.Repeat("a", 300), Response{Error: MsgInvalidCompany}},
	}
	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			if got := Respond(b, tt.company); got != tt.want {
				t.Errorf("Respond(%q) = %+v, want %+v", tt.company, got, tt.want)
			}
		})
	}
}

func TestSample(t *testing.T) {
	b := Sample()
	if b.Len() != 7 {
		t.Errorf("Len() = %d, want 7", b.Len())
	}
	q, ok := b.Lookup("Seongnam Development Co.")
	if !ok {
		t.Fatal("missing Seongnam Development Co.")
	}
	if q.Direction() != graph.DirectionDown {
		t.Error("zero change should be down")
	}
}

func TestWrite(t *testing.T) {
	var buf strings.Builder
	if err := Sample().Write(&buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.Contains(buf.String(), "[[quote]]") {
		t.Errorf("Write() output lacks quote tables:\n%s", buf.String())
	}

	b, err := Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if b.Len() != Sample().Len() {
		t.Errorf("Len() = %d, want %d", b.Len(), Sample().Len())
	}
	q, ok := b.Lookup("동신건설 (025950)")
	if !ok || q.Price != 8920 || q.Symbol != "025950" {
		t.Errorf("Lookup() = %+v, %v", q, ok)
	}
}

package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/influencegraph/pkg/quote"
)

// quoteCommand creates the quote command for stock lookups.
func (c *CLI) quoteCommand() *cobra.Command {
	var (
		asJSON bool
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "quote [company]",
		Short: "Look up the stock quote of a company",
		Long: `Look up the stock quote of a company in the quote book.

With --json the answer has the shape of the stock-price API. Use --list to
print every quote in the book.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := c.loadBook()
			if err != nil {
				return err
			}
			if list {
				fmt.Println(bookTable(book).Render())
				return nil
			}

			var company string
			if len(args) == 1 {
				company = args[0]
			}
			resp := quote.Respond(book, company)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			if !resp.Success {
				printError("%s", resp.Error)
				return nil
			}
			q, _ := book.Lookup(company)
			v := quote.Format(q)
			fmt.Println(StyleTitle.Render(company) + " " + StyleDim.Render(v.Symbol))
			fmt.Println(keyValue("Price", v.Price) + "  " + trendStyle(v.Direction).Render(v.Text()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API response as JSON")
	cmd.Flags().BoolVar(&list, "list", false, "list every quote in the book")

	return cmd
}

// loadBook opens the configured quote book, or the built-in sample.
func (c *CLI) loadBook() (*quote.Book, error) {
	if c.cfg.Quotes == "" {
		return quote.Sample(), nil
	}
	book, err := quote.Load(c.cfg.Quotes)
	if err != nil {
		return nil, fmt.Errorf("load quotes %s: %w", c.cfg.Quotes, err)
	}
	return book, nil
}

func bookTable(b *quote.Book) *table.Table {
	entries := b.Entries()
	rows := make([][]string, len(entries))
	views := make([]quote.View, len(entries))
	for i, e := range entries {
		v := quote.Format(e.Quote())
		views[i] = v
		rows[i] = []string{e.Company, v.Symbol, v.Price, v.Text()}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Company", "Symbol", "Price", "Change").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 3 && row < len(views) {
				return trendStyle(views[row].Direction)
			}
			return lipgloss.NewStyle()
		})
}

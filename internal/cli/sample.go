package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/influencegraph/pkg/quote"
	"github.com/matzehuels/influencegraph/pkg/report"
)

// Sample file names written by the sample command.
const (
	sampleReportFile = "sample-report.json"
	sampleQuotesFile = "quotes.toml"
)

// sampleCommand creates the sample command that writes the demo inputs.
func (c *CLI) sampleCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the demo report and quote book",
		Long: `Write the demo analysis report and quote book.

The files are the inputs the preview server uses when started without one,
and a starting point for your own reports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := writeSamples(dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				printFile(p)
			}
			printNewline()
			printNextStep("Render it", fmt.Sprintf("%s render %s --quotes %s -f html",
				appName, paths[0], paths[1]))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "output", "o", ".", "directory to write to")

	return cmd
}

// writeSamples writes the sample report and quote book into dir and returns
// their paths.
func writeSamples(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	data, err := report.Marshal(report.Sample())
	if err != nil {
		return nil, err
	}
	reportPath := filepath.Join(dir, sampleReportFile)
	if err := os.WriteFile(reportPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", reportPath, err)
	}

	quotesPath := filepath.Join(dir, sampleQuotesFile)
	f, err := os.Create(quotesPath)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", quotesPath, err)
	}
	if err := quote.Sample().Write(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", quotesPath, err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	return []string{reportPath, quotesPath}, nil
}

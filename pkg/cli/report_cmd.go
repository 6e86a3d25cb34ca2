package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"access-review/internal/report"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		outPath string
		format  string
		section string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a consolidated review report (PDF or text)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sections, err := sectionsFromFlag(section)
			if err != nil {
				return err
			}
			// --format wins; otherwise the extension of --out decides.
			if !cmd.Flags().Changed("format") {
				if strings.EqualFold(filepath.Ext(outPath), ".txt") {
					format = "txt"
				}
			}
			if format != "pdf" && format != "txt" {
				return fmt.Errorf("unsupported format %q: use 'pdf' or 'txt'", format)
			}

			result, err := opts.runReview(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(outPath) //nolint:gosec // path is user-supplied by design
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close() //nolint:errcheck

			if format == "pdf" {
				err = report.PDF(f, result, sections)
			} else {
				err = report.Text(f, result, sections)
			}
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			fmt.Fprintf(os.Stderr, "wrote %s (%d baseline, %d anomalies, %d gaps)\n",
				outPath, len(result.Baseline), len(result.Anomalies), len(result.Gaps))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "entitlement_review.pdf", "Output file path")
	cmd.Flags().StringVar(&format, "format", "pdf", "Report format (pdf, txt)")
	cmd.Flags().StringVar(&section, "section", "all", "Sections to include (all, baseline, anomalies, gaps)")

	return cmd
}

func sectionsFromFlag(section string) (report.Sections, error) {
	switch section {
	case "", "all":
		return report.AllSections(), nil
	case "baseline":
		return report.Sections{Baseline: true}, nil
	case "anomalies":
		return report.Sections{Anomalies: true}, nil
	case "gaps":
		return report.Sections{Gaps: true}, nil
	}
	return report.Sections{}, fmt.Errorf("unknown section %q: use 'all', 'baseline', 'anomalies', or 'gaps'", section)
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"access-review/internal/report"
)

func newBaselineCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "baseline",
		Short: "Compute baseline entitlements per peer group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.runReview(cmd.Context())
			if err != nil {
				return err
			}

			switch getOutputFormat(cmd) {
			case "json":
				return printJSON(os.Stdout, map[string]interface{}{
					"params":                 result.Params,
					"excluded_from_baseline": result.ExcludedFromBaseline,
					"baseline":               result.Baseline,
				})
			case "csv":
				return report.BaselineCSV(os.Stdout, result.Baseline)
			}

			if result.ExcludedFromBaseline > 0 {
				fmt.Fprintf(os.Stderr, "%d records without a title excluded from the baseline\n", result.ExcludedFromBaseline)
			}
			rows := make([][]string, 0, len(result.Baseline))
			for _, e := range result.Baseline {
				rows = append(rows, []string{
					e.Group.Label(), e.Role, e.Entitlement,
					fmt.Sprintf("%.1f%%", e.Prevalence*100),
				})
			}
			return printTable(os.Stdout, []string{"Peer Group", "Role", "Entitlement", "Prevalence"}, rows)
		},
	}
}

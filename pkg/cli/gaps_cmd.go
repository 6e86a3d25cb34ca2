package cli

import (
	"os"

	"github.com/spf13/cobra"

	"access-review/internal/report"
)

func newGapsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gaps",
		Short: "Report baseline entitlements a group does not hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.runReview(cmd.Context())
			if err != nil {
				return err
			}

			switch getOutputFormat(cmd) {
			case "json":
				return printJSON(os.Stdout, map[string]interface{}{
					"params": result.Params,
					"gaps":   result.Gaps,
				})
			case "csv":
				return report.GapsCSV(os.Stdout, result.Gaps)
			}

			rows := make([][]string, 0, len(result.Gaps))
			for _, g := range result.Gaps {
				rows = append(rows, []string{g.Group.Label(), g.Role, g.Entitlement})
			}
			return printTable(os.Stdout, []string{"Peer Group", "Role", "Entitlement"}, rows)
		},
	}
}

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"access-review/internal/report"
)

func newAnomaliesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "anomalies",
		Short: "Flag rare grants held by individual identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.runReview(cmd.Context())
			if err != nil {
				return err
			}

			switch getOutputFormat(cmd) {
			case "json":
				return printJSON(os.Stdout, map[string]interface{}{
					"params":    result.Params,
					"anomalies": result.Anomalies,
				})
			case "csv":
				return report.AnomaliesCSV(os.Stdout, result.Anomalies)
			}

			rows := make([][]string, 0, len(result.Anomalies))
			for _, a := range result.Anomalies {
				rows = append(rows, []string{
					a.Group.Label(), a.UserID, a.Username, a.Role, a.Entitlement,
				})
			}
			return printTable(os.Stdout, []string{"Peer Group", "User ID", "Username", "Role", "Entitlement"}, rows)
		},
	}
}

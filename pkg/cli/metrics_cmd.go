package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"access-review/internal/service"
)

func newMetricsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Summarize the access export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := opts.loadRecords()
			if err != nil {
				return err
			}
			m := service.Metrics(records)

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, m)
			}
			rows := [][]string{
				{"Records", strconv.Itoa(m.TotalRecords)},
				{"Users", strconv.Itoa(m.UniqueUsers)},
				{"Departments", strconv.Itoa(m.UniqueUnits)},
				{"Titles", strconv.Itoa(m.UniqueTitles)},
				{"Roles", strconv.Itoa(m.UniqueRoles)},
				{"Entitlements", strconv.Itoa(m.UniqueEntitlements)},
				{"Categories", strconv.Itoa(m.UniqueCategories)},
				{"Access groups", strconv.Itoa(m.UniqueAccessGroups)},
				{"Users without title", strconv.Itoa(m.UsersWithoutTitle)},
			}
			return printTable(os.Stdout, []string{"Metric", "Value"}, rows)
		},
	}
}

// Package cli implements the entreview command-line interface. It runs the
// analysis engines directly against a local CSV export, no server required.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(os.Stdout, map[string]interface{}{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "entreview",
		Short:         "Peer-group entitlement review",
		Long:          "Analyze an access export for baseline entitlements, anomalous grants, and access gaps using peer-group prevalence.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Load config from profile if flags/env not set
			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional
				cfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}

			p := cfg.ActiveProfile(opts.profile)

			// Apply precedence: flag > env > profile > default
			if !cmd.Flags().Changed("input") {
				if v := os.Getenv("ENTREVIEW_INPUT"); v != "" {
					opts.input = v
				} else if p.Input != "" {
					opts.input = p.Input
				}
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("ENTREVIEW_OUTPUT"); v != "" {
					opts.output = v
				} else if p.Output != "" {
					opts.output = p.Output
				}
			}
			if !cmd.Flags().Changed("baseline-threshold") {
				if v := os.Getenv("ENTREVIEW_BASELINE_THRESHOLD"); v != "" {
					f, err := strconv.ParseFloat(v, 64)
					if err != nil {
						return fmt.Errorf("ENTREVIEW_BASELINE_THRESHOLD: %q is not a number", v)
					}
					opts.baselineThreshold = f
				} else if p.BaselineThreshold != 0 {
					opts.baselineThreshold = p.BaselineThreshold
				}
			}
			if !cmd.Flags().Changed("anomaly-threshold") {
				if v := os.Getenv("ENTREVIEW_ANOMALY_THRESHOLD"); v != "" {
					f, err := strconv.ParseFloat(v, 64)
					if err != nil {
						return fmt.Errorf("ENTREVIEW_ANOMALY_THRESHOLD: %q is not a number", v)
					}
					opts.anomalyThreshold = f
				} else if p.AnomalyThreshold != 0 {
					opts.anomalyThreshold = p.AnomalyThreshold
				}
			}
			if !cmd.Flags().Changed("grouping") {
				if v := os.Getenv("ENTREVIEW_GROUPING"); v != "" {
					opts.grouping = v
				} else if p.Grouping != "" {
					opts.grouping = p.Grouping
				}
			}

			return validateOutputFormat(opts.output)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "Path to the access export CSV")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, csv)")
	rootCmd.PersistentFlags().StringVarP(&opts.profile, "profile", "p", "", "Config profile to use")
	rootCmd.PersistentFlags().Float64Var(&opts.baselineThreshold, "baseline-threshold", 95, "Baseline prevalence threshold in percent, (0, 100]")
	rootCmd.PersistentFlags().Float64Var(&opts.anomalyThreshold, "anomaly-threshold", 2, "Anomaly prevalence threshold in percent, (0, 100]")
	rootCmd.PersistentFlags().StringVar(&opts.grouping, "grouping", "unit", "Peer grouping (unit, unit-title)")

	rootCmd.AddCommand(newMetricsCmd(opts))
	rootCmd.AddCommand(newBaselineCmd(opts))
	rootCmd.AddCommand(newAnomaliesCmd(opts))
	rootCmd.AddCommand(newGapsCmd(opts))
	rootCmd.AddCommand(newReportCmd(opts))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

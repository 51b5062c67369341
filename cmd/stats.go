package main

import (
	"github.com/spf13/cobra"

	"github.com/bidsight/bidsight/internal/monitoring"
)

var statsLookbackHours int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show report volume and unlock activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		snap, err := monitoring.NewCollector(env.Store).Collect(cmd.Context(), statsLookbackHours)
		if err != nil {
			return err
		}
		return printJSON(snap)
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsLookbackHours, "lookback-hours", 24, "recent-activity window")
	rootCmd.AddCommand(statsCmd)
}

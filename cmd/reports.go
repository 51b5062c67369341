package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bidsight/bidsight/internal/model"
	"github.com/bidsight/bidsight/internal/store"
)

var (
	reportsKind  string
	reportsLimit int
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List report history",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		entries, err := env.Store.ListReports(cmd.Context(), store.Filter{
			Kind:  model.ReportKind(reportsKind),
			Limit: reportsLimit,
		})
		if err != nil {
			return err
		}

		for _, e := range entries {
			tier := "free"
			if e.Detail != nil {
				tier = "paid"
			} else if e.Unlocked {
				tier = "unlocked"
			}
			fmt.Printf("%-38s %-6s %-8s %s\n",
				e.Report.ID, e.Report.Kind, tier,
				e.Report.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Printf("%d report(s)\n", len(entries))
		return nil
	},
}

func init() {
	reportsCmd.Flags().StringVar(&reportsKind, "kind", "", `filter by kind ("photo" or "bid")`)
	reportsCmd.Flags().IntVar(&reportsLimit, "limit", 50, "maximum rows")
	rootCmd.AddCommand(reportsCmd)
}

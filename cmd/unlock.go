package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var unlockSkipDetail bool

var unlockCmd = &cobra.Command{
	Use:   "unlock <report-id>",
	Short: "Mark a report as paid and generate its deeper detail",
	Long:  "Records the payment collaborator's entitlement signal for a report, then generates and attaches the paid-tier detail.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.SetUnlocked(cmd.Context(), id); err != nil {
			return err
		}
		if unlockSkipDetail {
			fmt.Printf("report %s unlocked\n", id)
			return nil
		}

		detail, err := env.Analyzer.GenerateDetail(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(detail)
	},
}

func init() {
	unlockCmd.Flags().BoolVar(&unlockSkipDetail, "no-detail", false, "record the entitlement without generating the detail")
	rootCmd.AddCommand(unlockCmd)
}

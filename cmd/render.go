package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/bidsight/bidsight/internal/pdfgen"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render <report-id>",
	Short: "Render a report to a paginated PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		entry, err := env.Store.GetReport(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		data, err := pdfgen.Render(entry.Report, entry.Detail, pdfgen.Options{
			LogoPath: cfg.Report.LogoPath,
		})
		if err != nil {
			return err
		}

		out := renderOut
		if out == "" {
			out = entry.Report.ID + ".pdf"
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", out)
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output path (default <report-id>.pdf)")
	rootCmd.AddCommand(renderCmd)
}

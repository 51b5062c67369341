package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bidsight/bidsight/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "bidsight",
	Short: "AI-backed construction bid and photo assessment",
	Long:  "Submits bids and photos to Claude for a structured assessment, tracks report history, and renders paginated PDF reports with a market comparison.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

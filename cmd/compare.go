package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bidsight/bidsight/internal/compare"
	"github.com/bidsight/bidsight/internal/model"
	"github.com/bidsight/bidsight/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare <report-id-a> <report-id-b>",
	Short: "Compare two historical reports of the same kind",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		var a, b *store.Entry
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			a, err = env.Store.GetReport(ctx, args[0])
			return err
		})
		g.Go(func() error {
			var err error
			b, err = env.Store.GetReport(ctx, args[1])
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		if a.Report.Kind != b.Report.Kind {
			return eris.Errorf("cannot compare a %s report with a %s report",
				a.Report.Kind, b.Report.Kind)
		}

		sections, err := comparisonSections(a.Report, b.Report)
		if err != nil {
			return err
		}
		for _, section := range sections {
			printDiff(section.name, compare.Diff(section.a, section.b))
		}
		return nil
	},
}

type diffSection struct {
	name string
	a, b []string
}

// errMissingFindings means a stored payload lacks the findings object for
// its kind and has nothing to diff.
var errMissingFindings = eris.New("compare: report has no findings for its kind")

func comparisonSections(a, b model.Report) ([]diffSection, error) {
	if a.Kind == model.KindPhoto {
		if a.Photo == nil || b.Photo == nil {
			return nil, errMissingFindings
		}
		return []diffSection{
			{"Looks good", a.Photo.LooksGood, b.Photo.LooksGood},
			{"Issues", a.Photo.Issues, b.Photo.Issues},
			{"Questions", a.Photo.Questions, b.Photo.Questions},
		}, nil
	}
	if a.Bid == nil || b.Bid == nil {
		return nil, errMissingFindings
	}
	return []diffSection{
		{"Included", a.Bid.Included, b.Bid.Included},
		{"Missing", a.Bid.Missing, b.Bid.Missing},
		{"Red flags", a.Bid.RedFlags, b.Bid.RedFlags},
	}, nil
}

func printDiff(name string, res compare.Result) {
	fmt.Printf("== %s ==\n", name)
	for _, item := range res.Both {
		fmt.Printf("   both   %s\n", item)
	}
	for _, item := range res.OnlyA {
		fmt.Printf("   only A %s\n", item)
	}
	for _, item := range res.OnlyB {
		fmt.Printf("   only B %s\n", item)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

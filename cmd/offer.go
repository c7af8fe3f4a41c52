package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/schedgen/pkg/export"
)

func newCoursesCmd(o *rootOptions) *cobra.Command {
	var search string
	c := &cobra.Command{
		Use:   "courses FILES...",
		Short: "List the offered courses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := o.svc.Load(cmd.Context(), args...)
			if err != nil {
				return err
			}
			for _, name := range cat.Search(search) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	c.Flags().StringVarP(&search, "search", "s", "", "filter names, ignoring case and accents")
	return c
}

func newOfferCmd(o *rootOptions) *cobra.Command {
	var stats bool
	c := &cobra.Command{
		Use:   "offer FILES...",
		Short: "Show every section with its days, hours and occupancy",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := o.svc.Load(cmd.Context(), args...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if stats {
				return export.WriteStats(out, cat.Stats())
			}
			return export.WriteSummary(out, cat.Summary())
		},
	}
	c.Flags().BoolVar(&stats, "stats", false, "print per-course occupancy statistics instead")
	return c
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kilianp07/schedgen/core/browser"
	"github.com/kilianp07/schedgen/core/model"
	"github.com/kilianp07/schedgen/pkg/export"
)

type requestFlags struct {
	courses []string
	window  string
	campus  string
}

func (f *requestFlags) bind(c *cobra.Command) {
	c.Flags().StringArrayVarP(&f.courses, "course", "C", nil, "course to schedule (repeatable)")
	c.Flags().StringVarP(&f.window, "window", "w", "mixed", "daytime window: morning, evening or mixed")
	c.Flags().StringVar(&f.campus, "campus", "all", "campus: all, central, south or luque")
}

func (f *requestFlags) request() (model.Request, error) {
	w, err := model.ParseWindow(f.window)
	if err != nil {
		return model.Request{}, err
	}
	c, err := model.ParseCampus(f.campus)
	if err != nil {
		return model.Request{}, err
	}
	return model.Request{Courses: f.courses, Window: w, Campus: c}, nil
}

func newGenerateCmd(o *rootOptions) *cobra.Command {
	var (
		rf     requestFlags
		format string
		all    bool
	)
	c := &cobra.Command{
		Use:   "generate FILES...",
		Short: "Generate every conflict-free schedule for the selected courses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rf.request()
			if err != nil {
				return err
			}
			render, err := renderer(format)
			if err != nil {
				return err
			}
			if _, err := o.svc.Load(cmd.Context(), args...); err != nil {
				return err
			}
			sess, _, err := o.svc.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d schedules found\n", sess.Len())
			n := 1
			if all {
				n = sess.Len()
			}
			for i := 0; i < n; i++ {
				if err := sess.Seek(i); err != nil {
					return err
				}
				v, err := sess.Current()
				if err != nil {
					return err
				}
				if err := render(out, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
	rf.bind(c)
	c.Flags().StringVarP(&format, "format", "f", "table", "output format: table, calendar, json, csv or yaml")
	c.Flags().BoolVar(&all, "all", false, "print every schedule instead of the first")
	return c
}

type renderFunc func(io.Writer, browser.View) error

func renderer(format string) (renderFunc, error) {
	switch format {
	case "table":
		return func(w io.Writer, v browser.View) error {
			fmt.Fprintf(w, "\nSchedule %d/%d\n", v.Index+1, v.Total)
			return export.WriteTable(w, v.Rows)
		}, nil
	case "calendar":
		return func(w io.Writer, v browser.View) error {
			fmt.Fprintf(w, "\nSchedule %d/%d\n", v.Index+1, v.Total)
			return export.WriteCalendar(w, v.Combination)
		}, nil
	case "json":
		return func(w io.Writer, v browser.View) error { return export.WriteJSON(w, v.Rows) }, nil
	case "csv":
		return func(w io.Writer, v browser.View) error { return export.WriteCSV(w, v.Rows) }, nil
	case "yaml":
		return func(w io.Writer, v browser.View) error { return export.WriteYAML(w, v.Rows) }, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/schedgen/core/browser"
	"github.com/kilianp07/schedgen/pkg/export"
)

func newBrowseCmd(o *rootOptions) *cobra.Command {
	var rf requestFlags
	c := &cobra.Command{
		Use:   "browse FILES...",
		Short: "Walk the generated schedules interactively (n: next, p: previous, q: quit)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rf.request()
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
			return browse(cmd, sess)
		},
	}
	rf.bind(c)
	return c
}

func browse(cmd *cobra.Command, sess *browser.Session) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		v, err := sess.Current()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSchedule %d/%d\n", v.Index+1, v.Total)
		if err := export.WriteTable(out, v.Rows); err != nil {
			return err
		}
		fmt.Fprintln(out)
		if err := export.WriteCalendar(out, v.Combination); err != nil {
			return err
		}
		key, ok := readKey(in, out)
		if !ok {
			return in.Err()
		}
		switch key {
		case "n":
			err = sess.Next()
		case "p":
			err = sess.Previous()
		case "q":
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// readKey prompts until one of n, p or q is entered. An empty line means n.
func readKey(in *bufio.Scanner, out io.Writer) (string, bool) {
	for {
		fmt.Fprint(out, "[n]ext [p]revious [q]uit: ")
		if !in.Scan() {
			return "", false
		}
		switch key := strings.ToLower(strings.TrimSpace(in.Text())); key {
		case "", "n":
			return "n", true
		case "p", "q":
			return key, true
		}
	}
}

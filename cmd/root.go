package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/schedgen/app"
	"github.com/kilianp07/schedgen/config"
	"github.com/kilianp07/schedgen/core/browser"
	"github.com/kilianp07/schedgen/core/schedule"
	"github.com/kilianp07/schedgen/infra/logger"
)

type rootOptions struct {
	cfgPath  string
	logLevel string
	svc      *app.Service
}

// NewRootCmd builds the schedgen command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:           "schedgen",
		Short:         "Conflict-free course schedule generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			level := cfg.Logging.Level
			if o.logLevel != "" {
				level = o.logLevel
			}
			logger.Configure(logger.Options{Level: level, Output: cmd.ErrOrStderr()})
			o.svc, err = app.New(cfg)
			return err
		},
	}
	root.PersistentFlags().StringVarP(&o.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "override logging.level")
	root.AddCommand(newCoursesCmd(o), newOfferCmd(o), newGenerateCmd(o), newBrowseCmd(o))
	for _, c := range root.Commands() {
		if c.RunE != nil {
			c.RunE = o.closing(c.RunE)
		}
	}
	return root
}

// closing wraps run so the service is flushed and closed whatever run
// returns.
func (o *rootOptions) closing(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if o.svc != nil {
			err = errors.Join(err, o.svc.Close())
			o.svc = nil
		}
		return err
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit status: 0 on success, 2 for
// unusable offering files and 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, schedule.ErrMalformedInput):
		return 2
	default:
		return 1
	}
}

func printError(w io.Writer, err error) {
	var nc *schedule.NoCandidatesError
	var ss *schedule.SearchSpaceError
	switch {
	case errors.Is(err, schedule.ErrEmptyInput):
		fmt.Fprintln(w, "Select at least one course (-C).")
	case errors.As(err, &nc):
		fmt.Fprintf(w, "No open section of %q matches the selected campus.\n", nc.Course)
	case errors.Is(err, schedule.ErrNoValidCombinations):
		fmt.Fprintln(w, "No valid combinations found. Try another window or campus.")
	case errors.As(err, &ss):
		fmt.Fprintf(w, "Too many candidate combinations (%d, limit %d). Select fewer courses.\n", ss.Size, ss.Limit)
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(w, "Generation took too long and was aborted.")
	case errors.Is(err, browser.ErrNoResults):
		fmt.Fprintln(w, "Nothing to browse.")
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

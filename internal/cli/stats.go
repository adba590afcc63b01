package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	Database string
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals of recorded sessions",
		Long: `Show how many sessions, participants and attributions are recorded,
overall and per program.

Examples:
  parrainage stats --db ./parrainage.db
  parrainage stats --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runStats(opts *StatsOptions, cmd *cobra.Command) error {
	st, err := openExistingStore(orDefault(opts.Database, opts.config().Database))
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(context.Background())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compute stats", err)
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		return out.Success(stats)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Sessions: %d\nParrains: %d\nFilleuls: %d\nAttributions: %d\n",
		stats.Sessions, stats.Mentors, stats.Mentees, stats.Attributions)
	if len(stats.Programs) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FILIERE\tSESSIONS\tPARRAINS\tFILLEULS\tATTRIBUTIONS\tDERNIERE")
	for _, p := range stats.Programs {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
			p.Program, p.Sessions, p.Mentors, p.Mentees, p.Attributions, p.LastRun.Format(time.DateTime))
	}
	return tw.Flush()
}

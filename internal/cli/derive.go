package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/roster"
)

// DeriveOptions holds flags for the derive command.
type DeriveOptions struct {
	*RootOptions
	Program string
}

// NewDeriveCommand creates the derive command.
func NewDeriveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeriveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "derive <list-file>",
		Short: "Import a list and show derived participants",
		Long: `Import a mentor or mentee list and show the participants derived from it.

The first column of the first sheet of an .xlsx file is read; .csv and
.txt files are read one name per line. Header rows and names that cannot
produce an address are listed as rejected.

Exit codes:
  0 - At least one participant was derived
  1 - No row produced a participant
  2 - Command error (unreadable file, unsupported format)

Examples:
  parrainage derive parrains.xlsx --program EAIN
  parrainage derive filleuls.csv --program EJ --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Program, "program", "", "program display name, e.g. EAIN (required)")
	_ = cmd.MarkFlagRequired("program")

	return cmd
}

func runDerive(opts *DeriveOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	program := opts.program(opts.Program, out)

	r, err := roster.Load(path, opts.config().Deriver(), program)
	if err != nil && !errors.Is(err, roster.ErrNoParticipants) {
		return WrapExitError(ExitCommandError, "failed to read list", err)
	}
	slog.Debug("list imported", "file", path, "rows", r.Total, "participants", len(r.Participants))

	if out.JSON() {
		if err := out.Success(r); err != nil {
			return err
		}
	} else if err := printRoster(cmd, r); err != nil {
		return err
	}

	if errors.Is(err, roster.ErrNoParticipants) {
		return WrapExitError(ExitFailure, path, err)
	}
	return nil
}

func printRoster(cmd *cobra.Command, r *roster.Roster) error {
	w := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM COMPLET\tEMAIL")
	for _, p := range r.Participants {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.FullName, p.Email)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Rejected) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Rejected rows:")
		for _, rej := range r.Rejected {
			fmt.Fprintf(w, "  row %d: %q (%s)\n", rej.Row, rej.Text, rej.Reason)
		}
	}

	fmt.Fprintf(w, "\n%d participant(s), %d row(s) filtered out of %d\n", len(r.Participants), r.Filtered(), r.Total)
	return nil
}

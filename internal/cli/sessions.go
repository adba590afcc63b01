package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/pairing"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/report"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/store"
)

// SessionsOptions holds flags shared by the sessions subcommands.
type SessionsOptions struct {
	*RootOptions
	Database string
	Program  string
}

// SessionDetail is the output of sessions show.
type SessionDetail struct {
	Session ir.Session      `json:"session"`
	Summary pairing.Summary `json:"summary"`
	Valid   bool            `json:"valid"` // Digest verified
}

// NewSessionsCommand creates the sessions command and its subcommands.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect recorded sessions",
		Long: `List, show and delete the sessions recorded in the database.

Examples:
  parrainage sessions list --db ./parrainage.db
  parrainage sessions list --program EAIN --format json
  parrainage sessions show 01927c1e-8f3a-7b2c-9d4e-5f6a7b8c9d0e
  parrainage sessions delete 01927c1e-8f3a-7b2c-9d4e-5f6a7b8c9d0e`,
	}
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List recorded sessions, oldest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionsList(opts, cmd)
		},
	}
	list.Flags().StringVar(&opts.Program, "program", "", "only sessions of this program")

	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the pairings of a session",
		Long: `Show the pairings of a recorded session.

The pairing set is rebuilt from the stored attributions and checked
against the digest recorded with the session.

Exit codes:
  0 - Session found and verified
  1 - Digest mismatch (the stored pairings were modified)
  2 - Command error (database or session not found)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionsShow(opts, args[0], cmd)
		},
	}

	del := &cobra.Command{
		Use:           "delete <session-id>",
		Short:         "Delete a session with its participants and attributions",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionsDelete(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(list, show, del)
	return cmd
}

// openExistingStore opens a database that must already exist. store.Open
// would silently create an empty one.
func openExistingStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runSessionsList(opts *SessionsOptions, cmd *cobra.Command) error {
	st, err := openExistingStore(orDefault(opts.Database, opts.config().Database))
	if err != nil {
		return err
	}
	defer st.Close()

	program := opts.Program
	if program != "" {
		program = opts.config().ProgramTable().Canonical(program)
	}
	sessions, err := st.ListSessions(context.Background(), program)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		return out.Success(sessions)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tFILIERE\tREGIME\tPARRAINS\tFILLEULS\tATTRIBUTIONS\tDATE")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			s.ID, s.Program, s.Regime, s.Mentors, s.Mentees, s.Pairings, s.CreatedAt.Format(time.DateTime))
	}
	return tw.Flush()
}

func runSessionsShow(opts *SessionsOptions, id string, cmd *cobra.Command) error {
	st, err := openExistingStore(orDefault(opts.Database, opts.config().Database))
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := st.ReadSession(context.Background(), id)
	mismatch := errors.Is(err, store.ErrDigestMismatch)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", id))
	case err != nil && !mismatch:
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	detail := SessionDetail{
		Session: sess,
		Summary: pairing.Summarize(sess.Mentors, sess.Mentees, sess.Pairings),
		Valid:   !mismatch,
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		if err := out.Success(detail); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Session %s (%s, regime %s)\n", sess.SessionID, sess.Program, sess.Regime)
		fmt.Fprintf(w, "Created: %s\n", sess.CreatedAt.Format(time.DateTime))
		fmt.Fprintf(w, "Digest:  %s\n\n", sess.Digest)
		if err := report.RenderTable(w, sess.Pairings); err != nil {
			return err
		}
	}

	if mismatch {
		return WrapExitError(ExitFailure, "stored pairings do not match the session digest", err)
	}
	return nil
}

func runSessionsDelete(opts *SessionsOptions, id string, cmd *cobra.Command) error {
	st, err := openExistingStore(orDefault(opts.Database, opts.config().Database))
	if err != nil {
		return err
	}
	defer st.Close()

	deleted, err := st.DeleteSession(context.Background(), id)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to delete session", err)
	}
	if !deleted {
		return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", id))
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		return out.Success(map[string]string{"deleted": id})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Session %s deleted\n", id)
	return nil
}

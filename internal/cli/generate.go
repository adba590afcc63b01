package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/engine"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/identity"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/pairing"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/report"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/roster"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Mentors   string
	Mentees   string
	Program   string
	Database  string
	OutputDir string
	Seed      uint64
	NoReports bool

	// SessionIDs allows overriding the session id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	SessionIDs engine.SessionIDGenerator

	// Clock allows overriding the session clock (for testing).
	// If nil, defaults to SystemClock.
	Clock engine.Clock
}

// GenerateResult is the output of the generate command.
type GenerateResult struct {
	*engine.Result
	MentorsRejected []roster.Rejection `json:"mentors_rejected"`
	MenteesRejected []roster.Rejection `json:"mentees_rejected"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Pair a mentor list with a mentee list",
		Long: `Import both lists, shuffle them and assign mentors to mentees.

With at least as many mentors as mentees, each mentee gets one mentor and
the first mentees take a second one while mentors remain. With more
mentees than mentors, mentees are spread over mentors as evenly as
possible.

The session is recorded in the database and four reports are written
under the output directory (parrains, filleuls, attributions, pdfs).
Recording and report failures, an unavailable database included, are
printed as warnings: the pairings are always shown.

Exit codes:
  0 - Session generated
  1 - A list produced no participant
  2 - Command error (unreadable list, invalid flags)

Examples:
  parrainage generate --mentors parrains.xlsx --mentees filleuls.xlsx --program EAIN
  parrainage generate --mentors p.csv --mentees f.csv --program EJ --seed 42 --no-reports
  parrainage generate --mentors p.xlsx --mentees f.xlsx --program EPA --db ./parrainage.db --out ./uploads`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Mentors, "mentors", "", "mentor list file (required)")
	_ = cmd.MarkFlagRequired("mentors")
	cmd.Flags().StringVar(&opts.Mentees, "mentees", "", "mentee list file (required)")
	_ = cmd.MarkFlagRequired("mentees")
	cmd.Flags().StringVar(&opts.Program, "program", "", "program display name, e.g. EAIN (required)")
	_ = cmd.MarkFlagRequired("program")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.OutputDir, "out", "", "report output directory (default from config)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for a reproducible shuffle")
	cmd.Flags().BoolVar(&opts.NoReports, "no-reports", false, "skip writing report files")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	cfg := opts.config()
	d := cfg.Deriver()
	out := opts.formatter(cmd)
	program := opts.program(opts.Program, out)

	mentors, err := loadList("mentors", opts.Mentors, d, program)
	if err != nil {
		return err
	}
	mentees, err := loadList("mentees", opts.Mentees, d, program)
	if err != nil {
		return err
	}

	engOpts := []engine.Option{engine.WithLogger(slog.Default())}

	// The pairings are still computed and shown when the database cannot
	// be opened; the failure is reported like any other record failure.
	dbPath := orDefault(opts.Database, cfg.Database)
	slog.Info("opening database", "path", dbPath)
	st, openErr := store.Open(dbPath)
	if openErr != nil {
		slog.Warn("database unavailable, session will not be recorded", "path", dbPath, "error", openErr)
	} else {
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		engOpts = append(engOpts, engine.WithRecorder(st))
	}
	if cmd.Flags().Changed("seed") {
		engOpts = append(engOpts, engine.WithSource(pairing.NewSeededSource(opts.Seed)))
	}
	if opts.SessionIDs != nil {
		engOpts = append(engOpts, engine.WithSessionIDs(opts.SessionIDs))
	}
	if opts.Clock != nil {
		engOpts = append(engOpts, engine.WithClock(opts.Clock))
	}
	if !opts.NoReports {
		outDir := orDefault(opts.OutputDir, cfg.OutputDir)
		engOpts = append(engOpts, engine.WithEmitters(report.NewWriter(outDir, slog.Default())))
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	res, err := engine.New(engOpts...).Generate(ctx, engine.Request{
		Program: program,
		Mentors: mentors.Participants,
		Mentees: mentees.Participants,
	})
	if err != nil {
		if engine.IsValidationError(err) {
			return WrapExitError(ExitFailure, "cannot generate pairings", err)
		}
		return WrapExitError(ExitCommandError, "generation failed", err)
	}

	if openErr != nil {
		res.Warnings = append([]engine.Warning{engine.RecordWarning(res.Session.SessionID, openErr)}, res.Warnings...)
	}
	for _, w := range res.Warnings {
		out.Warn("%s: %s", w.Stage, w.Message)
	}

	if out.JSON() {
		return out.Success(GenerateResult{
			Result:          res,
			MentorsRejected: mentors.Rejected,
			MenteesRejected: mentees.Rejected,
		})
	}
	return printGenerate(cmd, res, mentors, mentees)
}

// loadList imports one list. An unreadable file is a command error, a
// list without participants is a run failure.
func loadList(role, path string, d *identity.Deriver, program string) (*roster.Roster, error) {
	r, err := roster.Load(path, d, program)
	if errors.Is(err, roster.ErrNoParticipants) {
		return nil, WrapExitError(ExitFailure, fmt.Sprintf("%s list %s", role, path), err)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s list", role), err)
	}
	slog.Info("list imported", "role", role, "file", path,
		"participants", len(r.Participants), "filtered", r.Filtered())
	return r, nil
}

// signalContext returns the command context canceled on SIGINT/SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func printGenerate(cmd *cobra.Command, res *engine.Result, mentors, mentees *roster.Roster) error {
	w := cmd.OutOrStdout()
	sess := res.Session
	s := res.Summary

	fmt.Fprintf(w, "Session %s (%s, regime %s)\n", sess.SessionID, sess.Program, sess.Regime)
	fmt.Fprintf(w, "Mentors: %d (%d filtered)  Mentees: %d (%d filtered)\n",
		s.Mentors, mentors.Filtered(), s.Mentees, mentees.Filtered())
	fmt.Fprintf(w, "Pairings: %d  Double mentored: %d  Load: %d-%d\n\n",
		s.Pairings, s.DoubleMentored, s.MinLoad, s.MaxLoad)

	if err := report.RenderTable(w, sess.Pairings); err != nil {
		return err
	}

	if len(s.UnassignedMentors) > 0 {
		fmt.Fprintf(w, "\nUnassigned mentors: %v\n", s.UnassignedMentors)
	}
	if res.Recorded {
		fmt.Fprintln(w, "\n✓ Session recorded")
	}
	if len(res.Files) > 0 {
		fmt.Fprintln(w, "\nReports:")
		for _, f := range res.Files {
			fmt.Fprintf(w, "  %s\n", f.Path)
		}
	}
	return nil
}

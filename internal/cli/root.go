package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/config"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is loaded before any subcommand runs. Commands built outside
	// the root (tests) fall back to config.Default.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the parrainage CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "parrainage",
		Short: "Parrainage - mentor/mentee pairing",
		Long: `Pair mentors ("parrains") with mentees ("filleuls") of a program.

Lists are imported from spreadsheets, institutional addresses are derived
from names, both pools are shuffled and assigned, the session is recorded
in SQLite and Excel and PDF reports are written.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
			return loadConfig(opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML or CUE configuration file")

	cmd.AddCommand(NewProgramsCommand(opts))
	cmd.AddCommand(NewDeriveCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewSessionsCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewFilesCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setupLogging installs the default slog logger on w.
// Verbose mode lowers the level to debug.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func loadConfig(opts *RootOptions) error {
	if opts.ConfigPath == "" {
		opts.Config = config.Default()
		return nil
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	slog.Debug("config loaded", "path", opts.ConfigPath, "programs", len(cfg.Programs))
	opts.Config = cfg
	return nil
}

// config returns the loaded configuration, or the defaults.
func (o *RootOptions) config() *config.Config {
	if o.Config == nil {
		o.Config = config.Default()
	}
	return o.Config
}

// formatter builds an OutputFormatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// program resolves a --program value against the program table. An
// unknown program is kept upper-cased and its addresses use the fallback
// slug.
func (o *RootOptions) program(name string, out *OutputFormatter) string {
	table := o.config().ProgramTable()
	if _, ok := table.Lookup(name); !ok {
		out.Warn("program %q is not configured, addresses use %q", name, ir.FallbackSlug)
	}
	return table.Canonical(name)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// orDefault returns flag unless it is empty.
func orDefault(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

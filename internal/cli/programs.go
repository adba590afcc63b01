package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// ProgramsResult lists the configured programs.
type ProgramsResult struct {
	Domain   string       `json:"domain"`
	Programs []ir.Program `json:"programs"`
}

// NewProgramsCommand creates the programs command.
func NewProgramsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List the program table",
		Long: `List the programs ("filières") known to this installation.

The code of a program is the slug used in derived addresses:
  firstname.lastname@edu.<code>.<domain>
Programs outside the table use the "gen" slug.

Examples:
  parrainage programs
  parrainage programs --config parrainage.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrograms(rootOpts, cmd)
		},
	}
}

func runPrograms(opts *RootOptions, cmd *cobra.Command) error {
	cfg := opts.config()
	result := ProgramsResult{
		Domain:   cfg.Domain,
		Programs: cfg.ProgramTable().Programs(),
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		return out.Success(result)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCODE\tTITLE")
	for _, p := range result.Programs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Code, p.FullName)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nDomain: %s\n", result.Domain)
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/report"
)

// FilesOptions holds flags shared by the files subcommands.
type FilesOptions struct {
	*RootOptions
	OutputDir string
	Kind      string
}

// NewFilesCommand creates the files command and its subcommands.
func NewFilesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FilesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "files",
		Short: "Manage generated report files",
		Long: `List and delete the report files written by generate.

Kinds: parrains, filleuls, attributions, pdfs.

Examples:
  parrainage files list
  parrainage files list --kind pdfs --out ./uploads
  parrainage files delete attributions ATTRIBUTIONS_FINALES_EAIN_2025-09-15_10_30.xlsx`,
	}
	cmd.PersistentFlags().StringVar(&opts.OutputDir, "out", "", "report output directory (default from config)")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List generated files",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilesList(opts, cmd)
		},
	}
	list.Flags().StringVar(&opts.Kind, "kind", "", "only files of this kind")

	del := &cobra.Command{
		Use:           "delete <kind> <name>",
		Short:         "Delete a generated file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilesDelete(opts, args[0], args[1], cmd)
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}

func runFilesList(opts *FilesOptions, cmd *cobra.Command) error {
	dir := orDefault(opts.OutputDir, opts.config().OutputDir)

	files, err := report.List(dir, ir.ReportKind(opts.Kind))
	if errors.Is(err, report.ErrInvalidKind) {
		return WrapExitError(ExitCommandError, "invalid --kind", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list files", err)
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		return out.Success(files)
	}

	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No files found.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tSIZE\tMODIFIED")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", f.Kind, f.Name, f.Size, f.ModTime.Format(time.DateTime))
	}
	return tw.Flush()
}

func runFilesDelete(opts *FilesOptions, kind, name string, cmd *cobra.Command) error {
	dir := orDefault(opts.OutputDir, opts.config().OutputDir)

	err := report.Remove(dir, ir.ReportKind(kind), name)
	switch {
	case errors.Is(err, report.ErrNotFound):
		return WrapExitError(ExitFailure, "nothing deleted", err)
	case err != nil:
		return WrapExitError(ExitCommandError, "failed to delete file", err)
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		return out.Success(map[string]string{"kind": kind, "deleted": name})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s/%s deleted\n", kind, name)
	return nil
}

// Package cli implements the seas command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the seas CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "seas",
		Short: "Inspect sea depth and salinity datasets",
		Long: `Load a ';'-delimited sea dataset (name;depth;salinity) or a NetCDF sea
table and report the deepest sea, the least salty sea, the average depth and
more. At most 10 records are read from a file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewDeepestCommand(opts))
	cmd.AddCommand(NewLeastSaltyCommand(opts))
	cmd.AddCommand(NewAverageCommand(opts))
	cmd.AddCommand(NewSortCommand(opts))
	cmd.AddCommand(NewNearSalinityCommand(opts))

	return cmd
}

// logger returns a debug logger on w when verbose is set, otherwise a logger
// that only reports warnings.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go.ngs.io/seas-api/internal/adapter/store"
	"go.ngs.io/seas-api/internal/domain"
	"go.ngs.io/seas-api/internal/usecase"
)

// datasetCommand builds a command that loads FILE and hands the dataset to run.
func datasetCommand(opts *RootOptions, use, short string, run func(f *OutputFormatter, uc *usecase.SeaAnalysisUseCase) error) *cobra.Command {
	return &cobra.Command{
		Use:           use + " <file>",
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
			}

			uc, err := loadDataset(opts, args[0], cmd.ErrOrStderr())
			if err != nil {
				formatter.Error(err)
				return err
			}
			return run(formatter, uc)
		},
	}
}

// loadDataset loads path into a fresh use case.
func loadDataset(opts *RootOptions, path string, logOut io.Writer) (*usecase.SeaAnalysisUseCase, error) {
	logger := opts.logger(logOut)
	uc := usecase.NewSeaAnalysisUseCase(store.ForPath(path, logger))

	resp := uc.Load(path)
	logger.Debug("dataset loaded", "path", path, "records", resp.Loaded)
	if resp.Loaded == 0 {
		return nil, &ExitError{
			Code:     ExitCommandError,
			Message:  fmt.Sprintf("no sea records loaded from %s", path),
			Reported: true,
		}
	}
	return uc, nil
}

// NewReportCommand creates the report command.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	return datasetCommand(opts, "report", "Print all seas and a summary",
		func(f *OutputFormatter, uc *usecase.SeaAnalysisUseCase) error {
			seas := uc.Seas()
			summary := uc.Summary()
			data := struct {
				Seas    []domain.Sea            `json:"seas"`
				Summary usecase.SummaryResponse `json:"summary"`
			}{seas, summary}

			return f.Success(data, func(w io.Writer) error {
				if err := printSeaTable(w, seas); err != nil {
					return err
				}
				fmt.Fprintln(w)
				fmt.Fprintf(w, "Seas: %d\n", summary.Count)
				fmt.Fprintf(w, "Average depth: %.2f m\n", summary.AverageDepthM)
				if summary.Deepest != nil {
					fmt.Fprintf(w, "Deepest: %s (%.2f m)\n", summary.Deepest.Sea.Name, summary.Deepest.Sea.DepthM)
				}
				if summary.LeastSalty != nil {
					fmt.Fprintf(w, "Least salty: %s (%.2f ppt)\n", summary.LeastSalty.Sea.Name, summary.LeastSalty.Sea.SalinityPpt)
				}
				return nil
			})
		})
}

// NewDeepestCommand creates the deepest command.
func NewDeepestCommand(opts *RootOptions) *cobra.Command {
	return datasetCommand(opts, "deepest", "Print the deepest sea",
		func(f *OutputFormatter, uc *usecase.SeaAnalysisUseCase) error {
			result, err := uc.Deepest()
			if err != nil {
				return err
			}
			return f.Success(result, func(w io.Writer) error {
				fmt.Fprintln(w, "Deepest sea:")
				printSea(w, result.Sea)
				return nil
			})
		})
}

// NewLeastSaltyCommand creates the least-salty command.
func NewLeastSaltyCommand(opts *RootOptions) *cobra.Command {
	return datasetCommand(opts, "least-salty", "Print the least salty sea",
		func(f *OutputFormatter, uc *usecase.SeaAnalysisUseCase) error {
			result, err := uc.LeastSalty()
			if err != nil {
				return err
			}
			return f.Success(result, func(w io.Writer) error {
				fmt.Fprintln(w, "Least salty sea:")
				printSea(w, result.Sea)
				return nil
			})
		})
}

// NewAverageCommand creates the average command.
func NewAverageCommand(opts *RootOptions) *cobra.Command {
	return datasetCommand(opts, "average", "Print the average depth",
		func(f *OutputFormatter, uc *usecase.SeaAnalysisUseCase) error {
			avg := uc.AverageDepth()
			data := map[string]float64{"average_depth_m": avg}
			return f.Success(data, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Average depth: %.2f m\n", avg)
				return err
			})
		})
}

// NewSortCommand creates the sort command.
func NewSortCommand(opts *RootOptions) *cobra.Command {
	return datasetCommand(opts, "sort", "Print seas sorted by depth, deepest first",
		func(f *OutputFormatter, uc *usecase.SeaAnalysisUseCase) error {
			seas := uc.SortByDepth()
			return f.Success(seas, func(w io.Writer) error {
				return printSeaTable(w, seas)
			})
		})
}

// NewNearSalinityCommand creates the near-salinity command.
func NewNearSalinityCommand(opts *RootOptions) *cobra.Command {
	var target, tolerance float64

	cmd := datasetCommand(opts, "near-salinity", "Print seas whose salinity is close to a target",
		func(f *OutputFormatter, uc *usecase.SeaAnalysisUseCase) error {
			resp := uc.BySalinity(target, tolerance)
			return f.Success(resp, func(w io.Writer) error {
				if len(resp.Matches) == 0 {
					_, err := fmt.Fprintf(w, "No seas with salinity %.2f ± %.2f ppt\n", target, tolerance)
					return err
				}
				seas := make([]domain.Sea, len(resp.Matches))
				for i, m := range resp.Matches {
					seas[i] = m.Sea
				}
				return printSeaTable(w, seas)
			})
		})

	cmd.Flags().Float64VarP(&target, "target", "t", 0, "target salinity in ppt")
	cmd.Flags().Float64Var(&tolerance, "tolerance", domain.DefaultSalinityTolerance, "allowed salinity difference in ppt")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

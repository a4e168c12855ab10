package cli

import (
	"fmt"

	"github.com/riskibarqy/playerstats/internal/usecase"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create every record listed in a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readRecordsFile(args[0])
			if err != nil {
				return err
			}
			if err := initStore(cmd); err != nil {
				return err
			}

			result, err := usecase.ImportRecords(cmd.Context(), manager, inputs, workers)
			if err != nil {
				return err
			}

			newCmdOutput(cmd).Print(result)
			if result.FailedCount > 0 {
				return fmt.Errorf("%d of %d records failed to import", result.FailedCount, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Concurrent create requests")

	return cmd
}

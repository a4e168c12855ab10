package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errConnectionFailed = errors.New("connection test failed")

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record count and backend status",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Init failures surface in the snapshot as an offline status.
			if err := initStore(cmd); err != nil {
				logger.WarnContext(cmd.Context(), "player stats store init failed", "error", err)
			}

			newCmdOutput(cmd).Print(manager.GetStats(cmd.Context()))
			return nil
		},
	}
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the table is reachable with the configured credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Builds the backend without the initial read Init performs.
			cfg := manager.Config()
			manager.Configure(cfg.URL, cfg.APIKey, cfg.Table)

			report := manager.TestConnection(cmd.Context())
			newCmdOutput(cmd).Print(report)
			if !report.Success {
				return errConnectionFailed
			}
			return nil
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show which backend is active and whether it is configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			newCmdOutput(cmd).Print(manager.Info())
			return nil
		},
	}
}

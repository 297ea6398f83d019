package cli

import (
	"github.com/spf13/cobra"

	"realorai-service/internal/client"
	"realorai-service/internal/config"
)

// NewLeaderboardCmd prints the current leaderboard from the stats server.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show average scores per age group",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(*configPath)
			if err != nil {
				return err
			}
			setupLogger(cfg)

			rows, err := client.NewStatsClient(statsServer(server, cfg)).Leaderboard(cmd.Context())
			if err != nil {
				return err
			}
			renderLeaderboard(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "stats server base URL (default $STATS_SERVER or client.server)")
	return cmd
}

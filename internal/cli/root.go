package cli

import (
	"os"

	"github.com/spf13/cobra"

	"realorai-service/internal/config"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	config.LoadEnv()
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "realorai",
		Short:        "Real-or-AI quiz: stats service and terminal client",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port to listen on (overrides server.port)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewPlayCmd(&configPath))
	cmd.AddCommand(NewLeaderboardCmd(&configPath))
	return cmd
}

// statsServer picks the stats API base URL: flag, then STATS_SERVER, then client.server.
func statsServer(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("STATS_SERVER"); env != "" {
		return env
	}
	if cfg.Client.Server != "" {
		return cfg.Client.Server
	}
	return "http://localhost:8080"
}

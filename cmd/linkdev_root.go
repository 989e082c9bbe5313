package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MASTER-2222/linkedin/config"
	"github.com/MASTER-2222/linkedin/internal/bootstrap"
	"github.com/MASTER-2222/linkedin/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "linkdev",
	Short: "LINKDEV professional networking API",
	Long: `linkdev serves the LINKDEV REST API: accounts, profiles, jobs and
applications, connections, posts and dashboards, backed by MongoDB.`,
	SilenceUsage: true,
	// Running the binary without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&storeFlag, "store", string(bootstrap.StoreMongo), "persistence backend: mongo or memory")
	}

	rootCmd.AddCommand(serveCmd, indexesCmd, versionCmd)
}

// Execute runs the root command and cancels its context on SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the dotenv file, then the config, and initializes logging.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	bootstrap.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.Debug("Config loaded: env=%s port=%s", cfg.Environment, cfg.Port)
	return cfg, nil
}

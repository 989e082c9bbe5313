package cmd

import (
	"context"

	"github.com/MASTER-2222/linkedin/adapter/out/mongodb"
	"github.com/MASTER-2222/linkedin/pkg/logger"

	"github.com/spf13/cobra"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := mongodb.NewClient(cmd.Context(), cfg.MongoURL)
		if err != nil {
			return err
		}
		store := mongodb.NewStore(client, cfg.MongoDBName, cfg.MongoTransactions)
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				logger.WithError(err).Warn("Failed to disconnect MongoDB")
			}
		}()

		if err := store.EnsureIndexes(cmd.Context()); err != nil {
			return err
		}
		logger.Info("Indexes ensured on database %s", cfg.MongoDBName)
		return nil
	},
}

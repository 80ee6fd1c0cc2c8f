package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/onurcolak/emergency-alert-service/environments"
	"github.com/onurcolak/emergency-alert-service/pkg/database"
	"github.com/onurcolak/emergency-alert-service/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seed",
		Short: "Prepare the emergency alert database",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := environments.Load()
			logger.Init(cfg.Log.Level, cfg.Log.Format)
		},
		SilenceUsage: true,
	}

	root.AddCommand(migrateCmd(), contactsCmd())

	return root
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the contacts table and its indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sqlx.DB) error {
				return database.RunMigrations(db)
			})
		},
	}
}

func contactsCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Migrate and insert demo contacts when the table is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sqlx.DB) error {
				if err := database.RunMigrations(db); err != nil {
					return err
				}

				seeded, err := database.SeedTestData(cmd.Context(), db, userID)
				if err != nil {
					return fmt.Errorf("failed to seed test data: %w", err)
				}

				fmt.Printf("Seeded %d contacts for user %s\n", seeded, userID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "demo-user", "owner user ID for the demo contacts")

	return cmd
}

func withDB(fn func(db *sqlx.DB) error) error {
	cfg := environments.Load()

	db, err := database.NewDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Warnf("Failed to close database: %v", err)
		}
	}()

	return fn(db)
}

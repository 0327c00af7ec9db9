package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookreview-backend/internal/config"
	"bookreview-backend/internal/infrastructure/database"
)

// migrateCmd applies pending migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Apply all pending schema migrations inside a single transaction.

Examples:
  bookctl migrate
  bookctl migrate --env-file .env.production`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func runMigrate(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return err
	}
	defer db.Close()

	if version, err := db.ServerVersion(ctx); err == nil {
		fmt.Println("Connected to", version)
	}

	applied, err := database.Migrate(ctx, db.Pool)
	if err != nil {
		return err
	}

	if applied == 0 {
		fmt.Println("Schema is up to date")
		return nil
	}
	fmt.Printf("Applied %d migration(s)\n", applied)
	return nil
}

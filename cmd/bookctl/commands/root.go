package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bookreview-backend/internal/config"
	"bookreview-backend/pkg/logger"
)

var (
	// Global flags
	envFile string
	verbose bool

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bookctl",
	Short: "Operator tool for the book review API",
	Long: `bookctl runs maintenance tasks against the book review database:

  migrate       - Apply pending schema migrations
  user create   - Create a user account (password is prompted)
  export        - Export books with review statistics to an Excel file`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env là optional
		_ = godotenv.Load(envFile)

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.App.LogLevel
		if verbose {
			level = "debug"
		}
		logger.Init("development", level)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(migrateCmd, userCmd, exportCmd)
}

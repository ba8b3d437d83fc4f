package command

// root.go defines the root command for yamdbctl, the operator CLI.
// It talks to the database directly, never to the HTTP API.

import (
	"fmt"
	"log/slog"
	"os"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	envFile  string // optional dotenv file, applied before .env
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yamdbctl",
	Short: "yamdbctl - YaMDb administration",
	Long: `yamdbctl runs maintenance tasks against the YaMDb database:
- apply schema migrations
- create users, including the first admin

It reads the same environment (DATABASE_URL, JWT_SECRET, ...) as the API server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug|info|warn|error")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createUserCmd)
}

// openDB loads the configuration and connects. The caller closes the handle.
func openDB() (*gorm.DB, *slog.Logger, error) {
	if envFile != "" {
		// variables already set in the environment win
		if err := godotenv.Load(envFile); err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewWithWriter(os.Stderr, logLevel, "text")
	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

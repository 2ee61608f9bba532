package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/cmd/cli/commands"
	"github.com/meitohealth/duty-roster/internal/config"
	"github.com/meitohealth/duty-roster/pkg/postgres"
	"github.com/meitohealth/duty-roster/pkg/utils/logging"
)

var app *commands.AppContext

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Duty Roster CLI - Automate hospital duty assignments",
		Long:  `A CLI tool for running constrained duty assignments: night duty, general shifts, and multi-step batches.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Logger != nil {
					app.Logger.Sync()
				}
				if app.Database != nil {
					app.Database.Close()
				}
			}
		},
	}

	// Add all commands
	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.AssignOnCallCmd(app))
	rootCmd.AddCommand(commands.AssignShiftsCmd(app))
	rootCmd.AddCommand(commands.RunBatchCmd(app))
	rootCmd.AddCommand(commands.ListPresetsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// A missing .env file is fine, the environment may already be set
	godotenv.Load()

	// Load configuration
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	app.Logger, err = logging.InitLogger(app.Cfg.Environment, app.Cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", app.Cfg.Environment))

	// Connect to the database and apply migrations
	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := app.Database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database initialized successfully")

	return nil
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"themeapp/internal/config"
	"themeapp/internal/db"
	"themeapp/internal/db/mock"
	applog "themeapp/internal/log"
)

// env holds the seams the commands reach the outside world through.
type env struct {
	loadConfig   func() (config.Config, error)
	openDatabase func(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error)
}

func defaultEnv() env {
	return env{
		loadConfig:   config.Load,
		openDatabase: openDatabase,
	}
}

var configureDatabase = db.Configure

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.UseMock {
		return mock.New(ctx)
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return configureDatabase(cfg)
}

type rootFlags struct {
	verbose bool
}

func newRootCmd(e env) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "themectl",
		Short:         "Inspect the product catalog and manage visitor theme preferences",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose {
				return applog.SetLevel("debug")
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newProductsCmd(e))
	cmd.AddCommand(newThemeCmd(e))

	return cmd
}

func withDatabase(cmd *cobra.Command, e env, fn func(*gorm.DB) error) error {
	cfg, err := e.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	database, err := e.openDatabase(cmd.Context(), cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()
	return fn(database)
}

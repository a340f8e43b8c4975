package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gloser-app/gloser/internal/config"
	"github.com/gloser-app/gloser/internal/database"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// openDatabase connects to the configured database and makes sure the schema
// exists.
func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.EnsureSchema(ctx, db, cfg.Database.Driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.EnsureSchema() > %w", err)
	}
	return db, nil
}

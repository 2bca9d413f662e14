package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/at-ishikawa/talkdict/schemas"
)

// NewMigrator returns a goose provider over the embedded migrations.
func NewMigrator(db *sqlx.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(schemas.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("fs.Sub(migrations) > %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectMySQL, db.DB, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose.NewProvider > %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sqlx.DB) ([]*goose.MigrationResult, error) {
	provider, err := NewMigrator(db)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("provider.Up > %w", err)
	}
	for _, result := range results {
		slog.Default().Info("applied migration",
			"version", result.Source.Version,
			"path", result.Source.Path,
			"duration", result.Duration,
		)
	}
	return results, nil
}

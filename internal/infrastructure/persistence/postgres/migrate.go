package postgres

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Register pgx/v5 database driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies pending schema migrations against databaseURL.
func Migrate(databaseURL string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	// golang-migrate's pgx/v5 driver expects the pgx5:// scheme.
	url := databaseURL
	if rest, found := strings.CutPrefix(url, "postgres://"); found {
		url = "pgx5://" + rest
	} else if rest, found := strings.CutPrefix(url, "postgresql://"); found {
		url = "pgx5://" + rest
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		_ = source.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

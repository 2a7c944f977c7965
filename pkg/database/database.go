package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewPostgres opens the database and applies pending migrations. When no
// full URL is configured a local DSN is assembled from the host.
func NewPostgres(url, host string) (*sql.DB, error) {
	if url == "" {
		url = fmt.Sprintf("postgres://postgres:postgres@%s/postgres?sslmode=disable", host)
	}

	db := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(url)))
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}
	return db, nil
}

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "001_app_state",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS app_state (
					id integer PRIMARY KEY,
					snapshot jsonb NOT NULL,
					updated_at timestamptz NOT NULL DEFAULT now()
				)
			`},
			Down: []string{`DROP TABLE app_state`},
		},
	},
}

func applyMigrations(db *sql.DB) error {
	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("applied db migrations", "count", n)
	}
	return nil
}

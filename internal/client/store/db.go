// Package store opens the client-local SQLite database and applies its
// schema. It plays the role browser local storage plays for the web client.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophjournal/internal/client/migrations"
	"github.com/dmitrijs2005/gophjournal/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Store bundles the local database and the repositories built on it.
type Store struct {
	DB       *sql.DB
	Metadata metadata.Repository
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// RunMigrations applies every pending embedded migration.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// single writer per profile
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{DB: db, Metadata: metadata.NewSQLiteRepository(db)}, nil
}

// Package db provides PostgreSQL storage for the song-guessing backend.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors.
var (
	ErrNotFound = errors.New("not found")
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Open creates a new database connection pool and verifies connectivity.
func Open(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Pool returns the underlying connection pool for advanced operations.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Init creates the schema if it does not exist yet.
func (db *DB) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}

// Songs returns a SongRepository.
func (db *DB) Songs() *SongRepository {
	return &SongRepository{pool: db.pool}
}

// Players returns a PlayerRepository.
func (db *DB) Players() *PlayerRepository {
	return &PlayerRepository{pool: db.pool}
}

// schema holds the table definitions. Level-id sets on players are stored
// comma-joined in TEXT columns; the split/join never leaves this package.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		username              TEXT PRIMARY KEY,
		email                 TEXT UNIQUE NOT NULL,
		password_hash         TEXT NOT NULL,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		is_active             BOOLEAN NOT NULL DEFAULT TRUE,
		total_score           INTEGER NOT NULL DEFAULT 0,
		games_played          INTEGER NOT NULL DEFAULT 0,
		completed_levels      TEXT NOT NULL DEFAULT '',
		played_levels         TEXT NOT NULL DEFAULT '',
		last_daily_completed  TEXT,
		spotify_client_id     TEXT,
		spotify_client_secret TEXT,
		spotify_access_token  TEXT,
		spotify_refresh_token TEXT,
		spotify_token_expiry  TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS local_songs (
		id        INTEGER PRIMARY KEY,
		title     TEXT NOT NULL,
		artists   TEXT NOT NULL,
		album     TEXT NOT NULL,
		year      INTEGER,
		genre     TEXT,
		audio     TEXT NOT NULL,
		image_url TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS spotify_songs (
		spotify_id TEXT PRIMARY KEY,
		title      TEXT,
		artists    TEXT,
		album      TEXT,
		year       INTEGER,
		genre      TEXT,
		audio      TEXT,
		image_url  TEXT,
		level_id   INTEGER NOT NULL
	)`,
}

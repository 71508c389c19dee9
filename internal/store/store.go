package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store persists registrations, guild settings, shared api tokens and
// the last seen live game per summoner. All access goes through the
// scoped accessors, callers never touch the schema directly
type Store struct {
	db *sql.DB

	// Registration writes race when two register commands arrive for
	// the same member at once; a single writer lock is enough here
	mu sync.Mutex
}

func NewStore(path string) (*Store, error) {

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	return store, nil
}

func (store *Store) Close() error {
	return store.db.Close()
}

func (store *Store) migrate() error {

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS registrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id VARCHAR(20) NOT NULL,
			user_id VARCHAR(20) NOT NULL,
			summoner_name VARCHAR(50) NOT NULL,
			region VARCHAR(10) NOT NULL,
			puuid VARCHAR(100) NOT NULL,
			account_id VARCHAR(100) NOT NULL,
			summoner_id VARCHAR(100) NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(guild_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS guild_settings (
			guild_id VARCHAR(20) PRIMARY KEY,
			default_region VARCHAR(10) NOT NULL DEFAULT 'na',
			announce_channel_id VARCHAR(20) NOT NULL DEFAULT '',
			polling_enabled INTEGER NOT NULL DEFAULT 0,
			poll_interval_seconds INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS shared_tokens (
			service VARCHAR(30) PRIMARY KEY,
			token VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS live_games (
			guild_id VARCHAR(20) NOT NULL,
			summoner_id VARCHAR(100) NOT NULL,
			region VARCHAR(10) NOT NULL,
			game_id BIGINT NOT NULL,
			started_at TIMESTAMP,
			PRIMARY KEY(guild_id, summoner_id, region)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_guild ON registrations(guild_id)`,
	}

	for _, migration := range migrations {
		if _, err := store.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

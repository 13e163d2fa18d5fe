package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Bukisoo/d3-force-tree-app/internal/log"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDatabase is the shared connection behind the sqlite backends.
type SQLiteDatabase struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLite opens (creating if needed) the database file at path and
// initializes its schema.
func OpenSQLite(ctx context.Context, path string, logger *log.Logger) (*SQLiteDatabase, error) {
	logger.Info(ctx, "Opening SQLite database", log.Fields{"dbPath": filepath.Base(path)})

	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error(ctx, "Failed to create database directory", log.Fields{"error": err, "directory": dbDir})
		return nil, fmt.Errorf("failed to create database directory '%s': %w", dbDir, err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		logger.Error(ctx, "Failed to open SQLite database", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// One connection keeps pragmas and in-memory databases consistent.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA synchronous = NORMAL", "PRAGMA cache_size = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			logger.Error(ctx, "Failed to set SQLite pragma", log.Fields{"error": err, "pragma": pragma})
			return nil, fmt.Errorf("failed to set %q: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		logger.Error(ctx, "Failed to verify database connection", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to verify database connection: %w", err)
	}

	s := &SQLiteDatabase{db: db, logger: logger}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info(ctx, "SQLite database opened successfully", nil)
	return s, nil
}

func (s *SQLiteDatabase) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS accounts (
			username TEXT PRIMARY KEY,
			password_hash BLOB NOT NULL,
			created DATETIME NOT NULL
		);
	`)
	if err != nil {
		s.logger.Error(ctx, "Failed to create tables", log.Fields{"error": err})
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction, committing when fn succeeds.
func (s *SQLiteDatabase) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "Failed to begin transaction", log.Fields{"error": err})
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "Failed to commit transaction", log.Fields{"error": err})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the connection.
func (s *SQLiteDatabase) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error(context.Background(), "Failed to close SQLite database", log.Fields{"error": err})
		return fmt.Errorf("failed to close SQLite database: %w", err)
	}
	return nil
}

// Package db opens SQLite databases with the pragmas and pool shape the rest
// of the app expects: WAL journaling, a single serialized writer, and a
// wider read-only pool.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"

	_ "modernc.org/sqlite"
)

// DB bundles the read and write pools for one database file.
type DB struct {
	Read  *sql.DB
	Write *sql.DB
}

func connString(file string, readonly bool) string {
	params := make(url.Values)
	params.Add("_journal_mode", "WAL")
	params.Add("_busy_timeout", "5000")
	params.Add("_synchronous", "NORMAL")
	params.Add("_foreign_keys", "true")

	if readonly {
		params.Add("mode", "ro")
	} else {
		params.Add("_txlock", "immediate")
		params.Add("mode", "rwc")
	}

	return "file:" + file + "?" + params.Encode()
}

func openPool(file string, readonly bool) (*sql.DB, error) {
	pool, err := sql.Open("sqlite", connString(file, readonly))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := pool.Exec("PRAGMA temp_store=memory;"); err != nil {
		pool.Close()
		return nil, fmt.Errorf("set PRAGMA temp_store: %w", err)
	}

	if readonly {
		conns := max(4, runtime.NumCPU())
		pool.SetMaxOpenConns(conns)
		pool.SetMaxIdleConns(conns)
	} else {
		// One writer connection serializes writes and avoids SQLITE_BUSY
		// from competing lock upgrades.
		pool.SetMaxOpenConns(1)
		pool.SetMaxIdleConns(1)
	}

	return pool, nil
}

// Open creates the database file (and its directory) if needed and returns
// the pool pair.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	write, err := openPool(path, false)
	if err != nil {
		return nil, err
	}

	read, err := openPool(path, true)
	if err != nil {
		write.Close()
		return nil, err
	}

	return &DB{Read: read, Write: write}, nil
}

// WithTx runs fn inside an immediate write transaction.
func (d *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.Write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	var firstErr error
	for _, pool := range []*sql.DB{d.Read, d.Write} {
		if pool == nil {
			continue
		}
		if err := pool.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

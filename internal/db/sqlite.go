package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// AUTOINCREMENT keeps sqlite from handing out the id of a deleted row again.
const sqliteSchema = `CREATE TABLE IF NOT EXISTS task (
	TaskID INTEGER PRIMARY KEY AUTOINCREMENT,
	Task TEXT NOT NULL
)`

// OpenSQLite opens an embedded database file with at most maxConns open
// connections, verifies it, and creates the task table.
func OpenSQLite(ctx context.Context, path string, maxConns int) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if maxConns > 0 {
		conn.SetMaxOpenConns(maxConns)
		conn.SetMaxIdleConns(maxConns)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init task schema: %w", err)
	}
	return conn, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

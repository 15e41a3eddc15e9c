package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogurasousui/employee-directory/internal/platform/logger"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

var pragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA synchronous=NORMAL;",
	"PRAGMA busy_timeout=5000;",
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		department TEXT NOT NULL CHECK (department IN ('Engineering','Medical','Marketing','Sales','HR','Finance','Operations')),
		position TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS employees_created_at_idx ON employees (created_at, id);`,
}

// Open は SQLite データベースを開き、スキーマを用意します。
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("sqlite: create dirs: %w", err)
		}
	}

	// modernc.org/sqlite のドライバ名は "sqlite" です。
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// 書き込みは常に 1 本。コンテキストのトランザクションはこの接続を再利用する。
	db.SetMaxOpenConns(1)

	for _, stmt := range append(append([]string{}, pragmas...), schema...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: init: %w", err)
		}
	}

	logger.Info(ctx, "opened sqlite database %s", path)
	return db, nil
}

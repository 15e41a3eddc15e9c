package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesSchema(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "directory.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close()

	var name string
	if err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'employees'`).Scan(&name); err != nil {
		t.Fatalf("employees table missing: %v", err)
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close()

	tm := NewTransactionManager(db)
	boom := errors.New("boom")

	err = tm.WithinReadWrite(ctx, func(txCtx context.Context) error {
		exec := QueryerFromContext(txCtx, db)
		if _, err := exec.ExecContext(txCtx, `INSERT INTO employees VALUES ('1','Ann','a@b.co','5550001111','HR','Rep','t','t')`); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		// ネストした呼び出しは外側のトランザクションを使う
		return tm.WithinReadOnly(txCtx, func(context.Context) error { return boom })
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, found %d rows", count)
	}
}

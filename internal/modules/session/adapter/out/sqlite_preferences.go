package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	sessionout "audiomark/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

const (
	kindString = "string"
	kindInt    = "int"
)

type SQLitePreferences struct {
	db *sql.DB
}

func NewSQLitePreferences(dbPath string) (*SQLitePreferences, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	prefs := &SQLitePreferences{db: db}
	if err := prefs.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return prefs, nil
}

func (p *SQLitePreferences) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS preferences (
  key TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  value TEXT NOT NULL
);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create preferences table: %w", err)
	}
	return nil
}

func (p *SQLitePreferences) Close() error {
	return p.db.Close()
}

func (p *SQLitePreferences) lookup(ctx context.Context, key string) (string, string, bool, error) {
	var kind, value string
	err := p.db.QueryRowContext(ctx, `SELECT kind, value FROM preferences WHERE key = ?`, key).Scan(&kind, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("read preference %s: %w", key, err)
	}
	return kind, value, true, nil
}

func (p *SQLitePreferences) GetString(ctx context.Context, key string) (string, bool, error) {
	_, value, ok, err := p.lookup(ctx, key)
	return value, ok, err
}

func (p *SQLitePreferences) GetInt(ctx context.Context, key string) (int, bool, error) {
	kind, value, ok, err := p.lookup(ctx, key)
	if err != nil || !ok {
		return 0, ok, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("preference %s holds %s %q: %w", key, kind, value, err)
	}
	return n, true, nil
}

func (p *SQLitePreferences) Edit() sessionout.Editor {
	return &sqliteEditor{db: p.db}
}

type editOp struct {
	key    string
	kind   string
	value  string
	remove bool
}

type sqliteEditor struct {
	db  *sql.DB
	ops []editOp
}

func (e *sqliteEditor) PutString(key, value string) sessionout.Editor {
	e.ops = append(e.ops, editOp{key: key, kind: kindString, value: value})
	return e
}

func (e *sqliteEditor) PutInt(key string, value int) sessionout.Editor {
	e.ops = append(e.ops, editOp{key: key, kind: kindInt, value: strconv.Itoa(value)})
	return e
}

func (e *sqliteEditor) Remove(key string) sessionout.Editor {
	e.ops = append(e.ops, editOp{key: key, remove: true})
	return e
}

// Commit applies the queued operations in order inside one transaction.
func (e *sqliteEditor) Commit(ctx context.Context) error {
	if len(e.ops) == 0 {
		return nil
	}
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin preferences tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	const upsert = `
INSERT INTO preferences (key, kind, value) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET kind=excluded.kind, value=excluded.value;
`
	for _, op := range e.ops {
		if op.remove {
			if _, err := tx.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, op.key); err != nil {
				return fmt.Errorf("remove preference %s: %w", op.key, err)
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, upsert, op.key, op.kind, op.value); err != nil {
			return fmt.Errorf("put preference %s: %w", op.key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit preferences: %w", err)
	}
	e.ops = nil
	return nil
}

package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"audiomark/internal/modules/share/domain"
	shareout "audiomark/internal/modules/share/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteExportLog struct {
	db *sql.DB
}

func NewSQLiteExportLog(dbPath string) (shareout.ExportLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	log := &SQLiteExportLog{db: db}
	if err := log.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return log, nil
}

func (s *SQLiteExportLog) Close() error {
	return s.db.Close()
}

func (s *SQLiteExportLog) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS exports (
  id TEXT PRIMARY KEY,
  document_ref TEXT NOT NULL,
  subject TEXT NOT NULL,
  count INTEGER NOT NULL,
  route TEXT NOT NULL,
  target TEXT NOT NULL,
  exported_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS exports_exported_at ON exports(exported_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create exports table: %w", err)
	}
	return nil
}

func (s *SQLiteExportLog) Append(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO exports (id, document_ref, subject, count, route, target, exported_at)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.DocumentRef,
		record.Subject,
		record.Count,
		string(record.Route),
		record.Target,
		record.ExportedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	return nil
}

func (s *SQLiteExportLog) Recent(ctx context.Context, limit int) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, document_ref, subject, count, route, target, exported_at
FROM exports ORDER BY exported_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()
	out := []domain.Record{}
	for rows.Next() {
		var (
			r          domain.Record
			route, raw string
		)
		if err := rows.Scan(&r.ID, &r.DocumentRef, &r.Subject, &r.Count, &route, &r.Target, &raw); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		r.Route = domain.Route(route)
		r.ExportedAt, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("parse exported_at: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

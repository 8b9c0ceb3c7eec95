package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/errors"
)

const schemaVersion = 1

// SQLite stores items in a local database.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) the database at path and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "open database %s", path)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLite{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenSQLiteMemory opens an in-memory database for testing.
func OpenSQLiteMemory() (*SQLite, error) {
	return OpenSQLite(":memory:")
}

func (s *SQLite) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS items (
		seq          INTEGER PRIMARY KEY AUTOINCREMENT,
		id           INTEGER NOT NULL,
		type         TEXT NOT NULL,
		title        TEXT NOT NULL DEFAULT '',
		state        TEXT NOT NULL DEFAULT '',
		start_date   TEXT NOT NULL DEFAULT '',
		target_date  TEXT NOT NULL DEFAULT '',
		parent_id    TEXT NOT NULL DEFAULT '',
		predecessor  TEXT NOT NULL DEFAULT '',
		area         TEXT NOT NULL DEFAULT '',
		iteration    TEXT NOT NULL DEFAULT '',
		assigned_to  TEXT NOT NULL DEFAULT '',
		priority     TEXT NOT NULL DEFAULT '',
		tags         TEXT NOT NULL DEFAULT '',
		UNIQUE(type, id)
	);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

// Name returns the database path.
func (s *SQLite) Name() string { return "sqlite:" + s.path }

// Load returns every item in insertion order.
func (s *SQLite) Load(ctx context.Context) ([]item.Item, error) {
	recs, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return item.Items(recs), nil
}

// Records returns every stored record in insertion order.
func (s *SQLite) Records(ctx context.Context) ([]item.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, state, start_date, target_date, parent_id,
		       predecessor, area, iteration, assigned_to, priority, tags
		FROM items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var recs []item.Record
	for rows.Next() {
		var r item.Record
		var tags string
		if err := rows.Scan(&r.ID, &r.Type, &r.Title, &r.State, &r.StartDate, &r.TargetDate,
			&r.ParentID, &r.Predecessor, &r.Area, &r.Iteration, &r.AssignedTo, &r.Priority, &tags); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if tags != "" {
			r.Tags = strings.Split(tags, ";")
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Replace swaps the stored snapshot for recs in one transaction. Records
// are normalized through item conversion first, so what is stored is what
// the engine would see.
func (s *SQLite) Replace(ctx context.Context, recs []item.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return 0, fmt.Errorf("clear items: %w", err)
	}
	n, err := insert(ctx, tx, recs)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// Upsert inserts recs, replacing stored items with the same type and id.
func (s *SQLite) Upsert(ctx context.Context, recs []item.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	n, err := insert(ctx, tx, recs)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func insert(ctx context.Context, tx *sql.Tx, recs []item.Record) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, type, title, state, start_date, target_date, parent_id,
		                   predecessor, area, iteration, assigned_to, priority, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(type, id) DO UPDATE SET
			title = excluded.title, state = excluded.state,
			start_date = excluded.start_date, target_date = excluded.target_date,
			parent_id = excluded.parent_id, predecessor = excluded.predecessor,
			area = excluded.area, iteration = excluded.iteration,
			assigned_to = excluded.assigned_to, priority = excluded.priority,
			tags = excluded.tags`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		r := item.FromItem(rec.Item())
		if _, err := stmt.ExecContext(ctx, r.ID, r.Type, r.Title, r.State, r.StartDate, r.TargetDate,
			r.ParentID, r.Predecessor, r.Area, r.Iteration, r.AssignedTo, r.Priority,
			strings.Join(r.Tags, ";")); err != nil {
			return 0, fmt.Errorf("insert item %d: %w", r.ID, err)
		}
	}
	return len(recs), nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

var _ Source = (*SQLite)(nil)

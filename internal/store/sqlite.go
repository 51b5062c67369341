package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/bidsight/bidsight/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS reports (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	detail     TEXT,
	unlocked   INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_reports_kind ON reports(kind);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateReport(ctx context.Context, rep model.Report) error {
	if rep.ID == "" {
		return eris.New("sqlite: report id is required")
	}
	payload, err := json.Marshal(rep)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal report")
	}

	createdAt := rep.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, kind, payload, unlocked, created_at) VALUES (?, ?, ?, 0, ?)`,
		rep.ID, string(rep.Kind), string(payload), createdAt,
	)
	return eris.Wrapf(err, "sqlite: insert report %s", rep.ID)
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT payload, detail, unlocked FROM reports WHERE id = ?`, id)

	var payload string
	var detail sql.NullString
	var unlocked bool
	if err := row.Scan(&payload, &detail, &unlocked); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get report %s", id)
	}

	return scanEntry(payload, detail.String, detail.Valid, unlocked, id)
}

func (s *SQLiteStore) ListReports(ctx context.Context, filter Filter) ([]Entry, error) {
	query := `SELECT payload, detail, unlocked FROM reports`
	args := []any{}
	if filter.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(filter.Kind))
	}
	// id tiebreaker keeps offset paging stable when timestamps collide.
	query += ` ORDER BY created_at DESC, id`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list reports")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var payload string
		var detail sql.NullString
		var unlocked bool
		if err := rows.Scan(&payload, &detail, &unlocked); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan report row")
		}
		entry, err := scanEntry(payload, detail.String, detail.Valid, unlocked, "")
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: iterate reports")
}

func (s *SQLiteStore) AttachDetail(ctx context.Context, id string, detail model.Detail) error {
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal detail")
	}

	// The WHERE clause enforces append-only: an existing detail row is
	// never overwritten.
	res, err := s.db.ExecContext(ctx,
		`UPDATE reports SET detail = ? WHERE id = ? AND detail IS NULL`,
		string(detailJSON), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: attach detail %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		if _, err := s.GetReport(ctx, id); err != nil {
			return err
		}
		return ErrDetailExists
	}
	return nil
}

func (s *SQLiteStore) SetUnlocked(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reports SET unlocked = 1 WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: unlock report %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEntry(payload, detail string, hasDetail, unlocked bool, id string) (*Entry, error) {
	var entry Entry
	if err := json.Unmarshal([]byte(payload), &entry.Report); err != nil {
		return nil, eris.Wrapf(err, "store: unmarshal report %s", id)
	}
	if hasDetail && detail != "" {
		var d model.Detail
		if err := json.Unmarshal([]byte(detail), &d); err != nil {
			return nil, eris.Wrapf(err, "store: unmarshal detail %s", id)
		}
		entry.Detail = &d
	}
	entry.Unlocked = unlocked
	return &entry, nil
}

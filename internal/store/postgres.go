package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/bidsight/bidsight/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects a pool to the given URL.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool; used by tests.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS reports (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	payload    JSONB NOT NULL,
	detail     JSONB,
	unlocked   BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_reports_kind ON reports(kind);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateReport(ctx context.Context, rep model.Report) error {
	if rep.ID == "" {
		return eris.New("postgres: report id is required")
	}
	payload, err := json.Marshal(rep)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal report")
	}

	createdAt := rep.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO reports (id, kind, payload, unlocked, created_at) VALUES ($1, $2, $3, false, $4)`,
		rep.ID, string(rep.Kind), payload, createdAt,
	)
	return eris.Wrapf(err, "postgres: insert report %s", rep.ID)
}

func (s *PostgresStore) GetReport(ctx context.Context, id string) (*Entry, error) {
	var payload []byte
	var detail []byte
	var unlocked bool
	err := s.pool.QueryRow(ctx,
		`SELECT payload, detail, unlocked FROM reports WHERE id = $1`, id,
	).Scan(&payload, &detail, &unlocked)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get report %s", id)
	}
	return scanEntry(string(payload), string(detail), len(detail) > 0, unlocked, id)
}

func (s *PostgresStore) ListReports(ctx context.Context, filter Filter) ([]Entry, error) {
	query := `SELECT payload, detail, unlocked FROM reports`
	args := []any{}
	if filter.Kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, string(filter.Kind))
	}
	// id tiebreaker keeps offset paging stable when timestamps collide.
	query += ` ORDER BY created_at DESC, id`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(args) == 0 {
		query += ` LIMIT $1 OFFSET $2`
	} else {
		query += ` LIMIT $2 OFFSET $3`
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list reports")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var payload, detail []byte
		var unlocked bool
		if err := rows.Scan(&payload, &detail, &unlocked); err != nil {
			return nil, eris.Wrap(err, "postgres: scan report row")
		}
		entry, err := scanEntry(string(payload), string(detail), len(detail) > 0, unlocked, "")
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: iterate reports")
}

func (s *PostgresStore) AttachDetail(ctx context.Context, id string, detail model.Detail) error {
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal detail")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE reports SET detail = $1 WHERE id = $2 AND detail IS NULL`,
		detailJSON, id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: attach detail %s", id)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetReport(ctx, id); err != nil {
			return err
		}
		return ErrDetailExists
	}
	return nil
}

func (s *PostgresStore) SetUnlocked(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE reports SET unlocked = true WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: unlock report %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

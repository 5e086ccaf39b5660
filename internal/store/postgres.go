package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/pitchside/transfer-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs. pgxmock's pool
// interface satisfies it, which keeps the store unit-testable without a
// live database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
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

const postgresMigration = `
CREATE TABLE IF NOT EXISTS player_tables (
	player     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	columns    JSONB NOT NULL,
	rows       JSONB NOT NULL,
	scraped_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (player, kind)
);

CREATE TABLE IF NOT EXISTS scrape_runs (
	id              TEXT PRIMARY KEY,
	source          TEXT NOT NULL,
	status          TEXT NOT NULL DEFAULT 'running',
	players_scraped INTEGER NOT NULL DEFAULT 0,
	players_failed  INTEGER NOT NULL DEFAULT 0,
	error           TEXT,
	started_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at     TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_player_tables_player ON player_tables(player);
CREATE INDEX IF NOT EXISTS idx_scrape_runs_status ON scrape_runs(status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveTable(ctx context.Context, table *model.StatTable) error {
	columnsJSON, rowsJSON, err := encodeTable(table)
	if err != nil {
		return err
	}

	scrapedAt := table.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO player_tables (player, kind, columns, rows, scraped_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (player, kind) DO UPDATE SET
		   columns = EXCLUDED.columns,
		   rows = EXCLUDED.rows,
		   scraped_at = EXCLUDED.scraped_at`,
		table.Player, string(table.Kind), columnsJSON, rowsJSON, scrapedAt,
	)
	return eris.Wrapf(err, "postgres: save table %s/%s", table.Player, table.Kind)
}

func (s *PostgresStore) GetTable(ctx context.Context, player string, kind model.TableKind) (*model.StatTable, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT columns, rows, scraped_at FROM player_tables WHERE player = $1 AND kind = $2`,
		player, string(kind),
	)

	var columnsJSON, rowsJSON string
	var scrapedAt time.Time
	if err := row.Scan(&columnsJSON, &rowsJSON, &scrapedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrTableNotFound, "%s/%s", player, kind)
		}
		return nil, eris.Wrapf(err, "postgres: get table %s/%s", player, kind)
	}

	return decodeTable(player, kind, columnsJSON, rowsJSON, scrapedAt)
}

func (s *PostgresStore) ListPlayers(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT player FROM player_tables ORDER BY player`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list players")
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, eris.Wrap(err, "postgres: scan player")
		}
		players = append(players, p)
	}
	return players, eris.Wrap(rows.Err(), "postgres: list players")
}

func (s *PostgresStore) StartRun(ctx context.Context, source string) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scrape_runs (id, source, status, started_at) VALUES ($1, $2, $3, $4)`,
		id, source, string(RunStatusRunning), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: start run")
	}
	return id, nil
}

func (s *PostgresStore) FinishRun(ctx context.Context, runID string, scraped, failed int, errMsg string) error {
	status := RunStatusComplete
	if errMsg != "" {
		status = RunStatusFailed
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE scrape_runs SET status = $1, players_scraped = $2, players_failed = $3, error = $4, finished_at = $5 WHERE id = $6`,
		string(status), scraped, failed, errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: finish run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: run %s not found", runID)
	}
	return nil
}

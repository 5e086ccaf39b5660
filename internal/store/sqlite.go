package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pitchside/transfer-cli/internal/model"
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
CREATE TABLE IF NOT EXISTS player_tables (
	player     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	columns    TEXT NOT NULL,
	rows       TEXT NOT NULL,
	scraped_at DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (player, kind)
);

CREATE TABLE IF NOT EXISTS scrape_runs (
	id              TEXT PRIMARY KEY,
	source          TEXT NOT NULL,
	status          TEXT NOT NULL DEFAULT 'running',
	players_scraped INTEGER NOT NULL DEFAULT 0,
	players_failed  INTEGER NOT NULL DEFAULT 0,
	error           TEXT,
	started_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at     DATETIME
);

CREATE INDEX IF NOT EXISTS idx_player_tables_player ON player_tables(player);
CREATE INDEX IF NOT EXISTS idx_scrape_runs_status ON scrape_runs(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveTable(ctx context.Context, table *model.StatTable) error {
	columnsJSON, rowsJSON, err := encodeTable(table)
	if err != nil {
		return err
	}

	scrapedAt := table.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO player_tables (player, kind, columns, rows, scraped_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(player, kind) DO UPDATE SET
		   columns = excluded.columns,
		   rows = excluded.rows,
		   scraped_at = excluded.scraped_at`,
		table.Player, string(table.Kind), columnsJSON, rowsJSON, scrapedAt,
	)
	return eris.Wrapf(err, "sqlite: save table %s/%s", table.Player, table.Kind)
}

func (s *SQLiteStore) GetTable(ctx context.Context, player string, kind model.TableKind) (*model.StatTable, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT columns, rows, scraped_at FROM player_tables WHERE player = ? AND kind = ?`,
		player, string(kind),
	)

	var columnsJSON, rowsJSON string
	var scrapedAt time.Time
	if err := row.Scan(&columnsJSON, &rowsJSON, &scrapedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrTableNotFound, "%s/%s", player, kind)
		}
		return nil, eris.Wrapf(err, "sqlite: get table %s/%s", player, kind)
	}

	return decodeTable(player, kind, columnsJSON, rowsJSON, scrapedAt)
}

func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT player FROM player_tables ORDER BY player`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list players")
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan player")
		}
		players = append(players, p)
	}
	return players, eris.Wrap(rows.Err(), "sqlite: list players")
}

func (s *SQLiteStore) StartRun(ctx context.Context, source string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scrape_runs (id, source, status, started_at) VALUES (?, ?, ?, ?)`,
		id, source, string(RunStatusRunning), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: start run")
	}
	return id, nil
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, scraped, failed int, errMsg string) error {
	status := RunStatusComplete
	if errMsg != "" {
		status = RunStatusFailed
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE scrape_runs SET status = ?, players_scraped = ?, players_failed = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(status), scraped, failed, errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}

// encodeTable serializes a table's columns and rows to JSON for storage.
func encodeTable(table *model.StatTable) (columnsJSON, rowsJSON string, err error) {
	cols, err := json.Marshal(table.Columns)
	if err != nil {
		return "", "", eris.Wrap(err, "store: marshal columns")
	}
	rows, err := json.Marshal(table.Rows)
	if err != nil {
		return "", "", eris.Wrap(err, "store: marshal rows")
	}
	return string(cols), string(rows), nil
}

// decodeTable deserializes a stored table.
func decodeTable(player string, kind model.TableKind, columnsJSON, rowsJSON string, scrapedAt time.Time) (*model.StatTable, error) {
	table := &model.StatTable{
		Player:    player,
		Kind:      kind,
		ScrapedAt: scrapedAt,
	}
	if err := json.Unmarshal([]byte(columnsJSON), &table.Columns); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal columns")
	}
	if err := json.Unmarshal([]byte(rowsJSON), &table.Rows); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal rows")
	}
	return table, nil
}

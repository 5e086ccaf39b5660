package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/transfer-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_SaveTable_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT`).
		WithArgs("Fernando Torres", "standard", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveTable(context.Background(), &model.StatTable{
		Player:  "Fernando Torres",
		Kind:    model.TableStandard,
		Columns: []string{"season", "squad", "goals"},
		Rows: []model.StatRow{
			{Season: "2009-2010", Squad: "Liverpool", Cells: map[string]string{"goals": "18"}},
		},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetTable_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT columns, rows, scraped_at FROM player_tables`).
		WithArgs("Nobody", "standard").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetTable(context.Background(), "Nobody", model.TableStandard)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrTableNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetTable_RoundTrip(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	scrapedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT columns, rows, scraped_at FROM player_tables`).
		WithArgs("Fernando Torres", "standard").
		WillReturnRows(pgxmock.NewRows([]string{"columns", "rows", "scraped_at"}).
			AddRow(
				`["season","squad","goals"]`,
				`[{"season":"2009-2010","squad":"Liverpool","cells":{"goals":"18"}}]`,
				scrapedAt,
			))

	table, err := s.GetTable(context.Background(), "Fernando Torres", model.TableStandard)
	require.NoError(t, err)
	assert.Equal(t, []string{"season", "squad", "goals"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Liverpool", table.Rows[0].Squad)
	assert.Equal(t, "18", table.Rows[0].Cells["goals"])
	assert.Equal(t, scrapedAt, table.ScrapedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListPlayers(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT DISTINCT player FROM player_tables`).
		WillReturnRows(pgxmock.NewRows([]string{"player"}).
			AddRow("Andy Carroll").
			AddRow("Fernando Torres"))

	players, err := s.ListPlayers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Andy Carroll", "Fernando Torres"}, players)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_StartFinishRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO scrape_runs`).
		WithArgs(pgxmock.AnyArg(), "transfers.csv", "running", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE scrape_runs SET`).
		WithArgs("complete", 10, 2, "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	id, err := s.StartRun(context.Background(), "transfers.csv")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, s.FinishRun(context.Background(), id, 10, 2, ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FinishRun_Unknown(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE scrape_runs SET`).
		WithArgs("failed", 0, 1, "boom", pgxmock.AnyArg(), "missing-run").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.FinishRun(context.Background(), "missing-run", 0, 1, "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

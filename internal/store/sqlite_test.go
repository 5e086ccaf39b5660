package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/transfer-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_SaveGetTable(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	table := &model.StatTable{
		Player:  "Fernando Torres",
		Kind:    model.TableStandard,
		Columns: []string{"season", "squad", "goals"},
		Rows: []model.StatRow{
			{Season: "2010-2011", Squad: "Liverpool", Cells: map[string]string{"goals": "9"}},
			{Season: "2010-2011", Squad: "Chelsea", Cells: map[string]string{"goals": "1"}},
		},
		ScrapedAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveTable(ctx, table))

	got, err := s.GetTable(ctx, "Fernando Torres", model.TableStandard)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Chelsea", got.Rows[1].Squad)
	assert.Equal(t, "1", got.Rows[1].Cells["goals"])
}

func TestSQLiteStore_SaveTable_Overwrites(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first := &model.StatTable{
		Player:  "Andy Carroll",
		Kind:    model.TableStandard,
		Columns: []string{"season", "squad", "goals"},
		Rows:    []model.StatRow{{Season: "2010-2011", Squad: "Newcastle Utd", Cells: map[string]string{"goals": "11"}}},
	}
	require.NoError(t, s.SaveTable(ctx, first))

	second := *first
	second.Rows = append(second.Rows, model.StatRow{
		Season: "2010-2011", Squad: "Liverpool", Cells: map[string]string{"goals": "2"},
	})
	require.NoError(t, s.SaveTable(ctx, &second))

	got, err := s.GetTable(ctx, "Andy Carroll", model.TableStandard)
	require.NoError(t, err)
	assert.Len(t, got.Rows, 2)
}

func TestSQLiteStore_GetTable_NotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.GetTable(context.Background(), "Nobody", model.TableDefensive)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrTableNotFound))
}

func TestSQLiteStore_ListPlayers(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, player := range []string{"Fernando Torres", "Andy Carroll"} {
		for _, kind := range model.Kinds {
			require.NoError(t, s.SaveTable(ctx, &model.StatTable{
				Player:  player,
				Kind:    kind,
				Columns: []string{"season"},
				Rows:    []model.StatRow{{Season: "2010-2011"}},
			}))
		}
	}

	players, err := s.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Andy Carroll", "Fernando Torres"}, players)
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	id, err := s.StartRun(ctx, "transfers.csv")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, s.FinishRun(ctx, id, 42, 3, ""))

	err = s.FinishRun(ctx, "no-such-run", 0, 0, "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

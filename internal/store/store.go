// Package store persists scraped player statistics tables and scrape run
// bookkeeping, behind SQLite and Postgres backends.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pitchside/transfer-cli/internal/model"
)

// ErrTableNotFound is returned when no scraped table exists for a
// (player, kind) pair.
var ErrTableNotFound = eris.New("store: player table not found")

// RunStatus tracks scrape run lifecycle.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Store defines the persistence interface for scraped statistics.
type Store interface {
	// Player tables
	SaveTable(ctx context.Context, table *model.StatTable) error
	GetTable(ctx context.Context, player string, kind model.TableKind) (*model.StatTable, error)
	ListPlayers(ctx context.Context) ([]string, error)

	// Scrape runs
	StartRun(ctx context.Context, source string) (string, error)
	FinishRun(ctx context.Context, runID string, scraped, failed int, errMsg string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

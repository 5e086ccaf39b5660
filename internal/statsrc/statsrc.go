// Package statsrc abstracts where a player's season-by-season statistics
// come from: per-player CSV files written by the scraper, or the scrape
// store directly.
package statsrc

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pitchside/transfer-cli/internal/model"
)

// ErrPlayerNotFound is returned when a source holds no table of the
// requested kind for the player.
var ErrPlayerNotFound = eris.New("statsrc: player not found")

// Source yields a player's full season history for one table kind, in
// source order.
type Source interface {
	History(ctx context.Context, player string, kind model.TableKind) ([]model.StatRow, error)
}

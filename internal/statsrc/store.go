package statsrc

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pitchside/transfer-cli/internal/model"
	"github.com/pitchside/transfer-cli/internal/store"
)

// StoreSource reads player histories from the scrape store.
type StoreSource struct {
	store store.Store
}

// NewStoreSource creates a source over a scrape store.
func NewStoreSource(s store.Store) *StoreSource {
	return &StoreSource{store: s}
}

func (s *StoreSource) History(ctx context.Context, player string, kind model.TableKind) ([]model.StatRow, error) {
	table, err := s.store.GetTable(ctx, player, kind)
	if err != nil {
		if eris.Is(err, store.ErrTableNotFound) {
			return nil, eris.Wrapf(ErrPlayerNotFound, "%s (%s)", player, kind)
		}
		return nil, err
	}
	return table.Rows, nil
}

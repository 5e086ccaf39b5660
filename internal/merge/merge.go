// Package merge joins a transfer dataset with aggregated prior-season
// statistics. Every input transfer produces exactly one output row;
// transfers that cannot be resolved keep empty statistics fields and are
// explained in a companion unresolved report.
package merge

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pitchside/transfer-cli/internal/aggregate"
	"github.com/pitchside/transfer-cli/internal/model"
	"github.com/pitchside/transfer-cli/internal/season"
	"github.com/pitchside/transfer-cli/internal/statsrc"
)

// Merger resolves transfers against a statistics source.
type Merger struct {
	source         statsrc.Source
	classification *aggregate.Classification
	concurrency    int
}

// New creates a Merger. concurrency bounds parallel lookups; values below 1
// mean sequential.
func New(source statsrc.Source, classification *aggregate.Classification, concurrency int) *Merger {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Merger{
		source:         source,
		classification: classification,
		concurrency:    concurrency,
	}
}

// Run merges every transfer in the set. Output rows keep input order and
// the row count always equals the input count; per-row failures become
// UnresolvedEntry records instead of aborting the batch. Only source
// errors other than a missing player abort the run.
func (m *Merger) Run(ctx context.Context, set *model.TransferSet) ([]model.MergedRow, []model.UnresolvedEntry, error) {
	rows := make([]model.MergedRow, len(set.Transfers))
	unresolved := make([]*model.UnresolvedEntry, len(set.Transfers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for i, tr := range set.Transfers {
		i, tr := i, tr
		g.Go(func() error {
			row, entry, err := m.resolve(ctx, tr)
			if err != nil {
				return err
			}
			rows[i] = row
			unresolved[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var report []model.UnresolvedEntry
	for _, entry := range unresolved {
		if entry != nil {
			report = append(report, *entry)
		}
	}
	zap.S().Infow("merge complete",
		"transfers", len(set.Transfers), "resolved", len(set.Transfers)-len(report), "unresolved", len(report))
	return rows, report, nil
}

// resolve handles one transfer. The standard table decides resolution; the
// defensive table is best-effort extra columns.
func (m *Merger) resolve(ctx context.Context, tr model.Transfer) (model.MergedRow, *model.UnresolvedEntry, error) {
	row := model.MergedRow{Transfer: tr}

	target, err := season.ResolvePrior(tr.Season)
	if err != nil {
		return row, &model.UnresolvedEntry{
			Player:         tr.Player,
			TransferSeason: tr.Season,
			Reason:         model.ReasonMalformedSeason,
		}, nil
	}

	entry := &model.UnresolvedEntry{
		Player:         tr.Player,
		TransferSeason: tr.Season,
		TargetSeason:   target,
	}

	history, err := m.source.History(ctx, tr.Player, model.TableStandard)
	if err != nil {
		if eris.Is(err, statsrc.ErrPlayerNotFound) {
			entry.Reason = model.ReasonPlayerNotFound
			return row, entry, nil
		}
		return row, nil, eris.Wrapf(err, "merge: %s", tr.Player)
	}

	standard, err := aggregate.Combine(history, m.classification.Schema(model.TableStandard), target)
	if err != nil {
		if eris.Is(err, aggregate.ErrSeasonNotFound) {
			entry.Reason = model.ReasonSeasonNotFound
			return row, entry, nil
		}
		return row, nil, eris.Wrapf(err, "merge: %s", tr.Player)
	}

	standard.Kind = model.TableStandard
	row.StatsSeason = target
	row.Standard = standard
	row.Defensive = m.defensive(ctx, tr.Player, target)
	return row, nil, nil
}

// defensive fetches and combines the defensive table. Any failure just
// leaves the defensive columns empty; resolution was already decided by
// the standard table.
func (m *Merger) defensive(ctx context.Context, player, target string) *model.CombinedStats {
	history, err := m.source.History(ctx, player, model.TableDefensive)
	if err != nil {
		if !eris.Is(err, statsrc.ErrPlayerNotFound) {
			zap.S().Debugw("defensive history unavailable", "player", player, "error", err)
		}
		return nil
	}
	combined, err := aggregate.Combine(history, m.classification.Schema(model.TableDefensive), target)
	if err != nil {
		return nil
	}
	combined.Kind = model.TableDefensive
	return combined
}

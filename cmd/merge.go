package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchside/transfer-cli/internal/aggregate"
	"github.com/pitchside/transfer-cli/internal/merge"
	"github.com/pitchside/transfer-cli/internal/statsrc"
	"github.com/pitchside/transfer-cli/internal/transfers"
)

var (
	mergeInput      string
	mergeStatsDir   string
	mergeOutput     string
	mergeUnresolved string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge a transfer dataset with prior-season statistics",
	Long:  "For each transfer, resolves the season before the transfer, aggregates the player's statistics for that season across club spells, and writes one output row per input transfer. Transfers that cannot be resolved keep empty statistics columns and are listed in the unresolved report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		set, err := transfers.Parse(mergeInput)
		if err != nil {
			return err
		}
		zap.L().Info("transfer dataset loaded",
			zap.String("file", mergeInput),
			zap.Int("rows", len(set.Transfers)),
		)

		classification := aggregate.Default()
		if cfg.Merge.ColumnsFile != "" {
			classification, err = aggregate.LoadFile(cfg.Merge.ColumnsFile)
			if err != nil {
				return err
			}
		}

		var source statsrc.Source
		if mergeStatsDir != "" {
			source = statsrc.NewCSVSource(mergeStatsDir)
		} else {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			source = statsrc.NewStoreSource(st)
		}

		m := merge.New(source, classification, cfg.Merge.Concurrency)
		rows, unresolved, err := m.Run(ctx, set)
		if err != nil {
			return err
		}

		w := merge.NewWriter(set.Header, classification)
		if err := w.WriteMerged(mergeOutput, rows); err != nil {
			return err
		}
		if err := merge.WriteUnresolved(mergeUnresolved, unresolved); err != nil {
			return err
		}

		zap.L().Info("merge written",
			zap.String("merged", mergeOutput),
			zap.String("unresolved", mergeUnresolved),
			zap.Int("rows", len(rows)),
			zap.Int("unresolved_rows", len(unresolved)),
		)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeInput, "input", "", "transfer dataset (CSV or XLSX, required)")
	mergeCmd.Flags().StringVar(&mergeStatsDir, "stats-dir", "", "directory of per-player stat CSVs; defaults to reading the store")
	mergeCmd.Flags().StringVar(&mergeOutput, "output", "transfers_with_stats.csv", "merged output CSV")
	mergeCmd.Flags().StringVar(&mergeUnresolved, "unresolved", "unresolved_transfers.csv", "unresolved report CSV")
	_ = mergeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(mergeCmd)
}

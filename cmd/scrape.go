package main

import (
	"context"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchside/transfer-cli/internal/discover"
	"github.com/pitchside/transfer-cli/internal/fetch"
	"github.com/pitchside/transfer-cli/internal/scraper"
)

var (
	scrapeBatchFile string
	scrapeNoCSV     bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape statistics tables for every player in a batch file",
	Long:  "Fetches each player page in a batch file, extracts the standard and defensive tables, persists them to the store, and writes per-player CSVs. Players already in the store are skipped, so an interrupted run just reruns.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		players, err := discover.ReadBatch(scrapeBatchFile)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runID, err := st.StartRun(ctx, scrapeBatchFile)
		if err != nil {
			return err
		}

		client := fetch.New(cfg.Scrape)
		sc := scraper.New(client, cfg.Scrape.StandardTableID, cfg.Scrape.DefensiveTableID)

		names := make([]string, 0, len(players))
		for name := range players {
			names = append(names, name)
		}
		sort.Strings(names)

		scraped, failed := 0, 0
		for i, name := range names {
			url := players[name]
			zap.L().Info("scraping player",
				zap.String("player", name),
				zap.Int("progress", i+1),
				zap.Int("total", len(names)),
			)

			page, err := sc.ScrapePlayer(ctx, url)
			if err != nil {
				if ctx.Err() != nil {
					break
				}
				zap.L().Warn("scrape failed", zap.String("player", name), zap.Error(err))
				failed++
				continue
			}

			ok := true
			for _, table := range page.Tables {
				if err := st.SaveTable(ctx, table); err != nil {
					zap.L().Error("save failed", zap.String("player", name), zap.Error(err))
					ok = false
					break
				}
				if !scrapeNoCSV {
					if _, err := scraper.SaveCSV(cfg.Scrape.OutputDir, table); err != nil {
						zap.L().Warn("csv write failed", zap.String("player", name), zap.Error(err))
					}
				}
			}
			if ok {
				scraped++
			} else {
				failed++
			}
		}

		errMsg := ""
		if err := ctx.Err(); err != nil {
			errMsg = err.Error()
		}
		// Bookkeeping must land even when the run context was canceled.
		if err := st.FinishRun(context.Background(), runID, scraped, failed, errMsg); err != nil {
			zap.L().Warn("finish run failed", zap.Error(err))
		}

		zap.L().Info("scrape run complete",
			zap.String("run_id", runID),
			zap.Int("scraped", scraped),
			zap.Int("failed", failed),
		)
		return ctx.Err()
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeBatchFile, "batch", "", "batch file of player URLs (required)")
	scrapeCmd.Flags().BoolVar(&scrapeNoCSV, "no-csv", false, "skip writing per-player CSV files")
	_ = scrapeCmd.MarkFlagRequired("batch")
	rootCmd.AddCommand(scrapeCmd)
}

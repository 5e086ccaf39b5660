package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchside/transfer-cli/internal/discover"
	"github.com/pitchside/transfer-cli/internal/fetch"
	"github.com/pitchside/transfer-cli/internal/transfers"
)

var (
	discoverInput  string
	discoverOutput string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find player page URLs for every player in a transfer dataset",
	Long:  "Reads the transfer dataset, scrapes only the alphabetical index pages its names require, and writes the matched name-to-URL map plus a list of unmatched names.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		set, err := transfers.Parse(discoverInput)
		if err != nil {
			return err
		}
		players := transfers.UniquePlayers(set)
		prefixes := discover.RequiredPrefixes(players)
		zap.L().Info("discovery scope computed",
			zap.Int("players", len(players)),
			zap.Int("index_pages", len(prefixes)),
		)

		client := fetch.New(cfg.Scrape)
		finder := discover.NewFinder(client, cfg.Scrape.BaseURL, cfg.Discover.IndexURL,
			cfg.Discover.CheckpointFile, cfg.Discover.CheckpointEvery)

		index, err := finder.ScrapeIndex(ctx, prefixes)
		if err != nil {
			return err
		}

		matched, unmatched := discover.MatchPlayers(players, index, cfg.Discover.MatchThreshold)
		zap.L().Info("matching complete",
			zap.Int("matched", len(matched)),
			zap.Int("unmatched", len(unmatched)),
		)

		if err := os.MkdirAll(discoverOutput, 0o755); err != nil {
			return eris.Wrap(err, "create output dir")
		}

		urlsPath := filepath.Join(discoverOutput, "player_urls.json")
		data, err := json.MarshalIndent(matched, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal player urls")
		}
		if err := os.WriteFile(urlsPath, data, 0o644); err != nil {
			return eris.Wrap(err, "write player urls")
		}

		unmatchedPath := filepath.Join(discoverOutput, "unmatched_players.txt")
		var buf []byte
		for _, name := range unmatched {
			buf = append(buf, name...)
			buf = append(buf, '\n')
		}
		if err := os.WriteFile(unmatchedPath, buf, 0o644); err != nil {
			return eris.Wrap(err, "write unmatched players")
		}

		zap.L().Info("discovery complete",
			zap.String("urls", urlsPath),
			zap.String("unmatched", unmatchedPath),
		)
		return nil
	},
}

func init() {
	discoverCmd.Flags().StringVar(&discoverInput, "input", "", "transfer dataset (CSV or XLSX, required)")
	discoverCmd.Flags().StringVar(&discoverOutput, "output", ".", "directory for player_urls.json and unmatched_players.txt")
	_ = discoverCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(discoverCmd)
}

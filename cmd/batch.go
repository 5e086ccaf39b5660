package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchside/transfer-cli/internal/discover"
)

var (
	batchURLsFile string
	batchParts    int
	batchOutDir   string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Split a player URL map into batch files for parallel scraping",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(batchURLsFile)
		if err != nil {
			return eris.Wrapf(err, "read %s", batchURLsFile)
		}
		players := make(map[string]string)
		if err := json.Unmarshal(data, &players); err != nil {
			return eris.Wrapf(err, "parse %s", batchURLsFile)
		}

		batches := discover.SplitBatches(players, batchParts)
		paths, err := discover.WriteBatches(batchOutDir, batches)
		if err != nil {
			return err
		}

		for i, path := range paths {
			zap.L().Info("batch written",
				zap.Int("batch", i+1),
				zap.Int("players", len(batches[i])),
				zap.String("file", path),
			)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchURLsFile, "urls", "player_urls.json", "player URL map from discover")
	batchCmd.Flags().IntVar(&batchParts, "parts", 4, "number of batches")
	batchCmd.Flags().StringVar(&batchOutDir, "output", ".", "directory for batch files")
	rootCmd.AddCommand(batchCmd)
}

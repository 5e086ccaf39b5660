package discover

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
)

// SplitBatches divides a player URL map into parts roughly equal batches,
// ordered by player name so the split is deterministic.
func SplitBatches(players map[string]string, parts int) []map[string]string {
	if parts < 1 {
		parts = 1
	}

	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	sort.Strings(names)

	size := (len(names) + parts - 1) / parts
	if size == 0 {
		size = 1
	}

	var batches []map[string]string
	for start := 0; start < len(names); start += size {
		end := start + size
		if end > len(names) {
			end = len(names)
		}
		batch := make(map[string]string, end-start)
		for _, name := range names[start:end] {
			batch[name] = players[name]
		}
		batches = append(batches, batch)
	}
	return batches
}

// WriteBatches writes each batch to dir as batch_<n>_player_urls.json and
// returns the file paths.
func WriteBatches(dir string, batches []map[string]string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "discover: create batch dir %s", dir)
	}

	paths := make([]string, 0, len(batches))
	for i, batch := range batches {
		data, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return nil, eris.Wrap(err, "discover: marshal batch")
		}
		path := filepath.Join(dir, fmt.Sprintf("batch_%d_player_urls.json", i+1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, eris.Wrapf(err, "discover: write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadBatch loads a batch file back into a player URL map.
func ReadBatch(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "discover: read batch %s", path)
	}
	players := make(map[string]string)
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, eris.Wrapf(err, "discover: parse batch %s", path)
	}
	return players, nil
}

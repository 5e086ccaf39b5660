package discover

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
)

// Checkpoint records index-scrape progress so an interrupted discovery run
// resumes where it left off.
type Checkpoint struct {
	Players         map[string]string `json:"players"` // index name -> stats URL
	ProcessedCombos []string          `json:"processed_combos"`
	Timestamp       time.Time         `json:"timestamp"`
}

// NewCheckpoint returns an empty checkpoint.
func NewCheckpoint() *Checkpoint {
	return &Checkpoint{Players: make(map[string]string)}
}

// Processed reports whether an index prefix has already been scraped.
func (c *Checkpoint) Processed(prefix string) bool {
	for _, p := range c.ProcessedCombos {
		if p == prefix {
			return true
		}
	}
	return false
}

// MarkProcessed records an index prefix as done.
func (c *Checkpoint) MarkProcessed(prefix string) {
	if !c.Processed(prefix) {
		c.ProcessedCombos = append(c.ProcessedCombos, prefix)
	}
}

// LoadCheckpoint reads a checkpoint file. A missing file yields a fresh
// checkpoint, not an error.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCheckpoint(), nil
		}
		return nil, eris.Wrapf(err, "discover: read checkpoint %s", path)
	}

	cp := NewCheckpoint()
	if err := json.Unmarshal(data, cp); err != nil {
		return nil, eris.Wrapf(err, "discover: parse checkpoint %s", path)
	}
	if cp.Players == nil {
		cp.Players = make(map[string]string)
	}
	return cp, nil
}

// Save writes the checkpoint atomically via a temp file rename.
func (c *Checkpoint) Save(path string) error {
	c.Timestamp = time.Now().UTC()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return eris.Wrap(err, "discover: marshal checkpoint")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "discover: write checkpoint %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return eris.Wrapf(err, "discover: rename checkpoint %s", path)
	}
	return nil
}

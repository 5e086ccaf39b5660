package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "transfer.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "https://fbref.com", cfg.Scrape.BaseURL)
	assert.Equal(t, 8, cfg.Scrape.DelaySecs)
	assert.Equal(t, 30, cfg.Scrape.TimeoutSecs)
	assert.Equal(t, 3, cfg.Scrape.MaxRetries)
	assert.Equal(t, "stats_standard_dom_lg", cfg.Scrape.StandardTableID)
	assert.Equal(t, "stats_defense_dom_lg", cfg.Scrape.DefensiveTableID)
	assert.Equal(t, "outputs", cfg.Scrape.OutputDir)
	assert.Equal(t, 50, cfg.Discover.CheckpointEvery)
	assert.InDelta(t, 0.95, cfg.Discover.MatchThreshold, 0.001)
	assert.Equal(t, 4, cfg.Merge.Concurrency)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/transfers
scrape:
  delay_secs: 3
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/transfers", cfg.Store.DatabaseURL)
	assert.Equal(t, 3, cfg.Scrape.DelaySecs)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep defaults.
	assert.Equal(t, 30, cfg.Scrape.TimeoutSecs)
}

func TestScrapeConfigDurations(t *testing.T) {
	c := ScrapeConfig{DelaySecs: 8, TimeoutSecs: 30}
	assert.Equal(t, 8*time.Second, c.Delay())
	assert.Equal(t, 30*time.Second, c.Timeout())
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
}

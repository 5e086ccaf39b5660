// Package config loads application configuration from config.yaml and
// TRANSFER_* environment variables, and owns global logger setup.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Scrape   ScrapeConfig   `yaml:"scrape" mapstructure:"scrape"`
	Discover DiscoverConfig `yaml:"discover" mapstructure:"discover"`
	Merge    MergeConfig    `yaml:"merge" mapstructure:"merge"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend for scraped tables.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // sqlite | postgres
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ScrapeConfig configures player-page scraping.
type ScrapeConfig struct {
	BaseURL          string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent        string `yaml:"user_agent" mapstructure:"user_agent"`
	DelaySecs        int    `yaml:"delay_secs" mapstructure:"delay_secs"`
	TimeoutSecs      int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries       int    `yaml:"max_retries" mapstructure:"max_retries"`
	StandardTableID  string `yaml:"standard_table_id" mapstructure:"standard_table_id"`
	DefensiveTableID string `yaml:"defensive_table_id" mapstructure:"defensive_table_id"`
	OutputDir        string `yaml:"output_dir" mapstructure:"output_dir"`
}

// Delay returns the minimum interval between requests.
func (c ScrapeConfig) Delay() time.Duration {
	return time.Duration(c.DelaySecs) * time.Second
}

// Timeout returns the per-request timeout.
func (c ScrapeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// DiscoverConfig configures player URL discovery against the site's
// alphabetical player index.
type DiscoverConfig struct {
	IndexURL        string  `yaml:"index_url" mapstructure:"index_url"`
	CheckpointFile  string  `yaml:"checkpoint_file" mapstructure:"checkpoint_file"`
	CheckpointEvery int     `yaml:"checkpoint_every" mapstructure:"checkpoint_every"`
	MatchThreshold  float64 `yaml:"match_threshold" mapstructure:"match_threshold"`
}

// MergeConfig configures the transfer/statistics merge.
type MergeConfig struct {
	// ColumnsFile optionally overrides the embedded column classification.
	ColumnsFile string `yaml:"columns_file" mapstructure:"columns_file"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TRANSFER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "transfer.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("scrape.base_url", "https://fbref.com")
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	v.SetDefault("scrape.delay_secs", 8)
	v.SetDefault("scrape.timeout_secs", 30)
	v.SetDefault("scrape.max_retries", 3)
	v.SetDefault("scrape.standard_table_id", "stats_standard_dom_lg")
	v.SetDefault("scrape.defensive_table_id", "stats_defense_dom_lg")
	v.SetDefault("scrape.output_dir", "outputs")
	v.SetDefault("discover.index_url", "https://fbref.com/en/players/")
	v.SetDefault("discover.checkpoint_file", "player_index_checkpoint.json")
	v.SetDefault("discover.checkpoint_every", 50)
	v.SetDefault("discover.match_threshold", 0.95)
	v.SetDefault("merge.concurrency", 4)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"ReviewLens/internal/domain"
)

const (
	configPathEnv      = "REVIEWLENS_CONFIG"
	databaseDSNEnv     = "DATABASE_DSN"
	sentimentMethodEnv = "SENTIMENT_METHOD"
	sentimentURLEnv    = "SENTIMENT_API_URL"
	sentimentKeyEnv    = "SENTIMENT_API_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig   `yaml:"logging"`
	Database   DatabaseConfig  `yaml:"database"`
	Sources    []SourceConfig  `yaml:"sources"`
	Output     OutputConfig    `yaml:"output"`
	Sentiment  SentimentConfig `yaml:"sentiment"`
	Themes     ThemesConfig    `yaml:"themes"`
	Seed       int64           `yaml:"seed"`
	SampleSize int             `yaml:"sampleSize"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes Postgres connection details. An empty DSN
// disables database persistence.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SourceConfig describes a single review source with its loader strategy.
type SourceConfig struct {
	Loader   string            `yaml:"loader"`
	Location string            `yaml:"location"`
	Bank     string            `yaml:"bank"`
	Options  map[string]string `yaml:"options"`
}

// OutputConfig points at the artifact directory.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// SentimentConfig selects the scoring method and, for the transformer
// method, the inference service endpoint.
type SentimentConfig struct {
	Method string `yaml:"method"`
	APIURL string `yaml:"apiUrl"`
	APIKey string `yaml:"apiKey"`
}

// ThemesConfig tunes the topic model.
type ThemesConfig struct {
	NThemes    int     `yaml:"nThemes"`
	NTopWords  int     `yaml:"nTopWords"`
	MinDocFreq float64 `yaml:"minDocFreq"`
	MaxDocFreq float64 `yaml:"maxDocFreq"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

// Validate enforces pre-flight invariants before any processing starts.
func (c Config) Validate() error {
	if c.Themes.NThemes <= 0 {
		return &domain.ConfigError{Field: "themes.nThemes", Reason: "must be positive"}
	}
	if c.Themes.NTopWords <= 0 {
		return &domain.ConfigError{Field: "themes.nTopWords", Reason: "must be positive"}
	}
	if c.Themes.MinDocFreq < 0 || c.Themes.MaxDocFreq > 1 || c.Themes.MinDocFreq > c.Themes.MaxDocFreq {
		return &domain.ConfigError{Field: "themes.docFreq", Reason: "require 0 <= min <= max <= 1"}
	}
	if c.SampleSize <= 0 {
		return &domain.ConfigError{Field: "sampleSize", Reason: "must be positive"}
	}
	if c.Output.Dir == "" {
		return &domain.ConfigError{Field: "output.dir", Reason: "must not be empty"}
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(sentimentMethodEnv); v != "" {
		c.Sentiment.Method = v
	}

	if v := os.Getenv(sentimentURLEnv); v != "" {
		c.Sentiment.APIURL = v
	}

	if v := os.Getenv(sentimentKeyEnv); v != "" {
		c.Sentiment.APIKey = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	if override.Output.Dir != "" {
		base.Output = override.Output
	}

	if override.Sentiment.Method != "" {
		base.Sentiment.Method = override.Sentiment.Method
	}
	if override.Sentiment.APIURL != "" {
		base.Sentiment.APIURL = override.Sentiment.APIURL
	}
	if override.Sentiment.APIKey != "" {
		base.Sentiment.APIKey = override.Sentiment.APIKey
	}

	if override.Themes.NThemes != 0 {
		base.Themes.NThemes = override.Themes.NThemes
	}
	if override.Themes.NTopWords != 0 {
		base.Themes.NTopWords = override.Themes.NTopWords
	}
	if override.Themes.MinDocFreq != 0 {
		base.Themes.MinDocFreq = override.Themes.MinDocFreq
	}
	if override.Themes.MaxDocFreq != 0 {
		base.Themes.MaxDocFreq = override.Themes.MaxDocFreq
	}

	if override.Seed != 0 {
		base.Seed = override.Seed
	}
	if override.SampleSize != 0 {
		base.SampleSize = override.SampleSize
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{DSN: ""},
		Sources: []SourceConfig{
			{Loader: "csv", Location: "data/processed/reviews_processed.csv"},
		},
		Output:    OutputConfig{Dir: "outputs"},
		Sentiment: SentimentConfig{Method: "lexicon"},
		Themes: ThemesConfig{
			NThemes:    5,
			NTopWords:  8,
			MinDocFreq: 0,
			MaxDocFreq: 0.95,
		},
		Seed:       42,
		SampleSize: 500,
	}
}

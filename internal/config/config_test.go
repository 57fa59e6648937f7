package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ReviewLens/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(sentimentMethodEnv, "")

	cfg := Load()

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Sentiment.Method != "lexicon" {
		t.Errorf("Sentiment.Method = %q, want lexicon", cfg.Sentiment.Method)
	}
	if cfg.Themes.NThemes != 5 || cfg.Themes.NTopWords != 8 {
		t.Errorf("unexpected theme defaults: %+v", cfg.Themes)
	}
	if cfg.Themes.MaxDocFreq != 0.95 {
		t.Errorf("MaxDocFreq = %v, want 0.95", cfg.Themes.MaxDocFreq)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.SampleSize != 500 {
		t.Errorf("SampleSize = %d, want 500", cfg.SampleSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
logging:
  level: debug
sentiment:
  method: rules
themes:
  nThemes: 3
seed: 7
sources:
  - loader: csv
    location: data/custom.csv
    bank: BankA
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(sentimentMethodEnv, "")

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Sentiment.Method != "rules" {
		t.Errorf("Sentiment.Method = %q, want rules", cfg.Sentiment.Method)
	}
	if cfg.Themes.NThemes != 3 {
		t.Errorf("NThemes = %d, want 3", cfg.Themes.NThemes)
	}
	if cfg.Themes.NTopWords != 8 {
		t.Errorf("NTopWords = %d, default lost on merge", cfg.Themes.NTopWords)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Location != "data/custom.csv" {
		t.Errorf("sources not overridden: %+v", cfg.Sources)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
sentiment:
  method: lexicon
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(sentimentMethodEnv, "transformer")
	t.Setenv(sentimentURLEnv, "http://scorer.internal/v1")
	t.Setenv(databaseDSNEnv, "postgres://localhost/reviews")

	cfg := Load()

	if cfg.Sentiment.Method != "transformer" {
		t.Errorf("Sentiment.Method = %q, env override lost", cfg.Sentiment.Method)
	}
	if cfg.Sentiment.APIURL != "http://scorer.internal/v1" {
		t.Errorf("Sentiment.APIURL = %q", cfg.Sentiment.APIURL)
	}
	if cfg.Database.DSN != "postgres://localhost/reviews" {
		t.Errorf("Database.DSN = %q", cfg.Database.DSN)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(sentimentMethodEnv, "")

	cfg := Load()
	if cfg.Sentiment.Method != "lexicon" {
		t.Errorf("fallback config lost defaults: %+v", cfg.Sentiment)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero themes", func(c *Config) { c.Themes.NThemes = 0 }},
		{"zero top words", func(c *Config) { c.Themes.NTopWords = 0 }},
		{"min above max", func(c *Config) { c.Themes.MinDocFreq = 0.9; c.Themes.MaxDocFreq = 0.1 }},
		{"max above one", func(c *Config) { c.Themes.MaxDocFreq = 1.5 }},
		{"zero sample size", func(c *Config) { c.SampleSize = 0 }},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			var cfgErr *domain.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate = %v, want ConfigError", err)
			}
		})
	}
}

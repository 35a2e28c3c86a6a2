package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"stockquote/internal/provider/alphavantage"
	"stockquote/internal/provider/finnhub"
)

// DefaultPath is read when Load is given no path and the file exists.
const DefaultPath = "config.yaml"

type Server struct {
	Port              string `yaml:"port"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
	BatchConcurrency  int    `yaml:"batch_concurrency"`
	MaxSymbols        int    `yaml:"max_symbols"`
	Pprof             bool   `yaml:"pprof"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	// File enables rotated file output in addition to stderr.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Finnhub struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type AlphaVantage struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	// FallbackOnRateLimit answers throttled requests with synthetic data
	// instead of failing over to the next source.
	FallbackOnRateLimit bool `yaml:"fallback_on_rate_limit"`
}

type Synthetic struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	Server       Server       `yaml:"server"`
	Log          Log          `yaml:"log"`
	Finnhub      Finnhub      `yaml:"finnhub"`
	AlphaVantage AlphaVantage `yaml:"alpha_vantage"`
	Synthetic    Synthetic    `yaml:"synthetic"`
}

func Default() Config {
	return Config{
		Server: Server{
			Port:              "8080",
			RequestTimeoutSec: 10,
			BatchConcurrency:  4,
			MaxSymbols:        25,
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Finnhub: Finnhub{
			Enabled: true,
			BaseURL: finnhub.DefaultBaseURL,
		},
		AlphaVantage: AlphaVantage{
			Enabled:             true,
			BaseURL:             alphavantage.DefaultBaseURL,
			FallbackOnRateLimit: true,
		},
		Synthetic: Synthetic{Enabled: true},
	}
}

// Load reads YAML config from path. If path is empty it tries DefaultPath,
// and a missing file yields defaults. Environment variables override select
// fields, API keys in particular.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	envString("PORT", &cfg.Server.Port)
	envInt("REQUEST_TIMEOUT_SEC", &cfg.Server.RequestTimeoutSec)
	envBool("PPROF_ENABLED", &cfg.Server.Pprof)

	envString("LOG_LEVEL", &cfg.Log.Level)
	envString("LOG_FILE", &cfg.Log.File)
	envBool("LOG_DEVELOPMENT", &cfg.Log.Development)

	envString("FINNHUB_API_KEY", &cfg.Finnhub.APIKey)
	envString("FINNHUB_BASE_URL", &cfg.Finnhub.BaseURL)
	envBool("FINNHUB_ENABLED", &cfg.Finnhub.Enabled)

	envString("ALPHA_VANTAGE_API_KEY", &cfg.AlphaVantage.APIKey)
	envString("ALPHA_VANTAGE_BASE_URL", &cfg.AlphaVantage.BaseURL)
	envBool("ALPHA_VANTAGE_ENABLED", &cfg.AlphaVantage.Enabled)
	envBool("ALPHA_VANTAGE_FALLBACK_ON_RATE_LIMIT", &cfg.AlphaVantage.FallbackOnRateLimit)

	envBool("SYNTHETIC_ENABLED", &cfg.Synthetic.Enabled)
}

func envString(name string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

// envInt ignores values that are not positive integers.
func envInt(name string, dst *int) {
	if x, err := strconv.Atoi(strings.TrimSpace(os.Getenv(name))); err == nil && x > 0 {
		*dst = x
	}
}

func envBool(name string, dst *bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y":
		*dst = true
	case "0", "false", "no", "n":
		*dst = false
	}
}

// Validate reports every problem it finds. Credential errors carry masked
// keys only.
func (c Config) Validate() []error {
	var errs []error
	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("server.port: must not be empty"))
	}
	if c.Server.RequestTimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("server.request_timeout_sec: must be positive, got %d", c.Server.RequestTimeoutSec))
	}
	if c.Server.BatchConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("server.batch_concurrency: must be positive, got %d", c.Server.BatchConcurrency))
	}
	if c.Server.MaxSymbols <= 0 {
		errs = append(errs, fmt.Errorf("server.max_symbols: must be positive, got %d", c.Server.MaxSymbols))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Finnhub.Enabled {
		if err := finnhub.CheckKey(c.Finnhub.APIKey); err != nil {
			errs = append(errs, fmt.Errorf("finnhub.api_key: %w", err))
		}
	}
	if c.AlphaVantage.Enabled {
		if err := alphavantage.CheckKey(c.AlphaVantage.APIKey); err != nil {
			errs = append(errs, fmt.Errorf("alpha_vantage.api_key: %w", err))
		}
	}
	if !c.Finnhub.Enabled && !c.AlphaVantage.Enabled && !c.Synthetic.Enabled {
		errs = append(errs, errors.New("no quote source enabled"))
	}
	return errs
}

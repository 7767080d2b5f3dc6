package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"campaign-insights-go/internal/aggregator"
)

// Source kinds accepted in DATA_SOURCE.
const (
	SourceMock     = "mock"
	SourceAPI      = "api"
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	Source         string `yaml:"source"`
	FallbackToMock bool   `yaml:"fallback_to_mock"`

	APIBaseURL     string `yaml:"api_base_url"`
	APITimeoutSec  int    `yaml:"api_timeout_secs"`
	APIMaxRetrySec int    `yaml:"api_max_retry_secs"`

	DatasetPath string `yaml:"dataset_path"`
	DatabaseURL string `yaml:"database_url"`
	SQLitePath  string `yaml:"sqlite_path"`

	RatePolicy    string                `yaml:"rate_policy"`
	RateTolerance float64               `yaml:"rate_tolerance"`
	Tiers         aggregator.Thresholds `yaml:"tiers"`

	TopN    int `yaml:"top_n"`
	BottomN int `yaml:"bottom_n"`
}

func Defaults() Config {
	return Config{
		Port:           "8080",
		Environment:    "local",
		LogLevel:       "info",
		Source:         SourceMock,
		FallbackToMock: true,
		APITimeoutSec:  12,
		APIMaxRetrySec: 20,
		DatasetPath:    "retailers.xlsx",
		SQLitePath:     "./campaigns.db",
		RatePolicy:     string(aggregator.RateTrust),
		RateTolerance:  0.5,
		Tiers:          aggregator.DefaultThresholds(),
		TopN:           5,
		BottomN:        5,
	}
}

// Load reads .env (if any), then the YAML file named by CONFIG_FILE (or
// path), then applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	if p := os.Getenv("CONFIG_FILE"); p != "" {
		path = p
	}

	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Source = strings.ToLower(getEnv("DATA_SOURCE", c.Source))
	c.FallbackToMock = getEnvBool("FALLBACK_TO_MOCK", c.FallbackToMock)
	c.APIBaseURL = getEnv("API_BASE_URL", c.APIBaseURL)
	c.APITimeoutSec = getEnvInt("API_TIMEOUT_SECS", c.APITimeoutSec)
	c.APIMaxRetrySec = getEnvInt("API_MAX_RETRY_SECS", c.APIMaxRetrySec)
	c.DatasetPath = getEnv("DATASET_PATH", c.DatasetPath)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.RatePolicy = getEnv("RATE_POLICY", c.RatePolicy)
	c.TopN = getEnvInt("TOP_N", c.TopN)
	c.BottomN = getEnvInt("BOTTOM_N", c.BottomN)
}

// Validate checks the selected source has what it needs.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceMock, SourceXLSX, SourceSQLite:
	case SourceAPI:
		if c.APIBaseURL == "" {
			return errors.New("api_base_url is required for the api source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.Source)
	}

	if _, err := aggregator.ParseRatePolicy(c.RatePolicy); err != nil {
		return err
	}
	if c.TopN < 0 || c.BottomN < 0 {
		return fmt.Errorf("top_n and bottom_n must not be negative")
	}
	if c.APITimeoutSec <= 0 {
		return fmt.Errorf("api_timeout_secs must be positive, got %d", c.APITimeoutSec)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

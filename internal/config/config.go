package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the configuration for the analysis service
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Analysis AnalysisConfig `toml:"analysis"`
	Fetch    FetchConfig    `toml:"fetch"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// AnalysisConfig holds the document cap and default analysis parameters
type AnalysisConfig struct {
	MaxDocuments  int     `toml:"max_documents"`
	TopN          int     `toml:"top_n"`
	GapTop        int     `toml:"gap_top"`
	GapMinDelta   float64 `toml:"gap_min_delta"`
	StopwordsFile string  `toml:"stopwords_file"`
}

// FetchConfig holds settings for documents retrieved by URL
type FetchConfig struct {
	TimeoutSeconds     int    `toml:"timeout_seconds"`
	UserAgent          string `toml:"user_agent"`
	RespectRobots      bool   `toml:"respect_robots"`
	RobotsCacheSeconds int    `toml:"robots_cache_seconds"`
	MaxDocumentBytes   int64  `toml:"max_document_bytes"`
}

// Timeout returns the per-request fetch timeout
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// RobotsCacheDuration returns how long a host's robots.txt stays cached
func (f FetchConfig) RobotsCacheDuration() time.Duration {
	return time.Duration(f.RobotsCacheSeconds) * time.Second
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
		Analysis: AnalysisConfig{
			MaxDocuments: 3,
			TopN:         15,
			GapTop:       10,
			GapMinDelta:  0.05,
		},
		Fetch: FetchConfig{
			TimeoutSeconds:     15,
			UserAgent:          "textgap/1.0",
			RespectRobots:      true,
			RobotsCacheSeconds: 3600,
			MaxDocumentBytes:   2 << 20,
		},
	}
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile decodes a TOML file over the defaults and then applies environment
// overrides. An empty path behaves like Load.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = GetStringEnv("TEXTGAP_ADDR", c.Server.Addr)
	c.Server.MaxBodyBytes = GetInt64Env("TEXTGAP_MAX_BODY_BYTES", c.Server.MaxBodyBytes)

	c.Analysis.MaxDocuments = GetIntEnv("TEXTGAP_MAX_DOCUMENTS", c.Analysis.MaxDocuments)
	c.Analysis.TopN = GetIntEnv("TEXTGAP_TOP_N", c.Analysis.TopN)
	c.Analysis.GapTop = GetIntEnv("TEXTGAP_GAP_TOP", c.Analysis.GapTop)
	c.Analysis.GapMinDelta = GetFloatEnv("TEXTGAP_GAP_MIN_DELTA", c.Analysis.GapMinDelta)
	c.Analysis.StopwordsFile = GetStringEnv("TEXTGAP_STOPWORDS_FILE", c.Analysis.StopwordsFile)

	c.Fetch.TimeoutSeconds = GetIntEnv("TEXTGAP_FETCH_TIMEOUT_SECONDS", c.Fetch.TimeoutSeconds)
	c.Fetch.UserAgent = GetStringEnv("TEXTGAP_USER_AGENT", c.Fetch.UserAgent)
	c.Fetch.RespectRobots = GetBoolEnv("TEXTGAP_RESPECT_ROBOTS", c.Fetch.RespectRobots)
	c.Fetch.RobotsCacheSeconds = GetIntEnv("TEXTGAP_ROBOTS_CACHE_SECONDS", c.Fetch.RobotsCacheSeconds)
	c.Fetch.MaxDocumentBytes = GetInt64Env("TEXTGAP_MAX_DOCUMENT_BYTES", c.Fetch.MaxDocumentBytes)
}

// Validate reports every setting that cannot work
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	if c.Analysis.MaxDocuments < 1 {
		errs = append(errs, fmt.Errorf("analysis.max_documents must be at least 1, got %d", c.Analysis.MaxDocuments))
	}
	if c.Analysis.GapMinDelta < 0 {
		errs = append(errs, fmt.Errorf("analysis.gap_min_delta must not be negative, got %g", c.Analysis.GapMinDelta))
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout_seconds must be positive, got %d", c.Fetch.TimeoutSeconds))
	}
	if c.Fetch.MaxDocumentBytes <= 0 {
		errs = append(errs, fmt.Errorf("fetch.max_document_bytes must be positive, got %d", c.Fetch.MaxDocumentBytes))
	}
	return errors.Join(errs...)
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

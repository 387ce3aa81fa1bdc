package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed responses.yaml
var responsesYAML []byte

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Responses ResponsesConfig
	Intent    IntentConfig
	Janitor   JanitorConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Driver       string // "postgres" or "mysql"
	URL          string // PostgreSQL connection URL or MySQL DSN
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

// ResponsesConfig holds the user-visible reply phrases. They are embedded at
// build time so the companion app and the backend always agree on wording.
type ResponsesConfig struct {
	ImageStored      string `yaml:"image_stored"`
	ImageStoreFailed string `yaml:"image_store_failed"`
	ImageMatched     string `yaml:"image_matched"`
	ImageNotFound    string `yaml:"image_not_found"`
	TaskStored       string `yaml:"task_stored"`
	TaskDeleted      string `yaml:"task_deleted"`
	TaskNotFound     string `yaml:"task_not_found"`
	NoTasks          string `yaml:"no_tasks"`
	NoIntent         string `yaml:"no_intent"`
}

type IntentConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

type JanitorConfig struct {
	RetentionDays int `yaml:"retention_days"`
	IntervalHours int `yaml:"interval_hours"`
}

// Retention returns the task retention window as a duration.
func (c *JanitorConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// Interval returns how often the janitor fires.
func (c *JanitorConfig) Interval() time.Duration {
	return time.Duration(c.IntervalHours) * time.Hour
}

type embeddedDefaults struct {
	Responses ResponsesConfig `yaml:"responses"`
	Intent    IntentConfig    `yaml:"intent"`
	Janitor   JanitorConfig   `yaml:"janitor"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var defaults embeddedDefaults
	if err := yaml.Unmarshal(responsesYAML, &defaults); err != nil {
		// This is an embedded file so this error should never happen in practice.
		panic("failed to unmarshal embedded responses.yaml: " + err.Error())
	}

	return &Config{
		Server: ServerConfig{
			Host: envString("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),
		},
		Database: DatabaseConfig{
			Driver:       envString("DATABASE_DRIVER", "postgres"),
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Responses: defaults.Responses,
		Intent:    defaults.Intent,
		Janitor:   defaults.Janitor,
	}
}

// Validate checks that required settings are present and consistent.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (expected postgres or mysql)", c.Database.Driver)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/medload/internal/db"
)

// Environment variable names.
const (
	EnvMongoURI   = "MONGO_URI"
	EnvDatabase   = "MONGO_DB_NAME"
	EnvCollection = "MONGO_COLLECTION_NAME"
	EnvTimeout    = "MONGO_TIMEOUT"
)

// DefaultTimeout bounds each database operation when nothing else is configured.
const DefaultTimeout = 30 * time.Second

// Config holds all runtime configuration for a medload run.
type Config struct {
	MongoURI    string
	Database    string
	Collection  string
	FilePath    string
	ConfigFile  string
	LogFormat   string // "text" or "json"
	LogLevel    string
	Timeout     time.Duration
	BatchSize   int
	SkipRoles   bool
	SkipIndexes bool
}

// ConfigurationError reports a missing or invalid setting.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	MongoURI   string `yaml:"mongo_uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
	Timeout    string `yaml:"timeout"`
	BatchSize  int    `yaml:"batch_size"`
	LogFormat  string `yaml:"log_format"`
}

// LoadFromFile reads a YAML config file and fills any field not already set
// by a flag or the environment.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	fill(&c.MongoURI, yc.MongoURI)
	fill(&c.Database, yc.Database)
	fill(&c.Collection, yc.Collection)
	fill(&c.LogFormat, yc.LogFormat)
	if c.BatchSize == 0 {
		c.BatchSize = yc.BatchSize
	}
	if c.Timeout == 0 && yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return &ConfigurationError{Field: "timeout", Reason: fmt.Sprintf("invalid duration %q", yc.Timeout)}
		}
		c.Timeout = d
	}
	return nil
}

// ApplyDefaults sets defaults for fields left unset.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.BatchSize == 0 {
		c.BatchSize = db.DefaultBatchSize
	}
	fill(&c.LogFormat, "text")
	fill(&c.LogLevel, "info")
}

// Validate checks the input file settings.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return &ConfigurationError{Field: "file", Reason: "--file is required"}
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return &ConfigurationError{Field: "file", Reason: fmt.Sprintf("file not accessible: %v", err)}
	}
	return nil
}

// ValidateSink checks the MongoDB settings.
func (c *Config) ValidateSink() error {
	if c.MongoURI == "" {
		return &ConfigurationError{Field: "mongo-uri", Reason: "--mongo-uri or " + EnvMongoURI + " is required"}
	}
	if c.Database == "" {
		return &ConfigurationError{Field: "db", Reason: "--db or " + EnvDatabase + " is required"}
	}
	if c.Collection == "" {
		return &ConfigurationError{Field: "collection", Reason: "--collection or " + EnvCollection + " is required"}
	}
	if c.BatchSize < 0 {
		return &ConfigurationError{Field: "batch-size", Reason: "must be positive"}
	}
	if c.Timeout < 0 {
		return &ConfigurationError{Field: "timeout", Reason: "must not be negative"}
	}
	return nil
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

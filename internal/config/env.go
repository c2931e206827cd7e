package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// GetEnv returns the value of key, or defaultValue if unset or empty.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// LoadFromEnv fills any field not already set by a flag from the MONGO_*
// environment variables. A malformed MONGO_TIMEOUT is a ConfigurationError.
func (c *Config) LoadFromEnv() error {
	fill(&c.MongoURI, GetEnv(EnvMongoURI, ""))
	fill(&c.Database, GetEnv(EnvDatabase, ""))
	fill(&c.Collection, GetEnv(EnvCollection, ""))
	if c.Timeout == 0 {
		if v := GetEnv(EnvTimeout, ""); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return &ConfigurationError{Field: "timeout", Reason: fmt.Sprintf("invalid %s %q", EnvTimeout, v)}
			}
			c.Timeout = d
		}
	}
	return nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	path := writeConfig(t, "mongo_uri: mongodb://localhost:27017\ndatabase: medical_db\ncollection: patients\ntimeout: 5s\nbatch_size: 50\n")

	var c Config
	require.NoError(t, c.LoadFromFile(path))
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "medical_db", c.Database)
	assert.Equal(t, "patients", c.Collection)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, 50, c.BatchSize)
}

func TestLoadFromFile_FlagsWin(t *testing.T) {
	path := writeConfig(t, "database: from_file\ncollection: from_file\ntimeout: 5s\n")

	c := Config{Database: "from_flag", Timeout: time.Minute}
	require.NoError(t, c.LoadFromFile(path))
	assert.Equal(t, "from_flag", c.Database)
	assert.Equal(t, "from_file", c.Collection)
	assert.Equal(t, time.Minute, c.Timeout)
}

func TestLoadFromFile_BadTimeout(t *testing.T) {
	path := writeConfig(t, "timeout: soon\n")

	var c Config
	err := c.LoadFromFile(path)
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "timeout", ce.Field)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	assert.Error(t, c.LoadFromFile("/nonexistent/config.yaml"))
}

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.Equal(t, 100, c.BatchSize)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "info", c.LogLevel)
}

func TestValidateSink_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"uri", Config{Database: "d", Collection: "c"}, "mongo-uri"},
		{"db", Config{MongoURI: "mongodb://x", Collection: "c"}, "db"},
		{"collection", Config{MongoURI: "mongodb://x", Database: "d"}, "collection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateSink()
			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}

	ok := Config{MongoURI: "mongodb://x", Database: "d", Collection: "c"}
	assert.NoError(t, ok.ValidateSink())
}

func TestValidate_File(t *testing.T) {
	c := Config{}
	assert.Error(t, c.Validate())

	c.FilePath = "/nonexistent/data.csv"
	assert.Error(t, c.Validate())

	c.FilePath = writeConfig(t, "")
	assert.NoError(t, c.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEDLOAD_TEST_DB=from_dotenv\nMEDLOAD_TEST_KEEP=from_dotenv\n"), 0644))

	t.Setenv("MEDLOAD_TEST_KEEP", "from_env")
	t.Setenv("MEDLOAD_TEST_DB", "")
	os.Unsetenv("MEDLOAD_TEST_DB")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from_dotenv", os.Getenv("MEDLOAD_TEST_DB"))
	assert.Equal(t, "from_env", os.Getenv("MEDLOAD_TEST_KEEP"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvMongoURI, "mongodb://env:27017")
	t.Setenv(EnvDatabase, "env_db")
	t.Setenv(EnvCollection, "")
	t.Setenv(EnvTimeout, "45s")

	c := Config{Database: "flag_db"}
	require.NoError(t, c.LoadFromEnv())
	assert.Equal(t, "mongodb://env:27017", c.MongoURI)
	assert.Equal(t, "flag_db", c.Database)
	assert.Equal(t, "", c.Collection)
	assert.Equal(t, 45*time.Second, c.Timeout)
}

func TestLoadFromEnv_FlagTimeoutWins(t *testing.T) {
	t.Setenv(EnvTimeout, "45s")

	c := Config{Timeout: time.Minute}
	require.NoError(t, c.LoadFromEnv())
	assert.Equal(t, time.Minute, c.Timeout)
}

func TestLoadFromEnv_InvalidTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "30 seconds")

	var c Config
	err := c.LoadFromEnv()
	require.Error(t, err)

	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "timeout", ce.Field)
	assert.Equal(t, time.Duration(0), c.Timeout)
}

func TestLoadFromEnv_EnvBeatsFile(t *testing.T) {
	t.Setenv(EnvTimeout, "45s")
	t.Setenv(EnvDatabase, "env_db")
	path := writeConfig(t, "database: file_db\ncollection: file_coll\ntimeout: 5s\n")

	var c Config
	require.NoError(t, c.LoadFromEnv())
	require.NoError(t, c.LoadFromFile(path))
	assert.Equal(t, "env_db", c.Database)
	assert.Equal(t, "file_coll", c.Collection)
	assert.Equal(t, 45*time.Second, c.Timeout)
}

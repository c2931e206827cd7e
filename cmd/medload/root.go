package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gyeh/medload/internal/config"
	"github.com/gyeh/medload/internal/db"
	"github.com/gyeh/medload/internal/exitcode"
	"github.com/gyeh/medload/internal/logging"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "medload",
	Short: "Healthcare CSV/Parquet → MongoDB document loader",
	Long: "Cleans tabular healthcare records, shapes them into nested patient/encounter " +
		"documents, and bulk-loads them into MongoDB. Also declares access roles and indexes.",
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.MongoURI, "mongo-uri", "", "MongoDB connection string (or set "+config.EnvMongoURI+")")
	pf.StringVar(&cfg.Database, "db", "", "Target database (or set "+config.EnvDatabase+")")
	pf.StringVar(&cfg.Collection, "collection", "", "Target collection (or set "+config.EnvCollection+")")
	pf.DurationVar(&cfg.Timeout, "timeout", 0, "Per-operation timeout (default 30s, or set "+config.EnvTimeout+")")
	pf.StringVar(&cfg.ConfigFile, "config", "", "Optional YAML config file")
	pf.StringVar(&cfg.LogFormat, "log-format", "", "Log format: text or json (default text)")
	pf.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")
}

// loadConfig layers settings: flags, then the environment (.env included),
// then the YAML file, then defaults.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		log := logging.Setup("text", "info")
		log.Error().Err(err).Msg(".env file invalid")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.LoadFromEnv(); err != nil {
		log := logging.Setup("text", "info")
		log.Error().Err(err).Msg("environment invalid")
		os.Exit(exitcode.UsageError)
	}
	if cfg.ConfigFile != "" {
		if err := cfg.LoadFromFile(cfg.ConfigFile); err != nil {
			log := logging.Setup("text", "info")
			log.Error().Err(err).Str("config", cfg.ConfigFile).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	cfg.ApplyDefaults()
	return nil
}

// connect validates the sink settings and opens the shared client, exiting
// with the matching code on failure.
func connect(ctx context.Context, log zerolog.Logger) (*mongo.Client, *db.Target) {
	if err := cfg.ValidateSink(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	client, err := db.Connect(ctx, cfg.MongoURI, cfg.Timeout)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		var ce *db.ConnectivityError
		if errors.As(err, &ce) && ce.Op == "parse uri" {
			os.Exit(exitcode.UsageError)
		}
		os.Exit(exitcode.DBConnError)
	}
	return client, db.NewTarget(client, cfg.Database, cfg.Collection)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/medload/internal/db"
	"github.com/gyeh/medload/internal/exitcode"
	"github.com/gyeh/medload/internal/ingest"
	"github.com/gyeh/medload/internal/logging"
	"github.com/gyeh/medload/internal/normalize"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Transform an input file and load it into MongoDB",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to CSV or Parquet input (required)")
	f.IntVar(&cfg.BatchSize, "batch-size", 0, "Documents per unordered bulk write (default 100)")
	f.BoolVar(&cfg.SkipRoles, "skip-roles", false, "Do not declare access roles")
	f.BoolVar(&cfg.SkipIndexes, "skip-indexes", false, "Do not declare collection indexes")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	client, target := connect(ctx, log)
	defer client.Disconnect(context.Background())

	summary, err := ingest.Run(ctx, target, log, &cfg)
	if err != nil {
		client.Disconnect(context.Background())
		os.Exit(exitCodeFor(err))
	}

	fmt.Printf("%d documents inserted (%d failed, %d batches, %.1fs)\n",
		summary.DocumentsInserted, summary.DocumentsFailed, summary.Batches, summary.DurationTotal.Seconds())

	if summary.DocumentsFailed > 0 {
		client.Disconnect(context.Background())
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}

// exitCodeFor logs err and maps it to a process exit code.
func exitCodeFor(err error) int {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	var pe *ingest.PipelineError
	if !errors.As(err, &pe) {
		log.Error().Err(err).Msg("load failed")
		return exitcode.TransformError
	}
	log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")

	var parseErr *normalize.ParseError
	var catErr *normalize.UnknownCategoryError
	var connErr *db.ConnectivityError
	switch {
	case pe.Phase == ingest.PhasePreflight:
		return exitcode.ValidationError
	case errors.As(err, &parseErr), errors.As(err, &catErr):
		return exitcode.ValidationError
	case pe.Phase == ingest.PhaseLoad:
		return exitcode.LoadError
	case errors.As(err, &connErr):
		return exitcode.DBConnError
	default:
		return exitcode.TransformError
	}
}

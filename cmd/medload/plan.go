package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/medload/internal/document"
	"github.com/gyeh/medload/internal/exitcode"
	"github.com/gyeh/medload/internal/ingest"
	"github.com/gyeh/medload/internal/logging"
	"github.com/gyeh/medload/internal/model"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats (no database access)",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to CSV or Parquet input (required)")
	f.IntVar(&cfg.BatchSize, "batch-size", 0, "Documents per bulk write to plan for (default 100)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if cfg.BatchSize <= 0 {
		log.Error().Int("batch_size", cfg.BatchSize).Msg("batch size must be positive")
		os.Exit(exitcode.UsageError)
	}

	pf, err := ingest.Preflight(cfg.FilePath, log)
	if err != nil {
		log.Error().Err(err).Msg("preflight failed")
		os.Exit(exitcode.ValidationError)
	}

	tr, err := ingest.Transform(pf.Records, document.NewBuilder(), log)
	if err != nil {
		log.Error().Err(err).Msg("transform failed")
		os.Exit(exitcode.ValidationError)
	}

	// Label distribution per categorical column
	counts := make(map[string]map[string]int)
	for _, rec := range pf.Records {
		for _, col := range model.AllCategoryColumns {
			if counts[col.Name] == nil {
				counts[col.Name] = make(map[string]int)
			}
			counts[col.Name][strings.TrimSpace(rec.Get(col.Name))]++
		}
	}

	batchSize := cfg.BatchSize
	batches := planBatches(len(tr.Documents), batchSize)

	fmt.Println("=== medload plan ===")
	fmt.Printf("File:       %s\n", pf.FilePath)
	fmt.Printf("SHA-256:    %s\n", pf.FileSHA256)
	fmt.Printf("Size:       %d bytes\n", pf.FileSize)
	fmt.Printf("Rows:       %d\n", len(pf.Records))
	fmt.Printf("Doctors:    %d distinct\n", tr.DistinctDoctors)
	fmt.Printf("Hospitals:  %d distinct\n", tr.DistinctHospitals)
	fmt.Printf("Batches:    %d × %d\n", batches, batchSize)
	fmt.Println()
	fmt.Println("Category distribution:")

	for _, col := range model.AllCategoryColumns {
		fmt.Printf("  %s\n", col.Name)
		labels := make([]string, 0, len(counts[col.Name]))
		for l := range counts[col.Name] {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		for _, l := range labels {
			code, _ := col.Code(l)
			fmt.Printf("    %-18s → %d  (%d rows)\n", l, code, counts[col.Name][l])
		}
	}
	fmt.Println("\nValidation: OK")

	return nil
}

// planBatches is the number of bulk writes a load of n documents will issue.
func planBatches(n, batchSize int) int {
	return (n + batchSize - 1) / batchSize
}

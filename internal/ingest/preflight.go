package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/medload/internal/model"
	"github.com/gyeh/medload/internal/normalize"
	"github.com/gyeh/medload/internal/tabular"
)

// PreflightResult holds the input resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the input file.
	FileSHA256 string
	FileSize   int64
	// RunID tags this invocation in logs.
	RunID   uuid.UUID
	Columns []string
	// Records are every data row of the input, in file order.
	Records  []model.RawRecord
	Duration time.Duration
}

// Preflight hashes the input, validates its header, and reads every row.
func Preflight(filePath string, log zerolog.Logger) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	reader, err := tabular.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}
	defer reader.Close()

	if err := tabular.ValidateColumns(reader.Columns()); err != nil {
		return nil, fmt.Errorf("preflight validate: %w", err)
	}

	records, err := tabular.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("preflight read: %w", err)
	}

	res := &PreflightResult{
		FilePath:   filePath,
		FileSHA256: sha,
		FileSize:   stat.Size(),
		RunID:      uuid.New(),
		Columns:    reader.Columns(),
		Records:    records,
		Duration:   time.Since(start),
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int("rows", len(records)).
		Str("run_id", res.RunID.String()).
		Dur("duration", res.Duration).
		Msg("preflight complete")

	return res, nil
}

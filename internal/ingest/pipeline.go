package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/gyeh/medload/internal/config"
	"github.com/gyeh/medload/internal/db"
	"github.com/gyeh/medload/internal/document"
	"github.com/gyeh/medload/internal/model"
)

// Pipeline phases.
const (
	PhasePreflight = "preflight"
	PhaseTransform = "transform"
	PhaseProvision = "provision"
	PhaseLoad      = "load"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full load pipeline: preflight → transform → provision →
// load. A load failure returns the partial summary alongside the error,
// since batches written before the failure stay committed.
func Run(ctx context.Context, target *db.Target, log zerolog.Logger, cfg *config.Config) (*model.LoadSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(cfg.FilePath, log)
	if err != nil {
		return nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}
	log = log.With().Str("run_id", pf.RunID.String()).Logger()

	// Phase 2: Transform
	log.Info().Msg("starting transform")
	tr, err := Transform(pf.Records, document.NewBuilder(), log)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseTransform, Err: err}
	}

	// Phase 3: Roles and indexes
	log.Info().Msg("provisioning roles and indexes")
	pr, err := Provision(ctx, target, cfg.SkipRoles, cfg.SkipIndexes, log)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseProvision, Err: err}
	}

	summary := &model.LoadSummary{
		RunID:             pf.RunID.String(),
		FilePath:          pf.FilePath,
		FileSHA256:        pf.FileSHA256,
		RowsRead:          int64(len(pf.Records)),
		DocumentsBuilt:    int64(len(tr.Documents)),
		DistinctDoctors:   tr.DistinctDoctors,
		DistinctHospitals: tr.DistinctHospitals,
		RolesCreated:      pr.Roles.Count(db.RoleCreated),
		RolesExisting:     pr.Roles.Count(db.RoleExists),
		RolesFailed:       pr.Roles.Count(db.RoleFailed),
		IndexesEnsured:    pr.Indexes,
		DurationRead:      pf.Duration,
		DurationTransform: tr.Duration,
		DurationProvision: pr.Duration,
	}

	// Phase 4: Load
	log.Info().Int("documents", len(tr.Documents)).Int("batch_size", cfg.BatchSize).Msg("starting load")
	loader := db.NewLoader(target.Bulk, cfg.BatchSize, cfg.Timeout, log)
	lr, err := loader.Load(ctx, tr.Documents)
	summary.DocumentsInserted = lr.Inserted
	summary.DocumentsFailed = lr.Failed
	summary.Batches = len(lr.Batches)
	summary.DurationLoad = lr.Duration
	summary.DurationTotal = time.Since(totalStart)
	if err != nil {
		log.Error().
			Int64("inserted_before_failure", lr.Inserted).
			Int("batches_written", len(lr.Batches)).
			Msg("load aborted; written batches are not rolled back")
		return summary, &PipelineError{Phase: PhaseLoad, Err: err}
	}

	if target.Counter != nil {
		if n, err := target.Counter.CountDocuments(ctx, bson.D{}); err != nil {
			log.Warn().Err(err).Msg("collection count failed (non-fatal)")
		} else {
			log.Info().Int64("collection_documents", n).Msg("collection count")
		}
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("inserted", summary.DocumentsInserted).
		Int64("failed", summary.DocumentsFailed).
		Int("batches", summary.Batches).
		Int("roles_failed", summary.RolesFailed).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("load pipeline complete")

	return summary, nil
}

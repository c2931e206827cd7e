package ingest

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/medload/internal/document"
	"github.com/gyeh/medload/internal/model"
	"github.com/gyeh/medload/internal/normalize"
)

// TransformResult holds the documents produced from one input table.
type TransformResult struct {
	Documents         []model.Document
	DistinctDoctors   int
	DistinctHospitals int
	Duration          time.Duration
}

// Transform cleans every record and shapes it into a document, resolving
// doctor and hospital ids through b. Any bad row fails the whole table.
func Transform(records []model.RawRecord, b *document.Builder, log zerolog.Logger) (*TransformResult, error) {
	start := time.Now()

	clean, err := normalize.CleanTable(records)
	if err != nil {
		return nil, err
	}
	docs := b.Build(clean)

	res := &TransformResult{
		Documents:         docs,
		DistinctDoctors:   b.Doctors.Len(),
		DistinctHospitals: b.Hospitals.Len(),
		Duration:          time.Since(start),
	}

	log.Info().
		Int("documents", len(docs)).
		Int("doctors", res.DistinctDoctors).
		Int("hospitals", res.DistinctHospitals).
		Str("duration", res.Duration.String()).
		Msg("transform complete")

	return res, nil
}

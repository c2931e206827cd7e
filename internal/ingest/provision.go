package ingest

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/medload/internal/db"
)

// ProvisionResult holds the outcome of role and index provisioning.
type ProvisionResult struct {
	Roles    *db.RoleReport
	Indexes  []string
	Duration time.Duration
}

// Provision declares the access roles and the collection indexes. Role
// failures are recorded in the report only; an index failure is returned.
func Provision(ctx context.Context, target *db.Target, skipRoles, skipIndexes bool, log zerolog.Logger) (*ProvisionResult, error) {
	start := time.Now()
	res := &ProvisionResult{Roles: &db.RoleReport{}}

	if skipRoles {
		log.Info().Msg("skipping role provisioning")
	} else {
		res.Roles = db.EnsureRoles(ctx, target.Roles, db.DefaultRoles, log)
	}

	if skipIndexes {
		log.Info().Msg("skipping index provisioning")
	} else {
		names, err := db.EnsureIndexes(ctx, target.Indexes, db.DefaultIndexes, log)
		if err != nil {
			return nil, err
		}
		res.Indexes = names
	}

	res.Duration = time.Since(start)
	return res, nil
}

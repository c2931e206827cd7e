package model

import "time"

// LoadSummary captures metrics from a single load run.
type LoadSummary struct {
	RunID             string
	FilePath          string
	FileSHA256        string
	RowsRead          int64
	DocumentsBuilt    int64
	DocumentsInserted int64
	DocumentsFailed   int64
	Batches           int
	DistinctDoctors   int
	DistinctHospitals int
	RolesCreated      int
	RolesExisting     int
	RolesFailed       int
	IndexesEnsured    []string
	DurationRead      time.Duration
	DurationTransform time.Duration
	DurationProvision time.Duration
	DurationLoad      time.Duration
	DurationTotal     time.Duration
}

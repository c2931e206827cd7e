package db

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gyeh/medload/internal/model"
)

// IndexCreator is satisfied by mongo.IndexView.
type IndexCreator interface {
	CreateOne(ctx context.Context, index mongo.IndexModel, opts ...*options.CreateIndexesOptions) (string, error)
}

// DefaultIndexes lists the single-field ascending indexes on the records collection.
var DefaultIndexes = []string{
	model.PathPatientName,
	model.PathAdmissionDate,
	model.PathHospitalID,
	model.PathDoctorID,
}

// EnsureIndexes declares each index in paths. Re-declaring an existing index
// is a no-op on the server. The first failure aborts.
func EnsureIndexes(ctx context.Context, iv IndexCreator, paths []string, log zerolog.Logger) ([]string, error) {
	start := time.Now()
	names := make([]string, 0, len(paths))

	for _, path := range paths {
		name, err := iv.CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: path, Value: 1}}})
		if err != nil {
			return names, &ConnectivityError{Op: "create index " + path, Err: err}
		}
		log.Info().Str("index", name).Str("path", path).Msg("index ensured")
		names = append(names, name)
	}

	log.Info().
		Int("count", len(names)).
		Dur("duration", time.Since(start)).
		Msg("all indexes ensured")
	return names, nil
}

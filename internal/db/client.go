package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect creates a client and pings the primary. timeout bounds server
// selection and becomes the client-wide default operation timeout.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	if timeout > 0 {
		opts.SetServerSelectionTimeout(timeout).
			SetConnectTimeout(timeout).
			SetTimeout(timeout)
	}
	if err := opts.Validate(); err != nil {
		return nil, &ConnectivityError{Op: "parse uri", Err: err}
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, &ConnectivityError{Op: "connect", Err: err}
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &ConnectivityError{Op: "ping", Err: err}
	}

	return client, nil
}

// Target bundles the collection-level handles the pipeline writes through.
type Target struct {
	Database   string
	Collection string

	Bulk    BulkWriter
	Indexes IndexCreator
	Roles   RoleAdmin
	Counter DocumentCounter
}

// NewTarget binds a Target to database/collection on client.
func NewTarget(client *mongo.Client, database, collection string) *Target {
	mdb := client.Database(database)
	coll := mdb.Collection(collection)
	return &Target{
		Database:   database,
		Collection: collection,
		Bulk:       coll,
		Indexes:    coll.Indexes(),
		Roles:      NewMongoRoleAdmin(mdb),
		Counter:    coll,
	}
}

// DocumentCounter is satisfied by *mongo.Collection.
type DocumentCounter interface {
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

package ingest_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gyeh/medload/internal/db"
	"github.com/gyeh/medload/internal/ingest"
	"github.com/gyeh/medload/internal/logging"
)

// mongoTarget connects to the deployment named by MEDLOAD_TEST_MONGO_URI and
// returns a target on a throwaway database. The test is skipped when the
// variable is unset or the server is unreachable.
func mongoTarget(t *testing.T) (*db.Target, *mongo.Client) {
	t.Helper()
	uri := os.Getenv("MEDLOAD_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MEDLOAD_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := db.Connect(ctx, uri, 5*time.Second)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	dbName := fmt.Sprintf("medload_test_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		mdb := client.Database(dbName)
		// Roles live in admin.system.roles and survive a database drop.
		_ = mdb.RunCommand(ctx, bson.D{{Key: "dropAllRolesFromDatabase", Value: 1}}).Err()
		_ = mdb.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db.NewTarget(client, dbName, "medical_records"), client
}

func TestIntegration_LoadTwoPatients(t *testing.T) {
	target, client := mongoTarget(t)
	ctx := context.Background()
	log := logging.Setup("text", "warn")

	cfg := testConfig(writeCSV(t, twoPatients))
	cfg.Database = target.Database
	cfg.Collection = target.Collection

	summary, err := ingest.Run(ctx, target, log, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.DocumentsInserted)
	assert.Len(t, summary.IndexesEnsured, 4)

	n, err := target.Counter.CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	t.Run("stored_shape", func(t *testing.T) {
		coll := client.Database(target.Database).Collection(target.Collection)
		var doc bson.M
		err := coll.FindOne(ctx, bson.D{{Key: "patient.name", Value: "Ali Hassan"}}).Decode(&doc)
		require.NoError(t, err)

		enc := doc["encounter"].(bson.M)
		amount, ok := enc["billingAmount"].(primitive.Decimal128)
		require.True(t, ok, "billingAmount is %T", enc["billingAmount"])
		assert.Equal(t, "1500.50", amount.String())

		admitted, ok := enc["admissionDate"].(primitive.DateTime)
		require.True(t, ok, "admissionDate is %T", enc["admissionDate"])
		assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), admitted.Time().UTC())

		pat := doc["patient"].(bson.M)
		assert.Equal(t, int32(1), pat["gender"])
		assert.Equal(t, int32(1), pat["bloodType"])
	})

	t.Run("indexes_present", func(t *testing.T) {
		cur, err := client.Database(target.Database).Collection(target.Collection).Indexes().List(ctx)
		require.NoError(t, err)
		var specs []bson.M
		require.NoError(t, cur.All(ctx, &specs))

		names := make(map[string]bool)
		for _, s := range specs {
			names[s["name"].(string)] = true
		}
		for _, want := range []string{"patient.name_1", "encounter.admissionDate_1", "encounter.hospital.id_1", "encounter.doctor.id_1"} {
			assert.True(t, names[want], "missing index %s", want)
		}
	})

	t.Run("roles_idempotent", func(t *testing.T) {
		second := db.EnsureRoles(ctx, target.Roles, db.DefaultRoles, zerolog.Nop())
		if summary.RolesFailed > 0 {
			t.Skipf("deployment rejected createRole (%d failures)", summary.RolesFailed)
		}
		assert.Equal(t, 0, second.Count(db.RoleCreated))
		assert.Equal(t, 0, second.Count(db.RoleFailed))
		assert.Equal(t, len(db.DefaultRoles), second.Count(db.RoleExists))
	})
}

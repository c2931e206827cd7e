package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RoleSpec is a named role with a set of actions on the whole database.
type RoleSpec struct {
	Name    string
	Actions []string
}

// DefaultRoles are the access roles declared on the target database.
var DefaultRoles = []RoleSpec{
	{Name: "DataModifier", Actions: []string{"find", "insert", "update", "remove"}},
	{Name: "StructureGestion", Actions: []string{"find", "createCollection", "createIndex", "dropIndex"}},
	{Name: "UsersAdmin", Actions: []string{"createUser", "dropUser", "grantRole", "revokeRole"}},
	{Name: "Gestionnaire", Actions: []string{"find", "insert", "update"}},
	{Name: "Utilisateur", Actions: []string{"find"}},
	{Name: "Consultant", Actions: nil},
}

// RoleAdmin checks for and declares database roles.
type RoleAdmin interface {
	RoleExists(ctx context.Context, name string) (bool, error)
	CreateRole(ctx context.Context, spec RoleSpec) error
}

// RoleOutcome is the result of provisioning one role.
type RoleOutcome int

const (
	RoleCreated RoleOutcome = iota
	RoleExists
	RoleFailed
)

func (o RoleOutcome) String() string {
	switch o {
	case RoleCreated:
		return "created"
	case RoleExists:
		return "already_exists"
	case RoleFailed:
		return "failed"
	}
	return fmt.Sprintf("RoleOutcome(%d)", int(o))
}

// RoleResult is the per-role entry of a RoleReport.
type RoleResult struct {
	Role    string
	Outcome RoleOutcome
	Err     error
}

// RoleReport collects the outcome of every role in one provisioning pass.
type RoleReport struct {
	Results  []RoleResult
	Duration time.Duration
}

// Count returns how many roles ended with outcome o.
func (r *RoleReport) Count(o RoleOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// EnsureRoles declares every role in specs that does not already exist.
// Failures are recorded per role and never abort the remaining roles.
func EnsureRoles(ctx context.Context, admin RoleAdmin, specs []RoleSpec, log zerolog.Logger) *RoleReport {
	start := time.Now()
	report := &RoleReport{Results: make([]RoleResult, 0, len(specs))}

	for _, spec := range specs {
		exists, err := admin.RoleExists(ctx, spec.Name)
		if err != nil {
			// Fall through to createRole; the server rejects true duplicates.
			log.Warn().Err(err).Str("role", spec.Name).Msg("role lookup failed")
		}
		if exists {
			log.Info().Str("role", spec.Name).Msg("role already exists")
			report.Results = append(report.Results, RoleResult{Role: spec.Name, Outcome: RoleExists})
			continue
		}

		if err := admin.CreateRole(ctx, spec); err != nil {
			log.Error().Err(err).Str("role", spec.Name).Msg("role creation failed")
			report.Results = append(report.Results, RoleResult{Role: spec.Name, Outcome: RoleFailed, Err: err})
			continue
		}
		log.Info().Str("role", spec.Name).Strs("actions", spec.Actions).Msg("role created")
		report.Results = append(report.Results, RoleResult{Role: spec.Name, Outcome: RoleCreated})
	}

	report.Duration = time.Since(start)
	log.Info().
		Int("created", report.Count(RoleCreated)).
		Int("existing", report.Count(RoleExists)).
		Int("failed", report.Count(RoleFailed)).
		Dur("duration", report.Duration).
		Msg("role provisioning complete")
	return report
}

// MongoRoleAdmin implements RoleAdmin with rolesInfo / createRole commands.
type MongoRoleAdmin struct {
	db *mongo.Database
}

func NewMongoRoleAdmin(db *mongo.Database) *MongoRoleAdmin {
	return &MongoRoleAdmin{db: db}
}

func (a *MongoRoleAdmin) RoleExists(ctx context.Context, name string) (bool, error) {
	var out struct {
		Roles []struct {
			Role string `bson:"role"`
		} `bson:"roles"`
	}
	err := a.db.RunCommand(ctx, bson.D{{Key: "rolesInfo", Value: name}}).Decode(&out)
	if err != nil {
		return false, &ConnectivityError{Op: "rolesInfo", Err: err}
	}
	for _, r := range out.Roles {
		if r.Role == name {
			return true, nil
		}
	}
	return false, nil
}

func (a *MongoRoleAdmin) CreateRole(ctx context.Context, spec RoleSpec) error {
	cmd := createRoleCommand(a.db.Name(), spec)
	if err := a.db.RunCommand(ctx, cmd).Err(); err != nil {
		return &ConnectivityError{Op: "createRole " + spec.Name, Err: err}
	}
	return nil
}

// createRoleCommand builds the createRole document. A role with no actions
// gets an empty privilege list, since the server rejects empty action sets.
func createRoleCommand(database string, spec RoleSpec) bson.D {
	privileges := bson.A{}
	if len(spec.Actions) > 0 {
		actions := bson.A{}
		for _, a := range spec.Actions {
			actions = append(actions, a)
		}
		privileges = append(privileges, bson.D{
			{Key: "resource", Value: bson.D{
				{Key: "db", Value: database},
				{Key: "collection", Value: ""},
			}},
			{Key: "actions", Value: actions},
		})
	}
	return bson.D{
		{Key: "createRole", Value: spec.Name},
		{Key: "privileges", Value: privileges},
		{Key: "roles", Value: bson.A{}},
	}
}

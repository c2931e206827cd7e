package db

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// memRoleAdmin is an in-memory RoleAdmin.
type memRoleAdmin struct {
	roles     map[string]RoleSpec
	creates   int
	failRole  string
	lookupErr error
}

func newMemRoleAdmin() *memRoleAdmin {
	return &memRoleAdmin{roles: make(map[string]RoleSpec)}
}

func (m *memRoleAdmin) RoleExists(ctx context.Context, name string) (bool, error) {
	if m.lookupErr != nil {
		return false, m.lookupErr
	}
	_, ok := m.roles[name]
	return ok, nil
}

func (m *memRoleAdmin) CreateRole(ctx context.Context, spec RoleSpec) error {
	m.creates++
	if spec.Name == m.failRole {
		return errors.New("not authorized on medical_db to execute command")
	}
	if _, ok := m.roles[spec.Name]; ok {
		return errors.New("Role already exists")
	}
	m.roles[spec.Name] = spec
	return nil
}

func TestEnsureRoles_CreatesAll(t *testing.T) {
	admin := newMemRoleAdmin()
	report := EnsureRoles(context.Background(), admin, DefaultRoles, zerolog.Nop())

	require.Len(t, report.Results, 6)
	assert.Equal(t, 6, report.Count(RoleCreated))
	assert.Len(t, admin.roles, 6)
	assert.Equal(t, []string{"find"}, admin.roles["Utilisateur"].Actions)
	assert.Empty(t, admin.roles["Consultant"].Actions)
}

func TestEnsureRoles_Idempotent(t *testing.T) {
	admin := newMemRoleAdmin()
	EnsureRoles(context.Background(), admin, DefaultRoles, zerolog.Nop())
	second := EnsureRoles(context.Background(), admin, DefaultRoles, zerolog.Nop())

	assert.Equal(t, 6, second.Count(RoleExists))
	assert.Equal(t, 0, second.Count(RoleCreated))
	assert.Equal(t, 0, second.Count(RoleFailed))
	assert.Equal(t, 6, admin.creates)
	assert.Len(t, admin.roles, 6)
}

func TestEnsureRoles_FailureDoesNotAbort(t *testing.T) {
	admin := newMemRoleAdmin()
	admin.failRole = "UsersAdmin"
	report := EnsureRoles(context.Background(), admin, DefaultRoles, zerolog.Nop())

	require.Len(t, report.Results, 6)
	assert.Equal(t, 5, report.Count(RoleCreated))
	assert.Equal(t, 1, report.Count(RoleFailed))
	assert.Equal(t, "UsersAdmin", report.Results[2].Role)
	assert.Equal(t, RoleFailed, report.Results[2].Outcome)
	assert.Error(t, report.Results[2].Err)
	assert.Contains(t, admin.roles, "Consultant")
}

func TestEnsureRoles_LookupFailureStillCreates(t *testing.T) {
	admin := newMemRoleAdmin()
	admin.lookupErr = errors.New("rolesInfo unavailable")
	report := EnsureRoles(context.Background(), admin, DefaultRoles[:2], zerolog.Nop())
	assert.Equal(t, 2, report.Count(RoleCreated))
}

func TestRoleOutcome_String(t *testing.T) {
	assert.Equal(t, "created", RoleCreated.String())
	assert.Equal(t, "already_exists", RoleExists.String())
	assert.Equal(t, "failed", RoleFailed.String())
}

func TestCreateRoleCommand(t *testing.T) {
	cmd := createRoleCommand("medical_db", DefaultRoles[0])
	raw, err := bson.Marshal(cmd)
	require.NoError(t, err)

	var got struct {
		CreateRole string `bson:"createRole"`
		Privileges []struct {
			Resource struct {
				DB         string `bson:"db"`
				Collection string `bson:"collection"`
			} `bson:"resource"`
			Actions []string `bson:"actions"`
		} `bson:"privileges"`
		Roles []string `bson:"roles"`
	}
	require.NoError(t, bson.Unmarshal(raw, &got))

	assert.Equal(t, "DataModifier", got.CreateRole)
	require.Len(t, got.Privileges, 1)
	assert.Equal(t, "medical_db", got.Privileges[0].Resource.DB)
	assert.Equal(t, "", got.Privileges[0].Resource.Collection)
	assert.Equal(t, []string{"find", "insert", "update", "remove"}, got.Privileges[0].Actions)
	assert.Empty(t, got.Roles)
	assert.Equal(t, "createRole", cmd[0].Key)
}

func TestCreateRoleCommand_NoActions(t *testing.T) {
	cmd := createRoleCommand("medical_db", RoleSpec{Name: "Consultant"})
	assert.Equal(t, bson.A{}, cmd[1].Value)
}

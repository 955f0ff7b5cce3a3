package service_test

import (
	"context"
	"testing"
	"time"

	"evote-service/internal/adapters/kafka"
	"evote-service/internal/models"
	"evote-service/internal/server/repository"
	"evote-service/internal/server/service"
	"evote-service/internal/server/testutil"
	"evote-service/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRoleService(db *gorm.DB) *service.RoleService {
	audit := service.NewAuditService(repository.NewAuditRepository(db), kafka.NopPublisher{})
	return service.NewRoleService(
		repository.NewRoleRepository(db),
		repository.NewElectionRepository(db),
		audit,
	)
}

func TestRequestJoin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newRoleService(db)

	voter := testutil.CreateUser(t, db, "voter")
	org := testutil.CreateOrganization(t, db, voter.ID)
	election := testutil.OngoingElection(t, db, org.ID)

	role, err := svc.RequestJoin(context.Background(), voter.ID, election.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVoter, role.Role)
	assert.Equal(t, models.RoleStatusApproved, role.Status)
	assert.Equal(t, election.ID, role.ElectionID)

	// One role per user per election
	_, err = svc.RequestJoin(context.Background(), voter.ID, election.Token)
	assert.ErrorIs(t, err, response.ErrAlreadyJoined)
}

func TestRequestJoinUnapprovedElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newRoleService(db)

	voter := testutil.CreateUser(t, db, "voter")
	org := testutil.CreateOrganization(t, db, voter.ID)
	now := time.Now().UTC()
	pending := testutil.CreateElection(t, db, org.ID, models.ApprovalPending, now.Add(-time.Hour), now.Add(time.Hour))

	// An unapproved election is indistinguishable from a missing one
	_, err := svc.RequestJoin(context.Background(), voter.ID, pending.Token)
	assert.ErrorIs(t, err, response.ErrElectionNotFound)

	_, err = svc.RequestJoin(context.Background(), voter.ID, "no-such-code")
	assert.ErrorIs(t, err, response.ErrElectionNotFound)
}

func TestSetRoleApproval(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newRoleService(db)

	admin := testutil.CreateUser(t, db, "admin")
	applicant := testutil.CreateUser(t, db, "applicant")
	org := testutil.CreateOrganization(t, db, admin.ID)
	election := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, admin.ID, election.ID, org.ID, models.RoleAdmin, models.RoleStatusApproved)
	pending := testutil.GrantRole(t, db, applicant.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusPending)

	updated, err := svc.SetApproval(context.Background(), pending.ID, models.RoleStatusApproved, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, admin.ID, *updated.ApprovedBy)

	// Only pending roles transition; a decided role conflicts
	_, err = svc.SetApproval(context.Background(), pending.ID, models.RoleStatusRejected, admin.ID)
	assert.ErrorIs(t, err, response.ErrRoleNotPending)

	var after models.Role
	require.NoError(t, db.First(&after, pending.ID).Error)
	assert.Equal(t, models.RoleStatusApproved, after.Status, "the decided state must not flip")
}

func TestSetRoleApprovalRequiresAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newRoleService(db)

	admin := testutil.CreateUser(t, db, "admin")
	applicant := testutil.CreateUser(t, db, "applicant")
	bystander := testutil.CreateUser(t, db, "bystander")
	org := testutil.CreateOrganization(t, db, admin.ID)
	election := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, admin.ID, election.ID, org.ID, models.RoleAdmin, models.RoleStatusApproved)
	pending := testutil.GrantRole(t, db, applicant.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusPending)

	_, err := svc.SetApproval(context.Background(), pending.ID, models.RoleStatusApproved, bystander.ID)
	assert.ErrorIs(t, err, response.ErrForbidden)

	// Even the applicant may not approve themselves
	_, err = svc.SetApproval(context.Background(), pending.ID, models.RoleStatusApproved, applicant.ID)
	assert.ErrorIs(t, err, response.ErrForbidden)

	_, err = svc.SetApproval(context.Background(), pending.ID+100, models.RoleStatusApproved, admin.ID)
	assert.ErrorIs(t, err, response.ErrRoleNotFound)
}

func TestRolesForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newRoleService(db)

	user := testutil.CreateUser(t, db, "user")
	org := testutil.CreateOrganization(t, db, user.ID)
	first := testutil.OngoingElection(t, db, org.ID)
	second := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, user.ID, first.ID, org.ID, models.RoleVoter, models.RoleStatusApproved)
	testutil.GrantRole(t, db, user.ID, second.ID, org.ID, models.RoleAdmin, models.RoleStatusPending)

	roles, err := svc.RolesForUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

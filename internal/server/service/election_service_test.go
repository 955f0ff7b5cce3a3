package service_test

import (
	"context"
	"strings"
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

func newElectionService(db *gorm.DB) *service.ElectionService {
	audit := service.NewAuditService(repository.NewAuditRepository(db), kafka.NopPublisher{})
	return service.NewElectionService(
		repository.NewElectionRepository(db),
		repository.NewOrganizationRepository(db),
		repository.NewRoleRepository(db),
		repository.NewNotificationRepository(db),
		audit,
	)
}

func workspaceRequest(slug string) models.CreateElectionRequest {
	now := time.Now().UTC()
	return models.CreateElectionRequest{
		Title:            "Board Election",
		OrganizationSlug: slug,
		StartDate:        now.Add(time.Hour),
		EndDate:          now.Add(48 * time.Hour),
	}
}

func TestRequestWorkspace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newElectionService(db)

	requester := testutil.CreateUser(t, db, "requester")

	election, role, err := svc.RequestWorkspace(context.Background(), requester.ID, workspaceRequest("acme"))
	require.NoError(t, err)

	assert.Equal(t, models.ApprovalPending, election.Approval)
	assert.True(t, strings.HasPrefix(election.Token, "acme-"))
	assert.Equal(t, models.RoleAdmin, role.Role)
	assert.Equal(t, models.RoleStatusPending, role.Status, "the admin role waits for super-admin approval")

	// The organization was created on first use and is reused afterwards
	second, _, err := svc.RequestWorkspace(context.Background(), requester.ID, workspaceRequest("acme"))
	require.NoError(t, err)
	assert.Equal(t, election.OrganizationID, second.OrganizationID)
	assert.NotEqual(t, election.Token, second.Token)

	var orgs int64
	require.NoError(t, db.Model(&models.Organization{}).Where("slug = ?", "acme").Count(&orgs).Error)
	assert.Equal(t, int64(1), orgs)
}

func TestRequestWorkspaceValidatesWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newElectionService(db)

	requester := testutil.CreateUser(t, db, "requester")
	req := workspaceRequest("acme")
	req.EndDate = req.StartDate

	_, _, err := svc.RequestWorkspace(context.Background(), requester.ID, req)
	assert.ErrorIs(t, err, response.ErrValidation)

	req.EndDate = req.StartDate.Add(-time.Hour)
	_, _, err = svc.RequestWorkspace(context.Background(), requester.ID, req)
	assert.ErrorIs(t, err, response.ErrValidation)
}

func TestApproveElectionCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newElectionService(db)

	requester := testutil.CreateUser(t, db, "requester")
	super := testutil.CreateUser(t, db, "super")
	testutil.GrantSuperAdmin(t, db, super.ID)

	election, role, err := svc.RequestWorkspace(context.Background(), requester.ID, workspaceRequest("acme"))
	require.NoError(t, err)

	require.NoError(t, svc.ApproveElection(context.Background(), election.ID, super.ID))

	var after models.Election
	require.NoError(t, db.First(&after, election.ID).Error)
	assert.Equal(t, models.ApprovalApproved, after.Approval)
	require.NotNil(t, after.ApprovedBy)
	assert.Equal(t, super.ID, *after.ApprovedBy)

	// The pending admin role rode along
	var adminRole models.Role
	require.NoError(t, db.First(&adminRole, role.ID).Error)
	assert.Equal(t, models.RoleStatusApproved, adminRole.Status)

	// And the requester was told
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", requester.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, election.ID, notifications[0].ElectionID)

	// Re-reviewing a decided election conflicts
	err = svc.ApproveElection(context.Background(), election.ID, super.ID)
	assert.ErrorIs(t, err, response.ErrRoleNotPending)
}

func TestRejectElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newElectionService(db)

	requester := testutil.CreateUser(t, db, "requester")
	super := testutil.CreateUser(t, db, "super")
	testutil.GrantSuperAdmin(t, db, super.ID)

	election, role, err := svc.RequestWorkspace(context.Background(), requester.ID, workspaceRequest("acme"))
	require.NoError(t, err)

	require.NoError(t, svc.RejectElection(context.Background(), election.ID, super.ID, "duplicate request"))

	var after models.Election
	require.NoError(t, db.First(&after, election.ID).Error)
	assert.Equal(t, models.ApprovalRejected, after.Approval)
	assert.Equal(t, "duplicate request", after.RejectionReason)

	var adminRole models.Role
	require.NoError(t, db.First(&adminRole, role.ID).Error)
	assert.Equal(t, models.RoleStatusRejected, adminRole.Status)
}

func TestReviewRequiresSuperAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newElectionService(db)

	requester := testutil.CreateUser(t, db, "requester")
	election, _, err := svc.RequestWorkspace(context.Background(), requester.ID, workspaceRequest("acme"))
	require.NoError(t, err)

	// Not even the requesting admin may approve their own election
	err = svc.ApproveElection(context.Background(), election.ID, requester.ID)
	assert.ErrorIs(t, err, response.ErrForbidden)

	var after models.Election
	require.NoError(t, db.First(&after, election.ID).Error)
	assert.Equal(t, models.ApprovalPending, after.Approval)
}

func TestElectionsForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newElectionService(db)

	member := testutil.CreateUser(t, db, "member")
	outsider := testutil.CreateUser(t, db, "outsider")
	super := testutil.CreateUser(t, db, "super")
	testutil.GrantSuperAdmin(t, db, super.ID)

	org := testutil.CreateOrganization(t, db, member.ID)
	mine := testutil.OngoingElection(t, db, org.ID)
	other := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, member.ID, mine.ID, org.ID, models.RoleVoter, models.RoleStatusApproved)

	elections, err := svc.ElectionsForUser(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, elections, 1)
	assert.Equal(t, mine.ID, elections[0].ID)

	elections, err = svc.ElectionsForUser(context.Background(), outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, elections)

	// A super-admin sees every election
	elections, err = svc.ElectionsForUser(context.Background(), super.ID)
	require.NoError(t, err)
	assert.Len(t, elections, 2)
	_ = other
}

func TestGetByToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newElectionService(db)

	user := testutil.CreateUser(t, db, "user")
	org := testutil.CreateOrganization(t, db, user.ID)
	election := testutil.OngoingElection(t, db, org.ID)

	found, err := svc.GetByToken(context.Background(), election.Token)
	require.NoError(t, err)
	assert.Equal(t, election.ID, found.ID)

	_, err = svc.GetByToken(context.Background(), "no-such-code")
	assert.ErrorIs(t, err, response.ErrElectionNotFound)
}

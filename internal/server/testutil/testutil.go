// Package testutil provides database setup and fixtures shared by the
// service and repository tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"evote-service/internal/adapters/database"
	"evote-service/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Uint64

// SetupTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to a single connection: each in-memory SQLite
// connection is its own database, and it also serializes the concurrency
// tests the way a real server serializes on row locks.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// CreateUser inserts a user with a unique email.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@example.com", name, seq.Add(1)),
		Password: "not-a-real-hash",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// CreateOrganization inserts an organization with a unique slug.
func CreateOrganization(t *testing.T, db *gorm.DB, createdBy uint) *models.Organization {
	t.Helper()

	org := &models.Organization{
		Slug:      fmt.Sprintf("org-%d", seq.Add(1)),
		Name:      "Test Organization",
		CreatedBy: createdBy,
		Status:    models.OrganizationActive,
	}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("Failed to create organization: %v", err)
	}
	return org
}

// CreateElection inserts an election with the given approval state and
// voting window.
func CreateElection(t *testing.T, db *gorm.DB, orgID uint, approval string, start, end time.Time) *models.Election {
	t.Helper()

	election := &models.Election{
		Title:          "Test Election",
		OrganizationID: orgID,
		Token:          fmt.Sprintf("test-%d", seq.Add(1)),
		StartDate:      start,
		EndDate:        end,
		CreatedBy:      1,
		Approval:       approval,
	}
	if err := db.Create(election).Error; err != nil {
		t.Fatalf("Failed to create election: %v", err)
	}
	return election
}

// OngoingElection inserts an approved election whose voting window is open
// right now.
func OngoingElection(t *testing.T, db *gorm.DB, orgID uint) *models.Election {
	t.Helper()
	now := time.Now().UTC()
	return CreateElection(t, db, orgID, models.ApprovalApproved, now.Add(-time.Hour), now.Add(time.Hour))
}

// ClosedElection inserts an approved election whose voting window has
// already passed.
func ClosedElection(t *testing.T, db *gorm.DB, orgID uint) *models.Election {
	t.Helper()
	now := time.Now().UTC()
	return CreateElection(t, db, orgID, models.ApprovalApproved, now.Add(-2*time.Hour), now.Add(-time.Hour))
}

// GrantRole binds a user to an election.
func GrantRole(t *testing.T, db *gorm.DB, userID, electionID, orgID uint, role, status string) *models.Role {
	t.Helper()

	r := &models.Role{
		UserID:         userID,
		ElectionID:     electionID,
		OrganizationID: orgID,
		Role:           role,
		Status:         status,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("Failed to create role: %v", err)
	}
	return r
}

// GrantSuperAdmin gives a user the system-wide super-admin role.
func GrantSuperAdmin(t *testing.T, db *gorm.DB, userID uint) *models.Role {
	t.Helper()
	return GrantRole(t, db, userID, models.SystemElectionID, 0, models.RoleSuperAdmin, models.RoleStatusApproved)
}

// CreatePosition inserts an active position.
func CreatePosition(t *testing.T, db *gorm.DB, electionID uint, title string, maxCandidates uint) *models.Position {
	t.Helper()

	position := &models.Position{
		ElectionID:    electionID,
		Title:         title,
		MaxCandidates: maxCandidates,
		Status:        models.PositionActive,
	}
	if err := db.Create(position).Error; err != nil {
		t.Fatalf("Failed to create position: %v", err)
	}
	return position
}

// CreateCandidate inserts an active candidate.
func CreateCandidate(t *testing.T, db *gorm.DB, electionID, positionID uint, name string) *models.Candidate {
	t.Helper()

	candidate := &models.Candidate{
		ElectionID: electionID,
		PositionID: positionID,
		Name:       name,
		Status:     models.CandidateActive,
	}
	if err := db.Create(candidate).Error; err != nil {
		t.Fatalf("Failed to create candidate: %v", err)
	}
	return candidate
}

// CreateVoterToken inserts an unused voter token.
func CreateVoterToken(t *testing.T, db *gorm.DB, electionID, orgID uint, token string, expiresAt time.Time) *models.VoterToken {
	t.Helper()

	vt := &models.VoterToken{
		Token:          token,
		ElectionID:     electionID,
		OrganizationID: orgID,
		ExpiresAt:      expiresAt,
	}
	if err := db.Create(vt).Error; err != nil {
		t.Fatalf("Failed to create voter token: %v", err)
	}
	return vt
}

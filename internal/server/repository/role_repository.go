package repository

import (
	"context"
	"errors"
	"time"

	"evote-service/internal/models"
	"evote-service/pkg/response"

	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// CreateRole creates a role record. The unique index on (user, election)
// rejects a second role for the same pair.
func (r *RoleRepository) CreateRole(ctx context.Context, role *models.Role) error {
	err := r.db.WithContext(ctx).Create(role).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.ErrAlreadyJoined
	}
	return err
}

// GetByID finds a role by id
func (r *RoleRepository) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).First(&role, id).Error
	return &role, err
}

// Find returns the role binding a user to an election, if any
func (r *RoleRepository) Find(ctx context.Context, userID, electionID uint) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND election_id = ?", userID, electionID).
		First(&role).Error
	return &role, err
}

// ListByUser returns all roles held by a user, newest first
func (r *RoleRepository) ListByUser(ctx context.Context, userID uint) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&roles).Error
	return roles, err
}

// ListByElection returns roles for an election, optionally filtered by role
func (r *RoleRepository) ListByElection(ctx context.Context, electionID uint, role string) ([]models.Role, error) {
	q := r.db.WithContext(ctx).Where("election_id = ?", electionID)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var roles []models.Role
	err := q.Find(&roles).Error
	return roles, err
}

// SetStatus transitions a pending role to approved or rejected. The guard on
// the current status makes re-approval of a terminal role a no-op, reported
// as ErrRoleNotPending.
func (r *RoleRepository) SetStatus(ctx context.Context, roleID uint, status string, actorID uint, at time.Time) (*models.Role, error) {
	res := r.db.WithContext(ctx).Model(&models.Role{}).
		Where("id = ? AND status = ?", roleID, models.RoleStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_by": actorID,
			"approved_at": at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var role models.Role
		if err := r.db.WithContext(ctx).First(&role, roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.ErrRoleNotFound
			}
			return nil, err
		}
		return nil, response.ErrRoleNotPending
	}
	return r.GetByID(ctx, roleID)
}

// SetStatusForElectionAdmins transitions every pending admin role of an
// election, returning the affected roles for notification fan-out.
func (r *RoleRepository) SetStatusForElectionAdmins(ctx context.Context, electionID uint, status string, actorID uint, at time.Time) ([]models.Role, error) {
	var pending []models.Role
	err := r.db.WithContext(ctx).
		Where("election_id = ? AND role = ? AND status = ?", electionID, models.RoleAdmin, models.RoleStatusPending).
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if _, err := r.SetStatus(ctx, pending[i].ID, status, actorID, at); err != nil {
			return nil, err
		}
		pending[i].Status = status
	}
	return pending, nil
}

// HasApprovedRole reports whether the user holds an approved role of one of
// the given kinds for the election.
func (r *RoleRepository) HasApprovedRole(ctx context.Context, userID, electionID uint, kinds ...string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Role{}).
		Where("user_id = ? AND election_id = ? AND status = ? AND role IN ?",
			userID, electionID, models.RoleStatusApproved, kinds).
		Count(&count).Error
	return count > 0, err
}

// IsSuperAdmin reports whether the user holds the system-wide superAdmin role.
func (r *RoleRepository) IsSuperAdmin(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Role{}).
		Where("user_id = ? AND election_id = ? AND role = ? AND status = ?",
			userID, models.SystemElectionID, models.RoleSuperAdmin, models.RoleStatusApproved).
		Count(&count).Error
	return count > 0, err
}

// CountApprovedVoters counts approved voter roles for an election.
func (r *RoleRepository) CountApprovedVoters(ctx context.Context, electionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Role{}).
		Where("election_id = ? AND role = ? AND status = ?",
			electionID, models.RoleVoter, models.RoleStatusApproved).
		Count(&count).Error
	return count, err
}

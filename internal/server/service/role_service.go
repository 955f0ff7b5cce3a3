package service

import (
	"context"
	"errors"
	"time"

	"evote-service/internal/models"
	"evote-service/internal/server/repository"
	"evote-service/pkg/response"

	"gorm.io/gorm"
)

type RoleService struct {
	roleRepo     *repository.RoleRepository
	electionRepo *repository.ElectionRepository
	audit        *AuditService
}

func NewRoleService(roleRepo *repository.RoleRepository, electionRepo *repository.ElectionRepository, audit *AuditService) *RoleService {
	return &RoleService{
		roleRepo:     roleRepo,
		electionRepo: electionRepo,
		audit:        audit,
	}
}

// RequestJoin registers a user as an approved voter of the election behind
// the join code. Unknown or unapproved elections are indistinguishable.
func (s *RoleService) RequestJoin(ctx context.Context, userID uint, electionToken string) (*models.Role, error) {
	election, err := s.electionRepo.GetApprovedByToken(ctx, electionToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrElectionNotFound
		}
		return nil, err
	}

	role := &models.Role{
		UserID:         userID,
		ElectionID:     election.ID,
		OrganizationID: election.OrganizationID,
		Role:           models.RoleVoter,
		Status:         models.RoleStatusApproved,
	}
	if err := s.roleRepo.CreateRole(ctx, role); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, userID, models.ActionJoinElection, election.ID, election.OrganizationID, map[string]interface{}{
		"election_token": electionToken,
		"election_title": election.Title,
	})

	return role, nil
}

// SetApproval transitions a pending role to approved or rejected. The actor
// must be an approved admin of the election or a super-admin.
func (s *RoleService) SetApproval(ctx context.Context, roleID uint, status string, actorID uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrRoleNotFound
		}
		return nil, err
	}

	allowed, err := s.isElectionAdmin(ctx, actorID, role.ElectionID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, response.ErrForbidden
	}

	updated, err := s.roleRepo.SetStatus(ctx, roleID, status, actorID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	action := models.ActionApproveRole
	if status == models.RoleStatusRejected {
		action = models.ActionRejectRole
	}
	s.audit.Log(ctx, actorID, action, role.ElectionID, role.OrganizationID, map[string]interface{}{
		"role_id":        roleID,
		"target_user_id": role.UserID,
	})

	return updated, nil
}

// RolesForUser lists a user's roles, newest first.
func (s *RoleService) RolesForUser(ctx context.Context, userID uint) ([]models.Role, error) {
	return s.roleRepo.ListByUser(ctx, userID)
}

func (s *RoleService) isElectionAdmin(ctx context.Context, userID, electionID uint) (bool, error) {
	ok, err := s.roleRepo.HasApprovedRole(ctx, userID, electionID, models.RoleAdmin, models.RoleSuperAdmin)
	if err != nil || ok {
		return ok, err
	}
	return s.roleRepo.IsSuperAdmin(ctx, userID)
}

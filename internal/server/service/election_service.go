package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"evote-service/internal/models"
	"evote-service/internal/server/repository"
	"evote-service/pkg/response"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

type ElectionService struct {
	electionRepo     *repository.ElectionRepository
	organizationRepo *repository.OrganizationRepository
	roleRepo         *repository.RoleRepository
	notificationRepo *repository.NotificationRepository
	audit            *AuditService
}

func NewElectionService(
	electionRepo *repository.ElectionRepository,
	organizationRepo *repository.OrganizationRepository,
	roleRepo *repository.RoleRepository,
	notificationRepo *repository.NotificationRepository,
	audit *AuditService,
) *ElectionService {
	return &ElectionService{
		electionRepo:     electionRepo,
		organizationRepo: organizationRepo,
		roleRepo:         roleRepo,
		notificationRepo: notificationRepo,
		audit:            audit,
	}
}

// RequestWorkspace creates a pending election plus a pending admin role for
// the requester. The organization is created on first use.
func (s *ElectionService) RequestWorkspace(ctx context.Context, userID uint, req models.CreateElectionRequest) (*models.Election, *models.Role, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, nil, response.ErrValidation
	}

	org, err := s.organizationRepo.FindOrCreate(ctx, req.OrganizationSlug, userID)
	if err != nil {
		return nil, nil, err
	}

	suffix, err := gonanoid.New(8)
	if err != nil {
		return nil, nil, err
	}

	election := &models.Election{
		Title:          req.Title,
		Description:    req.Description,
		OrganizationID: org.ID,
		Token:          fmt.Sprintf("%s-%s", org.Slug, suffix),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		CreatedBy:      userID,
		Approval:       models.ApprovalPending,
	}
	if err := s.electionRepo.CreateElection(ctx, election); err != nil {
		return nil, nil, err
	}

	role := &models.Role{
		UserID:         userID,
		ElectionID:     election.ID,
		OrganizationID: org.ID,
		Role:           models.RoleAdmin,
		Status:         models.RoleStatusPending,
	}
	if err := s.roleRepo.CreateRole(ctx, role); err != nil {
		return nil, nil, err
	}

	s.audit.Log(ctx, userID, models.ActionRequestWorkspace, election.ID, org.ID, map[string]interface{}{
		"election_title": election.Title,
		"election_token": election.Token,
	})

	return election, role, nil
}

// ApproveElection approves a pending election and cascades to its pending
// admin roles. Super-admin only.
func (s *ElectionService) ApproveElection(ctx context.Context, electionID, actorID uint) error {
	return s.review(ctx, electionID, actorID, models.ApprovalApproved, "")
}

// RejectElection rejects a pending election and cascades to its pending
// admin roles. Super-admin only.
func (s *ElectionService) RejectElection(ctx context.Context, electionID, actorID uint, reason string) error {
	return s.review(ctx, electionID, actorID, models.ApprovalRejected, reason)
}

func (s *ElectionService) review(ctx context.Context, electionID, actorID uint, approval, reason string) error {
	isSuper, err := s.roleRepo.IsSuperAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !isSuper {
		return response.ErrForbidden
	}

	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrElectionNotFound
		}
		return err
	}
	if election.Approval != models.ApprovalPending {
		return response.ErrRoleNotPending
	}

	now := time.Now().UTC()
	if err := s.electionRepo.SetApproval(ctx, electionID, approval, actorID, reason, now); err != nil {
		return err
	}

	roleStatus := models.RoleStatusApproved
	action := models.ActionApproveElection
	title := "Your election request has been approved"
	if approval == models.ApprovalRejected {
		roleStatus = models.RoleStatusRejected
		action = models.ActionRejectElection
		title = "Your election request has been rejected"
	}

	admins, err := s.roleRepo.SetStatusForElectionAdmins(ctx, electionID, roleStatus, actorID, now)
	if err != nil {
		return err
	}
	for _, admin := range admins {
		_ = s.notificationRepo.Create(ctx, &models.Notification{
			UserID:     admin.UserID,
			Title:      title,
			Message:    reason,
			Type:       models.NotificationInfo,
			ElectionID: electionID,
		})
	}

	s.audit.Log(ctx, actorID, action, electionID, election.OrganizationID, map[string]interface{}{
		"reason": reason,
	})
	return nil
}

// GetByToken resolves an election by its public join code.
func (s *ElectionService) GetByToken(ctx context.Context, token string) (*models.Election, error) {
	election, err := s.electionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrElectionNotFound
		}
		return nil, err
	}
	return election, nil
}

// ElectionsForUser lists the elections the user holds a role in. A
// super-admin sees all of them.
func (s *ElectionService) ElectionsForUser(ctx context.Context, userID uint) ([]models.Election, error) {
	isSuper, err := s.roleRepo.IsSuperAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if isSuper {
		return s.electionRepo.ListAll(ctx)
	}

	roles, err := s.roleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(roles))
	for _, role := range roles {
		if role.ElectionID != models.SystemElectionID {
			ids = append(ids, role.ElectionID)
		}
	}
	return s.electionRepo.ListByIDs(ctx, ids)
}

package service

import (
	"context"
	"errors"

	"evote-service/internal/models"
	"evote-service/internal/server/repository"
	"evote-service/pkg/response"

	"gorm.io/gorm"
)

type PositionService struct {
	positionRepo *repository.PositionRepository
	electionRepo *repository.ElectionRepository
	authz        *Authorizer
}

func NewPositionService(positionRepo *repository.PositionRepository, electionRepo *repository.ElectionRepository, authz *Authorizer) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
		electionRepo: electionRepo,
		authz:        authz,
	}
}

// AddPosition creates a new seat in an election. Admin only.
func (s *PositionService) AddPosition(ctx context.Context, actorID, electionID uint, req models.AddPositionRequest) (*models.Position, error) {
	if req.MaxCandidates < 1 {
		return nil, response.ErrValidation
	}
	if _, err := s.electionRepo.GetByID(ctx, electionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrElectionNotFound
		}
		return nil, err
	}
	if err := s.authz.RequireElectionAdmin(ctx, actorID, electionID); err != nil {
		return nil, err
	}

	position := &models.Position{
		ElectionID:    electionID,
		Title:         req.Title,
		Description:   req.Description,
		MaxCandidates: req.MaxCandidates,
		Status:        models.PositionActive,
	}
	if err := s.positionRepo.AddPosition(ctx, position); err != nil {
		return nil, err
	}
	return position, nil
}

// UpdatePosition applies field updates to a position. Admin only.
func (s *PositionService) UpdatePosition(ctx context.Context, actorID, positionID uint, req models.UpdatePositionRequest) (*models.Position, error) {
	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireElectionAdmin(ctx, actorID, position.ElectionID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.MaxCandidates > 0 {
		updates["max_candidates"] = req.MaxCandidates
	}
	if len(updates) > 0 {
		if err := s.positionRepo.UpdatePosition(ctx, positionID, updates); err != nil {
			return nil, err
		}
	}
	return s.positionRepo.GetByID(ctx, positionID)
}

// DeletePosition soft-deletes a position; it fails while non-deleted
// candidates still reference it. Admin only.
func (s *PositionService) DeletePosition(ctx context.Context, actorID, positionID uint) error {
	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		return err
	}
	if err := s.authz.RequireElectionAdmin(ctx, actorID, position.ElectionID); err != nil {
		return err
	}
	return s.positionRepo.DeletePosition(ctx, positionID)
}

// Positions lists the non-deleted positions of an election in ballot order.
func (s *PositionService) Positions(ctx context.Context, electionID uint) ([]models.Position, error) {
	return s.positionRepo.ListByElection(ctx, electionID)
}

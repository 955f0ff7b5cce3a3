package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"evote-service/internal/adapters/database"
	"evote-service/internal/models"
	"evote-service/internal/server/repository"
	"evote-service/pkg/response"
)

type CandidateService struct {
	candidateRepo *repository.CandidateRepository
	positionRepo  *repository.PositionRepository
	images        database.ImageStore
	authz         *Authorizer
}

func NewCandidateService(candidateRepo *repository.CandidateRepository, positionRepo *repository.PositionRepository, images database.ImageStore, authz *Authorizer) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
		positionRepo:  positionRepo,
		images:        images,
		authz:         authz,
	}
}

// AddCandidate registers a candidate for a position, enforcing the
// position's capacity. The photo upload happens after the record exists; an
// upload failure is reported as a warning, not a rollback. Admin only.
func (s *CandidateService) AddCandidate(ctx context.Context, actorID, electionID uint, req models.AddCandidateRequest, image *multipart.FileHeader) (*models.CandidateResponse, error) {
	if err := s.authz.RequireElectionAdmin(ctx, actorID, electionID); err != nil {
		return nil, err
	}
	position, err := s.positionRepo.GetByID(ctx, req.PositionID)
	if err != nil {
		return nil, err
	}
	if position.ElectionID != electionID {
		return nil, response.ErrPositionNotFound
	}

	candidate := &models.Candidate{
		ElectionID:  electionID,
		PositionID:  req.PositionID,
		Name:        req.Name,
		Description: req.Description,
		Department:  req.Department,
		Platform:    req.Platform,
		Status:      models.CandidateActive,
	}
	if err := s.candidateRepo.AddCandidate(ctx, candidate, position.MaxCandidates); err != nil {
		return nil, err
	}

	resp := &models.CandidateResponse{Candidate: candidate}
	if image != nil {
		url, err := s.attachImage(ctx, candidate, image)
		if err != nil {
			slog.Error("Candidate image upload failed", "candidate_id", candidate.ID, "error", err)
			resp.Warning = "candidate created but image upload failed"
			return resp, nil
		}
		candidate.ImageURL = url
	}
	return resp, nil
}

// UpdateCandidate applies field updates; a new image replaces the bound one
// (the old object is orphaned, not cleaned up here). Admin only.
func (s *CandidateService) UpdateCandidate(ctx context.Context, actorID, candidateID uint, req models.UpdateCandidateRequest, image *multipart.FileHeader) (*models.CandidateResponse, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireElectionAdmin(ctx, actorID, candidate.ElectionID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Department != "" {
		updates["department"] = req.Department
	}
	if req.Platform != "" {
		updates["platform"] = req.Platform
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if len(updates) > 0 {
		if err := s.candidateRepo.UpdateCandidate(ctx, candidateID, updates); err != nil {
			return nil, err
		}
	}

	resp := &models.CandidateResponse{}
	if image != nil {
		if _, err := s.attachImage(ctx, candidate, image); err != nil {
			slog.Error("Candidate image upload failed", "candidate_id", candidate.ID, "error", err)
			resp.Warning = "candidate updated but image upload failed"
		}
	}

	resp.Candidate, err = s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteCandidate soft-deletes a candidate. Admin only.
func (s *CandidateService) DeleteCandidate(ctx context.Context, actorID, candidateID uint) error {
	candidate, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return err
	}
	if err := s.authz.RequireElectionAdmin(ctx, actorID, candidate.ElectionID); err != nil {
		return err
	}
	return s.candidateRepo.DeleteCandidate(ctx, candidateID)
}

// Candidates lists the non-deleted candidates of an election.
func (s *CandidateService) Candidates(ctx context.Context, electionID uint) ([]models.Candidate, error) {
	return s.candidateRepo.ListByElection(ctx, electionID)
}

func (s *CandidateService) attachImage(ctx context.Context, candidate *models.Candidate, image *multipart.FileHeader) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("image store not configured")
	}
	objectName := fmt.Sprintf("candidate-%d-%s", candidate.ID, image.Filename)
	url, err := s.images.UploadImage(ctx, objectName, image)
	if err != nil {
		return "", err
	}
	if err := s.candidateRepo.UpdateCandidate(ctx, candidate.ID, map[string]interface{}{"image_url": url}); err != nil {
		return "", err
	}
	return url, nil
}

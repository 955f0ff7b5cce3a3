package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"evote-service/internal/models"
	"evote-service/internal/server/repository"
	"evote-service/pkg/response"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const voterTokenLength = 8

// VoterTokenService issues and redeems single-use voting tokens. Redemption
// is the only path that mints a voter identity without registration.
type VoterTokenService struct {
	tokenRepo    *repository.VoterTokenRepository
	electionRepo *repository.ElectionRepository
	audit        *AuditService
	authz        *Authorizer
}

func NewVoterTokenService(tokenRepo *repository.VoterTokenRepository, electionRepo *repository.ElectionRepository, audit *AuditService, authz *Authorizer) *VoterTokenService {
	return &VoterTokenService{
		tokenRepo:    tokenRepo,
		electionRepo: electionRepo,
		audit:        audit,
		authz:        authz,
	}
}

// Issue generates count unique tokens for an election. Expiry defaults to
// the election's end date. A collision with an existing token for the same
// election re-rolls. Admin only.
func (s *VoterTokenService) Issue(ctx context.Context, actorID, electionID uint, count int, expiresAt *time.Time) ([]models.VoterToken, error) {
	if count < 1 {
		return nil, response.ErrValidation
	}

	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrElectionNotFound
		}
		return nil, err
	}
	if err := s.authz.RequireElectionAdmin(ctx, actorID, electionID); err != nil {
		return nil, err
	}

	expiry := election.EndDate
	if expiresAt != nil {
		expiry = *expiresAt
	}

	tokens := make([]models.VoterToken, 0, count)
	for i := 0; i < count; i++ {
		vt, err := s.createOne(ctx, election, expiry)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, *vt)
	}

	s.audit.Log(ctx, actorID, models.ActionIssueTokens, election.ID, election.OrganizationID, map[string]interface{}{
		"count": count,
	})
	return tokens, nil
}

func (s *VoterTokenService) createOne(ctx context.Context, election *models.Election, expiry time.Time) (*models.VoterToken, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := gonanoid.New(voterTokenLength)
		if err != nil {
			return nil, err
		}
		vt := &models.VoterToken{
			Token:          code,
			ElectionID:     election.ID,
			OrganizationID: election.OrganizationID,
			ExpiresAt:      expiry,
		}
		err = s.tokenRepo.CreateToken(ctx, vt)
		if err == nil {
			return vt, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not generate a unique voter token")
}

// Redeem consumes a token: it creates an anonymous identity with an approved
// voter role and flips the token to used, all atomically. Wrong token, wrong
// election and already-used all come back as the same NotFound.
func (s *VoterTokenService) Redeem(ctx context.Context, tokenStr, electionToken string) (*models.User, *models.Role, error) {
	election, err := s.electionRepo.GetByToken(ctx, electionToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.ErrNotFound
		}
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:      fmt.Sprintf("Voter %s", tokenStr),
		Email:     fmt.Sprintf("anonymous-%s@voter.local", uuid.NewString()),
		IsActive:  true,
		Anonymous: true,
		LastLogin: now,
	}
	role := &models.Role{}

	vt, err := s.tokenRepo.Redeem(ctx, tokenStr, election.ID, now, user, role)
	if err != nil {
		return nil, nil, err
	}

	s.audit.Log(ctx, user.ID, models.ActionRedeemToken, vt.ElectionID, vt.OrganizationID, nil)
	return user, role, nil
}

// Issued lists an election's tokens, newest first. Admin only.
func (s *VoterTokenService) Issued(ctx context.Context, actorID, electionID uint) ([]models.VoterToken, error) {
	if err := s.authz.RequireElectionAdmin(ctx, actorID, electionID); err != nil {
		return nil, err
	}
	return s.tokenRepo.ListByElection(ctx, electionID)
}

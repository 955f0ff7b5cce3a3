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

// VoteService is the write side of the ledger. There is deliberately no
// update or retraction method: a cast vote is final.
type VoteService struct {
	voteRepo      *repository.VoteRepository
	electionRepo  *repository.ElectionRepository
	roleRepo      *repository.RoleRepository
	positionRepo  *repository.PositionRepository
	candidateRepo *repository.CandidateRepository
	audit         *AuditService
	now           func() time.Time
}

func NewVoteService(
	voteRepo *repository.VoteRepository,
	electionRepo *repository.ElectionRepository,
	roleRepo *repository.RoleRepository,
	positionRepo *repository.PositionRepository,
	candidateRepo *repository.CandidateRepository,
	audit *AuditService,
) *VoteService {
	return &VoteService{
		voteRepo:      voteRepo,
		electionRepo:  electionRepo,
		roleRepo:      roleRepo,
		positionRepo:  positionRepo,
		candidateRepo: candidateRepo,
		audit:         audit,
		now:           time.Now,
	}
}

// WithClock overrides the service clock. Tests use it to move an election
// through its lifecycle without sleeping.
func (s *VoteService) WithClock(now func() time.Time) *VoteService {
	s.now = now
	return s
}

// CastVote validates the voter, the election window and the ballot, then
// records the vote through the ledger's atomic check-then-insert. Status and
// role checks run first so a closed election or an unapproved role never
// reaches the ledger.
func (s *VoteService) CastVote(ctx context.Context, voterID, electionID uint, req models.CastVoteRequest) (*models.Vote, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrElectionNotFound
		}
		return nil, err
	}
	if election.Approval != models.ApprovalApproved {
		return nil, response.ErrForbidden
	}
	if election.Status(s.now()) != models.ElectionOngoing {
		return nil, response.ErrForbidden
	}

	isVoter, err := s.roleRepo.HasApprovedRole(ctx, voterID, electionID, models.RoleVoter, models.RoleAdmin, models.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if !isVoter {
		return nil, response.ErrForbidden
	}

	position, err := s.positionRepo.GetByID(ctx, req.PositionID)
	if err != nil {
		return nil, err
	}
	if position.ElectionID != electionID {
		return nil, response.ErrPositionNotFound
	}

	candidate, err := s.candidateRepo.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if candidate.PositionID != req.PositionID || candidate.Status != models.CandidateActive {
		return nil, response.ErrCandidateNotFound
	}

	vote := &models.Vote{
		VoterID:        voterID,
		ElectionID:     electionID,
		PositionID:     req.PositionID,
		CandidateID:    req.CandidateID,
		OrganizationID: election.OrganizationID,
	}
	if err := s.voteRepo.CastVote(ctx, vote); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, voterID, models.ActionVoteCast, electionID, election.OrganizationID, map[string]interface{}{
		"vote_id":     vote.ID,
		"position_id": req.PositionID,
	})

	return vote, nil
}

// UserVotes returns the voter's votes in an election, newest first.
func (s *VoteService) UserVotes(ctx context.Context, voterID, electionID uint) ([]models.Vote, error) {
	return s.voteRepo.GetUserVotes(ctx, voterID, electionID)
}

// Progress reports ballot completeness: votes cast vs. positions on the
// ballot.
func (s *VoteService) Progress(ctx context.Context, voterID, electionID uint) (*models.VotingProgress, error) {
	votes, err := s.voteRepo.GetUserVotes(ctx, voterID, electionID)
	if err != nil {
		return nil, err
	}
	positions, err := s.positionRepo.CountByElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return &models.VotingProgress{
		VotesCast:      len(votes),
		TotalPositions: int(positions),
		Complete:       positions > 0 && len(votes) >= int(positions),
	}, nil
}

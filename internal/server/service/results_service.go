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

// ResultsService derives tallies from the vote ledger. Nothing is
// incrementally maintained: every view is a fresh full scan, so a tally can
// never drift from the ledger.
type ResultsService struct {
	voteRepo      *repository.VoteRepository
	electionRepo  *repository.ElectionRepository
	roleRepo      *repository.RoleRepository
	positionRepo  *repository.PositionRepository
	candidateRepo *repository.CandidateRepository
	audit         *AuditService
	now           func() time.Time
}

func NewResultsService(
	voteRepo *repository.VoteRepository,
	electionRepo *repository.ElectionRepository,
	roleRepo *repository.RoleRepository,
	positionRepo *repository.PositionRepository,
	candidateRepo *repository.CandidateRepository,
	audit *AuditService,
) *ResultsService {
	return &ResultsService{
		voteRepo:      voteRepo,
		electionRepo:  electionRepo,
		roleRepo:      roleRepo,
		positionRepo:  positionRepo,
		candidateRepo: candidateRepo,
		audit:         audit,
		now:           time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *ResultsService) WithClock(now func() time.Time) *ResultsService {
	s.now = now
	return s
}

// Tally counts votes per position per candidate.
func (s *ResultsService) Tally(ctx context.Context, electionID uint) (map[uint]map[uint]uint, uint, error) {
	votes, err := s.voteRepo.GetElectionVotes(ctx, electionID)
	if err != nil {
		return nil, 0, err
	}

	tally := make(map[uint]map[uint]uint)
	for _, vote := range votes {
		byCandidate, ok := tally[vote.PositionID]
		if !ok {
			byCandidate = make(map[uint]uint)
			tally[vote.PositionID] = byCandidate
		}
		byCandidate[vote.CandidateID]++
	}
	return tally, uint(len(votes)), nil
}

// Results produces the aggregated view for a caller. Non-admins get full
// counts only when the admin has made results visible AND the election has
// ended; both conditions are bypassed for admins. Otherwise the structure
// comes back redacted: positions and candidates listed, counts withheld.
func (s *ResultsService) Results(ctx context.Context, electionID, callerID uint) (*models.ElectionResults, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrElectionNotFound
		}
		return nil, err
	}

	isAdmin, err := s.roleRepo.HasApprovedRole(ctx, callerID, electionID, models.RoleAdmin, models.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		if isAdmin, err = s.roleRepo.IsSuperAdmin(ctx, callerID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	visible := (election.ResultsVisible || isAdmin) && (election.Ended(now) || isAdmin)

	positions, err := s.positionRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.candidateRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, err
	}

	results := &models.ElectionResults{
		ElectionID:  electionID,
		Redacted:    !visible,
		GeneratedAt: now,
	}

	byPosition := make(map[uint][]models.Candidate)
	for _, candidate := range candidates {
		byPosition[candidate.PositionID] = append(byPosition[candidate.PositionID], candidate)
	}

	if !visible {
		for _, position := range positions {
			pr := models.PositionResult{PositionID: position.ID, Title: position.Title}
			for _, candidate := range byPosition[position.ID] {
				pr.Candidates = append(pr.Candidates, models.CandidateTally{
					CandidateID: candidate.ID,
					Name:        candidate.Name,
				})
			}
			results.Positions = append(results.Positions, pr)
		}
		return results, nil
	}

	tally, totalVotes, err := s.Tally(ctx, electionID)
	if err != nil {
		return nil, err
	}
	results.TotalVotes = totalVotes

	for _, position := range positions {
		counts := tally[position.ID]
		pr := models.PositionResult{PositionID: position.ID, Title: position.Title}

		var max uint
		for _, candidate := range byPosition[position.ID] {
			votes := counts[candidate.ID]
			if votes > max {
				max = votes
			}
			pr.Candidates = append(pr.Candidates, models.CandidateTally{
				CandidateID: candidate.ID,
				Name:        candidate.Name,
				Votes:       votes,
			})
			pr.TotalVotes += votes
		}

		// Ties flag every max-count candidate as winner; a position with
		// zero votes has no winner.
		if max > 0 {
			for i := range pr.Candidates {
				if pr.Candidates[i].Votes == max {
					pr.Candidates[i].Winner = true
				}
			}
		}
		results.Positions = append(results.Positions, pr)
	}
	return results, nil
}

// ApproveResults makes an election's results visible to voters.
func (s *ResultsService) ApproveResults(ctx context.Context, electionID, actorID uint) error {
	return s.setVisibility(ctx, electionID, actorID, true)
}

// DisapproveResults hides an election's results from voters again.
func (s *ResultsService) DisapproveResults(ctx context.Context, electionID, actorID uint) error {
	return s.setVisibility(ctx, electionID, actorID, false)
}

func (s *ResultsService) setVisibility(ctx context.Context, electionID, actorID uint, visible bool) error {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrElectionNotFound
		}
		return err
	}

	isAdmin, err := s.roleRepo.HasApprovedRole(ctx, actorID, electionID, models.RoleAdmin, models.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		if isAdmin, err = s.roleRepo.IsSuperAdmin(ctx, actorID); err != nil {
			return err
		}
	}
	if !isAdmin {
		return response.ErrForbidden
	}

	if err := s.electionRepo.SetResultsVisible(ctx, electionID, visible, actorID, s.now().UTC()); err != nil {
		return err
	}

	action := models.ActionApproveResults
	if !visible {
		action = models.ActionDisapproveResults
	}
	s.audit.Log(ctx, actorID, action, electionID, election.OrganizationID, nil)
	return nil
}

// Stats assembles the reporting snapshot for an election.
func (s *ResultsService) Stats(ctx context.Context, electionID uint) (*models.VotingStats, error) {
	if _, err := s.electionRepo.GetByID(ctx, electionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrElectionNotFound
		}
		return nil, err
	}

	voters, err := s.roleRepo.CountApprovedVoters(ctx, electionID)
	if err != nil {
		return nil, err
	}
	votes, err := s.voteRepo.CountByElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.candidateRepo.CountByElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	positions, err := s.positionRepo.CountByElection(ctx, electionID)
	if err != nil {
		return nil, err
	}

	stats := &models.VotingStats{
		ElectionID:            electionID,
		TotalRegisteredVoters: uint(voters),
		TotalVotes:            uint(votes),
		TotalCandidates:       uint(candidates),
		TotalPositions:        uint(positions),
		LastUpdated:           s.now(),
	}
	if voters > 0 && positions > 0 {
		stats.VoterTurnout = float64(votes) / (float64(voters) * float64(positions))
	}
	return stats, nil
}

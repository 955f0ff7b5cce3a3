package service_test

import (
	"context"
	"sync"
	"sync/atomic"
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

func newVoteService(db *gorm.DB) *service.VoteService {
	audit := service.NewAuditService(repository.NewAuditRepository(db), kafka.NopPublisher{})
	return service.NewVoteService(
		repository.NewVoteRepository(db),
		repository.NewElectionRepository(db),
		repository.NewRoleRepository(db),
		repository.NewPositionRepository(db),
		repository.NewCandidateRepository(db),
		audit,
	)
}

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newVoteService(db)

	voter := testutil.CreateUser(t, db, "voter")
	org := testutil.CreateOrganization(t, db, voter.ID)
	election := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, voter.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusApproved)
	position := testutil.CreatePosition(t, db, election.ID, "President", 5)
	candidate := testutil.CreateCandidate(t, db, election.ID, position.ID, "Alice")

	vote, err := svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{
		PositionID:  position.ID,
		CandidateID: candidate.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, voter.ID, vote.VoterID)
	assert.Equal(t, candidate.ID, vote.CandidateID)

	// The vote is final: a second cast for the same position conflicts,
	// even for a different candidate.
	other := testutil.CreateCandidate(t, db, election.ID, position.ID, "Bob")
	_, err = svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{
		PositionID:  position.ID,
		CandidateID: other.ID,
	})
	assert.ErrorIs(t, err, response.ErrAlreadyVoted)

	votes, err := svc.UserVotes(context.Background(), voter.ID, election.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
	assert.Equal(t, candidate.ID, votes[0].CandidateID)
}

func TestCastVoteConcurrentDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newVoteService(db)

	voter := testutil.CreateUser(t, db, "voter")
	org := testutil.CreateOrganization(t, db, voter.ID)
	election := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, voter.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusApproved)
	position := testutil.CreatePosition(t, db, election.ID, "President", 5)
	candidate := testutil.CreateCandidate(t, db, election.ID, position.ID, "Alice")

	const attempts = 50
	var succeeded, conflicted atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{
				PositionID:  position.ID,
				CandidateID: candidate.ID,
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, response.ErrAlreadyVoted):
				conflicted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), succeeded.Load(), "exactly one concurrent cast must win")
	assert.Equal(t, int64(attempts-1), conflicted.Load())

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("voter_id = ? AND election_id = ? AND position_id = ?", voter.ID, election.ID, position.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the ledger must hold exactly one row")
}

func TestCastVoteRequiresApprovedRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newVoteService(db)

	voter := testutil.CreateUser(t, db, "voter")
	stranger := testutil.CreateUser(t, db, "stranger")
	org := testutil.CreateOrganization(t, db, voter.ID)
	election := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, voter.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusPending)
	position := testutil.CreatePosition(t, db, election.ID, "President", 5)
	candidate := testutil.CreateCandidate(t, db, election.ID, position.ID, "Alice")

	req := models.CastVoteRequest{PositionID: position.ID, CandidateID: candidate.ID}

	_, err := svc.CastVote(context.Background(), voter.ID, election.ID, req)
	assert.ErrorIs(t, err, response.ErrForbidden, "a pending role may not cast")

	_, err = svc.CastVote(context.Background(), stranger.ID, election.ID, req)
	assert.ErrorIs(t, err, response.ErrForbidden, "no role may not cast")
}

func TestCastVoteOutsideVotingWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newVoteService(db)

	voter := testutil.CreateUser(t, db, "voter")
	org := testutil.CreateOrganization(t, db, voter.ID)
	election := testutil.ClosedElection(t, db, org.ID)
	testutil.GrantRole(t, db, voter.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusApproved)
	position := testutil.CreatePosition(t, db, election.ID, "President", 5)
	candidate := testutil.CreateCandidate(t, db, election.ID, position.ID, "Alice")

	_, err := svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{
		PositionID:  position.ID,
		CandidateID: candidate.ID,
	})
	assert.ErrorIs(t, err, response.ErrForbidden)
}

func TestCastVoteUnapprovedElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newVoteService(db)

	voter := testutil.CreateUser(t, db, "voter")
	org := testutil.CreateOrganization(t, db, voter.ID)
	now := time.Now().UTC()
	election := testutil.CreateElection(t, db, org.ID, models.ApprovalPending, now.Add(-time.Hour), now.Add(time.Hour))
	testutil.GrantRole(t, db, voter.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusApproved)
	position := testutil.CreatePosition(t, db, election.ID, "President", 5)
	candidate := testutil.CreateCandidate(t, db, election.ID, position.ID, "Alice")

	_, err := svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{
		PositionID:  position.ID,
		CandidateID: candidate.ID,
	})
	assert.ErrorIs(t, err, response.ErrForbidden)
}

func TestCastVoteBallotValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newVoteService(db)

	voter := testutil.CreateUser(t, db, "voter")
	org := testutil.CreateOrganization(t, db, voter.ID)
	election := testutil.OngoingElection(t, db, org.ID)
	other := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, voter.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusApproved)

	position := testutil.CreatePosition(t, db, election.ID, "President", 5)
	foreignPosition := testutil.CreatePosition(t, db, other.ID, "President", 5)
	candidate := testutil.CreateCandidate(t, db, election.ID, position.ID, "Alice")
	foreignCandidate := testutil.CreateCandidate(t, db, other.ID, foreignPosition.ID, "Mallory")

	// Position from another election
	_, err := svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{
		PositionID:  foreignPosition.ID,
		CandidateID: candidate.ID,
	})
	assert.ErrorIs(t, err, response.ErrPositionNotFound)

	// Candidate from another position
	_, err = svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{
		PositionID:  position.ID,
		CandidateID: foreignCandidate.ID,
	})
	assert.ErrorIs(t, err, response.ErrCandidateNotFound)

	// Soft-deleted candidate
	require.NoError(t, db.Model(&models.Candidate{}).Where("id = ?", candidate.ID).Update("status", models.CandidateDeleted).Error)
	_, err = svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{
		PositionID:  position.ID,
		CandidateID: candidate.ID,
	})
	assert.ErrorIs(t, err, response.ErrCandidateNotFound)
}

func TestVotingProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newVoteService(db)

	voter := testutil.CreateUser(t, db, "voter")
	org := testutil.CreateOrganization(t, db, voter.ID)
	election := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, voter.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusApproved)

	president := testutil.CreatePosition(t, db, election.ID, "President", 5)
	treasurer := testutil.CreatePosition(t, db, election.ID, "Treasurer", 5)
	alice := testutil.CreateCandidate(t, db, election.ID, president.ID, "Alice")
	bob := testutil.CreateCandidate(t, db, election.ID, treasurer.ID, "Bob")

	progress, err := svc.Progress(context.Background(), voter.ID, election.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.VotesCast)
	assert.Equal(t, 2, progress.TotalPositions)
	assert.False(t, progress.Complete)

	_, err = svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{PositionID: president.ID, CandidateID: alice.ID})
	require.NoError(t, err)

	progress, err = svc.Progress(context.Background(), voter.ID, election.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.VotesCast)
	assert.False(t, progress.Complete)

	_, err = svc.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{PositionID: treasurer.ID, CandidateID: bob.ID})
	require.NoError(t, err)

	progress, err = svc.Progress(context.Background(), voter.ID, election.ID)
	require.NoError(t, err)
	assert.True(t, progress.Complete)
}

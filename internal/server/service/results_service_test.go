package service_test

import (
	"context"
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

func newResultsService(db *gorm.DB) *service.ResultsService {
	audit := service.NewAuditService(repository.NewAuditRepository(db), kafka.NopPublisher{})
	return service.NewResultsService(
		repository.NewVoteRepository(db),
		repository.NewElectionRepository(db),
		repository.NewRoleRepository(db),
		repository.NewPositionRepository(db),
		repository.NewCandidateRepository(db),
		audit,
	)
}

// ballotFixture seeds an ongoing election with two positions and casts a
// known spread of votes: President Alice 2, Bob 2 (a tie), Carol 1;
// Treasurer unvoted.
type ballotFixture struct {
	admin     *models.User
	voters    []*models.User
	election  *models.Election
	president *models.Position
	treasurer *models.Position
	alice     *models.Candidate
	bob       *models.Candidate
	carol     *models.Candidate
}

func seedBallot(t *testing.T, db *gorm.DB) ballotFixture {
	t.Helper()

	votes := newVoteService(db)

	admin := testutil.CreateUser(t, db, "admin")
	org := testutil.CreateOrganization(t, db, admin.ID)
	election := testutil.OngoingElection(t, db, org.ID)
	testutil.GrantRole(t, db, admin.ID, election.ID, org.ID, models.RoleAdmin, models.RoleStatusApproved)

	president := testutil.CreatePosition(t, db, election.ID, "President", 5)
	treasurer := testutil.CreatePosition(t, db, election.ID, "Treasurer", 5)
	alice := testutil.CreateCandidate(t, db, election.ID, president.ID, "Alice")
	bob := testutil.CreateCandidate(t, db, election.ID, president.ID, "Bob")
	carol := testutil.CreateCandidate(t, db, election.ID, president.ID, "Carol")

	choices := []*models.Candidate{alice, alice, bob, bob, carol}
	voters := make([]*models.User, 0, len(choices))
	for i, choice := range choices {
		voter := testutil.CreateUser(t, db, "voter")
		testutil.GrantRole(t, db, voter.ID, election.ID, org.ID, models.RoleVoter, models.RoleStatusApproved)
		voters = append(voters, voter)

		_, err := votes.CastVote(context.Background(), voter.ID, election.ID, models.CastVoteRequest{
			PositionID:  president.ID,
			CandidateID: choice.ID,
		})
		require.NoError(t, err, "ballot %d", i)
	}

	return ballotFixture{
		admin:     admin,
		voters:    voters,
		election:  election,
		president: president,
		treasurer: treasurer,
		alice:     alice,
		bob:       bob,
		carol:     carol,
	}
}

func tallyFor(t *testing.T, pr models.PositionResult, candidateID uint) models.CandidateTally {
	t.Helper()
	for _, ct := range pr.Candidates {
		if ct.CandidateID == candidateID {
			return ct
		}
	}
	t.Fatalf("candidate %d not in position result", candidateID)
	return models.CandidateTally{}
}

func TestResultsCountsAndWinners(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := seedBallot(t, db)
	svc := newResultsService(db)

	// The admin sees counts regardless of visibility or lifecycle
	results, err := svc.Results(context.Background(), fx.election.ID, fx.admin.ID)
	require.NoError(t, err)
	assert.False(t, results.Redacted)
	assert.Equal(t, uint(5), results.TotalVotes)
	require.Len(t, results.Positions, 2)

	var president, treasurer models.PositionResult
	for _, pr := range results.Positions {
		switch pr.PositionID {
		case fx.president.ID:
			president = pr
		case fx.treasurer.ID:
			treasurer = pr
		}
	}

	assert.Equal(t, uint(5), president.TotalVotes)
	alice := tallyFor(t, president, fx.alice.ID)
	bob := tallyFor(t, president, fx.bob.ID)
	carol := tallyFor(t, president, fx.carol.ID)
	assert.Equal(t, uint(2), alice.Votes)
	assert.Equal(t, uint(2), bob.Votes)
	assert.Equal(t, uint(1), carol.Votes)

	// A tie flags every max-count candidate as winner
	assert.True(t, alice.Winner)
	assert.True(t, bob.Winner)
	assert.False(t, carol.Winner)

	// A position with zero votes has no winner
	assert.Equal(t, uint(0), treasurer.TotalVotes)
	for _, ct := range treasurer.Candidates {
		assert.False(t, ct.Winner)
	}
}

func TestResultsVisibilityGate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := seedBallot(t, db)
	svc := newResultsService(db)
	voter := fx.voters[0]

	// Ongoing and unreleased: the voter gets the structure, not the counts
	results, err := svc.Results(context.Background(), fx.election.ID, voter.ID)
	require.NoError(t, err)
	assert.True(t, results.Redacted)
	assert.Equal(t, uint(0), results.TotalVotes)
	for _, pr := range results.Positions {
		for _, ct := range pr.Candidates {
			assert.Equal(t, uint(0), ct.Votes)
			assert.False(t, ct.Winner)
		}
		assert.NotEmpty(t, pr.Title, "redaction keeps the ballot structure")
	}

	// Released but still ongoing: still redacted for the voter
	require.NoError(t, svc.ApproveResults(context.Background(), fx.election.ID, fx.admin.ID))
	results, err = svc.Results(context.Background(), fx.election.ID, voter.ID)
	require.NoError(t, err)
	assert.True(t, results.Redacted)

	// Released and ended: the voter finally sees counts
	svc.WithClock(func() time.Time { return fx.election.EndDate.Add(time.Minute) })
	results, err = svc.Results(context.Background(), fx.election.ID, voter.ID)
	require.NoError(t, err)
	assert.False(t, results.Redacted)
	assert.Equal(t, uint(5), results.TotalVotes)

	// Withdrawing visibility redacts again, even after the end
	require.NoError(t, svc.DisapproveResults(context.Background(), fx.election.ID, fx.admin.ID))
	results, err = svc.Results(context.Background(), fx.election.ID, voter.ID)
	require.NoError(t, err)
	assert.True(t, results.Redacted)
}

func TestResultsVisibilityFlipTouchesOnlyTheFlag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := seedBallot(t, db)
	svc := newResultsService(db)

	require.NoError(t, svc.ApproveResults(context.Background(), fx.election.ID, fx.admin.ID))

	var after models.Election
	require.NoError(t, db.First(&after, fx.election.ID).Error)
	assert.True(t, after.ResultsVisible)
	require.NotNil(t, after.ApprovedBy)
	assert.Equal(t, fx.admin.ID, *after.ApprovedBy)

	// Election substance untouched
	assert.Equal(t, fx.election.Approval, after.Approval)
	assert.Equal(t, fx.election.Title, after.Title)
	assert.WithinDuration(t, fx.election.StartDate, after.StartDate, time.Second)
	assert.WithinDuration(t, fx.election.EndDate, after.EndDate, time.Second)

	// And no vote row was created or destroyed by the flip
	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("election_id = ?", fx.election.ID).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestResultsVisibilityRequiresAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := seedBallot(t, db)
	svc := newResultsService(db)

	err := svc.ApproveResults(context.Background(), fx.election.ID, fx.voters[0].ID)
	assert.ErrorIs(t, err, response.ErrForbidden)

	err = svc.DisapproveResults(context.Background(), fx.election.ID, fx.voters[0].ID)
	assert.ErrorIs(t, err, response.ErrForbidden)

	var after models.Election
	require.NoError(t, db.First(&after, fx.election.ID).Error)
	assert.False(t, after.ResultsVisible)
}

func TestDeletedCandidateExcludedFromResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := seedBallot(t, db)
	svc := newResultsService(db)

	require.NoError(t, db.Model(&models.Candidate{}).Where("id = ?", fx.carol.ID).Update("status", models.CandidateDeleted).Error)

	results, err := svc.Results(context.Background(), fx.election.ID, fx.admin.ID)
	require.NoError(t, err)
	for _, pr := range results.Positions {
		for _, ct := range pr.Candidates {
			assert.NotEqual(t, fx.carol.ID, ct.CandidateID)
		}
	}
}

func TestVotingStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := seedBallot(t, db)
	svc := newResultsService(db)

	stats, err := svc.Stats(context.Background(), fx.election.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(5), stats.TotalRegisteredVoters)
	assert.Equal(t, uint(5), stats.TotalVotes)
	assert.Equal(t, uint(3), stats.TotalCandidates)
	assert.Equal(t, uint(2), stats.TotalPositions)
	// 5 votes out of 5 voters x 2 positions
	assert.InDelta(t, 0.5, stats.VoterTurnout, 1e-9)

	_, err = svc.Stats(context.Background(), fx.election.ID+100)
	assert.ErrorIs(t, err, response.ErrElectionNotFound)
}

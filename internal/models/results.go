package models

import "time"

// CandidateTally is one candidate's line in a position result.
type CandidateTally struct {
	CandidateID uint   `json:"candidate_id"`
	Name        string `json:"name"`
	Votes       uint   `json:"votes"`
	Winner      bool   `json:"winner"`
}

// PositionResult groups tallies under a position. Ties produce multiple
// winners; a position with zero votes has none.
type PositionResult struct {
	PositionID uint             `json:"position_id"`
	Title      string           `json:"title"`
	Candidates []CandidateTally `json:"candidates"`
	TotalVotes uint             `json:"total_votes"`
}

// ElectionResults is the aggregated view returned by the results endpoint.
// When Redacted is set the per-candidate counts and winners are withheld.
type ElectionResults struct {
	ElectionID  uint             `json:"election_id"`
	Redacted    bool             `json:"redacted"`
	TotalVotes  uint             `json:"total_votes"`
	Positions   []PositionResult `json:"positions"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// VotingStats is the reporting snapshot for an election.
type VotingStats struct {
	ElectionID            uint      `json:"election_id"`
	TotalRegisteredVoters uint      `json:"total_registered_voters"`
	TotalVotes            uint      `json:"total_votes"`
	TotalCandidates       uint      `json:"total_candidates"`
	TotalPositions        uint      `json:"total_positions"`
	VoterTurnout          float64   `json:"voter_turnout"`
	LastUpdated           time.Time `json:"last_updated"`
}

// VotingProgress reports how far a voter is through the ballot.
type VotingProgress struct {
	VotesCast      int  `json:"votes_cast"`
	TotalPositions int  `json:"total_positions"`
	Complete       bool `json:"complete"`
}

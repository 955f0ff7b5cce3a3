package handlers

import (
	"net/http"

	"evote-service/internal/models"
	"evote-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService *service.VoteService
}

func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// @Summary Cast a vote
// @Description Record one vote per position; a second cast for the same position conflicts
// @Tags votes
// @Accept json
// @Produce json
// @Param id path int true "Election ID"
// @Param request body models.CastVoteRequest true "Ballot Choice"
// @Success 201 {object} models.Vote
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/votes [post]
func (h *VoteHandler) Cast(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vote, err := h.voteService.CastVote(c.Request.Context(), user.ID, electionID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, vote)
}

// @Summary List my votes in an election
// @Tags votes
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {array} models.Vote
// @Security BearerAuth
// @Router /elections/{id}/votes/mine [get]
func (h *VoteHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	votes, err := h.voteService.UserVotes(c.Request.Context(), user.ID, electionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, votes)
}

// @Summary My voting progress
// @Description Votes cast vs. positions on the ballot
// @Tags votes
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} models.VotingProgress
// @Security BearerAuth
// @Router /elections/{id}/progress [get]
func (h *VoteHandler) Progress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	progress, err := h.voteService.Progress(c.Request.Context(), user.ID, electionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

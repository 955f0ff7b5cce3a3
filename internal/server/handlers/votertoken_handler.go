package handlers

import (
	"net/http"

	"evote-service/internal/models"
	"evote-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type VoterTokenHandler struct {
	tokenService *service.VoterTokenService
}

func NewVoterTokenHandler(tokenService *service.VoterTokenService) *VoterTokenHandler {
	return &VoterTokenHandler{tokenService: tokenService}
}

// @Summary Issue voter tokens
// @Description Generate a batch of single-use voting tokens for an election
// @Tags voter-tokens
// @Accept json
// @Produce json
// @Param id path int true "Election ID"
// @Param request body models.IssueTokensRequest true "Issue Request"
// @Success 201 {array} models.VoterToken
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/tokens [post]
func (h *VoterTokenHandler) Issue(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.IssueTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.tokenService.Issue(c.Request.Context(), user.ID, electionID, req.Count, req.ExpiresAt)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, tokens)
}

// @Summary List an election's voter tokens
// @Tags voter-tokens
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {array} models.VoterToken
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/tokens [get]
func (h *VoterTokenHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	tokens, err := h.tokenService.Issued(c.Request.Context(), user.ID, electionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

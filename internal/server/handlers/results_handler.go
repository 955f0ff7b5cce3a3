package handlers

import (
	"net/http"

	"evote-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type ResultsHandler struct {
	resultsService *service.ResultsService
	auditService   *service.AuditService
	authz          *service.Authorizer
}

func NewResultsHandler(resultsService *service.ResultsService, auditService *service.AuditService, authz *service.Authorizer) *ResultsHandler {
	return &ResultsHandler{
		resultsService: resultsService,
		auditService:   auditService,
		authz:          authz,
	}
}

// @Summary Election results
// @Description Tallies per position; counts are withheld until the admin releases them and the election ends
// @Tags results
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} models.ElectionResults
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/results [get]
func (h *ResultsHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	results, err := h.resultsService.Results(c.Request.Context(), electionID, user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// @Summary Release election results
// @Description Make the election's results visible to voters
// @Tags results
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/results/approve [post]
func (h *ResultsHandler) Approve(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.resultsService.ApproveResults(c.Request.Context(), electionID, user.ID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "results approved"})
}

// @Summary Hide election results
// @Description Withdraw result visibility from voters
// @Tags results
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/results/disapprove [post]
func (h *ResultsHandler) Disapprove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.resultsService.DisapproveResults(c.Request.Context(), electionID, user.ID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "results disapproved"})
}

// @Summary Election statistics
// @Description Registered voters, votes cast, turnout
// @Tags results
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} models.VotingStats
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/stats [get]
func (h *ResultsHandler) Stats(c *gin.Context) {
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	stats, err := h.resultsService.Stats(c.Request.Context(), electionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary Election audit trail
// @Description Administrative action log, newest first
// @Tags results
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {array} models.AuditLog
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/audit [get]
func (h *ResultsHandler) Audit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.authz.RequireElectionAdmin(c.Request.Context(), user.ID, electionID); err != nil {
		fail(c, err)
		return
	}

	trail, err := h.auditService.Trail(c.Request.Context(), electionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, trail)
}

package handlers

import (
	"net/http"

	"evote-service/internal/models"
	"evote-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type ElectionHandler struct {
	electionService *service.ElectionService
	roleService     *service.RoleService
}

func NewElectionHandler(electionService *service.ElectionService, roleService *service.RoleService) *ElectionHandler {
	return &ElectionHandler{
		electionService: electionService,
		roleService:     roleService,
	}
}

// @Summary Request an election workspace
// @Description Create a pending election and a pending admin role for the requester
// @Tags elections
// @Accept json
// @Produce json
// @Param request body models.CreateElectionRequest true "Workspace Request"
// @Success 201 {object} models.Election
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /elections [post]
func (h *ElectionHandler) RequestWorkspace(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateElectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	election, _, err := h.electionService.RequestWorkspace(c.Request.Context(), user.ID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, election)
}

// @Summary List my elections
// @Description List the elections the caller holds a role in; super-admins see all
// @Tags elections
// @Produce json
// @Success 200 {array} models.Election
// @Security BearerAuth
// @Router /elections [get]
func (h *ElectionHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	elections, err := h.electionService.ElectionsForUser(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, elections)
}

// @Summary Look up an election by join code
// @Tags elections
// @Produce json
// @Param token path string true "Election join code"
// @Success 200 {object} models.Election
// @Failure 404 {object} map[string]string
// @Router /elections/token/{token} [get]
func (h *ElectionHandler) GetByToken(c *gin.Context) {
	election, err := h.electionService.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, election)
}

// @Summary Join an election as a voter
// @Description Register the caller as an approved voter of the election behind the join code
// @Tags elections
// @Produce json
// @Param token path string true "Election join code"
// @Success 201 {object} models.Role
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /elections/token/{token}/join [post]
func (h *ElectionHandler) Join(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	role, err := h.roleService.RequestJoin(c.Request.Context(), user.ID, c.Param("token"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, role)
}

// @Summary Approve a pending election
// @Description Super-admin approval; cascades to the election's pending admin roles
// @Tags elections
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/approve [post]
func (h *ElectionHandler) Approve(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.electionService.ApproveElection(c.Request.Context(), electionID, user.ID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "election approved"})
}

// @Summary Reject a pending election
// @Description Super-admin rejection with an optional reason
// @Tags elections
// @Accept json
// @Produce json
// @Param id path int true "Election ID"
// @Param request body models.RejectElectionRequest false "Rejection Reason"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/reject [post]
func (h *ElectionHandler) Reject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.RejectElectionRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.electionService.RejectElection(c.Request.Context(), electionID, user.ID, req.Reason); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "election rejected"})
}

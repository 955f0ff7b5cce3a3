package handlers

import (
	"net/http"

	"evote-service/internal/models"
	"evote-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService *service.RoleService
}

func NewRoleHandler(roleService *service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// @Summary List my roles
// @Tags roles
// @Produce json
// @Success 200 {array} models.Role
// @Security BearerAuth
// @Router /roles [get]
func (h *RoleHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	roles, err := h.roleService.RolesForUser(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}

// @Summary Approve or reject a pending role
// @Description Transition a pending role; the caller must administer the role's election
// @Tags roles
// @Accept json
// @Produce json
// @Param id path int true "Role ID"
// @Param request body models.SetRoleApprovalRequest true "Approval Decision"
// @Success 200 {object} models.Role
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /roles/{id}/approval [post]
func (h *RoleHandler) SetApproval(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	roleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.SetRoleApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.roleService.SetApproval(c.Request.Context(), roleID, req.Status, user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, role)
}

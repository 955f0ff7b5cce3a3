package handlers

import (
	"net/http"

	"evote-service/internal/models"
	"evote-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type PositionHandler struct {
	positionService *service.PositionService
}

func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{positionService: positionService}
}

// @Summary List the positions of an election
// @Tags positions
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {array} models.Position
// @Security BearerAuth
// @Router /elections/{id}/positions [get]
func (h *PositionHandler) List(c *gin.Context) {
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	positions, err := h.positionService.Positions(c.Request.Context(), electionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, positions)
}

// @Summary Add a position to an election
// @Tags positions
// @Accept json
// @Produce json
// @Param id path int true "Election ID"
// @Param request body models.AddPositionRequest true "Position"
// @Success 201 {object} models.Position
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/positions [post]
func (h *PositionHandler) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.AddPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	position, err := h.positionService.AddPosition(c.Request.Context(), user.ID, electionID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, position)
}

// @Summary Update a position
// @Tags positions
// @Accept json
// @Produce json
// @Param id path int true "Position ID"
// @Param request body models.UpdatePositionRequest true "Updates"
// @Success 200 {object} models.Position
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /positions/{id} [put]
func (h *PositionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	positionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	position, err := h.positionService.UpdatePosition(c.Request.Context(), user.ID, positionID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, position)
}

// @Summary Delete a position
// @Description Soft-delete; fails while candidates still reference the position
// @Tags positions
// @Produce json
// @Param id path int true "Position ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /positions/{id} [delete]
func (h *PositionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	positionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.positionService.DeletePosition(c.Request.Context(), user.ID, positionID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "position deleted"})
}

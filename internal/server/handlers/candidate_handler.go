package handlers

import (
	"net/http"

	"evote-service/internal/models"
	"evote-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateService *service.CandidateService
}

func NewCandidateHandler(candidateService *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService}
}

// @Summary List the candidates of an election
// @Tags candidates
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {array} models.Candidate
// @Security BearerAuth
// @Router /elections/{id}/candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	candidates, err := h.candidateService.Candidates(c.Request.Context(), electionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// @Summary Register a candidate
// @Description Multipart form; the photo is optional and travels as the "image" part
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Election ID"
// @Param position_id formData int true "Position ID"
// @Param name formData string true "Candidate name"
// @Param description formData string false "Description"
// @Param department formData string false "Department"
// @Param platform formData string false "Platform"
// @Param image formData file false "Candidate photo"
// @Success 201 {object} models.CandidateResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /elections/{id}/candidates [post]
func (h *CandidateHandler) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	electionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.AddCandidateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, _ := c.FormFile("image")

	resp, err := h.candidateService.AddCandidate(c.Request.Context(), user.ID, electionID, req, image)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Update a candidate
// @Description Multipart form; a new image replaces the bound one
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Candidate ID"
// @Param name formData string false "Candidate name"
// @Param description formData string false "Description"
// @Param department formData string false "Department"
// @Param platform formData string false "Platform"
// @Param status formData string false "active or inactive"
// @Param image formData file false "Candidate photo"
// @Success 200 {object} models.CandidateResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /candidates/{id} [put]
func (h *CandidateHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	candidateID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCandidateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, _ := c.FormFile("image")

	resp, err := h.candidateService.UpdateCandidate(c.Request.Context(), user.ID, candidateID, req, image)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a candidate
// @Description Soft-delete; the candidate disappears from ballots and tallies
// @Tags candidates
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	candidateID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.candidateService.DeleteCandidate(c.Request.Context(), user.ID, candidateID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "candidate deleted"})
}

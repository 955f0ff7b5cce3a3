package handlers

import (
	"net/http"

	"evote-service/internal/models"
	"evote-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  *service.AuthService
	tokenService *service.VoterTokenService
}

func NewAuthHandler(authService *service.AuthService, tokenService *service.VoterTokenService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

// @Summary Register a new user
// @Description Create a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Anonymous voter sign-in
// @Description Redeem a single-use voter token for an anonymous voting session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RedeemTokenRequest true "Redeem Request"
// @Success 200 {object} models.RedeemTokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/redeem [post]
func (h *AuthHandler) Redeem(c *gin.Context) {
	var req models.RedeemTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, role, err := h.tokenService.Redeem(c.Request.Context(), req.Token, req.ElectionToken)
	if err != nil {
		fail(c, err)
		return
	}

	jwtToken, err := h.authService.IssueToken(user)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RedeemTokenResponse{
		Token:         jwtToken,
		ElectionID:    role.ElectionID,
		ElectionToken: req.ElectionToken,
	})
}

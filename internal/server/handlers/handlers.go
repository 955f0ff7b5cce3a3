package handlers

import (
	"net/http"
	"strconv"

	"evote-service/internal/models"
	"evote-service/internal/server/middleware"
	"evote-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// fail translates a service error into its HTTP status. Internal errors are
// not echoed to the client.
func fail(c *gin.Context, err error) {
	status := response.StatusCode(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentUser pulls the authenticated user out of the request context, or
// aborts with 401.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return user, true
}

// paramID parses a numeric path parameter, or aborts with 400.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

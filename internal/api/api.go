// Package api holds the gin handlers of the /api/v1 surface.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/sousie/backend/internal/middleware"
	"github.com/pageza/sousie/backend/internal/service"
)

// currentUser returns the authenticated user or answers 401
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a uuid path parameter or answers 400
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// turnError maps a failed chat turn to a response
func turnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyThread):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProvider):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		middleware.Logger(c).WithError(err).Error("Chat turn failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

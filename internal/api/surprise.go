package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/sousie/backend/internal/middleware"
	"github.com/pageza/sousie/backend/internal/service"
)

// SurpriseHandler serves a random meal from TheMealDB. It calls no model and
// needs no account.
type SurpriseHandler struct {
	surpriseService service.ISurpriseService
}

func NewSurpriseHandler(surpriseService service.ISurpriseService) *SurpriseHandler {
	return &SurpriseHandler{surpriseService: surpriseService}
}

// RegisterRoutes registers the surprise routes
func (h *SurpriseHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/surprise/meal", h.RandomMeal)
}

func (h *SurpriseHandler) RandomMeal(c *gin.Context) {
	meal, err := h.surpriseService.RandomMeal(c.Request.Context())
	if errors.Is(err, service.ErrNoMeal) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		middleware.Logger(c).WithError(err).Warn("Meal lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Meal lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

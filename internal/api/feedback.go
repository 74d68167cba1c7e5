package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/sousie/backend/internal/middleware"
	"github.com/pageza/sousie/backend/internal/models"
	"github.com/pageza/sousie/backend/internal/service"
	"github.com/pageza/sousie/backend/internal/types"
)

// FeedbackHandler handles ratings of model replies
type FeedbackHandler struct {
	feedbackService service.IFeedbackService
	authService     middleware.TokenValidator
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbackService service.IFeedbackService, authService middleware.TokenValidator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		authService:     authService,
	}
}

// RegisterRoutes registers the feedback routes
func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback", middleware.AuthMiddleware(h.authService))
	{
		feedback.POST("", h.CreateFeedback)
		feedback.GET("/recent", h.RecentFeedback)
	}
}

// CreateFeedback stores a rating for a reply
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req types.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fb, err := h.feedbackService.CreateFeedback(c.Request.Context(), userID, &req)
	if errors.Is(err, service.ErrInvalidRating) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		middleware.Logger(c).WithError(err).Error("Failed to store feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store feedback"})
		return
	}
	c.JSON(http.StatusCreated, toFeedbackResponse(fb))
}

// RecentFeedback returns the user's latest ratings
func (h *FeedbackHandler) RecentFeedback(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.feedbackService.Recent(c.Request.Context(), userID)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("Failed to load feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback"})
		return
	}

	out := make([]types.FeedbackResponse, len(entries))
	for i, fb := range entries {
		out[i] = toFeedbackResponse(fb)
	}
	c.JSON(http.StatusOK, gin.H{"feedback": out})
}

func toFeedbackResponse(fb *models.Feedback) types.FeedbackResponse {
	return types.FeedbackResponse{
		ID:        fb.ID,
		Prompt:    fb.Prompt,
		Response:  fb.Response,
		Rating:    fb.Rating,
		CreatedAt: fb.CreatedAt,
	}
}

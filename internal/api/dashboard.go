package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/sousie/backend/internal/middleware"
	"github.com/pageza/sousie/backend/internal/service"
	"github.com/pageza/sousie/backend/internal/types"
)

// DashboardHandler serves the user's prompt history
type DashboardHandler struct {
	historyService service.IHistoryService
	authService    middleware.TokenValidator
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(historyService service.IHistoryService, authService middleware.TokenValidator) *DashboardHandler {
	return &DashboardHandler{
		historyService: historyService,
		authService:    authService,
	}
}

// RegisterRoutes registers the prompt history routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	prompts := router.Group("/prompts", middleware.AuthMiddleware(h.authService))
	{
		prompts.POST("", h.LogPrompt)
		prompts.GET("", h.ListPrompts)
	}
}

// LogPrompt stores one prompt and the reply it got
func (h *DashboardHandler) LogPrompt(c *gin.Context) {
	var req types.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entry, err := h.historyService.LogPrompt(c.Request.Context(), userID, req.Prompt, req.Response)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("Failed to log prompt")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log prompt"})
		return
	}
	c.JSON(http.StatusCreated, types.PromptResponse{
		ID:        entry.ID,
		Prompt:    entry.Prompt,
		Response:  entry.Response,
		CreatedAt: entry.CreatedAt,
	})
}

// ListPrompts returns the user's prompt history, newest first
func (h *DashboardHandler) ListPrompts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	entries, err := h.historyService.ListPrompts(c.Request.Context(), userID, limit)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("Failed to list prompts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list prompts"})
		return
	}

	out := make([]types.PromptResponse, len(entries))
	for i, e := range entries {
		out[i] = types.PromptResponse{
			ID:        e.ID,
			Prompt:    e.Prompt,
			Response:  e.Response,
			CreatedAt: e.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"prompts": out})
}

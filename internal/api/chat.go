package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/sousie/backend/internal/middleware"
	"github.com/pageza/sousie/backend/internal/prompts"
	"github.com/pageza/sousie/backend/internal/service"
	"github.com/pageza/sousie/backend/internal/types"
)

// ChatHandler handles conversation turns and their menus
type ChatHandler struct {
	chat        service.IChatService
	recipes     service.IRecipeLogService
	authService middleware.TokenValidator
	limiter     gin.HandlerFunc
}

// NewChatHandler creates a new ChatHandler. limiter guards the routes that
// call the model; it may be nil.
func NewChatHandler(chat service.IChatService, recipes service.IRecipeLogService, authService middleware.TokenValidator, limiter gin.HandlerFunc) *ChatHandler {
	if limiter == nil {
		limiter = func(c *gin.Context) { c.Next() }
	}
	return &ChatHandler{
		chat:        chat,
		recipes:     recipes,
		authService: authService,
		limiter:     limiter,
	}
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	router.POST("/chat", auth, h.limiter, h.Chat)
	router.POST("/chat/surprise", auth, h.limiter, h.Surprise)
	router.POST("/menu/generate", auth, h.limiter, h.GenerateMenu)

	conversations := router.Group("/conversations", auth)
	{
		conversations.GET("/:id/menu", h.GetMenu)
		conversations.DELETE("/:id", h.Reset)
	}

	router.GET("/recipes/similar", auth, h.Similar)
}

// Chat relays a thread to the model
func (h *ChatHandler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tpl, err := prompts.ParseTemplate(req.Template)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	turn, err := h.chat.Chat(c.Request.Context(), userID, conversationID(req.ConversationID), req.Messages, tpl)
	if err != nil {
		turnError(c, err)
		return
	}
	c.JSON(http.StatusOK, turnResponse(turn))
}

// Surprise asks for surprise menus
func (h *ChatHandler) Surprise(c *gin.Context) {
	var req types.SurpriseRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	turn, err := h.chat.Chat(c.Request.Context(), userID, conversationID(req.ConversationID), req.Messages, prompts.TemplateSurprise)
	if err != nil {
		turnError(c, err)
		return
	}
	c.JSON(http.StatusOK, turnResponse(turn))
}

// GenerateMenu builds a menu from ingredients
func (h *ChatHandler) GenerateMenu(c *gin.Context) {
	var req types.GenerateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	turn, err := h.chat.GenerateMenu(c.Request.Context(), userID, req.Ingredients, req.Cuisine, req.Quick)
	if err != nil {
		turnError(c, err)
		return
	}
	c.JSON(http.StatusOK, turnResponse(turn))
}

// GetMenu returns the conversation's latest menu
func (h *ChatHandler) GetMenu(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	convID, ok := pathID(c, "id")
	if !ok {
		return
	}

	m, err := h.chat.Menu(c.Request.Context(), userID, convID)
	if errors.Is(err, service.ErrMenuNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		middleware.Logger(c).WithError(err).Error("Failed to load menu")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, types.MenuResponse{Menu: m})
}

// Reset forgets the conversation's menu
func (h *ChatHandler) Reset(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	convID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.chat.Reset(c.Request.Context(), userID, convID); err != nil {
		middleware.Logger(c).WithError(err).Error("Failed to reset conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset conversation"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Similar lists logged menus whose prompts resemble ?q=
func (h *ChatHandler) Similar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	logs, err := h.recipes.Similar(c.Request.Context(), userID, q, limit)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("Failed to search recipe log")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": logs})
}

func conversationID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

func turnResponse(t *service.Turn) types.TurnResponse {
	return types.TurnResponse{
		ConversationID: t.ConversationID,
		Reply:          t.Reply,
		Menu:           t.Menu,
	}
}

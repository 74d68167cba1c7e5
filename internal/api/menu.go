package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/sousie/backend/internal/menu"
	"github.com/pageza/sousie/backend/internal/types"
)

// MenuHandler exposes the reply normalizer without calling the model
type MenuHandler struct{}

func NewMenuHandler() *MenuHandler {
	return &MenuHandler{}
}

// RegisterRoutes registers the menu routes
func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/menu/parse", h.Parse)
}

// Parse derives a menu from a raw reply. A reply without a usable payload
// answers 200 with a null menu, like a chat turn would.
func (h *MenuHandler) Parse(c *gin.Context) {
	var req types.ParseMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shape := req.Shape
	if shape == "" {
		shape = "object"
	}
	d, _ := menu.DelimitersFor(shape)

	c.JSON(http.StatusOK, types.MenuResponse{Menu: menu.FromReply(req.Reply, d)})
}

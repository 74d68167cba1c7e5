package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/sousie/backend/internal/database"
	"github.com/pageza/sousie/backend/internal/middleware"
)

// HealthHandler reports whether the backing stores answer
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "database": "ok", "redis": "ok"}
	code := http.StatusOK

	if err := database.HealthCheck(ctx, h.db); err != nil {
		middleware.Logger(c).WithError(err).Error("Database health check failed")
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		middleware.Logger(c).WithError(err).Error("Redis health check failed")
		status["redis"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if code != http.StatusOK {
		status["status"] = "degraded"
	}
	c.JSON(code, status)
}

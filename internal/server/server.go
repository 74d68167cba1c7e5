package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/sousie/backend/config"
	"github.com/pageza/sousie/backend/internal/api"
	"github.com/pageza/sousie/backend/internal/middleware"
	"github.com/pageza/sousie/backend/internal/service"
)

// Services are the domain services the handlers are built on
type Services struct {
	Auth       service.IAuthService
	Chat       service.IChatService
	RecipeLogs service.IRecipeLogService
	Feedback   service.IFeedbackService
	History    service.IHistoryService
	Surprise   service.ISurpriseService
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    logrus.FieldLogger
}

// New builds the router and mounts every handler under /api/v1
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, svcs Services, log logrus.FieldLogger) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSOrigins),
	)

	limiter := middleware.NewModelCallRateLimiter(redisClient, cfg.RateLimitPerHour).RateLimitMiddleware()

	v1 := router.Group("/api/v1")
	api.NewHealthHandler(db, redisClient).RegisterRoutes(v1)
	api.NewMenuHandler().RegisterRoutes(v1)
	api.NewChatHandler(svcs.Chat, svcs.RecipeLogs, svcs.Auth, limiter).RegisterRoutes(v1)
	api.NewFeedbackHandler(svcs.Feedback, svcs.Auth).RegisterRoutes(v1)
	api.NewDashboardHandler(svcs.History, svcs.Auth).RegisterRoutes(v1)
	api.NewSurpriseHandler(svcs.Surprise).RegisterRoutes(v1)

	return &Server{
		router: router,
		log:    log,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.log.WithField("addr", s.http.Addr).Info("Starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

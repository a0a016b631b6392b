// Package http provides the Gin HTTP transport for search and
// recommendations.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/howl2go/v2/internal/infrastructure/config"
	"github.com/howl2go/v2/internal/infrastructure/monitoring"
	"github.com/howl2go/v2/internal/ports/inbound"
	"go.uber.org/zap"
)

// Server hosts the HTTP API.
type Server struct {
	cfg     config.ServerConfig
	engine  *gin.Engine
	server  *http.Server
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewServer builds the router and registers all routes.
func NewServer(
	cfg config.Config,
	search inbound.SearchService,
	recommendations inbound.RecommendationService,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	s := &Server{
		cfg:     cfg.Server,
		engine:  engine,
		logger:  logger.Named("http-server"),
		metrics: metrics,
	}

	h := newHandlers(search, recommendations, logger)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := engine.Group("/api/v1")
	{
		api.POST("/food/search", h.search)

		rec := api.Group("/recommendations")
		rec.GET("", h.personalized)
		rec.GET("/frequent", h.frequent)
		rec.GET("/similar", h.similar)
		rec.GET("/explore", h.exploration)
		rec.GET("/time-based", h.timeBased)
		rec.GET("/healthier", h.healthier)
	}

	return s
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	s.logger.Info("HTTP server listening", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// Package server exposes the recommendation engine over HTTP: a
// stateless decision endpoint plus a small session API for hosts that
// want this service to carry conversation state for them.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"iris/internal/catalog"
	"iris/internal/logging"
	"iris/internal/observability"
	"iris/internal/recommend"
	"iris/internal/session"
	"iris/internal/telemetry"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Config configures the HTTP server.
type Config struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	EnableCORS   bool          `json:"enable_cors"`
	Debug        bool          `json:"debug"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:         "localhost",
		Port:         8080,
		EnableCORS:   true,
		Debug:        false,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Deps carries the collaborators the server routes traffic to.
type Deps struct {
	Engine    *recommend.Engine
	Catalog   *catalog.Catalog
	Store     *session.Store
	Telemetry *telemetry.Recorder
	Metrics   *observability.MetricsCollector
	Logger    logging.Logger
}

// Server is the HTTP front of the recommendation service.
type Server struct {
	engine     *recommend.Engine
	catalog    *catalog.Catalog
	store      *session.Store
	telemetry  *telemetry.Recorder
	metrics    *observability.MetricsCollector
	logger     logging.Logger
	ginEngine  *gin.Engine
	httpServer *http.Server
	startTime  time.Time
}

// New builds a Server. Engine and Catalog are required; Store and
// Telemetry default to fresh in-memory instances.
func New(cfg *Config, deps Deps) (*Server, error) {
	if deps.Engine == nil {
		return nil, fmt.Errorf("server: engine is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("server: catalog is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if deps.Store == nil {
		deps.Store = session.NewStore()
	}
	if deps.Telemetry == nil {
		deps.Telemetry = telemetry.NewRecorder()
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	if cfg.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
		engine.Use(cors.New(corsConfig))
	}

	s := &Server{
		engine:    deps.Engine,
		catalog:   deps.Catalog,
		store:     deps.Store,
		telemetry: deps.Telemetry,
		metrics:   deps.Metrics,
		logger:    logging.OrNop(deps.Logger),
		ginEngine: engine,
		startTime: time.Now(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	api := s.ginEngine.Group("/api")
	api.Use(JSONMiddleware())

	api.GET("/health", s.handleHealth)

	v1 := api.Group("/v1")
	{
		v1.POST("/recommend", s.handleRecommend)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", s.handleCreateSession)
			sessions.GET("", s.handleListSessions)
			sessions.GET("/:id", s.handleGetSession)
			sessions.DELETE("/:id", s.handleDeleteSession)
			sessions.POST("/:id/messages", s.handleSessionMessage)
			sessions.POST("/:id/events", s.handleSessionEvent)
			sessions.GET("/:id/telemetry", s.handleSessionTelemetry)
		}

		lenses := v1.Group("/lenses")
		{
			lenses.GET("", s.handleListLenses)
			lenses.GET("/:id", s.handleGetLens)
		}
	}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Start serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("iris server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping iris server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: HealthResponse{
			Status:    "ok",
			Version:   Version,
			Timestamp: time.Now(),
			Uptime:    time.Since(s.startTime).String(),
			Lenses:    s.catalog.Len(),
		},
	})
}

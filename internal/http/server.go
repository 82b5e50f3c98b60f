package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	auditHTTP "github.com/tribunatech/casevault/internal/audit/http"
	casesHTTP "github.com/tribunatech/casevault/internal/cases/http"
	clientsHTTP "github.com/tribunatech/casevault/internal/clients/http"
	"github.com/tribunatech/casevault/internal/config"
	documentsHTTP "github.com/tribunatech/casevault/internal/documents/http"
	portalHTTP "github.com/tribunatech/casevault/internal/portal/http"
	timelineHTTP "github.com/tribunatech/casevault/internal/timeline/http"
)

// Handlers groups the HTTP handlers mounted on the server.
type Handlers struct {
	Client   *clientsHTTP.ClientHandler
	Case     *casesHTTP.CaseHandler
	Timeline *timelineHTTP.TimelineHandler
	Document *documentsHTTP.DocumentHandler
	Access   *portalHTTP.AccessHandler
	Portal   *portalHTTP.PortalHandler
	Audit    *auditHTTP.AuditHandler
}

// Server represents the HTTP API server. Staff routes live under /v1 behind
// key authentication; the client portal lives under /portal behind token
// validation and per-IP rate limiting.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server with all routes mounted.
func NewServer(cfg *config.Config, handlers Handlers, logger *slog.Logger) *Server {
	server := &Server{logger: logger}

	gin.SetMode(cfg.GetGinMode())
	router := server.createRouter(cfg, handlers)

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

func (s *Server) createRouter(cfg *config.Config, handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(StaffAuthMiddleware(cfg.StaffAPIKeyHash, s.logger))
	{
		v1.POST("/clients", handlers.Client.CreateHandler)
		v1.GET("/clients/:id", handlers.Client.GetHandler)
		v1.GET("/clients", handlers.Client.ListHandler)

		v1.POST("/cases", handlers.Case.CreateHandler)
		v1.GET("/cases/:id", handlers.Case.GetHandler)
		v1.GET("/cases", handlers.Case.ListHandler)

		v1.POST("/cases/:id/advance", handlers.Timeline.AdvanceHandler)
		v1.GET("/cases/:id/timeline", handlers.Timeline.GetHandler)

		v1.POST("/cases/:id/documents", handlers.Document.UploadHandler)
		v1.GET("/cases/:id/documents", handlers.Document.ListHandler)

		v1.POST("/portal-access", handlers.Access.IssueHandler)
		v1.POST("/portal-access/revoke", handlers.Access.RevokeHandler)

		v1.GET("/audit-logs", handlers.Audit.ListHandler)
	}

	portal := router.Group("/portal")
	if cfg.PortalRateLimitEnabled {
		portal.Use(PortalRateLimitMiddleware(cfg.PortalRateLimitRequestsPerSec, cfg.PortalRateLimitBurst))
	}
	{
		portal.GET("/case", handlers.Portal.ViewHandler)
		portal.GET("/documents", handlers.Portal.DocumentsHandler)
		portal.POST("/documents", handlers.Portal.UploadHandler)
	}

	return router
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	select {
	case <-c.Request.Context().Done():
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
